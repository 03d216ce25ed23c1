package js_lexer

import (
	"testing"

	"github.com/jsxmin/jsxmin/internal/logger"
)

func lexTokens(t *testing.T, contents string) []T {
	t.Helper()
	log := logger.NewDeferLog()
	lexer := NewLexer(log, contents)
	var tokens []T
	for lexer.Token != TEndOfFile {
		tokens = append(tokens, lexer.Token)
		lexer.Next()
	}
	return tokens
}

func TestTokens(t *testing.T) {
	tokens := lexTokens(t, "var x = a.b + 'str' >>> 2;")
	expected := []T{TVar, TIdentifier, TEquals, TIdentifier, TDot, TIdentifier,
		TPlus, TStringLiteral, TGreaterThanGreaterThanGreaterThan, TNumericLiteral, TSemicolon}
	if len(tokens) != len(expected) {
		t.Fatalf("got %d tokens, expected %d", len(tokens), len(expected))
	}
	for i, token := range tokens {
		if token != expected[i] {
			t.Fatalf("token %d: got %v, expected %v", i, token, expected[i])
		}
	}
}

func TestNumbers(t *testing.T) {
	cases := map[string]float64{
		"0":     0,
		"123":   123,
		"1.5":   1.5,
		".5":    0.5,
		"0x10":  16,
		"0xff":  255,
		"1e3":   1000,
		"1.5e2": 150,
	}
	for contents, expected := range cases {
		lexer := NewLexer(logger.NewDeferLog(), contents)
		if lexer.Token != TNumericLiteral || lexer.Number != expected {
			t.Fatalf("%q: got %v (token %v), expected %v", contents, lexer.Number, lexer.Token, expected)
		}
	}
}

func TestStringsKeepTheirQuotes(t *testing.T) {
	lexer := NewLexer(logger.NewDeferLog(), "'a\\'b'")
	if lexer.Token != TStringLiteral || lexer.StringValue != "'a\\'b'" {
		t.Fatalf("got %q", lexer.StringValue)
	}
}

func TestLineTracking(t *testing.T) {
	lexer := NewLexer(logger.NewDeferLog(), "a\n\nb")
	if lexer.Line != 1 {
		t.Fatalf("first token on line %d", lexer.Line)
	}
	lexer.Next()
	if lexer.Line != 3 || !lexer.HasNewlineBefore {
		t.Fatalf("second token on line %d, newline %v", lexer.Line, lexer.HasNewlineBefore)
	}
}

func TestComments(t *testing.T) {
	tokens := lexTokens(t, "a // line\n/* block\nblock */ b")
	if len(tokens) != 2 || tokens[0] != TIdentifier || tokens[1] != TIdentifier {
		t.Fatalf("comments were not skipped: %v", tokens)
	}
}

func TestScanRegExp(t *testing.T) {
	lexer := NewLexer(logger.NewDeferLog(), "/a[/]b\\/c/gi")
	body, flags := lexer.ScanRegExp()
	if body != "a[/]b\\/c" || flags != "gi" {
		t.Fatalf("got body %q flags %q", body, flags)
	}
}

func TestIsIdentifier(t *testing.T) {
	valid := []string{"foo", "_foo", "$", "a1", "Foo_bar$2"}
	invalid := []string{"", "1bad", "for", "class", "true", "false", "null", "a-b", "a b"}
	for _, name := range valid {
		if !IsIdentifier(name) {
			t.Fatalf("%q should be an identifier", name)
		}
	}
	for _, name := range invalid {
		if IsIdentifier(name) {
			t.Fatalf("%q should not be an identifier", name)
		}
	}
}

func TestSyntaxErrorIsLogged(t *testing.T) {
	log := logger.NewDeferLog()
	defer func() {
		if _, ok := recover().(LexerPanic); !ok {
			t.Fatal("expected a LexerPanic")
		}
		if !log.HasErrors() {
			t.Fatal("expected an error in the log")
		}
	}()
	NewLexer(log, "'unterminated")
}
