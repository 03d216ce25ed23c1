package js_parser

import (
	"testing"

	"github.com/jsxmin/jsxmin/internal/js_ast"
	"github.com/jsxmin/jsxmin/internal/js_printer"
	"github.com/jsxmin/jsxmin/internal/logger"
	"github.com/jsxmin/jsxmin/internal/test"
)

func expectPrinted(t *testing.T, contents string, expected string) {
	t.Helper()
	t.Run(contents, func(t *testing.T) {
		t.Helper()
		log := logger.NewDeferLog()
		root, ok := Parse(log, contents, Options{Typehint: true, ObjectLiteralElision: true, E4X: true})
		if !ok {
			for _, msg := range log.Done() {
				t.Log(msg.String(logger.TerminalInfo{}))
			}
			t.Fatalf("parse error in %q", contents)
		}
		test.AssertEqual(t, string(js_printer.Print(root, js_printer.Options{})), expected)
	})
}

func expectParseError(t *testing.T, contents string) {
	t.Helper()
	t.Run(contents+" [error]", func(t *testing.T) {
		t.Helper()
		log := logger.NewDeferLog()
		_, ok := Parse(log, contents, Options{})
		if ok || !log.HasErrors() {
			t.Fatalf("expected a parse error in %q", contents)
		}
	})
}

func TestPrecedence(t *testing.T) {
	// Shapes are observable through explicit parentheses in the source
	expectPrinted(t, "a+b*c;", "a+b*c;")
	expectPrinted(t, "(a+b)*c;", "(a+b)*c;")
	expectPrinted(t, "a=b||c&&d;", "a=b||c&&d;")
	expectPrinted(t, "a<b==c;", "a<b==c;")
	expectPrinted(t, "a,b=c;", "a,b=c;")
	expectPrinted(t, "-a.b;", "-a.b;")
	expectPrinted(t, "typeof a==='undefined';", "typeof a==='undefined';")
}

func TestAutomaticSemicolonInsertion(t *testing.T) {
	expectPrinted(t, "a()\nb()", "a();b();")
	expectPrinted(t, "var a=1\nvar b=2", "var a=1;var b=2;")
	expectPrinted(t, "return;", "return;")
	expectPrinted(t, "function f(){return\na;}", "function f(){return;a;}")
	expectPrinted(t, "a\n++b", "a;++b;")
	expectPrinted(t, "if(a){b()}", "if(a)b();")
}

func TestForLoops(t *testing.T) {
	expectPrinted(t, "for(a in b)c();", "for(a in b)c();")
	expectPrinted(t, "for(var a in b)c();", "for(var a in b)c();")
	expectPrinted(t, "for(var a=b in c)d();", "for(var a=b in c)d();")
	expectPrinted(t, "for(a=0;a in b;a++);", "for(a=0;a in b;a++);")
}

func TestForInIteratorFlag(t *testing.T) {
	log := logger.NewDeferLog()
	root, ok := Parse(log, "for(var k in o);", Options{})
	if !ok {
		t.Fatal("parse error")
	}
	forIn := root.Children[0].Children[0]
	if forIn.Kind != js_ast.KindForIn {
		t.Fatalf("expected a for-in, got %s", forIn.Kind)
	}
	if decl := forIn.Children[0]; decl.Kind != js_ast.KindVarDeclaration || decl.Flags&js_ast.FlagIterator == 0 {
		t.Fatal("for-in var declaration is not flagged as an iterator")
	}
}

func TestFunctionShapes(t *testing.T) {
	log := logger.NewDeferLog()
	root, ok := Parse(log, "var f=function(){};", Options{})
	if !ok {
		t.Fatal("parse error")
	}
	fn := root.Children[0].Children[0].Children[0].Children[1]
	if fn.Kind != js_ast.KindFunctionExpression {
		t.Fatalf("expected a function expression, got %s", fn.Kind)
	}
	if fn.Children[0] != nil {
		t.Fatal("anonymous function expression should have a nil name slot")
	}
	if len(fn.Children) != 3 {
		t.Fatalf("function expression has %d slots, expected 3", len(fn.Children))
	}
}

func TestTrySlots(t *testing.T) {
	log := logger.NewDeferLog()
	root, ok := Parse(log, "try{a();}finally{b();}", Options{})
	if !ok {
		t.Fatal("parse error")
	}
	try := root.Children[0].Children[0]
	if len(try.Children) != 4 {
		t.Fatalf("try has %d slots, expected 4", len(try.Children))
	}
	// catch-param and catch-block are both nil or both present
	if try.Children[1] != nil || try.Children[2] != nil {
		t.Fatal("missing catch should leave both catch slots nil")
	}
	if try.Children[3] == nil {
		t.Fatal("finally block missing")
	}
}

func TestExtensionsAreOptIn(t *testing.T) {
	expectParseError(t, "var o = {a: 1,};")
	expectParseError(t, "var x = <a/>;")

	log := logger.NewDeferLog()
	if _, ok := Parse(log, "var x:Number = 1;", Options{}); ok {
		t.Fatal("typehints should be rejected without the option")
	}
}

func TestParseErrors(t *testing.T) {
	expectParseError(t, "var;")
	expectParseError(t, "'unterminated")
	expectParseError(t, "a +")
	expectParseError(t, "if(a")
	expectParseError(t, "function(){};")
	expectParseError(t, "try{a();}")
	expectParseError(t, "1=2;")
	expectParseError(t, "a b;")
}

func TestErrorLineNumbers(t *testing.T) {
	log := logger.NewDeferLog()
	_, ok := Parse(log, "a();\nb();\nvar;", Options{})
	if ok {
		t.Fatal("expected a parse error")
	}
	msgs := log.Done()
	if len(msgs) == 0 || msgs[0].Line != 3 {
		t.Fatalf("expected the error on line 3, got %+v", msgs)
	}
}

func TestFirstExpression(t *testing.T) {
	log := logger.NewDeferLog()
	expr, ok := ParseExpression(log, "Util.isDevelopmentEnvironment()", Options{})
	if !ok || expr == nil {
		t.Fatal("expected an expression")
	}
	if expr.Kind != js_ast.KindFunctionCall {
		t.Fatalf("expected a call, got %s", expr.Kind)
	}
}
