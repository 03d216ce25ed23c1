package js_printer

import (
	"testing"

	"github.com/jsxmin/jsxmin/internal/js_ast"
	"github.com/jsxmin/jsxmin/internal/js_parser"
	"github.com/jsxmin/jsxmin/internal/logger"
	"github.com/jsxmin/jsxmin/internal/test"
)

var parseOptions = js_parser.Options{
	Typehint:             true,
	ObjectLiteralElision: true,
	E4X:                  true,
}

func parse(t *testing.T, contents string) *js_ast.Node {
	t.Helper()
	log := logger.NewDeferLog()
	root, ok := js_parser.Parse(log, contents, parseOptions)
	if !ok {
		for _, msg := range log.Done() {
			t.Log(msg.String(logger.TerminalInfo{}))
		}
		t.Fatalf("parse error in %q", contents)
	}
	return root
}

func expectPrintedCommon(t *testing.T, name string, contents string, expected string, options Options) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		t.Helper()
		root := parse(t, contents)
		test.AssertEqual(t, string(Print(root, options)), expected)
	})
}

func expectPrinted(t *testing.T, contents string, expected string) {
	t.Helper()
	expectPrintedCommon(t, contents, contents, expected, Options{})
}

func expectPrintedPretty(t *testing.T, contents string, expected string) {
	t.Helper()
	expectPrintedCommon(t, contents+" [pretty]", contents, expected, Options{Pretty: true})
}

func expectPrintedLineno(t *testing.T, contents string, expected string, pretty bool) {
	t.Helper()
	expectPrintedCommon(t, contents+" [lineno]", contents, expected, Options{Pretty: pretty, MaintainLineno: true})
}

func TestLiterals(t *testing.T) {
	expectPrinted(t, "123;", "123;")
	expectPrinted(t, "1.5;", "1.5;")
	expectPrinted(t, "0x10;", "16;")
	expectPrinted(t, "null;", "null;")
	expectPrinted(t, "true;false;", "true;false;")
	expectPrinted(t, "this;", "this;")
	expectPrinted(t, "/ab+c/gi;", "/ab+c/gi;")

	// Source strings keep their exact quoting
	expectPrinted(t, "'ab';", "'ab';")
	expectPrinted(t, "\"a'b\";", "\"a'b\";")
	expectPrinted(t, "'a\\n';", "'a\\n';")
}

func TestNumberFormatting(t *testing.T) {
	test.AssertEqual(t, numberToString(16), "16")
	test.AssertEqual(t, numberToString(0.5), "0.5")
	test.AssertEqual(t, numberToString(1e21), "1e21")
	test.AssertEqual(t, numberToString(1e-7), "1e-7")
	test.AssertEqual(t, numberToString(1.5e22), "1.5e22")
}

// Strings synthesized by passes have no source quoting and get escaped from
// scratch. Backslashes must round-trip as "\\"; the historical renderer
// emitted "\'" for them.
func TestStringEscaping(t *testing.T) {
	node := js_ast.NewString("a\\b", false, 0)
	test.AssertEqual(t, string(Print(node, Options{})), "\"a\\\\b\"")

	node = js_ast.NewString("a'b\n\t", false, 0)
	test.AssertEqual(t, string(Print(node, Options{})), "\"a\\'b\\n\\t\"")

	node = js_ast.NewString("a\x01b", false, 0)
	test.AssertEqual(t, string(Print(node, Options{})), "\"a\\x01b\"")
}

func TestOperators(t *testing.T) {
	expectPrinted(t, "a+b;", "a+b;")
	expectPrinted(t, "a===b;", "a===b;")
	expectPrinted(t, "a>>>b;", "a>>>b;")
	expectPrinted(t, "a&&b||c;", "a&&b||c;")
	expectPrinted(t, "a,b;", "a,b;")

	// Word operators need padding in compact mode
	expectPrinted(t, "a in b;", "a in b;")
	expectPrinted(t, "a instanceof b;", "a instanceof b;")
	expectPrinted(t, "typeof a;", "typeof a;")
	expectPrinted(t, "typeof(a);", "typeof(a);")
	expectPrinted(t, "delete a.b;", "delete a.b;")
	expectPrinted(t, "void 0;", "void 0;")

	expectPrinted(t, "!a;", "!a;")
	expectPrinted(t, "-a;", "-a;")
	expectPrinted(t, "~a;", "~a;")
	expectPrinted(t, "++a;", "++a;")
	expectPrinted(t, "a++;", "a++;")
	expectPrinted(t, "a--;", "a--;")

	expectPrinted(t, "a=b=c;", "a=b=c;")
	expectPrinted(t, "a+=1;", "a+=1;")
	expectPrinted(t, "a>>>=1;", "a>>>=1;")

	expectPrinted(t, "a?b:c;", "a?b:c;")
	expectPrinted(t, "(a+b)*c;", "(a+b)*c;")

	expectPrintedPretty(t, "a+b;", "a + b;")
	expectPrintedPretty(t, "a,b;", "a, b;")
	expectPrintedPretty(t, "a=1;", "a = 1;")
	expectPrintedPretty(t, "a?b:c;", "a ? b : c;")
}

func TestMembersAndCalls(t *testing.T) {
	expectPrinted(t, "a.b.c;", "a.b.c;")
	expectPrinted(t, "a[\"b c\"];", "a[\"b c\"];")
	expectPrinted(t, "f(1,2);", "f(1,2);")
	expectPrinted(t, "a.b(1)(2);", "a.b(1)(2);")
	expectPrinted(t, "new Foo(1);", "new Foo(1);")
	expectPrinted(t, "new a.b.Foo();", "new a.b.Foo();")
	expectPrinted(t, "new Foo;", "new Foo();")
	expectPrintedPretty(t, "f(1,2);", "f(1, 2);")
}

func TestObjectAndArrayLiterals(t *testing.T) {
	expectPrinted(t, "var o={a:1,\"b c\":2};", "var o={a:1,\"b c\":2};")
	expectPrinted(t, "var a=[1,2,3];", "var a=[1,2,3];")
	expectPrinted(t, "var o={a:1,};", "var o={a:1};")
	expectPrintedPretty(t, "var o={a:1,b:2};", "var o = {a: 1, b: 2};")
}

func TestStatements(t *testing.T) {
	expectPrinted(t, "var a=1,b,c=2;", "var a=1,b,c=2;")
	expectPrinted(t, "if(a)x();", "if(a)x();")
	expectPrinted(t, "if(a){x();y();}", "if(a){x();y();}")
	expectPrinted(t, "if(a){}", "if(a){}")
	expectPrinted(t, "if(a)x();else y();", "if(a){x();}else y();")
	expectPrinted(t, "if(a)x();else if(b)y();else z();", "if(a){x();}else if(b){y();}else z();")
	expectPrinted(t, "while(a)x();", "while(a)x();")
	expectPrinted(t, "while(a){}", "while(a){}")
	expectPrinted(t, "do x();while(a);", "do{x();}while(a);")
	expectPrinted(t, "for(;;);", "for(;;);")
	expectPrinted(t, "for(var i=0;i<10;i++)x(i);", "for(var i=0;i<10;i++)x(i);")
	expectPrinted(t, "for(var k in o)x(k);", "for(var k in o)x(k);")
	expectPrinted(t, "for(k in o)x(k);", "for(k in o)x(k);")
	expectPrinted(t, "for each(var v in o)x(v);", "for each(var v in o)x(v);")
	expectPrinted(t, "with(o)x();", "with(o)x();")
	expectPrinted(t, "try{x();}catch(e){y(e);}", "try{x();}catch(e){y(e);}")
	expectPrinted(t, "try{x();}finally{z();}", "try{x();}finally{z();}")
	expectPrinted(t, "try{x();}catch(e){y();}finally{z();}", "try{x();}catch(e){y();}finally{z();}")
	expectPrinted(t, "a:x();", "a:x();")
	expectPrinted(t, "switch(a){case 1:b();break;default:c();}",
		"switch(a){case 1:b();break;default:c();}")
	expectPrinted(t, "function f(a,b){return a+b;}", "function f(a,b){return a+b;}")
	expectPrinted(t, "var f=function(){return;};", "var f=function(){return;};")
	expectPrinted(t, "var f=function g(){};", "var f=function g(){};")
	expectPrinted(t, "throw new Error(\"x\");", "throw new Error(\"x\");")
	expectPrinted(t, "var x:Number=1;", "var x:Number=1;")
}

func TestPrettyBlocks(t *testing.T) {
	expectPrintedPretty(t, "if(a){x();}", "if (a) {\n  x();\n}")
	expectPrintedPretty(t, "if(a){x();}else{y();}", "if (a) {\n  x();\n} else {\n  y();\n}")
	expectPrintedPretty(t, "while(a){x();}", "while (a) {\n  x();\n}")
	expectPrintedPretty(t, "function f() { x(); }", "function f() {\n  x();\n}")
	expectPrintedPretty(t, "a();b();", "a();\nb();")

	// Case labels and the closing brace sit flush with the switch, statements
	// one deeper
	expectPrintedPretty(t, "switch(a){case 1:b();break;}",
		"switch(a) {\ncase 1:\n  b();\n  break;\n}")
}

func TestEmptyProgram(t *testing.T) {
	root := parse(t, "")
	test.AssertEqual(t, string(Print(root, Options{})), "")
	test.AssertEqual(t, string(Print(root, Options{Pretty: true})), "\n")
}

func TestLinenoPreservation(t *testing.T) {
	expectPrintedLineno(t, "a();\nb();", "a();\nb();", false)
	expectPrintedLineno(t, "a();\n\n\nb();", "a();\n\n\nb();", false)

	// Rendering on line 5 emits four catchup newlines first
	expectPrintedLineno(t, "\n\n\n\n\"a\"+\"b\";", "\n\n\n\n\"a\" + \"b\";", true)
}

func TestE4X(t *testing.T) {
	expectPrinted(t, "var x=<a/>;", "var x=<a/>;")
	expectPrinted(t, "var x=<a b=\"c\"/>;", "var x=<a b=\"c\"/>;")
	expectPrinted(t, "var x=<a>text</a>;", "var x=<a>text</a>;")
	expectPrinted(t, "var x=<a b=\"c\">t{v}<d/></a>;", "var x=<a b=\"c\">t{v}<d/></a>;")
	expectPrinted(t, "var x=<a b={v}/>;", "var x=<a b={v}/>;")
	expectPrinted(t, "var x=<ns:a x:y=\"1\"/>;", "var x=<ns:a x:y=\"1\"/>;")
	expectPrinted(t, "var x=<>{a}{b}</>;", "var x=<>{a}{b}</>;")
	expectPrinted(t, "var x=<!--c-->;", "var x=<!--c-->;")
	expectPrinted(t, "var x=<?pi?>;", "var x=<?pi?>;")
	expectPrinted(t, "var x=<a></a>;", "var x=<a/>;")

	expectPrinted(t, "a.@b;", "a.@b;")
	expectPrinted(t, "a.@[x];", "a.@[x];")
	expectPrinted(t, "a.*;", "a.*;")
	expectPrinted(t, "a..b;", "a..b;")
	expectPrinted(t, "a.(b==1);", "a.(b==1);")
	expectPrinted(t, "ns::name;", "ns::name;")
	expectPrinted(t, "a.ns::[x];", "a.ns::[x];")
	expectPrinted(t, "default xml namespace = ns;", "default xml namespace = ns;")
}

// Round trips: compact output reparses to a structurally equal tree.
func TestRoundTrip(t *testing.T) {
	sources := []string{
		"var a=1;function f(x){var y=x+1;return y;}",
		"if(a)x();else if(b)y();else z();",
		"for(var i=0;i<10;i++){x(i);}",
		"do{x();}while(a);",
		"switch(a){case 1:b();break;default:c();}",
		"try{x();}catch(e){y(e);}finally{z();}",
		"var o={a:1,\"b c\":2,3:4};",
		"a?b?c:d:e;",
		"new Foo(a,b).bar()[0];",
		"var x=<a b=\"c\">t{v}<d/></a>;",
		"x=/a[/]b/g;",
		"loop:for(;;)break loop;",
	}
	for _, source := range sources {
		first := parse(t, source)
		printed := string(Print(first, Options{}))
		second := parse(t, printed)
		if !first.Equal(second) {
			t.Fatalf("%q did not round-trip: printed as %q", source, printed)
		}
	}
}

// Rendering is pure: printing the same tree twice gives identical output.
func TestRenderingPurity(t *testing.T) {
	root := parse(t, "function f(a){if(a){return a+1;}return 0;}")
	first := string(Print(root, Options{Pretty: true}))
	second := string(Print(root, Options{Pretty: true}))
	test.AssertEqual(t, first, second)
}
