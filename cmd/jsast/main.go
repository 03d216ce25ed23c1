package main

// jsast reads JavaScript from stdin and prints the syntax tree as a nested
// JSON-like array: ["Kind", [children...]] with the value and line number
// appended for nodes that carry them. Function expression bodies are pruned
// from the dump; the downstream tooling only cares about their signatures.

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/jsxmin/jsxmin/internal/js_ast"
	"github.com/jsxmin/jsxmin/internal/js_parser"
	"github.com/jsxmin/jsxmin/internal/logger"
)

func nodeValue(node *js_ast.Node) string {
	switch node.Kind {
	case js_ast.KindStringLiteral:
		return node.UnquotedValue()
	case js_ast.KindIdentifier:
		return node.Text
	}
	return ""
}

func printTree(w io.Writer, node *js_ast.Node) {
	fmt.Fprintf(w, "[%q, [", node.Kind.String())

	skipBody := node.Kind == js_ast.KindFunctionExpression
	first := true
	for _, child := range node.Children {
		if child == nil {
			continue
		}
		if skipBody && child.Kind == js_ast.KindStatementList {
			break
		}
		if first {
			first = false
		} else {
			fmt.Fprint(w, ", ")
		}
		printTree(w, child)
	}
	fmt.Fprint(w, "]")

	if value := nodeValue(node); value != "" {
		fmt.Fprintf(w, ", %q, \"%d\"", value, node.Lineno)
	}
	fmt.Fprint(w, "]")
}

func main() {
	source, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}

	log := logger.NewStderrLog()
	root, ok := js_parser.Parse(log, string(source), js_parser.Options{})
	if !ok {
		os.Exit(1)
	}

	out := bufio.NewWriter(os.Stdout)
	printTree(out, root)
	out.Flush()
}
