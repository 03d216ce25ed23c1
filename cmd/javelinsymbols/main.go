package main

// javelinsymbols reads Javelin JavaScript from stdin and emits the symbols
// it defines and uses, one per line:
//
//	+name:line   JX.install("name", ...)
//	*name:line   JX.behavior("name", ...)
//	?JX.a.b:line any member chain rooted at JX
//
// The lint toolchain cross-references these maps between files.

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/jsxmin/jsxmin/internal/js_ast"
	"github.com/jsxmin/jsxmin/internal/js_parser"
	"github.com/jsxmin/jsxmin/internal/logger"
)

type symbolMap map[string]uint32

// staticMemberSymbol flattens a member chain like JX.Stratcom.listen into a
// dotted string. Non-identifier pieces (calls, subscripts) contribute
// nothing, so the names before such a piece are dropped from the result.
func staticMemberSymbol(node *js_ast.Node) string {
	symbol := ""
	for _, child := range node.Children {
		if child == nil {
			break
		}
		switch child.Kind {
		case js_ast.KindIdentifier:
			if symbol != "" {
				symbol += "."
			}
			symbol += child.Text
		case js_ast.KindStaticMemberExpression:
			symbol += staticMemberSymbol(child)
		}
	}
	return symbol
}

func findSymbols(node *js_ast.Node, installs symbolMap, behaviors symbolMap, uses symbolMap) {
	if node == nil {
		return
	}

	if node.Kind == js_ast.KindStaticMemberExpression {
		symbol := staticMemberSymbol(node)
		if strings.HasPrefix(symbol, "JX.") {
			uses[symbol] = node.Lineno
		}
	}

	if node.Kind == js_ast.KindFunctionCall {
		if callee := node.Children[0]; callee.Kind == js_ast.KindStaticMemberExpression {
			symbol := staticMemberSymbol(callee)
			if symbol == "JX.install" || symbol == "JX.behavior" {
				args := node.Children[1]
				if len(args.Children) > 0 && args.Children[0].Kind == js_ast.KindStringLiteral {
					name := args.Children[0].UnquotedValue()
					if symbol == "JX.install" {
						installs[name] = node.Lineno
					} else {
						behaviors[name] = node.Lineno
					}
				}
			}
		}
	}

	for _, child := range node.Children {
		findSymbols(child, installs, behaviors, uses)
	}
}

func printSymbols(w io.Writer, prefix string, symbols symbolMap) {
	names := make([]string, 0, len(symbols))
	for name := range symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s%s:%d\n", prefix, name, symbols[name])
	}
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

	installs := symbolMap{}
	behaviors := symbolMap{}
	uses := symbolMap{}
	findSymbols(root, installs, behaviors, uses)

	printSymbols(os.Stdout, "+", installs)
	printSymbols(os.Stdout, "*", behaviors)
	printSymbols(os.Stdout, "?", uses)
}
