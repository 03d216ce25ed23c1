package main

// jsxmin reads JavaScript from stdin and writes a minified version to
// stdout: pattern replacement and reduction, then variable renaming, then
// property renaming, rendered compact.
//
// An optional first argument configures pattern replacement, e.g.
//
//	jsxmin "__DEV__:0,Util.isDevelopmentEnvironment():false" < in.js

import (
	"fmt"
	"io"
	"os"

	"github.com/jsxmin/jsxmin/internal/js_parser"
	"github.com/jsxmin/jsxmin/internal/js_printer"
	"github.com/jsxmin/jsxmin/internal/logger"
	"github.com/jsxmin/jsxmin/internal/reducer"
	"github.com/jsxmin/jsxmin/internal/renamer"
)

func minify(log logger.Log, source string, replacements string) ([]byte, bool) {
	root, ok := js_parser.Parse(log, source, js_parser.Options{})
	if !ok {
		return nil, false
	}

	root = reducer.Process(log, root, replacements)
	renamer.RenameVariables(log, root)
	renamer.RenameProperties(root)

	return js_printer.Print(root, js_printer.Options{}), true
}

func main() {
	replacements := ""
	if len(os.Args) > 1 {
		replacements = os.Args[1]
	}

	source, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}

	out, ok := minify(logger.NewStderrLog(), string(source), replacements)
	if !ok {
		os.Exit(1)
	}
	os.Stdout.Write(out)
}
