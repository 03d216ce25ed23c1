package js_parser

// A recursive-descent parser for ECMAScript 3 plus the optional extensions:
// XML literals (E4X), ":" typehints on variable declarations, and trailing
// commas in object literals. The parser produces the positional-child AST in
// js_ast; it does no scope analysis, the passes that need scopes build them
// from the tree.

import (
	"github.com/jsxmin/jsxmin/internal/js_ast"
	"github.com/jsxmin/jsxmin/internal/js_lexer"
	"github.com/jsxmin/jsxmin/internal/logger"
)

type Options struct {
	// Allow "var x:Type = value"
	Typehint bool

	// Allow "{a: 1,}"
	ObjectLiteralElision bool

	// Allow XML literals and the E4X operators
	E4X bool
}

type parser struct {
	log     logger.Log
	lexer   js_lexer.Lexer
	options Options

	// "in" is an operator everywhere except in a for-loop initializer
	allowIn bool
}

// Parse turns source text into a Program node. On a syntax error it returns
// ok == false with the error in the log.
func Parse(log logger.Log, contents string, options Options) (root *js_ast.Node, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, isLexerPanic := r.(js_lexer.LexerPanic); isLexerPanic {
				ok = false
			} else {
				panic(r)
			}
		}
	}()

	p := &parser{
		log:     log,
		lexer:   js_lexer.NewLexer(log, contents),
		options: options,
		allowIn: true,
	}

	stmts := js_ast.NewNode(js_ast.KindStatementList, 0)
	for p.lexer.Token != js_lexer.TEndOfFile {
		stmts.AppendChild(p.parseStmt())
	}
	return js_ast.NewNode(js_ast.KindProgram, 1, stmts), true
}

// ParseExpression parses a standalone expression. The pattern-replacement
// configuration uses this to turn "needle:replacement" sides into subtrees.
func ParseExpression(log logger.Log, contents string, options Options) (expr *js_ast.Node, ok bool) {
	root, ok := Parse(log, contents, options)
	if !ok {
		return nil, false
	}
	return FirstExpression(root), true
}

// FirstExpression finds the first expression node in a tree, depth-first.
func FirstExpression(node *js_ast.Node) *js_ast.Node {
	if node == nil {
		return nil
	}
	if node.Kind.IsExpression() {
		return node
	}
	for _, child := range node.Children {
		if expr := FirstExpression(child); expr != nil {
			return expr
		}
	}
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// Statements

func (p *parser) parseStmt() *js_ast.Node {
	line := p.lexer.Line

	switch p.lexer.Token {
	case js_lexer.TSemicolon:
		p.lexer.Next()
		return js_ast.NewNode(js_ast.KindEmptyExpression, line)

	case js_lexer.TOpenBrace:
		return p.parseBlock()

	case js_lexer.TVar:
		decl := p.parseVarDecl()
		p.expectSemicolon()
		return decl

	case js_lexer.TFunction:
		return p.parseFn(js_ast.KindFunctionDeclaration)

	case js_lexer.TIf:
		return p.parseIf()

	case js_lexer.TFor:
		return p.parseFor()

	case js_lexer.TWhile:
		p.lexer.Next()
		p.lexer.Expect(js_lexer.TOpenParen)
		cond := p.parseExpr(lLowest)
		p.lexer.Expect(js_lexer.TCloseParen)
		body := p.parseStmtAsBlock()
		return js_ast.NewNode(js_ast.KindWhile, line, cond, body)

	case js_lexer.TDo:
		p.lexer.Next()
		body := p.parseStmtAsBlock()
		p.lexer.Expect(js_lexer.TWhile)
		p.lexer.Expect(js_lexer.TOpenParen)
		cond := p.parseExpr(lLowest)
		p.lexer.Expect(js_lexer.TCloseParen)
		p.expectSemicolon()
		return js_ast.NewNode(js_ast.KindDoWhile, line, body, cond)

	case js_lexer.TWith:
		p.lexer.Next()
		p.lexer.Expect(js_lexer.TOpenParen)
		obj := p.parseExpr(lLowest)
		p.lexer.Expect(js_lexer.TCloseParen)
		body := p.parseStmtAsBlock()
		return js_ast.NewNode(js_ast.KindWith, line, obj, body)

	case js_lexer.TSwitch:
		return p.parseSwitch()

	case js_lexer.TTry:
		return p.parseTry()

	case js_lexer.TReturn:
		p.lexer.Next()
		var value *js_ast.Node
		if p.lexer.Token != js_lexer.TSemicolon && p.lexer.Token != js_lexer.TCloseBrace &&
			p.lexer.Token != js_lexer.TEndOfFile && !p.lexer.HasNewlineBefore {
			value = p.parseExpr(lLowest)
		}
		p.expectSemicolon()
		return js_ast.NewOp(js_ast.KindStatementWithExpression, js_ast.StReturn, line, value)

	case js_lexer.TThrow:
		p.lexer.Next()
		value := p.parseExpr(lLowest)
		p.expectSemicolon()
		return js_ast.NewOp(js_ast.KindStatementWithExpression, js_ast.StThrow, line, value)

	case js_lexer.TContinue, js_lexer.TBreak:
		op := js_ast.StContinue
		if p.lexer.Token == js_lexer.TBreak {
			op = js_ast.StBreak
		}
		p.lexer.Next()
		var label *js_ast.Node
		if p.lexer.Token == js_lexer.TIdentifier && !p.lexer.HasNewlineBefore {
			label = js_ast.NewIdentifier(p.lexer.Identifier, p.lexer.Line)
			p.lexer.Next()
		}
		p.expectSemicolon()
		return js_ast.NewOp(js_ast.KindStatementWithExpression, op, line, label)

	case js_lexer.TDefault:
		// "default xml namespace = expr"
		if p.options.E4X {
			p.lexer.Next()
			p.lexer.ExpectContextualKeyword("xml")
			p.lexer.ExpectContextualKeyword("namespace")
			p.lexer.Expect(js_lexer.TEquals)
			value := p.parseExpr(lComma)
			p.expectSemicolon()
			return js_ast.NewNode(js_ast.KindXMLDefaultNamespace, line, value)
		}
		p.lexer.Unexpected()
	}

	expr := p.parseExpr(lLowest)

	// A lone identifier followed by ":" is a label
	if expr.Kind == js_ast.KindIdentifier && p.lexer.Token == js_lexer.TColon {
		p.lexer.Next()
		body := p.parseStmt()
		return js_ast.NewNode(js_ast.KindLabel, line, expr, body)
	}

	p.expectSemicolon()
	return expr
}

// expectSemicolon implements automatic semicolon insertion: an explicit ";",
// or a newline, "}", or end of file in its place.
func (p *parser) expectSemicolon() {
	switch p.lexer.Token {
	case js_lexer.TSemicolon:
		p.lexer.Next()
	case js_lexer.TCloseBrace, js_lexer.TEndOfFile:
	default:
		if !p.lexer.HasNewlineBefore {
			p.lexer.Expected(js_lexer.TSemicolon)
		}
	}
}

func (p *parser) parseBlock() *js_ast.Node {
	list := js_ast.NewNode(js_ast.KindStatementList, p.lexer.Line)
	p.lexer.Expect(js_lexer.TOpenBrace)
	for p.lexer.Token != js_lexer.TCloseBrace {
		list.AppendChild(p.parseStmt())
	}
	p.lexer.Next()
	return list
}

// parseStmtAsBlock wraps a single statement in a statement list so block
// positions (loop bodies, if branches) always hold lists. The renderer
// unwraps single-statement lists again in compact mode.
func (p *parser) parseStmtAsBlock() *js_ast.Node {
	if p.lexer.Token == js_lexer.TOpenBrace {
		return p.parseBlock()
	}
	list := js_ast.NewNode(js_ast.KindStatementList, p.lexer.Line)
	list.AppendChild(p.parseStmt())
	return list
}

func (p *parser) parseIf() *js_ast.Node {
	line := p.lexer.Line
	p.lexer.Next()
	p.lexer.Expect(js_lexer.TOpenParen)
	cond := p.parseExpr(lLowest)
	p.lexer.Expect(js_lexer.TCloseParen)
	then := p.parseStmtAsBlock()

	var elseNode *js_ast.Node
	if p.lexer.Token == js_lexer.TElse {
		p.lexer.Next()
		if p.lexer.Token == js_lexer.TIf {
			// Keep "else if" chains flat for the renderer
			elseNode = p.parseIf()
		} else {
			elseNode = p.parseStmtAsBlock()
		}
	}
	return js_ast.NewNode(js_ast.KindIf, line, cond, then, elseNode)
}

func (p *parser) parseFor() *js_ast.Node {
	line := p.lexer.Line
	p.lexer.Next()

	isForEach := false
	if p.options.E4X && p.lexer.IsContextualKeyword("each") {
		isForEach = true
		p.lexer.Next()
	}
	p.lexer.Expect(js_lexer.TOpenParen)

	var init *js_ast.Node
	switch p.lexer.Token {
	case js_lexer.TSemicolon:
		init = js_ast.NewNode(js_ast.KindEmptyExpression, p.lexer.Line)
	case js_lexer.TVar:
		p.allowIn = false
		init = p.parseVarDecl()
		p.allowIn = true
	default:
		p.allowIn = false
		init = p.parseExpr(lLowest)
		p.allowIn = true
	}

	if p.lexer.Token == js_lexer.TIn {
		if init.Kind == js_ast.KindVarDeclaration {
			init.Flags |= js_ast.FlagIterator
		} else if !init.IsValidLval() {
			p.lexer.SyntaxError("invalid for-in loop variable")
		}
		p.lexer.Next()
		object := p.parseExpr(lLowest)
		p.lexer.Expect(js_lexer.TCloseParen)
		body := p.parseStmtAsBlock()
		kind := js_ast.KindForIn
		if isForEach {
			kind = js_ast.KindForEachIn
		}
		return js_ast.NewNode(kind, line, init, object, body)
	}

	if isForEach {
		p.lexer.SyntaxError("\"for each\" requires an \"in\" loop")
	}

	p.lexer.Expect(js_lexer.TSemicolon)
	test := js_ast.NewNode(js_ast.KindEmptyExpression, p.lexer.Line)
	if p.lexer.Token != js_lexer.TSemicolon {
		test = p.parseExpr(lLowest)
	}
	p.lexer.Expect(js_lexer.TSemicolon)
	update := js_ast.NewNode(js_ast.KindEmptyExpression, p.lexer.Line)
	if p.lexer.Token != js_lexer.TCloseParen {
		update = p.parseExpr(lLowest)
	}
	p.lexer.Expect(js_lexer.TCloseParen)
	body := p.parseStmtAsBlock()
	return js_ast.NewNode(js_ast.KindForLoop, line, init, test, update, body)
}

func (p *parser) parseSwitch() *js_ast.Node {
	line := p.lexer.Line
	p.lexer.Next()
	p.lexer.Expect(js_lexer.TOpenParen)
	discriminant := p.parseExpr(lLowest)
	p.lexer.Expect(js_lexer.TCloseParen)

	// Case labels and their statements are siblings in one list; the
	// renderer out-dents the labels.
	body := js_ast.NewNode(js_ast.KindStatementList, p.lexer.Line)
	p.lexer.Expect(js_lexer.TOpenBrace)
	for p.lexer.Token != js_lexer.TCloseBrace {
		switch p.lexer.Token {
		case js_lexer.TCase:
			caseLine := p.lexer.Line
			p.lexer.Next()
			matcher := p.parseExpr(lLowest)
			p.lexer.Expect(js_lexer.TColon)
			body.AppendChild(js_ast.NewNode(js_ast.KindCaseClause, caseLine, matcher))
		case js_lexer.TDefault:
			caseLine := p.lexer.Line
			p.lexer.Next()
			p.lexer.Expect(js_lexer.TColon)
			body.AppendChild(js_ast.NewNode(js_ast.KindDefaultClause, caseLine))
		default:
			body.AppendChild(p.parseStmt())
		}
	}
	p.lexer.Next()
	return js_ast.NewNode(js_ast.KindSwitch, line, discriminant, body)
}

func (p *parser) parseTry() *js_ast.Node {
	line := p.lexer.Line
	p.lexer.Next()
	block := p.parseBlock()

	var catchParam *js_ast.Node
	var catchBlock *js_ast.Node
	if p.lexer.Token == js_lexer.TCatch {
		p.lexer.Next()
		p.lexer.Expect(js_lexer.TOpenParen)
		if p.lexer.Token != js_lexer.TIdentifier {
			p.lexer.Expected(js_lexer.TIdentifier)
		}
		catchParam = js_ast.NewIdentifier(p.lexer.Identifier, p.lexer.Line)
		p.lexer.Next()
		p.lexer.Expect(js_lexer.TCloseParen)
		catchBlock = p.parseBlock()
	}

	var finallyBlock *js_ast.Node
	if p.lexer.Token == js_lexer.TFinally {
		p.lexer.Next()
		finallyBlock = p.parseBlock()
	}

	if catchBlock == nil && finallyBlock == nil {
		p.lexer.SyntaxError("missing catch or finally after try")
	}
	return js_ast.NewNode(js_ast.KindTry, line, block, catchParam, catchBlock, finallyBlock)
}

func (p *parser) parseVarDecl() *js_ast.Node {
	decl := js_ast.NewNode(js_ast.KindVarDeclaration, p.lexer.Line)
	p.lexer.Next()

	for {
		if p.lexer.Token != js_lexer.TIdentifier {
			p.lexer.Expected(js_lexer.TIdentifier)
		}
		itemLine := p.lexer.Line
		var item *js_ast.Node = js_ast.NewIdentifier(p.lexer.Identifier, itemLine)
		p.lexer.Next()

		if p.options.Typehint && p.lexer.Token == js_lexer.TColon {
			p.lexer.Next()
			item = js_ast.NewNode(js_ast.KindTypehint, itemLine, item, p.parseTypehintType())
		}

		if p.lexer.Token == js_lexer.TEquals {
			p.lexer.Next()
			value := p.parseExpr(lComma)
			item = js_ast.NewOp(js_ast.KindAssignment, js_ast.AssignOp, itemLine, item, value)
		}
		decl.AppendChild(item)

		if p.lexer.Token != js_lexer.TComma {
			break
		}
		p.lexer.Next()
	}
	return decl
}

// parseTypehintType accepts a possibly dotted type name.
func (p *parser) parseTypehintType() *js_ast.Node {
	if p.lexer.Token != js_lexer.TIdentifier {
		p.lexer.Expected(js_lexer.TIdentifier)
	}
	t := js_ast.NewIdentifier(p.lexer.Identifier, p.lexer.Line)
	p.lexer.Next()
	for p.lexer.Token == js_lexer.TDot {
		line := p.lexer.Line
		p.lexer.Next()
		if p.lexer.Token != js_lexer.TIdentifier {
			p.lexer.Expected(js_lexer.TIdentifier)
		}
		t = js_ast.NewNode(js_ast.KindStaticMemberExpression, line, t,
			js_ast.NewIdentifier(p.lexer.Identifier, p.lexer.Line))
		p.lexer.Next()
	}
	return t
}

func (p *parser) parseFn(kind js_ast.Kind) *js_ast.Node {
	line := p.lexer.Line
	p.lexer.Next()

	var name *js_ast.Node
	if p.lexer.Token == js_lexer.TIdentifier {
		name = js_ast.NewIdentifier(p.lexer.Identifier, p.lexer.Line)
		p.lexer.Next()
	} else if kind == js_ast.KindFunctionDeclaration {
		p.lexer.Expected(js_lexer.TIdentifier)
	}

	params := js_ast.NewNode(js_ast.KindArgList, p.lexer.Line)
	p.lexer.Expect(js_lexer.TOpenParen)
	for p.lexer.Token != js_lexer.TCloseParen {
		if p.lexer.Token != js_lexer.TIdentifier {
			p.lexer.Expected(js_lexer.TIdentifier)
		}
		params.AppendChild(js_ast.NewIdentifier(p.lexer.Identifier, p.lexer.Line))
		p.lexer.Next()
		if p.lexer.Token != js_lexer.TComma {
			break
		}
		p.lexer.Next()
	}
	p.lexer.Expect(js_lexer.TCloseParen)

	body := p.parseBlock()
	return js_ast.NewNode(kind, line, name, params, body)
}
