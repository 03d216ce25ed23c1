package js_parser

import (
	"github.com/jsxmin/jsxmin/internal/js_ast"
	"github.com/jsxmin/jsxmin/internal/js_lexer"
)

// Operator precedence levels
// https://developer.mozilla.org/en-US/docs/Web/JavaScript/Reference/Operators/Operator_Precedence
type level uint8

const (
	lLowest level = iota
	lComma
	lAssign
	lConditional
	lLogicalOr
	lLogicalAnd
	lBitwiseOr
	lBitwiseXor
	lBitwiseAnd
	lEquals
	lCompare
	lShift
	lAdd
	lMultiply
	lPrefix
	lPostfix
	lCall
)

type binaryEntry struct {
	op    js_ast.OpCode
	level level
}

var binaryOps = map[js_lexer.T]binaryEntry{
	js_lexer.TComma:                              {js_ast.BinOpComma, lComma},
	js_lexer.TBarBar:                             {js_ast.BinOpLogicalOr, lLogicalOr},
	js_lexer.TAmpersandAmpersand:                 {js_ast.BinOpLogicalAnd, lLogicalAnd},
	js_lexer.TBar:                                {js_ast.BinOpBitOr, lBitwiseOr},
	js_lexer.TCaret:                              {js_ast.BinOpBitXor, lBitwiseXor},
	js_lexer.TAmpersand:                          {js_ast.BinOpBitAnd, lBitwiseAnd},
	js_lexer.TEqualsEquals:                       {js_ast.BinOpLooseEq, lEquals},
	js_lexer.TExclamationEquals:                  {js_ast.BinOpLooseNe, lEquals},
	js_lexer.TEqualsEqualsEquals:                 {js_ast.BinOpStrictEq, lEquals},
	js_lexer.TExclamationEqualsEquals:            {js_ast.BinOpStrictNe, lEquals},
	js_lexer.TLessThan:                           {js_ast.BinOpLt, lCompare},
	js_lexer.TLessThanEquals:                     {js_ast.BinOpLe, lCompare},
	js_lexer.TGreaterThan:                        {js_ast.BinOpGt, lCompare},
	js_lexer.TGreaterThanEquals:                  {js_ast.BinOpGe, lCompare},
	js_lexer.TIn:                                 {js_ast.BinOpIn, lCompare},
	js_lexer.TInstanceof:                         {js_ast.BinOpInstanceof, lCompare},
	js_lexer.TLessThanLessThan:                   {js_ast.BinOpShl, lShift},
	js_lexer.TGreaterThanGreaterThan:             {js_ast.BinOpShr, lShift},
	js_lexer.TGreaterThanGreaterThanGreaterThan:  {js_ast.BinOpUShr, lShift},
	js_lexer.TPlus:                               {js_ast.BinOpAdd, lAdd},
	js_lexer.TMinus:                              {js_ast.BinOpSub, lAdd},
	js_lexer.TAsterisk:                           {js_ast.BinOpMul, lMultiply},
	js_lexer.TSlash:                              {js_ast.BinOpDiv, lMultiply},
	js_lexer.TPercent:                            {js_ast.BinOpRem, lMultiply},
}

var assignOps = map[js_lexer.T]js_ast.OpCode{
	js_lexer.TEquals:                                   js_ast.AssignOp,
	js_lexer.TAsteriskEquals:                           js_ast.AssignOpMul,
	js_lexer.TSlashEquals:                              js_ast.AssignOpDiv,
	js_lexer.TPercentEquals:                            js_ast.AssignOpRem,
	js_lexer.TPlusEquals:                               js_ast.AssignOpAdd,
	js_lexer.TMinusEquals:                              js_ast.AssignOpSub,
	js_lexer.TLessThanLessThanEquals:                   js_ast.AssignOpShl,
	js_lexer.TGreaterThanGreaterThanEquals:             js_ast.AssignOpShr,
	js_lexer.TGreaterThanGreaterThanGreaterThanEquals:  js_ast.AssignOpUShr,
	js_lexer.TAmpersandEquals:                          js_ast.AssignOpBitAnd,
	js_lexer.TCaretEquals:                              js_ast.AssignOpBitXor,
	js_lexer.TBarEquals:                                js_ast.AssignOpBitOr,
}

var prefixOps = map[js_lexer.T]js_ast.OpCode{
	js_lexer.TDelete:      js_ast.UnOpDelete,
	js_lexer.TVoid:        js_ast.UnOpVoid,
	js_lexer.TTypeof:      js_ast.UnOpTypeof,
	js_lexer.TPlusPlus:    js_ast.UnOpPreInc,
	js_lexer.TMinusMinus:  js_ast.UnOpPreDec,
	js_lexer.TPlus:        js_ast.UnOpPos,
	js_lexer.TMinus:       js_ast.UnOpNeg,
	js_lexer.TTilde:       js_ast.UnOpCpl,
	js_lexer.TExclamation: js_ast.UnOpNot,
}

func (p *parser) parseExpr(l level) *js_ast.Node {
	return p.parseSuffix(p.parsePrefix(), l)
}

func (p *parser) parsePrefix() *js_ast.Node {
	line := p.lexer.Line

	switch p.lexer.Token {
	case js_lexer.TNumericLiteral:
		value := js_ast.NewNumber(p.lexer.Number, line)
		p.lexer.Next()
		return value

	case js_lexer.TStringLiteral:
		value := js_ast.NewString(p.lexer.StringValue, true, line)
		p.lexer.Next()
		return value

	case js_lexer.TSlash, js_lexer.TSlashEquals:
		body, flags := p.lexer.ScanRegExp()
		value := &js_ast.Node{Kind: js_ast.KindRegexLiteral, Lineno: line, Text: body, Aux: flags}
		p.lexer.Next()
		return value

	case js_lexer.TTrue:
		p.lexer.Next()
		return js_ast.NewBoolean(true, line)

	case js_lexer.TFalse:
		p.lexer.Next()
		return js_ast.NewBoolean(false, line)

	case js_lexer.TNull:
		p.lexer.Next()
		return js_ast.NewNode(js_ast.KindNullLiteral, line)

	case js_lexer.TThis:
		p.lexer.Next()
		return js_ast.NewNode(js_ast.KindThis, line)

	case js_lexer.TIdentifier:
		value := js_ast.NewIdentifier(p.lexer.Identifier, line)
		p.lexer.Next()
		if p.options.E4X {
			return p.maybeQualified(value)
		}
		return value

	case js_lexer.TOpenParen:
		p.lexer.Next()
		value := p.parseExpr(lLowest)
		p.lexer.Expect(js_lexer.TCloseParen)
		return js_ast.NewNode(js_ast.KindParenthetical, line, value)

	case js_lexer.TOpenBracket:
		p.lexer.Next()
		array := js_ast.NewNode(js_ast.KindArrayLiteral, line)
		for p.lexer.Token != js_lexer.TCloseBracket {
			array.AppendChild(p.parseExpr(lComma))
			if p.lexer.Token != js_lexer.TComma {
				break
			}
			p.lexer.Next()
		}
		p.lexer.Expect(js_lexer.TCloseBracket)
		return array

	case js_lexer.TOpenBrace:
		return p.parseObjectLiteral()

	case js_lexer.TFunction:
		return p.parseFn(js_ast.KindFunctionExpression)

	case js_lexer.TNew:
		p.lexer.Next()
		// The target is a member expression; a "(" ends it and supplies the
		// constructor arguments
		target := p.parseSuffix(p.parsePrefix(), lCall)
		args := js_ast.NewNode(js_ast.KindArgList, p.lexer.Line)
		if p.lexer.Token == js_lexer.TOpenParen {
			args = p.parseArgList()
		}
		return js_ast.NewNode(js_ast.KindFunctionConstructor, line, target, args)

	case js_lexer.TLessThan:
		if p.options.E4X {
			return p.parseXMLValue()
		}

	case js_lexer.TAt:
		if p.options.E4X {
			return p.parseAttributeIdentifier()
		}

	case js_lexer.TAsterisk:
		if p.options.E4X {
			value := js_ast.NewNode(js_ast.KindWildcardIdentifier, line)
			p.lexer.Next()
			return p.maybeQualified(value)
		}

	default:
		if op, ok := prefixOps[p.lexer.Token]; ok {
			p.lexer.Next()
			value := p.parseExpr(lPrefix)
			return js_ast.NewOp(js_ast.KindUnary, op, line, value)
		}
	}

	p.lexer.Unexpected()
	return nil
}

func (p *parser) parseSuffix(left *js_ast.Node, l level) *js_ast.Node {
	for {
		switch p.lexer.Token {
		case js_lexer.TDot:
			line := p.lexer.Line
			p.lexer.Next()

			// ".(expr)" is an XML filtering predicate
			if p.options.E4X && p.lexer.Token == js_lexer.TOpenParen {
				p.lexer.Next()
				predicate := p.parseExpr(lLowest)
				p.lexer.Expect(js_lexer.TCloseParen)
				left = js_ast.NewNode(js_ast.KindFilteringPredicate, line, left, predicate)
				continue
			}

			left = js_ast.NewNode(js_ast.KindStaticMemberExpression, line, left, p.parseMemberName())

		case js_lexer.TDotDot:
			if !p.options.E4X {
				p.lexer.Unexpected()
			}
			line := p.lexer.Line
			p.lexer.Next()
			left = js_ast.NewNode(js_ast.KindDescendantExpression, line, left, p.parseMemberName())

		case js_lexer.TOpenBracket:
			line := p.lexer.Line
			p.lexer.Next()
			index := p.parseExpr(lLowest)
			p.lexer.Expect(js_lexer.TCloseBracket)
			left = js_ast.NewNode(js_ast.KindDynamicMemberExpression, line, left, index)

		case js_lexer.TOpenParen:
			if l >= lCall {
				return left
			}
			left = js_ast.NewNode(js_ast.KindFunctionCall, left.Lineno, left, p.parseArgList())

		case js_lexer.TPlusPlus:
			if p.lexer.HasNewlineBefore || l >= lPostfix {
				return left
			}
			p.lexer.Next()
			left = js_ast.NewOp(js_ast.KindPostfix, js_ast.PostOpInc, left.Lineno, left)

		case js_lexer.TMinusMinus:
			if p.lexer.HasNewlineBefore || l >= lPostfix {
				return left
			}
			p.lexer.Next()
			left = js_ast.NewOp(js_ast.KindPostfix, js_ast.PostOpDec, left.Lineno, left)

		case js_lexer.TQuestion:
			if l >= lConditional {
				return left
			}
			p.lexer.Next()
			yes := p.parseExpr(lComma)
			p.lexer.Expect(js_lexer.TColon)
			no := p.parseExpr(lComma)
			left = js_ast.NewNode(js_ast.KindConditionalExpression, left.Lineno, left, yes, no)

		default:
			if op, ok := assignOps[p.lexer.Token]; ok {
				if l >= lAssign {
					return left
				}
				if !left.IsValidLval() {
					p.lexer.SyntaxError("invalid assignment left-hand side")
				}
				p.lexer.Next()
				right := p.parseExpr(lComma)
				left = js_ast.NewOp(js_ast.KindAssignment, op, left.Lineno, left, right)
				continue
			}

			if entry, ok := binaryOps[p.lexer.Token]; ok {
				if l >= entry.level {
					return left
				}
				if entry.op == js_ast.BinOpIn && !p.allowIn {
					return left
				}
				p.lexer.Next()
				right := p.parseExpr(entry.level)
				left = js_ast.NewOp(js_ast.KindOperator, entry.op, left.Lineno, left, right)
				continue
			}

			return left
		}
	}
}

func (p *parser) parseArgList() *js_ast.Node {
	args := js_ast.NewNode(js_ast.KindArgList, p.lexer.Line)
	p.lexer.Expect(js_lexer.TOpenParen)
	for p.lexer.Token != js_lexer.TCloseParen {
		args.AppendChild(p.parseExpr(lComma))
		if p.lexer.Token != js_lexer.TComma {
			break
		}
		p.lexer.Next()
	}
	p.lexer.Expect(js_lexer.TCloseParen)
	return args
}

func (p *parser) parseObjectLiteral() *js_ast.Node {
	obj := js_ast.NewNode(js_ast.KindObjectLiteral, p.lexer.Line)
	p.lexer.Next()

	for p.lexer.Token != js_lexer.TCloseBrace {
		keyLine := p.lexer.Line
		var key *js_ast.Node
		switch p.lexer.Token {
		case js_lexer.TIdentifier:
			key = js_ast.NewIdentifier(p.lexer.Identifier, keyLine)
		case js_lexer.TStringLiteral:
			key = js_ast.NewString(p.lexer.StringValue, true, keyLine)
		case js_lexer.TNumericLiteral:
			key = js_ast.NewNumber(p.lexer.Number, keyLine)
		default:
			p.lexer.SyntaxError("invalid object literal key")
		}
		p.lexer.Next()
		p.lexer.Expect(js_lexer.TColon)
		value := p.parseExpr(lComma)
		obj.AppendChild(js_ast.NewNode(js_ast.KindObjectLiteralProperty, keyLine, key, value))

		if p.lexer.Token != js_lexer.TComma {
			break
		}
		p.lexer.Next()
		if p.lexer.Token == js_lexer.TCloseBrace && !p.options.ObjectLiteralElision {
			p.lexer.SyntaxError("trailing comma in object literal")
		}
	}
	p.lexer.Expect(js_lexer.TCloseBrace)
	return obj
}

// parseMemberName parses the name after "." or "..": an identifier, or with
// E4X also "@name", "*", and "ns::name" forms.
func (p *parser) parseMemberName() *js_ast.Node {
	if p.options.E4X {
		switch p.lexer.Token {
		case js_lexer.TAt:
			return p.parseAttributeIdentifier()
		case js_lexer.TAsterisk:
			name := js_ast.NewNode(js_ast.KindWildcardIdentifier, p.lexer.Line)
			p.lexer.Next()
			return p.maybeQualified(name)
		}
	}
	if p.lexer.Token != js_lexer.TIdentifier {
		p.lexer.Expected(js_lexer.TIdentifier)
	}
	name := js_ast.NewIdentifier(p.lexer.Identifier, p.lexer.Line)
	p.lexer.Next()
	if p.options.E4X {
		return p.maybeQualified(name)
	}
	return name
}

// maybeQualified turns "left::right" and "left::[expr]" into qualified
// identifier nodes.
func (p *parser) maybeQualified(left *js_ast.Node) *js_ast.Node {
	if p.lexer.Token != js_lexer.TColonColon {
		return left
	}
	line := p.lexer.Line
	p.lexer.Next()

	if p.lexer.Token == js_lexer.TOpenBracket {
		p.lexer.Next()
		index := p.parseExpr(lLowest)
		p.lexer.Expect(js_lexer.TCloseBracket)
		return js_ast.NewNode(js_ast.KindDynamicQualifiedIdentifier, line, left, index)
	}

	var right *js_ast.Node
	switch p.lexer.Token {
	case js_lexer.TAsterisk:
		right = js_ast.NewNode(js_ast.KindWildcardIdentifier, p.lexer.Line)
	case js_lexer.TIdentifier:
		right = js_ast.NewIdentifier(p.lexer.Identifier, p.lexer.Line)
	default:
		p.lexer.Expected(js_lexer.TIdentifier)
	}
	p.lexer.Next()
	return js_ast.NewNode(js_ast.KindStaticQualifiedIdentifier, line, left, right)
}

// parseAttributeIdentifier parses "@name", "@*", "@ns::name" and "@[expr]".
func (p *parser) parseAttributeIdentifier() *js_ast.Node {
	line := p.lexer.Line
	p.lexer.Next()

	if p.lexer.Token == js_lexer.TOpenBracket {
		p.lexer.Next()
		index := p.parseExpr(lLowest)
		p.lexer.Expect(js_lexer.TCloseBracket)
		return js_ast.NewNode(js_ast.KindDynamicAttributeIdentifier, line, index)
	}

	var name *js_ast.Node
	switch p.lexer.Token {
	case js_lexer.TAsterisk:
		name = js_ast.NewNode(js_ast.KindWildcardIdentifier, p.lexer.Line)
		p.lexer.Next()
	case js_lexer.TIdentifier:
		name = js_ast.NewIdentifier(p.lexer.Identifier, p.lexer.Line)
		p.lexer.Next()
		name = p.maybeQualified(name)
	default:
		p.lexer.Expected(js_lexer.TIdentifier)
	}
	return js_ast.NewNode(js_ast.KindStaticAttributeIdentifier, line, name)
}
