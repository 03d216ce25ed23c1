package js_parser

// XML literal parsing. The lexer is switched into its XML modes here; every
// helper that finishes a tag leaves the final ">" token current so the caller
// can decide whether the characters that follow are JavaScript or more XML
// element content.

import (
	"github.com/jsxmin/jsxmin/internal/js_ast"
	"github.com/jsxmin/jsxmin/internal/js_lexer"
)

// parseXMLValue parses an XML literal in expression position. The "<" token
// is current.
func (p *parser) parseXMLValue() *js_ast.Node {
	line := p.lexer.Line
	p.lexer.NextInsideXMLElement()

	var value *js_ast.Node
	switch p.lexer.Token {
	case js_lexer.TXMLComment:
		value = &js_ast.Node{Kind: js_ast.KindXMLComment, Lineno: line, Text: p.lexer.StringValue}
		p.lexer.Next()
		return value

	case js_lexer.TXMLPI:
		value = &js_ast.Node{Kind: js_ast.KindXMLPI, Lineno: line, Text: p.lexer.StringValue}
		p.lexer.Next()
		return value

	case js_lexer.TGreaterThan:
		// "<>...</>" is an XML list literal
		content := p.parseXMLContent()
		p.lexer.NextInsideXMLElement()
		if p.lexer.Token != js_lexer.TGreaterThan {
			p.lexer.SyntaxError("expected \"</>\" to close XML list literal")
		}
		value = js_ast.NewNode(js_ast.KindXMLElement, line,
			nil, js_ast.NewNode(js_ast.KindXMLAttributeList, line), content, nil)

	default:
		value = p.parseXMLElement(line)
	}

	p.lexer.Next()
	return value
}

// parseXMLElement parses an element from its name (or embedded name
// expression) onward and returns with the closing ">" still current.
func (p *parser) parseXMLElement(line uint32) *js_ast.Node {
	var openName *js_ast.Node
	if p.lexer.Token == js_lexer.TOpenBrace {
		p.lexer.Next()
		expr := p.parseExpr(lLowest)
		if p.lexer.Token != js_lexer.TCloseBrace {
			p.lexer.Expected(js_lexer.TCloseBrace)
		}
		openName = js_ast.NewNode(js_ast.KindXMLEmbeddedExpression, line, expr)
		p.lexer.NextInsideXMLElement()
	} else {
		openName = p.parseXMLName()
	}

	attrs := js_ast.NewNode(js_ast.KindXMLAttributeList, line)
	for p.lexer.Token == js_lexer.TIdentifier {
		attrLine := p.lexer.Line
		attrName := p.parseXMLName()
		if p.lexer.Token != js_lexer.TEquals {
			p.lexer.Expected(js_lexer.TEquals)
		}
		p.lexer.NextInsideXMLElement()

		var attrValue *js_ast.Node
		switch p.lexer.Token {
		case js_lexer.TStringLiteral:
			attrValue = p.xmlTextData(p.lexer.StringValue, attrLine)
			p.lexer.NextInsideXMLElement()
		case js_lexer.TOpenBrace:
			p.lexer.Next()
			expr := p.parseExpr(lLowest)
			if p.lexer.Token != js_lexer.TCloseBrace {
				p.lexer.Expected(js_lexer.TCloseBrace)
			}
			attrValue = js_ast.NewNode(js_ast.KindXMLEmbeddedExpression, attrLine, expr)
			p.lexer.NextInsideXMLElement()
		default:
			p.lexer.SyntaxError("invalid XML attribute value")
		}
		attrs.AppendChild(js_ast.NewNode(js_ast.KindXMLAttribute, attrLine, attrName, attrValue))
	}

	content := js_ast.NewNode(js_ast.KindXMLContentList, line)
	var closeName *js_ast.Node

	switch p.lexer.Token {
	case js_lexer.TSlash:
		// Self-closing
		p.lexer.NextInsideXMLElement()
		if p.lexer.Token != js_lexer.TGreaterThan {
			p.lexer.Expected(js_lexer.TGreaterThan)
		}

	case js_lexer.TGreaterThan:
		content = p.parseXMLContent()
		p.lexer.NextInsideXMLElement()
		closeName = p.parseXMLName()
		if p.lexer.Token != js_lexer.TGreaterThan {
			p.lexer.Expected(js_lexer.TGreaterThan)
		}
		if content.Empty() {
			// "<a></a>" renders as "<a/>"
			closeName = nil
		}

	default:
		p.lexer.Unexpected()
	}

	return js_ast.NewNode(js_ast.KindXMLElement, line, openName, attrs, content, closeName)
}

// parseXMLName parses "name" or "ns:name" inside a tag and advances past it.
func (p *parser) parseXMLName() *js_ast.Node {
	line := p.lexer.Line
	if p.lexer.Token != js_lexer.TIdentifier {
		p.lexer.Expected(js_lexer.TIdentifier)
	}
	first := p.lexer.Identifier
	p.lexer.NextInsideXMLElement()

	if p.lexer.Token == js_lexer.TColon {
		p.lexer.NextInsideXMLElement()
		if p.lexer.Token != js_lexer.TIdentifier {
			p.lexer.Expected(js_lexer.TIdentifier)
		}
		name := &js_ast.Node{Kind: js_ast.KindXMLName, Lineno: line, Text: p.lexer.Identifier, Aux: first}
		p.lexer.NextInsideXMLElement()
		return name
	}

	return &js_ast.Node{Kind: js_ast.KindXMLName, Lineno: line, Text: first}
}

// parseXMLContent parses element children up to (and consuming) the "</" of
// the closing tag.
func (p *parser) parseXMLContent() *js_ast.Node {
	content := js_ast.NewNode(js_ast.KindXMLContentList, p.lexer.Line)
	p.lexer.NextXMLElementChild()

	for {
		line := p.lexer.Line
		switch p.lexer.Token {
		case js_lexer.TXMLText:
			// Consecutive text runs merge into one data node
			if last := lastChild(content); last != nil && last.Kind == js_ast.KindXMLTextData {
				last.Text += p.lexer.StringValue
				if !p.lexer.XMLIsWhitespace {
					last.Flags &^= js_ast.FlagWhitespace
				}
			} else {
				content.AppendChild(p.xmlTextData(p.lexer.StringValue, line))
			}
			p.lexer.NextXMLElementChild()

		case js_lexer.TXMLComment:
			content.AppendChild(&js_ast.Node{Kind: js_ast.KindXMLComment, Lineno: line, Text: p.lexer.StringValue})
			p.lexer.NextXMLElementChild()

		case js_lexer.TXMLPI:
			content.AppendChild(&js_ast.Node{Kind: js_ast.KindXMLPI, Lineno: line, Text: p.lexer.StringValue})
			p.lexer.NextXMLElementChild()

		case js_lexer.TOpenBrace:
			p.lexer.Next()
			expr := p.parseExpr(lLowest)
			if p.lexer.Token != js_lexer.TCloseBrace {
				p.lexer.Expected(js_lexer.TCloseBrace)
			}
			content.AppendChild(js_ast.NewNode(js_ast.KindXMLEmbeddedExpression, line, expr))
			p.lexer.NextXMLElementChild()

		case js_lexer.TLessThan:
			p.lexer.NextInsideXMLElement()
			content.AppendChild(p.parseXMLElement(line))
			p.lexer.NextXMLElementChild()

		case js_lexer.TLessThanSlash:
			return content

		default:
			p.lexer.Unexpected()
		}
	}
}

func (p *parser) xmlTextData(text string, line uint32) *js_ast.Node {
	node := &js_ast.Node{Kind: js_ast.KindXMLTextData, Lineno: line, Text: text}
	if isAllXMLWhitespace(text) {
		node.Flags |= js_ast.FlagWhitespace
	}
	return node
}

func isAllXMLWhitespace(text string) bool {
	for _, c := range text {
		if c != ' ' && c != '\t' && c != '\r' && c != '\n' {
			return false
		}
	}
	return true
}

func lastChild(node *js_ast.Node) *js_ast.Node {
	if len(node.Children) == 0 {
		return nil
	}
	return node.Children[len(node.Children)-1]
}
