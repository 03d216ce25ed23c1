package js_printer

// Renders an AST back to source text. Output is syntax-directed, appended
// left to right into a measuring joiner. Three shapes per node: the inline
// expression form, the statement form (adds ";" where the grammar wants
// one), and the block form (braces when forced, when pretty, or when the
// statement count isn't exactly one).
//
// In line-preserving mode the printer tracks the current output line and
// emits a run of newlines before a node whose recorded line is ahead of it,
// so error line numbers survive minification.

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jsxmin/jsxmin/internal/helpers"
	"github.com/jsxmin/jsxmin/internal/js_ast"
)

type Options struct {
	// Insert spaces, newlines and indentation
	Pretty bool

	// Inject newlines so each node lands on its source line
	MaintainLineno bool
}

func Print(root *js_ast.Node, options Options) []byte {
	p := printer{options: options, lineno: 1}
	p.print(root, 0)
	if options.Pretty && p.j.Length() == 0 {
		p.j.AddString("\n")
	}
	return p.j.Done()
}

type printer struct {
	j       helpers.Joiner
	options Options

	// The line the output is currently on (1-based). In pretty mode without
	// line preservation this doubles as a first-statement marker: 1 means
	// nothing was printed yet, 2 means statements need a leading newline.
	lineno uint32
}

func (p *printer) printIndent(indent int) {
	for i := 0; i < indent; i++ {
		p.j.AddString("  ")
	}
}

// catchup advances the output to the node's source line and reports whether
// it emitted a newline. Nodes with no recorded line never catch up.
func (p *printer) catchup(n *js_ast.Node) bool {
	if n == nil || n.Lineno == 0 || p.lineno >= n.Lineno {
		return false
	}
	for p.lineno < n.Lineno {
		p.j.AddString("\n")
		p.lineno++
	}
	return true
}

// capture renders into a scratch printer so the caller can inspect the text
// before appending it. Line state carries through.
func (p *printer) capture(render func(*printer)) []byte {
	sub := printer{options: p.options, lineno: p.lineno}
	render(&sub)
	p.lineno = sub.lineno
	return sub.j.Done()
}

func (p *printer) printStatement(n *js_ast.Node, indent int) {
	p.print(n, indent)
	switch {
	case n.Kind.IsExpression(),
		n.Kind == js_ast.KindStatementWithExpression,
		n.Kind == js_ast.KindVarDeclaration,
		n.Kind == js_ast.KindDoWhile,
		n.Kind == js_ast.KindXMLDefaultNamespace:
		p.j.AddString(";")
	}
}

func (p *printer) printIndentedStatement(n *js_ast.Node, indent int) {
	// A nested statement list flattens into its parent
	if n.Kind == js_ast.KindStatementList {
		p.print(n, indent)
		return
	}

	// Switch case labels sit one level shallower than their statements
	if n.Kind == js_ast.KindCaseClause || n.Kind == js_ast.KindDefaultClause {
		indent--
	}

	if p.options.Pretty || p.options.MaintainLineno {
		newline := false
		if p.options.MaintainLineno {
			newline = p.catchup(n)
		} else if p.lineno == 2 {
			p.j.AddString("\n")
			newline = true
		} else {
			p.lineno = 2
		}
		if p.options.Pretty && newline {
			p.printIndent(indent)
		}
	}
	p.printStatement(n, indent)
}

func (p *printer) printBlock(n *js_ast.Node, must bool, indent int) {
	if n.Kind == js_ast.KindEmptyExpression {
		p.j.AddString(";")
		return
	}

	if !must && !p.options.Pretty {
		if n.Kind == js_ast.KindStatementList && len(n.Children) == 1 {
			if p.options.MaintainLineno {
				p.catchup(n)
			}
			p.printBlock(n.Children[0], must, indent)
			return
		}
		if n.Kind != js_ast.KindStatementList {
			if p.options.MaintainLineno {
				p.catchup(n)
			}
			p.printStatement(n, indent)
			return
		}
	}

	if p.options.Pretty {
		p.j.AddString(" {")
	} else {
		p.j.AddString("{")
	}
	p.printIndentedStatement(n, indent+1)
	if p.options.Pretty || p.options.MaintainLineno {
		newline := true
		if p.options.MaintainLineno {
			newline = p.catchup(n)
		} else {
			p.j.AddString("\n")
		}
		if p.options.Pretty && newline {
			p.printIndent(indent)
		}
	}
	p.j.AddString("}")
}

func (p *printer) implodeChildren(n *js_ast.Node, glue string, indent int) {
	for i, child := range n.Children {
		if i > 0 {
			p.j.AddString(glue)
		}
		if child != nil {
			p.print(child, indent)
		}
	}
}

func (p *printer) commaGlue() string {
	if p.options.Pretty {
		return ", "
	}
	return ","
}

func (p *printer) print(n *js_ast.Node, indent int) {
	switch n.Kind {
	case js_ast.KindProgram:
		p.print(n.Children[0], indent)

	case js_ast.KindStatementList:
		for _, child := range n.Children {
			if child != nil {
				p.printIndentedStatement(child, indent)
			}
		}

	case js_ast.KindNumericLiteral:
		p.j.AddString(numberToString(n.Number))

	case js_ast.KindStringLiteral:
		if n.Flags&js_ast.FlagQuoted != 0 {
			p.j.AddString(n.Text)
		} else {
			p.j.AddString(quoteString(n.Text))
		}

	case js_ast.KindRegexLiteral:
		p.j.AddString("/")
		p.j.AddString(n.Text)
		p.j.AddString("/")
		p.j.AddString(n.Aux)

	case js_ast.KindBooleanLiteral:
		if n.BoolValue() {
			p.j.AddString("true")
		} else {
			p.j.AddString("false")
		}

	case js_ast.KindNullLiteral:
		p.j.AddString("null")

	case js_ast.KindThis:
		p.j.AddString("this")

	case js_ast.KindEmptyExpression:
		// Renders to nothing

	case js_ast.KindIdentifier:
		p.j.AddString(n.Text)

	case js_ast.KindOperator:
		p.print(n.Children[0], indent)
		text := js_ast.OpText[n.Op]
		if p.options.Pretty {
			if n.Op != js_ast.BinOpComma {
				p.j.AddString(" ")
			}
			p.j.AddString(text)
			p.j.AddString(" ")
		} else if n.Op.IsKeyword() {
			p.j.AddString(" ")
			p.j.AddString(text)
			p.j.AddString(" ")
		} else {
			p.j.AddString(text)
		}
		p.print(n.Children[1], indent)

	case js_ast.KindAssignment:
		p.print(n.Children[0], indent)
		if p.options.Pretty {
			p.j.AddString(" ")
		}
		p.j.AddString(js_ast.OpText[n.Op])
		if p.options.Pretty {
			p.j.AddString(" ")
		}
		p.print(n.Children[1], indent)

	case js_ast.KindUnary:
		p.j.AddString(js_ast.OpText[n.Op])
		if n.Op.IsKeyword() && n.Children[0].Kind != js_ast.KindParenthetical {
			p.j.AddString(" ")
		}
		p.print(n.Children[0], indent)

	case js_ast.KindPostfix:
		p.print(n.Children[0], indent)
		p.j.AddString(js_ast.OpText[n.Op])

	case js_ast.KindConditionalExpression:
		p.print(n.Children[0], indent)
		if p.options.Pretty {
			p.j.AddString(" ? ")
		} else {
			p.j.AddString("?")
		}
		p.print(n.Children[1], indent)
		if p.options.Pretty {
			p.j.AddString(" : ")
		} else {
			p.j.AddString(":")
		}
		p.print(n.Children[2], indent)

	case js_ast.KindParenthetical:
		p.j.AddString("(")
		p.print(n.Children[0], indent)
		p.j.AddString(")")

	case js_ast.KindFunctionCall:
		p.print(n.Children[0], indent)
		p.print(n.Children[1], indent)

	case js_ast.KindFunctionConstructor:
		p.j.AddString("new ")
		p.print(n.Children[0], indent)
		p.print(n.Children[1], indent)

	case js_ast.KindObjectLiteral:
		p.j.AddString("{")
		p.implodeChildren(n, p.commaGlue(), indent)
		p.j.AddString("}")

	case js_ast.KindObjectLiteralProperty:
		p.print(n.Children[0], indent)
		if p.options.Pretty {
			p.j.AddString(": ")
		} else {
			p.j.AddString(":")
		}
		p.print(n.Children[1], indent)

	case js_ast.KindArrayLiteral:
		p.j.AddString("[")
		p.implodeChildren(n, p.commaGlue(), indent)
		p.j.AddString("]")

	case js_ast.KindStaticMemberExpression:
		p.print(n.Children[0], indent)
		p.j.AddString(".")
		p.print(n.Children[1], indent)

	case js_ast.KindDynamicMemberExpression:
		p.print(n.Children[0], indent)
		p.j.AddString("[")
		p.print(n.Children[1], indent)
		p.j.AddString("]")

	case js_ast.KindArgList:
		p.j.AddString("(")
		p.implodeChildren(n, p.commaGlue(), indent)
		p.j.AddString(")")

	case js_ast.KindFunctionDeclaration:
		p.j.AddString("function ")
		p.print(n.Children[0], indent)
		p.print(n.Children[1], indent)
		p.printBlock(n.Children[2], true, indent)

	case js_ast.KindFunctionExpression:
		p.j.AddString("function")
		if n.Children[0] != nil {
			p.j.AddString(" ")
			p.print(n.Children[0], indent)
		}
		p.print(n.Children[1], indent)
		p.printBlock(n.Children[2], true, indent)

	case js_ast.KindStatementWithExpression:
		p.j.AddString(js_ast.OpText[n.Op])
		if n.Children[0] != nil {
			p.j.AddString(" ")
			p.print(n.Children[0], indent)
		}

	case js_ast.KindVarDeclaration:
		p.j.AddString("var ")
		p.implodeChildren(n, p.commaGlue(), indent)

	case js_ast.KindTypehint:
		p.print(n.Children[0], indent)
		p.j.AddString(":")
		p.print(n.Children[1], indent)

	case js_ast.KindIf:
		p.printIf(n, indent)

	case js_ast.KindWith:
		if p.options.Pretty {
			p.j.AddString("with (")
		} else {
			p.j.AddString("with(")
		}
		p.print(n.Children[0], indent)
		p.j.AddString(")")
		p.printBlock(n.Children[1], false, indent)

	case js_ast.KindTry:
		p.j.AddString("try")
		p.printBlock(n.Children[0], true, indent)
		if n.Children[1] != nil {
			if p.options.Pretty {
				p.j.AddString(" catch (")
			} else {
				p.j.AddString("catch(")
			}
			p.print(n.Children[1], indent)
			p.j.AddString(")")
			p.printBlock(n.Children[2], true, indent)
		}
		if n.Children[3] != nil {
			if p.options.Pretty {
				p.j.AddString(" finally")
			} else {
				p.j.AddString("finally")
			}
			p.printBlock(n.Children[3], true, indent)
		}

	case js_ast.KindLabel:
		p.print(n.Children[0], indent)
		if p.options.Pretty {
			p.j.AddString(": ")
		} else {
			p.j.AddString(":")
		}
		// The labeled statement supplies its own ";" where it needs one
		p.printStatement(n.Children[1], indent)

	case js_ast.KindSwitch:
		p.j.AddString("switch(")
		p.print(n.Children[0], indent)
		p.j.AddString(")")
		// Statements inside the block sit one level deeper; case labels pull
		// back out to the level of the switch
		p.printBlock(n.Children[1], true, indent)

	case js_ast.KindCaseClause:
		p.j.AddString("case ")
		p.print(n.Children[0], indent)
		p.j.AddString(":")

	case js_ast.KindDefaultClause:
		p.j.AddString("default:")

	case js_ast.KindForLoop:
		semi := ";"
		if p.options.Pretty {
			p.j.AddString("for (")
			semi = "; "
		} else {
			p.j.AddString("for(")
		}
		p.print(n.Children[0], indent)
		p.j.AddString(semi)
		p.print(n.Children[1], indent)
		p.j.AddString(semi)
		p.print(n.Children[2], indent)
		p.j.AddString(")")
		p.printBlock(n.Children[3], false, indent)

	case js_ast.KindForIn, js_ast.KindForEachIn:
		keyword := "for("
		if n.Kind == js_ast.KindForEachIn {
			keyword = "for each("
		}
		if p.options.Pretty {
			keyword = strings.Replace(keyword, "(", " (", 1)
		}
		p.j.AddString(keyword)
		p.print(n.Children[0], indent)
		p.j.AddString(" in ")
		p.print(n.Children[1], indent)
		p.j.AddString(")")
		p.printBlock(n.Children[2], false, indent)

	case js_ast.KindWhile:
		if p.options.Pretty {
			p.j.AddString("while (")
		} else {
			p.j.AddString("while(")
		}
		p.print(n.Children[0], indent)
		p.j.AddString(")")
		p.printBlock(n.Children[1], false, indent)

	case js_ast.KindDoWhile:
		p.j.AddString("do")
		// Braces are not always required here but they dodge the ambiguity
		// of "do x; while (y)"
		p.printBlock(n.Children[0], true, indent)
		if p.options.MaintainLineno {
			p.catchup(n.Children[1])
		}
		if p.options.Pretty {
			p.j.AddString(" while (")
		} else {
			p.j.AddString("while(")
		}
		p.print(n.Children[1], indent)
		p.j.AddString(")")

	default:
		p.printXML(n, indent)
	}
}

func (p *printer) printIf(n *js_ast.Node, indent int) {
	cond, then, els := n.Children[0], n.Children[1], n.Children[2]

	if p.options.Pretty {
		p.j.AddString("if (")
	} else {
		p.j.AddString("if(")
	}
	p.print(cond, indent)
	p.j.AddString(")")

	needBraces := p.options.Pretty || then.Empty() || els != nil
	p.printBlock(then, needBraces, indent)

	if els == nil {
		return
	}
	if p.options.Pretty {
		p.j.AddString(" else")
	} else {
		p.j.AddString("else")
	}

	// "else if" chains stay flat
	if els.Kind == js_ast.KindIf {
		if p.options.MaintainLineno {
			p.catchup(els)
		}
		p.j.AddString(" ")
		p.print(els, indent)
		return
	}

	block := p.capture(func(sub *printer) {
		sub.printBlock(els, false, indent)
	})
	if len(block) == 0 || (block[0] != '{' && block[0] != ' ') {
		p.j.AddString(" ")
	}
	p.j.AddBytes(block)
}

// quoteString emits a double-quoted literal for a string that came from a
// pass rather than the source. Control characters below 0x20 become \xHH.
func quoteString(text string) string {
	sb := strings.Builder{}
	sb.WriteByte('"')
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch c {
		case '\b':
			sb.WriteString("\\b")
		case '\f':
			sb.WriteString("\\f")
		case '\n':
			sb.WriteString("\\n")
		case '\r':
			sb.WriteString("\\r")
		case '\t':
			sb.WriteString("\\t")
		case '\'':
			sb.WriteString("\\'")
		case '\\':
			sb.WriteString("\\\\")
		default:
			if c < 0x20 {
				sb.WriteString(fmt.Sprintf("\\x%02x", c))
			} else {
				sb.WriteByte(c)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// numberToString formats with the shortest round-trip representation and
// strips the exponent padding Go adds ("1e+21" prints as "1e21").
func numberToString(value float64) string {
	text := strconv.FormatFloat(value, 'g', -1, 64)
	if i := strings.IndexByte(text, 'e'); i != -1 {
		mantissa, exp := text[:i], text[i+1:]
		negative := false
		if strings.HasPrefix(exp, "+") {
			exp = exp[1:]
		} else if strings.HasPrefix(exp, "-") {
			negative = true
			exp = exp[1:]
		}
		exp = strings.TrimLeft(exp, "0")
		if exp == "" {
			exp = "0"
		}
		if negative {
			exp = "-" + exp
		}
		text = mantissa + "e" + exp
	}
	return text
}
