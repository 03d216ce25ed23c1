package js_printer

import "github.com/jsxmin/jsxmin/internal/js_ast"

// XML literals render back byte-for-byte: text data and attribute values are
// stored raw, so no entity escaping happens on the way out either.
func (p *printer) printXML(n *js_ast.Node, indent int) {
	switch n.Kind {
	case js_ast.KindXMLDefaultNamespace:
		p.j.AddString("default xml namespace = ")
		p.print(n.Children[0], indent)

	case js_ast.KindXMLName:
		if n.Aux != "" {
			p.j.AddString(n.Aux)
			p.j.AddString(":")
		}
		p.j.AddString(n.Text)

	case js_ast.KindXMLElement:
		openName, attrs, content, closeName := n.Children[0], n.Children[1], n.Children[2], n.Children[3]
		p.j.AddString("<")
		if openName == nil {
			// An XML list literal: "<>...</>"
			p.j.AddString(">")
			p.print(content, indent)
			p.j.AddString("</>")
			return
		}
		p.print(openName, indent)
		if !attrs.Empty() {
			p.j.AddString(" ")
			p.print(attrs, indent)
		}
		if !content.Empty() {
			p.j.AddString(">")
			p.print(content, indent)
			p.j.AddString("</")
			p.print(closeName, indent)
			p.j.AddString(">")
		} else if closeName == nil {
			p.j.AddString("/>")
		} else {
			p.j.AddString("></")
			p.print(closeName, indent)
			p.j.AddString(">")
		}

	case js_ast.KindXMLComment:
		p.j.AddString("<!--")
		p.j.AddString(n.Text)
		p.j.AddString("-->")

	case js_ast.KindXMLPI:
		p.j.AddString("<?")
		p.j.AddString(n.Text)
		p.j.AddString("?>")

	case js_ast.KindXMLContentList:
		p.implodeChildren(n, "", indent)

	case js_ast.KindXMLTextData:
		p.j.AddString(n.Text)

	case js_ast.KindXMLEmbeddedExpression:
		p.j.AddString("{")
		p.print(n.Children[0], indent)
		p.j.AddString("}")

	case js_ast.KindXMLAttributeList:
		p.implodeChildren(n, " ", indent)

	case js_ast.KindXMLAttribute:
		p.print(n.Children[0], indent)
		p.j.AddString("=")
		if value := n.Children[1]; value.Kind == js_ast.KindXMLTextData {
			p.j.AddString("\"")
			p.print(value, indent)
			p.j.AddString("\"")
		} else {
			p.print(value, indent)
		}

	case js_ast.KindWildcardIdentifier:
		p.j.AddString("*")

	case js_ast.KindStaticAttributeIdentifier:
		p.j.AddString("@")
		p.print(n.Children[0], indent)

	case js_ast.KindDynamicAttributeIdentifier:
		p.j.AddString("@[")
		p.print(n.Children[0], indent)
		p.j.AddString("]")

	case js_ast.KindStaticQualifiedIdentifier:
		p.print(n.Children[0], indent)
		p.j.AddString("::")
		p.print(n.Children[1], indent)

	case js_ast.KindDynamicQualifiedIdentifier:
		p.print(n.Children[0], indent)
		p.j.AddString("::[")
		p.print(n.Children[1], indent)
		p.j.AddString("]")

	case js_ast.KindFilteringPredicate:
		p.print(n.Children[0], indent)
		p.j.AddString(".(")
		p.print(n.Children[1], indent)
		p.j.AddString(")")

	case js_ast.KindDescendantExpression:
		p.print(n.Children[0], indent)
		p.j.AddString("..")
		p.print(n.Children[1], indent)

	default:
		panic("js_printer: unexpected node kind " + n.Kind.String())
	}
}
