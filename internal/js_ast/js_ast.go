package js_ast

// The AST is a single closed family of node kinds. Every node is the same
// struct: a kind, a source line number, an ordered list of child slots, and a
// small per-kind payload. Child slots are positional and may be nil (a
// missing else branch, an anonymous function expression's name slot). A node
// exclusively owns its subtree.
//
// Trees are built by the parser and then rewritten in place by passes, so
// unlike an immutable-AST design there is no symbol table on the side; the
// renaming passes rebuild scope information from the tree when they run.

type Kind uint8

const (
	KindProgram Kind = iota
	KindStatementList
	KindArgList
	KindObjectLiteral
	KindObjectLiteralProperty
	KindArrayLiteral

	KindNumericLiteral
	KindStringLiteral
	KindRegexLiteral
	KindBooleanLiteral
	KindNullLiteral
	KindThis
	KindEmptyExpression
	KindIdentifier

	KindOperator
	KindAssignment
	KindUnary
	KindPostfix
	KindConditionalExpression
	KindParenthetical
	KindFunctionCall
	KindFunctionConstructor
	KindStaticMemberExpression
	KindDynamicMemberExpression

	KindFunctionDeclaration
	KindFunctionExpression

	KindStatementWithExpression
	KindVarDeclaration
	KindTypehint
	KindIf
	KindWith
	KindTry
	KindLabel
	KindSwitch
	KindCaseClause
	KindDefaultClause
	KindForLoop
	KindForIn
	KindForEachIn
	KindWhile
	KindDoWhile

	KindXMLDefaultNamespace
	KindXMLName
	KindXMLElement
	KindXMLComment
	KindXMLPI
	KindXMLContentList
	KindXMLTextData
	KindXMLEmbeddedExpression
	KindXMLAttributeList
	KindXMLAttribute
	KindWildcardIdentifier
	KindStaticAttributeIdentifier
	KindDynamicAttributeIdentifier
	KindStaticQualifiedIdentifier
	KindDynamicQualifiedIdentifier
	KindFilteringPredicate
	KindDescendantExpression
)

var kindNames = map[Kind]string{
	KindProgram:                    "Program",
	KindStatementList:              "StatementList",
	KindArgList:                    "ArgList",
	KindObjectLiteral:              "ObjectLiteral",
	KindObjectLiteralProperty:      "ObjectLiteralProperty",
	KindArrayLiteral:               "ArrayLiteral",
	KindNumericLiteral:             "NumericLiteral",
	KindStringLiteral:              "StringLiteral",
	KindRegexLiteral:               "RegexLiteral",
	KindBooleanLiteral:             "BooleanLiteral",
	KindNullLiteral:                "NullLiteral",
	KindThis:                       "This",
	KindEmptyExpression:            "EmptyExpression",
	KindIdentifier:                 "Identifier",
	KindOperator:                   "Operator",
	KindAssignment:                 "Assignment",
	KindUnary:                      "Unary",
	KindPostfix:                    "Postfix",
	KindConditionalExpression:      "ConditionalExpression",
	KindParenthetical:              "Parenthetical",
	KindFunctionCall:               "FunctionCall",
	KindFunctionConstructor:        "FunctionConstructor",
	KindStaticMemberExpression:     "StaticMemberExpression",
	KindDynamicMemberExpression:    "DynamicMemberExpression",
	KindFunctionDeclaration:        "FunctionDeclaration",
	KindFunctionExpression:         "FunctionExpression",
	KindStatementWithExpression:    "StatementWithExpression",
	KindVarDeclaration:             "VarDeclaration",
	KindTypehint:                   "Typehint",
	KindIf:                         "If",
	KindWith:                       "With",
	KindTry:                        "Try",
	KindLabel:                      "Label",
	KindSwitch:                     "Switch",
	KindCaseClause:                 "CaseClause",
	KindDefaultClause:              "DefaultClause",
	KindForLoop:                    "ForLoop",
	KindForIn:                      "ForIn",
	KindForEachIn:                  "ForEachIn",
	KindWhile:                      "While",
	KindDoWhile:                    "DoWhile",
	KindXMLDefaultNamespace:        "XMLDefaultNamespace",
	KindXMLName:                    "XMLName",
	KindXMLElement:                 "XMLElement",
	KindXMLComment:                 "XMLComment",
	KindXMLPI:                      "XMLPI",
	KindXMLContentList:             "XMLContentList",
	KindXMLTextData:                "XMLTextData",
	KindXMLEmbeddedExpression:      "XMLEmbeddedExpression",
	KindXMLAttributeList:           "XMLAttributeList",
	KindXMLAttribute:               "XMLAttribute",
	KindWildcardIdentifier:         "WildcardIdentifier",
	KindStaticAttributeIdentifier:  "StaticAttributeIdentifier",
	KindDynamicAttributeIdentifier: "DynamicAttributeIdentifier",
	KindStaticQualifiedIdentifier:  "StaticQualifiedIdentifier",
	KindDynamicQualifiedIdentifier: "DynamicQualifiedIdentifier",
	KindFilteringPredicate:         "FilteringPredicate",
	KindDescendantExpression:       "DescendantExpression",
}

func (kind Kind) String() string {
	if name, ok := kindNames[kind]; ok {
		return name
	}
	return "Unknown"
}

// IsExpression reports whether nodes of this kind may appear in expression
// position. An expression used as a statement renders with a trailing ";".
func (kind Kind) IsExpression() bool {
	switch kind {
	case KindNumericLiteral, KindStringLiteral, KindRegexLiteral,
		KindBooleanLiteral, KindNullLiteral, KindThis, KindEmptyExpression,
		KindIdentifier, KindOperator, KindAssignment, KindUnary, KindPostfix,
		KindConditionalExpression, KindParenthetical, KindFunctionCall,
		KindFunctionConstructor, KindObjectLiteral, KindArrayLiteral,
		KindStaticMemberExpression, KindDynamicMemberExpression,
		KindFunctionExpression, KindXMLElement, KindWildcardIdentifier,
		KindStaticAttributeIdentifier, KindDynamicAttributeIdentifier,
		KindStaticQualifiedIdentifier, KindDynamicQualifiedIdentifier,
		KindFilteringPredicate, KindDescendantExpression:
		return true
	}
	return false
}

// IsVariadic reports whether nodes of this kind hold a homogeneous child
// sequence rather than fixed positional slots. Removing a child of a
// variadic node shrinks the sequence; in a fixed-arity node the slot goes
// nil instead.
func (kind Kind) IsVariadic() bool {
	switch kind {
	case KindStatementList, KindArgList, KindObjectLiteral, KindArrayLiteral,
		KindVarDeclaration, KindXMLContentList, KindXMLAttributeList:
		return true
	}
	return false
}

type Flags uint8

const (
	// The string literal still carries its source quotes and renders verbatim.
	FlagQuoted Flags = 1 << iota

	// The value of a boolean literal.
	FlagBoolValue

	// The XML text data consists entirely of whitespace.
	FlagWhitespace

	// The var declaration is the binding of a for-in loop.
	FlagIterator
)

type Node struct {
	// Positional child slots. Arity and meaning are fixed per kind; slots may
	// be nil where the grammar allows omission.
	Children []*Node

	// Payload. Which fields are meaningful depends on Kind: Text holds a
	// string/identifier/regex body/XML text, Aux holds a regex flag string or
	// an XML namespace, Number holds a numeric literal value, and Op holds the
	// operator or statement keyword.
	Text   string
	Aux    string
	Number float64
	Op     OpCode

	Lineno uint32
	Kind   Kind
	Flags  Flags
}

func NewNode(kind Kind, lineno uint32, children ...*Node) *Node {
	return &Node{Kind: kind, Lineno: lineno, Children: children}
}

func NewNumber(value float64, lineno uint32) *Node {
	return &Node{Kind: KindNumericLiteral, Lineno: lineno, Number: value}
}

func NewString(text string, quoted bool, lineno uint32) *Node {
	n := &Node{Kind: KindStringLiteral, Lineno: lineno, Text: text}
	if quoted {
		n.Flags |= FlagQuoted
	}
	return n
}

func NewBoolean(value bool, lineno uint32) *Node {
	n := &Node{Kind: KindBooleanLiteral, Lineno: lineno}
	if value {
		n.Flags |= FlagBoolValue
	}
	return n
}

func NewIdentifier(name string, lineno uint32) *Node {
	return &Node{Kind: KindIdentifier, Lineno: lineno, Text: name}
}

func NewOp(kind Kind, op OpCode, lineno uint32, children ...*Node) *Node {
	return &Node{Kind: kind, Lineno: lineno, Op: op, Children: children}
}

func (n *Node) AppendChild(child *Node) *Node {
	n.Children = append(n.Children, child)
	return n
}

func (n *Node) Empty() bool {
	return len(n.Children) == 0
}

// UnquotedValue returns the text of a string literal with its source quotes
// stripped. A quoted literal always includes both quote characters; values
// too short to contain them yield "" instead of slicing out of range.
func (n *Node) UnquotedValue() string {
	if n.Flags&FlagQuoted == 0 {
		return n.Text
	}
	if len(n.Text) < 2 {
		return ""
	}
	return n.Text[1 : len(n.Text)-1]
}

func (n *Node) BoolValue() bool {
	return n.Flags&FlagBoolValue != 0
}

// Clone returns a structurally identical disjoint subtree. Payload and line
// numbers are preserved; no nodes are shared with the original.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	clone := *n
	if n.Children != nil {
		clone.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			clone.Children[i] = child.Clone()
		}
	}
	return &clone
}

// Equal is structural equality: same kind, same payload, pairwise-equal
// children with nil matching nil. Line numbers are ignored.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Kind != other.Kind || len(n.Children) != len(other.Children) {
		return false
	}
	switch n.Kind {
	case KindNumericLiteral:
		if n.Number != other.Number {
			return false
		}
	case KindStringLiteral:
		if n.Text != other.Text || n.Flags&FlagQuoted != other.Flags&FlagQuoted {
			return false
		}
	case KindRegexLiteral, KindXMLName:
		if n.Text != other.Text || n.Aux != other.Aux {
			return false
		}
	case KindBooleanLiteral:
		if n.Flags&FlagBoolValue != other.Flags&FlagBoolValue {
			return false
		}
	case KindIdentifier, KindXMLComment, KindXMLPI, KindXMLTextData:
		if n.Text != other.Text {
			return false
		}
	case KindOperator, KindAssignment, KindUnary, KindPostfix, KindStatementWithExpression:
		if n.Op != other.Op {
			return false
		}
	case KindVarDeclaration:
		if n.Flags&FlagIterator != other.Flags&FlagIterator {
			return false
		}
	}
	for i, child := range n.Children {
		if !child.Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// IsValidLval reports whether the node may legally appear on the left of an
// assignment. A parenthetical is as assignable as its inner expression.
func (n *Node) IsValidLval() bool {
	switch n.Kind {
	case KindIdentifier, KindStaticMemberExpression, KindDynamicMemberExpression,
		KindWildcardIdentifier, KindStaticAttributeIdentifier,
		KindDynamicAttributeIdentifier, KindStaticQualifiedIdentifier,
		KindDynamicQualifiedIdentifier, KindFilteringPredicate:
		return true
	case KindParenthetical:
		return n.Children[0].IsValidLval()
	}
	return false
}

// CompareBool reports whether the node is known at compile time to evaluate
// to the given boolean truthiness. Only literals answer affirmatively;
// everything else is "unknown" and returns false for both inputs. The
// reduction pass relies on this set containing only side-effect-free kinds.
func (n *Node) CompareBool(val bool) bool {
	switch n.Kind {
	case KindNumericLiteral:
		if val {
			return n.Number != 0
		}
		return n.Number == 0
	case KindBooleanLiteral:
		return val == n.BoolValue()
	case KindParenthetical:
		return n.Children[0].CompareBool(val)
	}
	return false
}
