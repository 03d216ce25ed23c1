package js_ast

import (
	"testing"
)

func ident(name string) *Node   { return NewIdentifier(name, 0) }
func num(value float64) *Node   { return NewNumber(value, 0) }

func TestCloneIsEqualAndDisjoint(t *testing.T) {
	tree := NewNode(KindStatementList, 1,
		NewOp(KindAssignment, AssignOp, 2, ident("a"), num(1)),
		NewNode(KindIf, 3,
			ident("c"),
			NewNode(KindStatementList, 3),
			nil))

	clone := tree.Clone()
	if !tree.Equal(clone) {
		t.Fatal("clone is not structurally equal")
	}
	if clone == tree || clone.Children[0] == tree.Children[0] {
		t.Fatal("clone shares nodes with the original")
	}

	// Mutating the clone must not touch the original
	clone.Children[0].Children[0].Text = "b"
	if tree.Children[0].Children[0].Text != "a" {
		t.Fatal("clone shares identifier payload with the original")
	}

	// nil slots survive cloning
	if clone.Children[1].Children[2] != nil {
		t.Fatal("nil child slot was not preserved")
	}
}

func TestEqualIgnoresLineno(t *testing.T) {
	a := NewOp(KindOperator, BinOpAdd, 1, num(1), num(2))
	b := NewOp(KindOperator, BinOpAdd, 99, num(1), num(2))
	if !a.Equal(b) {
		t.Fatal("line numbers should not affect equality")
	}
}

func TestEqualComparesPayload(t *testing.T) {
	if num(1).Equal(num(2)) {
		t.Fatal("different numbers compare equal")
	}
	if ident("a").Equal(ident("b")) {
		t.Fatal("different identifiers compare equal")
	}
	if NewOp(KindOperator, BinOpAdd, 0, num(1), num(2)).
		Equal(NewOp(KindOperator, BinOpSub, 0, num(1), num(2))) {
		t.Fatal("different operators compare equal")
	}
	if num(1).Equal(ident("a")) {
		t.Fatal("different kinds compare equal")
	}
	if NewBoolean(true, 0).Equal(NewBoolean(false, 0)) {
		t.Fatal("different boolean literals compare equal")
	}
	regexA := &Node{Kind: KindRegexLiteral, Text: "ab", Aux: "g"}
	regexB := &Node{Kind: KindRegexLiteral, Text: "ab", Aux: "i"}
	if regexA.Equal(regexB) {
		t.Fatal("different regex flags compare equal")
	}
}

func TestEqualNilChildren(t *testing.T) {
	a := NewNode(KindIf, 0, ident("c"), NewNode(KindStatementList, 0), nil)
	b := NewNode(KindIf, 0, ident("c"), NewNode(KindStatementList, 0), nil)
	c := NewNode(KindIf, 0, ident("c"), NewNode(KindStatementList, 0), NewNode(KindStatementList, 0))
	if !a.Equal(b) {
		t.Fatal("nil slots should match nil slots")
	}
	if a.Equal(c) {
		t.Fatal("nil slot should not match a present child")
	}
}

func TestIsValidLval(t *testing.T) {
	cases := []struct {
		node     *Node
		expected bool
	}{
		{ident("a"), true},
		{NewNode(KindStaticMemberExpression, 0, ident("a"), ident("b")), true},
		{NewNode(KindDynamicMemberExpression, 0, ident("a"), num(0)), true},
		{NewNode(KindParenthetical, 0, ident("a")), true},
		{NewNode(KindParenthetical, 0, num(1)), false},
		{num(1), false},
		{NewOp(KindOperator, BinOpAdd, 0, ident("a"), ident("b")), false},
		{NewNode(KindWildcardIdentifier, 0), true},
		{NewNode(KindFilteringPredicate, 0, ident("a"), ident("b")), true},
	}
	for _, c := range cases {
		if c.node.IsValidLval() != c.expected {
			t.Fatalf("IsValidLval(%s) != %v", c.node.Kind, c.expected)
		}
	}
}

func TestCompareBool(t *testing.T) {
	cases := []struct {
		node        *Node
		whenTrue    bool
		whenFalse   bool
	}{
		{num(1), true, false},
		{num(0), false, true},
		{NewBoolean(true, 0), true, false},
		{NewBoolean(false, 0), false, true},
		{NewNode(KindParenthetical, 0, NewBoolean(true, 0)), true, false},
		// Everything else is unknown and answers false both ways
		{ident("a"), false, false},
		{NewString("\"x\"", true, 0), false, false},
		{NewNode(KindNullLiteral, 0), false, false},
	}
	for _, c := range cases {
		if c.node.CompareBool(true) != c.whenTrue || c.node.CompareBool(false) != c.whenFalse {
			t.Fatalf("CompareBool(%s) mismatch", c.node.Kind)
		}
	}
}

func TestUnquotedValue(t *testing.T) {
	if v := NewString("\"foo\"", true, 0).UnquotedValue(); v != "foo" {
		t.Fatalf("unexpected unquoted value %q", v)
	}
	if v := NewString("foo", false, 0).UnquotedValue(); v != "foo" {
		t.Fatalf("unexpected raw value %q", v)
	}
	// A quoted literal shorter than its quotes must not slice out of range
	if v := NewString("x", true, 0).UnquotedValue(); v != "" {
		t.Fatalf("underflow guard failed, got %q", v)
	}
}

func TestAppendChild(t *testing.T) {
	list := NewNode(KindArgList, 0)
	list.AppendChild(num(1)).AppendChild(num(2))
	if len(list.Children) != 2 || list.Empty() {
		t.Fatal("AppendChild did not grow the child list")
	}
}
