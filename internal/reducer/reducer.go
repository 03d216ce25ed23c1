package reducer

// Local, semantics-preserving rewrites: boolean short-circuit folding, dead
// branch removal, and canonicalization of string keys into identifiers so the
// property renamer sees every access the same way. Each rule fires on one
// node after its children have been reduced; a rewrite re-dispatches on the
// replacement so chains like "true ? true : true;" collapse fully.
//
// Every rule preserves l-value validity and the observable side-effect order
// of the subtree. That is only sound because CompareBool answers
// affirmatively for side-effect-free literals alone.

import (
	"strings"

	"github.com/jsxmin/jsxmin/internal/js_ast"
	"github.com/jsxmin/jsxmin/internal/js_lexer"
	"github.com/jsxmin/jsxmin/internal/js_parser"
	"github.com/jsxmin/jsxmin/internal/logger"
	"github.com/jsxmin/jsxmin/internal/walker"
)

// Process applies the pattern replacements from a "p1:r1,p2:r2" string and
// then runs the reduction walker. An empty or useless pattern string is a
// no-op; a pattern side that fails to parse to an expression is skipped.
func Process(log logger.Log, root *js_ast.Node, replacements string) *js_ast.Node {
	for _, pattern := range parsePatterns(replacements) {
		needle, okNeedle := parseSide(pattern[0])
		rep, okRep := parseSide(pattern[1])
		if !okNeedle || !okRep {
			continue
		}
		replaceAll(root, needle, rep)
	}
	return Reduce(root)
}

// Reduce runs only the reduction walker.
func Reduce(root *js_ast.Node) *js_ast.Node {
	return walker.Walk(&Reducer{}, root)
}

func parsePatterns(input string) [][2]string {
	var patterns [][2]string
	for _, part := range strings.Split(input, ",") {
		if colon := strings.IndexByte(part, ':'); colon != -1 {
			patterns = append(patterns, [2]string{part[:colon], part[colon+1:]})
		}
	}
	return patterns
}

func parseSide(source string) (*js_ast.Node, bool) {
	expr, ok := js_parser.ParseExpression(logger.NewDeferLog(), source, js_parser.Options{})
	if !ok || expr == nil {
		return nil, false
	}
	return expr, true
}

// replaceAll swaps every subtree equal to needle for a fresh clone of rep.
// Replacements are not rescanned, so a needle inside its own replacement
// does not chain.
func replaceAll(haystack *js_ast.Node, needle *js_ast.Node, rep *js_ast.Node) *js_ast.Node {
	if haystack == nil {
		return nil
	}
	if haystack.Equal(needle) {
		return rep.Clone()
	}
	for i, child := range haystack.Children {
		haystack.Children[i] = replaceAll(child, needle, rep)
	}
	return haystack
}

type Reducer struct{}

func (r *Reducer) Clone() walker.Visitor {
	return &Reducer{}
}

func (r *Reducer) Visit(w *walker.Walker, node *js_ast.Node) {
	switch node.Kind {
	case js_ast.KindOperator:
		r.visitOperator(w, node)
	case js_ast.KindUnary:
		r.visitUnary(w, node)
	case js_ast.KindConditionalExpression:
		r.visitConditional(w, node)
	case js_ast.KindFunctionCall:
		r.visitFunctionCall(w, node)
	case js_ast.KindIf:
		r.visitIf(w, node)
	case js_ast.KindObjectLiteralProperty:
		r.visitObjectLiteralProperty(w, node)
	case js_ast.KindDynamicMemberExpression:
		r.visitDynamicMember(w, node)
	default:
		w.VisitChildren()
		if node.Kind.IsExpression() {
			// A statically boolean expression directly under a statement list
			// has no side effects and can go away entirely
			if parent := w.Parent(); parent != nil && parent.Node().Kind == js_ast.KindStatementList {
				if node.CompareBool(true) || node.CompareBool(false) {
					w.Remove()
				}
			}
		}
	}
}

func (r *Reducer) visitOperator(w *walker.Walker, node *js_ast.Node) {
	w.VisitChildren()
	left, right := node.Children[0], node.Children[1]

	switch node.Op {
	case js_ast.BinOpLogicalOr:
		if left.CompareBool(true) {
			w.ReplaceAndVisit(left)
		} else if left.CompareBool(false) {
			if right.CompareBool(true) {
				w.ReplaceAndVisit(right)
			} else if right.CompareBool(false) {
				w.ReplaceAndVisit(js_ast.NewBoolean(false, 0))
			}
		}

	case js_ast.BinOpLogicalAnd:
		if left.CompareBool(false) {
			w.ReplaceAndVisit(js_ast.NewBoolean(false, 0))
		} else if left.CompareBool(true) {
			if right.CompareBool(false) {
				w.ReplaceAndVisit(js_ast.NewBoolean(false, 0))
			} else {
				w.ReplaceAndVisit(right)
			}
		}

	case js_ast.BinOpComma:
		// The left operand is statically boolean and therefore side-effect
		// free, so the comma expression is just its right operand
		if left.CompareBool(false) || left.CompareBool(true) {
			w.ReplaceAndVisit(right)
		}
	}
}

func (r *Reducer) visitUnary(w *walker.Walker, node *js_ast.Node) {
	w.VisitChildren()
	if node.Op == js_ast.UnOpNot {
		value := node.Children[0]
		if value.CompareBool(true) {
			w.ReplaceAndVisit(js_ast.NewBoolean(false, 0))
		} else if value.CompareBool(false) {
			w.ReplaceAndVisit(js_ast.NewBoolean(true, 0))
		}
	}
}

func (r *Reducer) visitConditional(w *walker.Walker, node *js_ast.Node) {
	w.VisitChildren()
	cond := node.Children[0]
	var chosen *js_ast.Node
	if cond.CompareBool(true) {
		chosen = node.Children[1]
	} else if cond.CompareBool(false) {
		chosen = node.Children[2]
	} else {
		return
	}
	// The chosen branch gets walked a second time on purpose; without it
	// "true ? true : true;" would survive as a statement
	w.ReplaceAndVisit(chosen)
}

// bagofholding() is the build-flag sentinel the preprocessor leaves behind
// for disabled features; calls to it fold to false so the surrounding
// branches can die.
func (r *Reducer) visitFunctionCall(w *walker.Walker, node *js_ast.Node) {
	w.VisitChildren()
	callee := node.Children[0]
	if callee.Kind == js_ast.KindIdentifier && callee.Text == "bagofholding" {
		w.ReplaceAndVisit(js_ast.NewBoolean(false, 0))
	}
}

func (r *Reducer) visitIf(w *walker.Walker, node *js_ast.Node) {
	w.VisitChildren()
	cond, then, els := node.Children[0], node.Children[1], node.Children[2]

	// A constant condition selects its branch outright
	if cond.CompareBool(true) {
		w.Replace(then)
		return
	}
	if cond.CompareBool(false) {
		if els == nil {
			w.Remove()
		} else {
			w.Replace(els)
		}
		return
	}

	// Empty blocks are usually what's left after other reductions, e.g. a
	// bagofholding() branch. An empty else goes away:
	//   if (cond) { ... } else {}  ->  if (cond) { ... }
	if els != nil && els.Empty() {
		node.Children[2] = nil
		els = nil
	}

	// Both branches empty: only the condition's side effects remain.
	//   if (cond) {} else {}  ->  cond;
	if then.Empty() && els == nil {
		w.Replace(cond)
		return
	}

	// Empty then with an else: negate and flip, then reduce the result.
	//   if (cond) {} else { ... }  ->  if (!(cond)) { ... }
	if then.Empty() && els != nil {
		node.Children[0] = js_ast.NewOp(js_ast.KindUnary, js_ast.UnOpNot, cond.Lineno,
			js_ast.NewNode(js_ast.KindParenthetical, cond.Lineno, cond))
		node.Children[1] = els
		node.Children[2] = nil
		w.VisitChildren()
	}
}

func (r *Reducer) visitObjectLiteralProperty(w *walker.Walker, node *js_ast.Node) {
	w.VisitChildren()
	if node.Empty() {
		return
	}
	key := node.Children[0]
	if key.Kind != js_ast.KindStringLiteral {
		return
	}
	name := key.UnquotedValue()
	if !js_lexer.IsIdentifier(name) {
		return
	}
	w.Replace(js_ast.NewNode(js_ast.KindObjectLiteralProperty, node.Lineno,
		js_ast.NewIdentifier(name, key.Lineno), node.Children[1]))
}

func (r *Reducer) visitDynamicMember(w *walker.Walker, node *js_ast.Node) {
	w.VisitChildren()
	index := node.Children[1]
	if index.Kind != js_ast.KindStringLiteral {
		return
	}
	name := index.UnquotedValue()
	if !js_lexer.IsIdentifier(name) {
		return
	}
	w.Replace(js_ast.NewNode(js_ast.KindStaticMemberExpression, node.Lineno,
		node.Children[0], js_ast.NewIdentifier(name, index.Lineno)))
}
