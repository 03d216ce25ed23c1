package renamer

// Variable and property renaming.
//
// Variable renaming works per function. A collection pass walks a function
// body without entering nested functions and declares everything the body
// introduces: function declaration names, var items, catch parameters, and
// (for local scopes) the formal parameters. Declarations then receive short
// names in declaration order from a name factory, skipping anything already
// taken by an enclosing scope's renames. The global scope never renames; it
// only reserves names so references to globals keep working. A second pass
// rewrites identifiers through the scope chain.
//
// Assigning to an undeclared name in a local scope, or iterating an
// undeclared for-in binding, usually means a missing "var". Those names are
// reported as implicit globals and pinned in the global scope.
//
// Property renaming shortens names matching _xxx (one leading underscore)
// file-wide, allocating replacements with the same "_" prefix so renamed and
// unrenamed private names can't collide. It is unsafe across files: two
// classes in different files can each use _foo and be renamed apart. See the
// README caveat before enabling it on code with cross-file contracts.

import (
	"fmt"

	"github.com/jsxmin/jsxmin/internal/js_ast"
	"github.com/jsxmin/jsxmin/internal/logger"
	"github.com/jsxmin/jsxmin/internal/reducer"
)

// NameFactory yields "a", "b", ... "z", "aa", "ba", ... with an optional
// fixed prefix. The least significant position is first and carries.
type NameFactory struct {
	current []byte
	prefix  string
}

func NewNameFactory(prefix string) *NameFactory {
	return &NameFactory{current: []byte{'a'}, prefix: prefix}
}

func (f *NameFactory) Next() string {
	result := f.prefix + string(f.current)
	for i := 0; ; i++ {
		if i == len(f.current) {
			f.current = append(f.current, 'a')
			break
		}
		if f.current[i] < 'z' {
			f.current[i]++
			break
		}
		f.current[i] = 'a'
	}
	return result
}

// Scope maps original names to their replacements, tracks which new names
// renaming has handed out, and chains to the enclosing scope. Parents always
// outlive children; scopes are built and dropped along the walk.
type Scope struct {
	parent      *Scope
	global      bool
	names       []string // declaration order
	replacement map[string]string
	newNames    map[string]bool
}

func NewScope(parent *Scope) *Scope {
	return &Scope{
		parent:      parent,
		global:      parent == nil,
		replacement: make(map[string]string),
		newNames:    make(map[string]bool),
	}
}

// Declare records a name introduced in this scope, initially mapped to
// itself.
func (s *Scope) Declare(name string) {
	if _, ok := s.replacement[name]; !ok {
		s.names = append(s.names, name)
		s.replacement[name] = name
	}
}

// Reserve pins a name to itself in this scope. It does not mark the name as
// in use, so a name factory may still hand it out in a nested scope.
func (s *Scope) Reserve(name string) {
	s.Declare(name)
}

// Declared checks the scope chain.
func (s *Scope) Declared(name string) bool {
	if _, ok := s.replacement[name]; ok {
		return true
	}
	if s.parent == nil {
		return false
	}
	return s.parent.Declared(name)
}

// NewName resolves a name through the scope chain, falling back to the
// original for names declared nowhere.
func (s *Scope) NewName(name string) string {
	if newName, ok := s.replacement[name]; ok {
		return newName
	}
	if s.parent == nil {
		return name
	}
	return s.parent.NewName(name)
}

// InUse checks whether renaming already took a candidate in this scope or
// any ancestor.
func (s *Scope) InUse(name string) bool {
	if s.newNames[name] {
		return true
	}
	if s.parent == nil {
		return false
	}
	return s.parent.InUse(name)
}

func (s *Scope) rename(name string, newName string) {
	s.replacement[name] = newName
	s.newNames[newName] = true
}

// Browsers deliver the implicit event object through its name, so it keeps
// its name even as a formal parameter.
func needRenameLocal(name string) bool {
	return name != "event"
}

// RenameLocals assigns short names to this scope's declarations in
// declaration order.
func (s *Scope) RenameLocals() {
	factory := NewNameFactory("")
	for _, name := range s.names {
		if !needRenameLocal(name) {
			continue
		}
		newName := factory.Next()
		for s.InUse(newName) {
			newName = factory.Next()
		}
		s.rename(name, newName)
	}
}

////////////////////////////////////////////////////////////////////////////////
// Variable renaming

type variableRenamer struct {
	log         logger.Log
	globalScope *Scope
}

// RenameVariables renames locals throughout the program. Globals keep their
// names.
func RenameVariables(log logger.Log, root *js_ast.Node) {
	r := &variableRenamer{log: log, globalScope: NewScope(nil)}
	r.buildScope(root, r.globalScope)
	r.minify(root, r.globalScope)
}

func (r *variableRenamer) minify(node *js_ast.Node, scope *Scope) {
	if node == nil {
		return
	}

	switch node.Kind {
	case js_ast.KindObjectLiteralProperty:
		// {prop: value} — the key is not a variable reference
		r.minify(node.Children[1], scope)

	case js_ast.KindStaticMemberExpression:
		// a.b — the member name is not a variable reference
		r.minify(node.Children[0], scope)

	case js_ast.KindIdentifier:
		if scope.Declared(node.Text) {
			node.Text = scope.NewName(node.Text)
		}

	case js_ast.KindFunctionDeclaration, js_ast.KindFunctionExpression:
		// A "with" block or an eval() call anywhere below makes renaming
		// unsound, so such functions are left entirely alone
		if functionHasWithOrEval(node) {
			return
		}

		child := NewScope(scope)
		for _, arg := range node.Children[1].Children {
			child.Declare(arg.Text)
		}
		r.buildScope(node.Children[2], child)
		child.RenameLocals()

		// The function's own name lives in the enclosing scope
		r.minify(node.Children[0], scope)
		r.minify(node.Children[1], child)
		r.minify(node.Children[2], child)

	default:
		for _, c := range node.Children {
			r.minify(c, scope)
		}
	}
}

// buildScope collects the names a body introduces without recursing into
// nested function bodies; those get their own scope when the rename walk
// reaches them.
func (r *variableRenamer) buildScope(node *js_ast.Node, scope *Scope) {
	if node == nil {
		return
	}

	switch node.Kind {
	case js_ast.KindFunctionExpression:
		return

	case js_ast.KindFunctionDeclaration:
		if name := node.Children[0]; name != nil && name.Kind == js_ast.KindIdentifier {
			scope.Declare(name.Text)
		}
		return

	case js_ast.KindVarDeclaration:
		for _, item := range node.Children {
			id := item
			if id.Kind == js_ast.KindAssignment || id.Kind == js_ast.KindTypehint {
				id = id.Children[0]
			}
			if id.Kind == js_ast.KindTypehint {
				id = id.Children[0]
			}
			if id.Kind == js_ast.KindIdentifier {
				scope.Declare(id.Text)
			}
		}
		return

	case js_ast.KindTry:
		// The catch parameter behaves like a local variable
		if param := node.Children[1]; param != nil && param.Kind == js_ast.KindIdentifier {
			scope.Declare(param.Text)
		}

	case js_ast.KindAssignment, js_ast.KindForIn:
		// Assignment to an undeclared name, or an undeclared for-in binding:
		// treat it as a global so renaming can't capture it, and point out
		// the probably missing "var"
		if target := node.Children[0]; target != nil && target.Kind == js_ast.KindIdentifier &&
			!scope.Declared(target.Text) {
			if !scope.global || node.Kind == js_ast.KindForIn {
				r.log.AddWarning(target.Lineno,
					fmt.Sprintf("%q is not declared, missing \"var %s\"?", target.Text, target.Text))
				r.globalScope.Reserve(target.Text)
			}
		}
	}

	for _, child := range node.Children {
		r.buildScope(child, scope)
	}
}

// functionHasWithOrEval scans a function subtree, nested functions included,
// stopping at the first hit.
func functionHasWithOrEval(node *js_ast.Node) bool {
	if node == nil {
		return false
	}
	for _, child := range node.Children {
		if child == nil {
			continue
		}
		if child.Kind == js_ast.KindWith {
			return true
		}
		if child.Kind == js_ast.KindFunctionCall {
			if callee := child.Children[0]; callee.Kind == js_ast.KindIdentifier && callee.Text == "eval" {
				return true
			}
		}
		if functionHasWithOrEval(child) {
			return true
		}
	}
	return false
}

////////////////////////////////////////////////////////////////////////////////
// Property renaming

type propertyRenamer struct {
	scope   *Scope
	factory *NameFactory
}

func needRenameProperty(name string) bool {
	return len(name) > 1 && name[0] == '_' && name[1] != '_'
}

// RenameProperties shortens _xxx property names file-wide. The same original
// name always maps to the same short name within one file. Reduction runs
// first so string-keyed accesses ("a['_b']", "{'_b': v}") have already become
// identifier form and get picked up too.
func RenameProperties(root *js_ast.Node) {
	reducer.Reduce(root)
	r := &propertyRenamer{scope: NewScope(nil), factory: NewNameFactory("_")}
	r.minify(root)
}

func (r *propertyRenamer) rename(id *js_ast.Node) {
	name := id.Text
	if !needRenameProperty(name) {
		return
	}
	if !r.scope.Declared(name) {
		r.scope.Declare(name)
		newName := r.factory.Next()
		for r.scope.InUse(newName) {
			newName = r.factory.Next()
		}
		r.scope.rename(name, newName)
	}
	id.Text = r.scope.NewName(name)
}

func (r *propertyRenamer) minify(node *js_ast.Node) {
	if node == nil {
		return
	}

	switch node.Kind {
	case js_ast.KindObjectLiteralProperty:
		if key := node.Children[0]; key != nil && key.Kind == js_ast.KindIdentifier {
			r.rename(key)
		}
		r.minify(node.Children[1])

	case js_ast.KindStaticMemberExpression:
		r.minify(node.Children[0])
		// E4X member forms ("a.@b", "a.*") are not properties; skip them
		if member := node.Children[1]; member.Kind == js_ast.KindIdentifier {
			r.rename(member)
		}

	default:
		for _, child := range node.Children {
			r.minify(child)
		}
	}
}
