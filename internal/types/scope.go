package types

import (
	"fmt"
	"sort"
	"strings"

	"github.com/you-not-fish/cp/internal/syntax"
)

// ScopeKind classifies a scope by the construct that opened it.
type ScopeKind uint8

const (
	UniverseScope ScopeKind = iota
	GlobalScope
	BlockScope
	FuncScope
	LoopScope
	TemplateScope
)

var scopeKindNames = [...]string{
	UniverseScope: "universe",
	GlobalScope:   "global",
	BlockScope:    "block",
	FuncScope:     "function",
	LoopScope:     "loop",
	TemplateScope: "template",
}

func (k ScopeKind) String() string {
	if int(k) < len(scopeKindNames) {
		return scopeKindNames[k]
	}
	return fmt.Sprintf("ScopeKind(%d)", k)
}

// Scope represents a lexical scope.
// Scopes form a tree starting from the Universe scope.
type Scope struct {
	parent   *Scope
	children []*Scope
	kind     ScopeKind
	elems    map[string]Object
	pos, end syntax.Pos
	comment  string // debugging comment (e.g., "function foo")
}

// NewScope creates a new scope of the given kind with the given parent.
func NewScope(parent *Scope, kind ScopeKind, pos, end syntax.Pos, comment string) *Scope {
	s := &Scope{
		parent:  parent,
		kind:    kind,
		elems:   make(map[string]Object),
		pos:     pos,
		end:     end,
		comment: comment,
	}
	if parent != nil {
		parent.children = append(parent.children, s)
	}
	return s
}

// Parent returns the parent scope, or nil for the Universe scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Kind returns the kind of the scope.
func (s *Scope) Kind() ScopeKind {
	return s.kind
}

// Children returns the list of child scopes.
func (s *Scope) Children() []*Scope {
	return s.children
}

// NumChildren returns the number of child scopes.
func (s *Scope) NumChildren() int {
	return len(s.children)
}

// Pos returns the start position of the scope in source.
func (s *Scope) Pos() syntax.Pos {
	return s.pos
}

// End returns the end position of the scope in source.
func (s *Scope) End() syntax.Pos {
	return s.end
}

// Comment returns the scope's comment (for debugging).
func (s *Scope) Comment() string {
	return s.comment
}

// Lookup returns the object with the given name in the current scope.
// Returns nil if not found in this scope (does not search parent scopes).
func (s *Scope) Lookup(name string) Object {
	return s.elems[name]
}

// LookupParent returns the object with the given name by searching
// from the current scope up through all parent scopes.
// Returns the object and the scope in which it was found.
// Returns (nil, nil) if not found.
func (s *Scope) LookupParent(name string) (Object, *Scope) {
	for scope := s; scope != nil; scope = scope.parent {
		if obj := scope.elems[name]; obj != nil {
			return obj, scope
		}
	}
	return nil, nil
}

// Insert inserts an object into the scope.
// If an object with the same name already exists, returns the existing object.
// Otherwise, returns nil.
func (s *Scope) Insert(obj Object) Object {
	name := obj.Name()
	if existing := s.elems[name]; existing != nil {
		return existing
	}
	s.elems[name] = obj
	obj.setParent(s)
	return nil
}

// Declare inserts obj into the scope. If the name is already declared in
// this scope, obj is not inserted and a *RedeclarationError is returned.
// Declarations in enclosing scopes are shadowed, not reported.
func (s *Scope) Declare(obj Object) error {
	if prev := s.Insert(obj); prev != nil {
		return &RedeclarationError{Name: obj.Name(), Pos: obj.Pos(), Prev: prev}
	}
	return nil
}

// LoopDepth returns the number of loop scopes between s and the nearest
// enclosing function scope. Loops outside the function do not count.
func (s *Scope) LoopDepth() int {
	n := 0
	for scope := s; scope != nil && scope.kind != FuncScope; scope = scope.parent {
		if scope.kind == LoopScope {
			n++
		}
	}
	return n
}

// Innermost returns the nearest scope of the given kind, starting at s.
func (s *Scope) Innermost(kind ScopeKind) *Scope {
	for scope := s; scope != nil; scope = scope.parent {
		if scope.kind == kind {
			return scope
		}
	}
	return nil
}

// Names returns the names of all objects in the scope, sorted alphabetically.
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.elems))
	for name := range s.elems {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NumObjects returns the number of objects in the scope.
func (s *Scope) NumObjects() int {
	return len(s.elems)
}

// String returns a string representation of the scope for debugging.
func (s *Scope) String() string {
	var buf strings.Builder
	s.writeTo(&buf, 0)
	return buf.String()
}

func (s *Scope) writeTo(buf *strings.Builder, indent int) {
	prefix := strings.Repeat("  ", indent)
	fmt.Fprintf(buf, "%s%s scope %s {\n", prefix, s.kind, s.comment)
	for _, name := range s.Names() {
		obj := s.elems[name]
		fmt.Fprintf(buf, "%s  %s: %s\n", prefix, name, obj.Type())
	}
	for _, child := range s.children {
		child.writeTo(buf, indent+1)
	}
	fmt.Fprintf(buf, "%s}\n", prefix)
}

// RedeclarationError reports a name declared twice in one scope.
type RedeclarationError struct {
	Name string
	Pos  syntax.Pos // position of the rejected declaration
	Prev Object     // the declaration already in scope
}

func (e *RedeclarationError) Error() string {
	msg := fmt.Sprintf("%s redeclared in this block", e.Name)
	if e.Prev != nil && e.Prev.Pos().IsValid() {
		msg += fmt.Sprintf(" (previous declaration at %s)", e.Prev.Pos())
	}
	if e.Pos.IsValid() {
		return e.Pos.String() + ": " + msg
	}
	return msg
}
