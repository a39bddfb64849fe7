package types

import (
	"go/constant"

	"github.com/you-not-fish/cp/internal/syntax"
)

// Object represents a declared entity: variable, type name, function or
// constant.
type Object interface {
	Name() string    // object name
	Type() Type      // object type
	Pos() syntax.Pos // declaration position
	Parent() *Scope  // enclosing scope

	setParent(*Scope) // internal: set parent scope
	aObject()         // marker method to restrict implementations
}

// object is the base struct for all objects.
type object struct {
	name   string
	typ    Type
	pos    syntax.Pos
	parent *Scope
}

func (o *object) Name() string       { return o.name }
func (o *object) Type() Type         { return o.typ }
func (o *object) Pos() syntax.Pos    { return o.pos }
func (o *object) Parent() *Scope     { return o.parent }
func (o *object) setParent(s *Scope) { o.parent = s }
func (*object) aObject()             {}

// VarKind distinguishes the roles a Var can play.
type VarKind uint8

const (
	LocalVar VarKind = iota // declared by var or the C declaration form
	ParamVar                // function parameter
	FieldVar                // struct field
)

// Var represents a variable, a function parameter or a struct field.
type Var struct {
	object
	kind VarKind
}

// NewVar creates a new variable object.
func NewVar(pos syntax.Pos, name string, typ Type) *Var {
	return &Var{object: object{name: name, typ: typ, pos: pos}}
}

// NewParam creates a new function parameter object.
func NewParam(pos syntax.Pos, name string, typ Type) *Var {
	return &Var{object: object{name: name, typ: typ, pos: pos}, kind: ParamVar}
}

// NewField creates a new struct field object. An empty name denotes an
// unnamed field.
func NewField(pos syntax.Pos, name string, typ Type) *Var {
	return &Var{object: object{name: name, typ: typ, pos: pos}, kind: FieldVar}
}

// Kind returns the role of the variable.
func (v *Var) Kind() VarKind {
	return v.kind
}

// IsField reports whether this variable is a struct field.
func (v *Var) IsField() bool {
	return v.kind == FieldVar
}

// SetType sets the variable's type.
func (v *Var) SetType(typ Type) {
	v.typ = typ
}

// TypeName represents a declared type name: a primitive, a struct, an
// alias or a template parameter.
type TypeName struct {
	object
	alias bool
}

// NewTypeName creates a new type name object.
func NewTypeName(pos syntax.Pos, name string, typ Type) *TypeName {
	return &TypeName{object: object{name: name, typ: typ, pos: pos}}
}

// NewAlias creates a type name that denotes typ itself.
func NewAlias(pos syntax.Pos, name string, typ Type) *TypeName {
	return &TypeName{object: object{name: name, typ: typ, pos: pos}, alias: true}
}

// IsAlias reports whether the name was declared by an alias declaration.
func (t *TypeName) IsAlias() bool {
	return t.alias
}

// SetType sets the type associated with the type name.
func (t *TypeName) SetType(typ Type) {
	t.typ = typ
}

// FuncObj represents a declared function.
type FuncObj struct {
	object
	sig *Func // function signature (set after construction)
}

// NewFuncObj creates a new function object.
// The signature should be set later using SetSignature.
func NewFuncObj(pos syntax.Pos, name string) *FuncObj {
	return &FuncObj{object: object{name: name, pos: pos}}
}

// Signature returns the function signature.
func (f *FuncObj) Signature() *Func {
	return f.sig
}

// SetSignature sets the function signature.
func (f *FuncObj) SetSignature(sig *Func) {
	f.sig = sig
	f.typ = sig
}

// Const represents a predeclared constant such as true or false.
type Const struct {
	object
	val constant.Value
}

// NewConst creates a new constant object.
func NewConst(pos syntax.Pos, name string, typ Type, val constant.Value) *Const {
	return &Const{object: object{name: name, typ: typ, pos: pos}, val: val}
}

// Val returns the constant's value.
func (c *Const) Val() constant.Value {
	return c.val
}
