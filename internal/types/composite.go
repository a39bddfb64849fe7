package types

import (
	"fmt"
	"strings"
)

// Array represents an array type Elem[N].
type Array struct {
	typ
	len  int64
	elem Type
}

// NewArray creates a new array type with the given length and element type.
func NewArray(len int64, elem Type) *Array {
	return &Array{len: len, elem: elem}
}

// Len returns the array length.
func (a *Array) Len() int64 {
	return a.len
}

// Elem returns the array element type.
func (a *Array) Elem() Type {
	return a.elem
}

// Underlying implements Type.
func (a *Array) Underlying() Type {
	return a
}

// String implements Type.
func (a *Array) String() string {
	return fmt.Sprintf("%s[%d]", a.elem, a.len)
}

// Struct represents the field list of a struct declaration.
// Unnamed fields have an empty name; they take part in layout but not in
// field lookup.
type Struct struct {
	typ
	fields  []*Var  // field declarations, in source order
	size    int64   // computed size (0 if not yet computed)
	align   int64   // computed alignment (0 if not yet computed)
	offsets []int64 // field offsets (nil if not yet computed)
}

// NewStruct creates a new struct type with the given fields.
func NewStruct(fields []*Var) *Struct {
	return &Struct{fields: fields}
}

// NumFields returns the number of fields.
func (s *Struct) NumFields() int {
	return len(s.fields)
}

// Field returns the field at the given index.
func (s *Struct) Field(i int) *Var {
	return s.fields[i]
}

// Fields returns all fields.
func (s *Struct) Fields() []*Var {
	return s.fields
}

// Lookup returns the named field and its index, or (nil, -1).
// Unnamed fields are never found.
func (s *Struct) Lookup(name string) (*Var, int) {
	if name == "" {
		return nil, -1
	}
	for i, f := range s.fields {
		if f.name == name {
			return f, i
		}
	}
	return nil, -1
}

// Size returns the struct size in bytes.
// Must be called after layout is computed.
func (s *Struct) Size() int64 {
	return s.size
}

// Align returns the struct alignment in bytes.
// Must be called after layout is computed.
func (s *Struct) Align() int64 {
	return s.align
}

// Offset returns the offset of field i in bytes.
// Must be called after layout is computed.
func (s *Struct) Offset(i int) int64 {
	return s.offsets[i]
}

// Offsets returns all field offsets.
func (s *Struct) Offsets() []int64 {
	return s.offsets
}

// SetLayout sets the computed layout information.
func (s *Struct) SetLayout(size, align int64, offsets []int64) {
	s.size = size
	s.align = align
	s.offsets = offsets
}

// LayoutDone reports whether layout has been computed.
func (s *Struct) LayoutDone() bool {
	return s.offsets != nil
}

// Underlying implements Type.
func (s *Struct) Underlying() Type {
	return s
}

// String implements Type.
func (s *Struct) String() string {
	var buf strings.Builder
	buf.WriteString("struct{")
	for i, f := range s.fields {
		if i > 0 {
			buf.WriteString("; ")
		}
		if f.name != "" {
			buf.WriteString(f.name)
			buf.WriteString(": ")
		}
		buf.WriteString(f.Type().String())
	}
	buf.WriteString("}")
	return buf.String()
}

// Pointer represents a pointer type *T.
type Pointer struct {
	typ
	base Type
}

// NewPointer creates a new pointer type.
func NewPointer(base Type) *Pointer {
	return &Pointer{base: base}
}

// Elem returns the base type that the pointer points to.
func (p *Pointer) Elem() Type {
	return p.base
}

// Underlying implements Type.
func (p *Pointer) Underlying() Type {
	return p
}

// String implements Type.
func (p *Pointer) String() string {
	return "*" + p.base.String()
}

// Ref represents a reference type &T. A reference is used like the value
// it refers to: member access and dereference see through it.
type Ref struct {
	typ
	base Type
}

// NewRef creates a new reference type.
func NewRef(base Type) *Ref {
	return &Ref{base: base}
}

// Elem returns the referenced type.
func (r *Ref) Elem() Type {
	return r.base
}

// Underlying implements Type.
func (r *Ref) Underlying() Type {
	return r
}

// String implements Type.
func (r *Ref) String() string {
	return "&" + r.base.String()
}

// Func represents a function signature.
type Func struct {
	typ
	tparams []*TypeParam // template parameters (nil for plain functions)
	params  []*Var       // parameters
	result  Type         // return type (Typ[Void] when none is written)
}

// NewFunc creates a new function type. A nil result means void.
func NewFunc(params []*Var, result Type) *Func {
	if result == nil {
		result = Typ[Void]
	}
	return &Func{params: params, result: result}
}

// Params returns the parameter list.
func (f *Func) Params() []*Var {
	return f.params
}

// NumParams returns the number of parameters.
func (f *Func) NumParams() int {
	return len(f.params)
}

// Param returns the parameter at index i.
func (f *Func) Param(i int) *Var {
	return f.params[i]
}

// Result returns the result type; it is never nil.
func (f *Func) Result() Type {
	return f.result
}

// TypeParams returns the template parameters of the function.
func (f *Func) TypeParams() []*TypeParam {
	return f.tparams
}

// SetTypeParams records the template parameters of the function.
func (f *Func) SetTypeParams(tparams []*TypeParam) {
	f.tparams = tparams
}

// Underlying implements Type.
func (f *Func) Underlying() Type {
	return f
}

// String implements Type.
func (f *Func) String() string {
	var buf strings.Builder
	buf.WriteString("fn")
	writeTypeParams(&buf, f.tparams)
	buf.WriteString("(")
	for i, p := range f.params {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(p.Name())
		buf.WriteString(": ")
		buf.WriteString(p.Type().String())
	}
	buf.WriteString("): ")
	buf.WriteString(f.result.String())
	return buf.String()
}

// TypeParam is the opaque placeholder type of a template parameter.
// It is never substituted.
type TypeParam struct {
	typ
	obj   *TypeName
	index int
}

// NewTypeParam creates the type denoted by obj, the index'th parameter of
// its template, and binds it to obj.
func NewTypeParam(obj *TypeName, index int) *TypeParam {
	tp := &TypeParam{obj: obj, index: index}
	if obj != nil {
		obj.typ = tp
	}
	return tp
}

// Obj returns the type name of the parameter.
func (t *TypeParam) Obj() *TypeName {
	return t.obj
}

// Index returns the position of the parameter in its template list.
func (t *TypeParam) Index() int {
	return t.index
}

// Underlying implements Type.
func (t *TypeParam) Underlying() Type {
	return t
}

// String implements Type.
func (t *TypeParam) String() string {
	if t.obj != nil {
		return t.obj.Name()
	}
	return fmt.Sprintf("T%d", t.index)
}

func writeTypeParams(buf *strings.Builder, tparams []*TypeParam) {
	if len(tparams) == 0 {
		return
	}
	buf.WriteString("<")
	for i, tp := range tparams {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(tp.String())
	}
	buf.WriteString(">")
}
