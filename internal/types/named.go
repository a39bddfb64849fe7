package types

import "strings"

// Named represents a struct type introduced by a struct declaration.
// Two named types are identical only if they share the same TypeName.
type Named struct {
	typ
	obj        *TypeName    // type name object
	underlying Type         // underlying struct (nil until fields are resolved)
	tparams    []*TypeParam // template parameters (nil for plain structs)
}

// NewNamed creates a new named type and binds it to obj.
// The underlying type may be set later using SetUnderlying, which lets
// fields refer to the struct through pointers.
func NewNamed(obj *TypeName, underlying Type) *Named {
	n := &Named{obj: obj, underlying: underlying}
	if obj != nil {
		obj.typ = n
	}
	return n
}

// Obj returns the type name object.
func (n *Named) Obj() *TypeName {
	return n.obj
}

// SetUnderlying sets the underlying type.
func (n *Named) SetUnderlying(underlying Type) {
	n.underlying = underlying
}

// Underlying implements Type.
// While the declaration is still being checked it returns an empty struct.
func (n *Named) Underlying() Type {
	if n.underlying == nil {
		return emptyStruct
	}
	return n.underlying
}

// Struct returns the underlying struct, or nil if not yet resolved.
func (n *Named) Struct() *Struct {
	s, _ := n.underlying.(*Struct)
	return s
}

// TypeParams returns the template parameters of the struct.
func (n *Named) TypeParams() []*TypeParam {
	return n.tparams
}

// SetTypeParams records the template parameters of the struct.
func (n *Named) SetTypeParams(tparams []*TypeParam) {
	n.tparams = tparams
}

// String implements Type.
func (n *Named) String() string {
	if n.obj == nil {
		return "unnamed"
	}
	if len(n.tparams) == 0 {
		return n.obj.Name()
	}
	var buf strings.Builder
	buf.WriteString(n.obj.Name())
	writeTypeParams(&buf, n.tparams)
	return buf.String()
}

var emptyStruct = NewStruct(nil)
