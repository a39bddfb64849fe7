package types

// BasicKind describes the kind of basic type.
type BasicKind int

const (
	Invalid BasicKind = iota // invalid type

	// Unknown is the poison type given to expressions that failed to
	// check. It is compatible with every type.
	Unknown

	Int
	Float
	Bool
	Char
	Void
)

// BasicInfo describes properties of a basic type.
type BasicInfo int

const (
	InfoBoolean BasicInfo = 1 << iota
	InfoInteger
	InfoFloat
	InfoChar
	InfoPoison
	InfoNumeric = InfoInteger | InfoFloat
)

// Basic represents a basic type: int, float, bool, char, void and the
// poison type.
type Basic struct {
	typ
	kind BasicKind
	info BasicInfo
	name string
}

// Kind returns the kind of the basic type.
func (b *Basic) Kind() BasicKind {
	return b.kind
}

// Info returns information about the basic type.
func (b *Basic) Info() BasicInfo {
	return b.info
}

// Name returns the name of the basic type.
func (b *Basic) Name() string {
	return b.name
}

// Underlying implements Type.
func (b *Basic) Underlying() Type {
	return b
}

// String implements Type.
func (b *Basic) String() string {
	return b.name
}

// Typ holds the predeclared basic types, indexed by BasicKind.
// Typ[Invalid] is nil, representing an invalid type.
var Typ = []*Basic{
	Invalid: nil,
	Unknown: {kind: Unknown, info: InfoPoison, name: "unknown"},
	Int:     {kind: Int, info: InfoInteger, name: "int"},
	Float:   {kind: Float, info: InfoFloat, name: "float"},
	Bool:    {kind: Bool, info: InfoBoolean, name: "bool"},
	Char:    {kind: Char, info: InfoInteger | InfoChar, name: "char"},
	Void:    {kind: Void, name: "void"},
}
