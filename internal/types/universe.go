package types

import (
	"fmt"
	"go/constant"

	"github.com/you-not-fish/cp/internal/syntax"
)

// NoPos is the zero position value, used for predeclared objects.
var NoPos syntax.Pos

// Universe is the root scope containing all predeclared objects.
var Universe *Scope

// Predeclared objects accessible via the Universe scope.
var (
	universeInt   *TypeName
	universeFloat *TypeName
	universeBool  *TypeName
	universeChar  *TypeName
	universeVoid  *TypeName

	universeTrue  *Const
	universeFalse *Const
)

// PredeclaredTypes lists the names of the primitive types in declaration
// order.
var PredeclaredTypes = []string{"int", "float", "bool", "char", "void"}

var predeclaredKinds = map[string]BasicKind{
	"int":   Int,
	"float": Float,
	"bool":  Bool,
	"char":  Char,
	"void":  Void,
}

func init() {
	universeTrue = NewConst(NoPos, "true", Typ[Bool], constant.MakeBool(true))
	universeFalse = NewConst(NoPos, "false", Typ[Bool], constant.MakeBool(false))

	u, err := NewUniverse(PredeclaredTypes...)
	if err != nil {
		panic(err)
	}
	Universe = u

	universeInt = Universe.Lookup("int").(*TypeName)
	universeFloat = Universe.Lookup("float").(*TypeName)
	universeBool = Universe.Lookup("bool").(*TypeName)
	universeChar = Universe.Lookup("char").(*TypeName)
	universeVoid = Universe.Lookup("void").(*TypeName)
}

// NewUniverse builds a root scope holding the named primitive types and
// the constants true and false. It fails for names that are not primitive
// types and for duplicates.
func NewUniverse(names ...string) (*Scope, error) {
	u := NewScope(nil, UniverseScope, NoPos, NoPos, "universe")
	for _, name := range names {
		kind, ok := predeclaredKinds[name]
		if !ok {
			return nil, fmt.Errorf("unknown builtin type %q", name)
		}
		typ := Typ[kind]
		if err := u.Declare(NewTypeName(NoPos, typ.name, typ)); err != nil {
			return nil, err
		}
	}
	// Constants are shared across universes; their parent is the first
	// scope they were inserted into.
	u.elems["true"] = universeTrue
	u.elems["false"] = universeFalse
	if universeTrue.parent == nil {
		universeTrue.setParent(u)
		universeFalse.setParent(u)
	}
	return u, nil
}

// Predeclared type accessors
func UniverseInt() *TypeName   { return universeInt }
func UniverseFloat() *TypeName { return universeFloat }
func UniverseBool() *TypeName  { return universeBool }
func UniverseChar() *TypeName  { return universeChar }
func UniverseVoid() *TypeName  { return universeVoid }

// Predeclared constant accessors
func UniverseTrue() *Const  { return universeTrue }
func UniverseFalse() *Const { return universeFalse }
