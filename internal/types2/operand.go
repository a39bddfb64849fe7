package types2

import (
	"go/constant"

	"github.com/you-not-fish/cp/internal/syntax"
	"github.com/you-not-fish/cp/internal/types"
)

// operandMode describes the mode of an operand.
type operandMode int

const (
	invalid   operandMode = iota // operand failed to check; its type is unknown
	novalue                      // operand has no value (void call, valueless block)
	typexpr                      // operand is a type expression
	constant_                    // operand is a constant value
	variable                     // operand is an lvalue
	value                        // operand is a computed value (not addressable)
)

// operand represents the result of evaluating an expression.
type operand struct {
	mode operandMode
	pos  syntax.Pos
	typ  types.Type
	val  constant.Value // constant value (only valid when mode == constant_)
	expr syntax.Expr    // source expression (for error reporting)
}

// String returns a string representation of the operand for debugging.
func (x *operand) String() string {
	if x.mode == invalid {
		return "invalid operand"
	}
	if x.typ == nil {
		return "operand without type"
	}
	return x.typ.String()
}

// poisoned reports whether x already failed to check. Operations on a
// poisoned operand yield the unknown type without further diagnostics.
func (x *operand) poisoned() bool {
	return x.mode == invalid || types.IsUnknown(x.typ) || types.IsTypeParam(x.typ)
}

// setConst sets the operand to a constant value.
func (x *operand) setConst(typ types.Type, val constant.Value) {
	x.mode = constant_
	x.typ = typ
	x.val = val
}

// setVar sets the operand to an lvalue.
func (x *operand) setVar(typ types.Type) {
	x.mode = variable
	x.typ = typ
	x.val = nil
}

// setValue sets the operand to a computed value.
func (x *operand) setValue(typ types.Type) {
	x.mode = value
	x.typ = typ
	x.val = nil
}

// setInvalid poisons the operand.
func (x *operand) setInvalid() {
	x.mode = invalid
	x.typ = types.Typ[types.Unknown]
	x.val = nil
}

// load reads x as an rvalue: a reference is replaced by the value it
// refers to. The operand stays an lvalue.
func (x *operand) load() {
	if r, ok := x.typ.(*types.Ref); ok {
		x.typ = r.Elem()
	}
}

// describe returns the operand's type for diagnostics.
func (x *operand) describe() string {
	if x.mode == novalue {
		return "void"
	}
	if x.typ == nil {
		return "unknown"
	}
	return x.typ.String()
}
