package types2

import (
	"go/constant"

	"github.com/you-not-fish/cp/internal/syntax"
	"github.com/you-not-fish/cp/internal/types"
)

// resolveType resolves a type expression and returns the resulting type,
// or the unknown type if e does not denote a type.
func (c *Checker) resolveType(e syntax.Expr) types.Type {
	var x operand
	c.typExpr(&x, e)
	return x.typ
}

// typExpr evaluates a type expression and sets x to the resulting type.
func (c *Checker) typExpr(x *operand, e syntax.Expr) {
	x.pos = e.Pos()
	x.expr = e
	x.val = nil
	if c.enter(e.Pos()) {
		x.mode = typexpr
		x.typ = nil
		c.typExprInternal(x, e)
	} else {
		x.setInvalid()
	}
	c.leave()
	c.recordType(e, x)
	if x.mode == invalid {
		x.typ = types.Typ[types.Unknown]
	}
}

func (c *Checker) typExprInternal(x *operand, e syntax.Expr) {
	switch e := e.(type) {
	case *syntax.Name:
		c.typeName(x, e)
	case *syntax.ArrayType:
		elem := c.varType(e.Elem)
		arr := types.NewArray(c.arrayLength(e.Len), elem)
		if c.conf.Sizes.Sizeof(arr) < 0 {
			c.errorf(InvalidArraySize, e.Pos(), "array %s is too large", syntax.ExprString(e))
			x.setInvalid()
			return
		}
		x.typ = arr
	case *syntax.PointerType:
		x.typ = types.NewPointer(c.resolveType(e.Base))
	case *syntax.RefType:
		x.typ = types.NewRef(c.resolveType(e.Base))
	default:
		c.errorf(NotAType, e.Pos(), "%s is not a type", syntax.ExprString(e))
		x.setInvalid()
	}
}

// typeName resolves a type name.
func (c *Checker) typeName(x *operand, name *syntax.Name) {
	obj := c.lookup(name.Value)
	if obj == nil {
		c.errorf(UndefinedName, name.Pos(), "undefined: %s", name.Value)
		x.setInvalid()
		return
	}
	c.recordUse(name, obj)

	tn, ok := obj.(*types.TypeName)
	if !ok {
		c.errorf(NotAType, name.Pos(), "%s is not a type", name.Value)
		x.setInvalid()
		return
	}
	if tn.Type() == nil {
		x.setInvalid()
		return
	}
	x.typ = tn.Type()
}

// arrayLength evaluates an array size, which must be a constant
// non-negative integer. Invalid sizes are reported and yield 0.
func (c *Checker) arrayLength(e syntax.Expr) int64 {
	var x operand
	c.expr(&x, e)
	if x.mode == invalid {
		return 0
	}
	if x.mode != constant_ || x.val == nil || x.val.Kind() != constant.Int {
		c.errorf(InvalidArraySize, e.Pos(), "array size %s is not a constant integer", syntax.ExprString(e))
		return 0
	}
	if constant.Sign(x.val) < 0 {
		c.errorf(InvalidArraySize, e.Pos(), "array size %s is negative", x.val)
		return 0
	}
	n, ok := constInt64(&x)
	if !ok {
		c.errorf(InvalidArraySize, e.Pos(), "array size %s is too large", x.val)
		return 0
	}
	return n
}
