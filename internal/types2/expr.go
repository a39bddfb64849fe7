package types2

import (
	"go/constant"
	"go/token"

	"github.com/you-not-fish/cp/internal/syntax"
	"github.com/you-not-fish/cp/internal/types"
)

// expr evaluates an expression and sets x to the result.
func (c *Checker) expr(x *operand, e syntax.Expr) {
	x.pos = e.Pos()
	x.expr = e
	if c.enter(e.Pos()) {
		c.exprInternal(x, e)
	} else {
		x.setInvalid()
	}
	c.leave()
	c.recordType(e, x)
}

// exprInternal is the main expression checking function.
func (c *Checker) exprInternal(x *operand, e syntax.Expr) {
	x.setInvalid()

	switch e := e.(type) {
	case *syntax.Name:
		c.ident(x, e)
	case *syntax.BasicLit:
		c.basicLit(x, e)
	case *syntax.Operation:
		if e.Y == nil {
			c.unary(x, e)
		} else {
			c.binary(x, e)
		}
	case *syntax.AssignExpr:
		c.assign(x, e)
	case *syntax.CallExpr:
		c.call(x, e)
	case *syntax.IndexExpr:
		c.index(x, e)
	case *syntax.SelectorExpr:
		c.selector(x, e)
	case *syntax.Block:
		c.block(x, e)
	case *syntax.ArrayType, *syntax.PointerType, *syntax.RefType:
		c.errorf(NotAValue, e.Pos(), "%s is a type, not a value", syntax.ExprString(e))
	default:
		c.internalf(e.Pos(), "unexpected expression %T", e)
	}
}

// ident evaluates an identifier.
func (c *Checker) ident(x *operand, name *syntax.Name) {
	obj := c.lookup(name.Value)
	if obj == nil {
		c.errorf(UndefinedName, name.Pos(), "undefined: %s", name.Value)
		return
	}
	c.recordUse(name, obj)

	switch obj := obj.(type) {
	case *types.Var:
		x.setVar(obj.Type())
	case *types.FuncObj:
		x.setValue(obj.Signature())
	case *types.Const:
		x.setConst(obj.Type(), obj.Val())
	case *types.TypeName:
		if types.IsTypeParam(obj.Type()) {
			c.errorf(NotAValue, name.Pos(), "template parameter %s is a type, not a value", name.Value)
			return
		}
		c.errorf(NotAValue, name.Pos(), "%s is a type, not a value", name.Value)
	default:
		c.internalf(name.Pos(), "unexpected object %T", obj)
	}
}

// basicLit evaluates a literal. Numeric literals are constants; string
// literals are values of type *char.
func (c *Checker) basicLit(x *operand, lit *syntax.BasicLit) {
	switch lit.Kind {
	case syntax.IntLit:
		val := constant.MakeFromLiteral(lit.Value, token.INT, 0)
		if val.Kind() != constant.Int {
			c.mismatch(lit.Pos(), "int", "invalid literal", "invalid integer literal %s", lit.Value)
			return
		}
		if _, exact := constant.Int64Val(val); !exact {
			c.mismatch(lit.Pos(), "int", "untyped constant", "integer constant %s overflows int", lit.Value)
			return
		}
		x.setConst(types.Typ[types.Int], val)

	case syntax.FloatLit:
		val := constant.MakeFromLiteral(lit.Value, token.FLOAT, 0)
		if val.Kind() != constant.Float && val.Kind() != constant.Int {
			c.mismatch(lit.Pos(), "float", "invalid literal", "invalid float literal %s", lit.Value)
			return
		}
		x.setConst(types.Typ[types.Float], constant.ToFloat(val))

	case syntax.StringLit:
		x.setValue(types.NewPointer(types.Typ[types.Char]))

	default:
		c.internalf(lit.Pos(), "unknown literal kind %v", lit.Kind)
	}
}

// rvalue loads x and reports whether it can be used as a value.
// A void operand is reported and poisoned.
func (c *Checker) rvalue(x *operand) bool {
	if x.mode == invalid {
		return false
	}
	if x.mode == novalue || types.IsVoid(x.typ) {
		c.mismatch(x.pos, "value", "void", "%s (no value) used as value", syntax.ExprString(x.expr))
		x.setInvalid()
		return false
	}
	x.load()
	return true
}

// unary evaluates a prefix or postfix operation.
func (c *Checker) unary(x *operand, e *syntax.Operation) {
	c.expr(x, e.X)
	if e.Op == syntax.Deref {
		c.deref(x, e)
		return
	}
	if e.Op == syntax.Addr {
		c.addressOf(x, e)
		return
	}
	if !c.rvalue(x) {
		x.setInvalid()
		return
	}

	switch e.Op {
	case syntax.Not:
		if x.poisoned() {
			x.setValue(types.Typ[types.Bool])
			return
		}
		if !types.BooleanCompatible(x.typ) {
			c.opMismatch(x, e.Op, "bool")
			return
		}
		if x.mode == constant_ && x.val.Kind() == constant.Bool {
			x.setConst(types.Typ[types.Bool], constant.UnaryOp(token.NOT, x.val, 0))
			return
		}
		x.setValue(types.Typ[types.Bool])

	case syntax.BitNot, syntax.Neg:
		if x.poisoned() {
			x.setValue(types.Typ[types.Unknown])
			return
		}
		want, ok := "int", types.IsInteger(x.typ)
		if e.Op == syntax.Neg {
			want, ok = "numeric", types.IsNumeric(x.typ)
		}
		if !ok {
			c.opMismatch(x, e.Op, want)
			return
		}
		if x.mode == constant_ {
			tok := token.SUB
			if e.Op == syntax.BitNot {
				tok = token.XOR
			}
			x.setConst(x.typ, constant.UnaryOp(tok, x.val, 0))
			return
		}
		x.setValue(x.typ)

	case syntax.PreInc, syntax.PreDec, syntax.PostInc, syntax.PostDec:
		if x.mode != variable {
			c.errorf(NotAssignable, e.Pos(), "cannot %s %s: not an lvalue", e.Op, syntax.ExprString(e.X))
			x.setInvalid()
			return
		}
		if x.poisoned() {
			x.setValue(types.Typ[types.Unknown])
			return
		}
		if !types.IsNumeric(x.typ) && !types.IsPointer(x.typ) {
			c.opMismatch(x, e.Op, "numeric or pointer")
			return
		}
		x.setValue(x.typ)

	default:
		c.internalf(e.Pos(), "unknown unary operator %s", e.Op)
	}
}

// deref evaluates *x. Pointers and references are dereferenced; a
// reference to a pointer dereferences the pointer.
func (c *Checker) deref(x *operand, e *syntax.Operation) {
	if x.mode == invalid {
		return
	}
	if x.mode == novalue {
		c.rvalue(x)
		return
	}
	switch t := x.typ.(type) {
	case *types.Ref:
		base := t.Elem()
		if p, ok := base.(*types.Pointer); ok {
			base = p.Elem()
		}
		x.setVar(base)
	case *types.Pointer:
		x.setVar(t.Elem())
	default:
		if x.poisoned() {
			x.setVar(types.Typ[types.Unknown])
			return
		}
		c.opMismatch(x, e.Op, "pointer")
	}
}

// addressOf evaluates &x, which requires an lvalue.
func (c *Checker) addressOf(x *operand, e *syntax.Operation) {
	if x.mode == invalid {
		return
	}
	if x.mode != variable {
		c.errorf(NotAssignable, e.Pos(), "cannot take address of %s: not an lvalue", syntax.ExprString(e.X))
		x.setInvalid()
		return
	}
	x.setValue(types.NewPointer(types.Deref(x.typ)))
}

// opMismatch reports an operand of the wrong type for op and poisons x.
func (c *Checker) opMismatch(x *operand, op syntax.Operator, want string) {
	c.mismatch(x.pos, want, x.describe(), "invalid operation: operator %s not defined on %s (type %s)",
		op, syntax.ExprString(x.expr), x.describe())
	x.setInvalid()
}

// binary evaluates a binary operation.
func (c *Checker) binary(x *operand, e *syntax.Operation) {
	var y operand
	c.expr(x, e.X)
	c.expr(&y, e.Y)
	c.binaryOp(x, &y, e.Op)
}

// binaryOp applies op to x and y, leaving the result in x.
func (c *Checker) binaryOp(x, y *operand, op syntax.Operator) {
	okx, oky := c.rvalue(x), c.rvalue(y)
	if !okx || !oky {
		x.setInvalid()
		return
	}

	switch {
	case op.IsLogical():
		c.logical(x, y, op)
	case op.IsComparison():
		c.comparison(x, y, op)
	case op == syntax.Add || op == syntax.Sub:
		if c.pointerArith(x, y, op) {
			return
		}
		c.arithmetic(x, y, op)
	default:
		c.arithmetic(x, y, op)
	}
}

// logical handles && and ||.
func (c *Checker) logical(x, y *operand, op syntax.Operator) {
	for _, z := range []*operand{x, y} {
		if !z.poisoned() && !types.BooleanCompatible(z.typ) {
			c.opMismatch(z, op, "bool")
			x.setInvalid()
			return
		}
	}
	if x.mode == constant_ && y.mode == constant_ && x.val.Kind() == constant.Bool && y.val.Kind() == constant.Bool {
		xb, yb := constant.BoolVal(x.val), constant.BoolVal(y.val)
		if op == syntax.AndAnd {
			x.setConst(types.Typ[types.Bool], constant.MakeBool(xb && yb))
		} else {
			x.setConst(types.Typ[types.Bool], constant.MakeBool(xb || yb))
		}
		return
	}
	x.setValue(types.Typ[types.Bool])
}

// comparison handles ==, !=, <, <=, > and >=. The result is bool.
func (c *Checker) comparison(x, y *operand, op syntax.Operator) {
	if x.poisoned() || y.poisoned() {
		x.setValue(types.Typ[types.Bool])
		return
	}

	xt, yt := x.typ, y.typ
	ok := types.Compatible(xt, yt) || types.Compatible(yt, xt)
	if op == syntax.Eql || op == syntax.Neq {
		ok = ok && types.Comparable(xt) && types.Comparable(yt)
	} else {
		ok = ok && types.Ordered(xt) && types.Ordered(yt) &&
			(types.IsNumeric(xt) == types.IsNumeric(yt))
	}
	if !ok {
		c.mismatch(x.pos, xt.String(), yt.String(), "invalid operation: %s %s %s (mismatched types %s and %s)",
			syntax.ExprString(x.expr), op, syntax.ExprString(y.expr), xt, yt)
		x.setInvalid()
		return
	}

	if x.mode == constant_ && y.mode == constant_ {
		x.setConst(types.Typ[types.Bool], constant.MakeBool(constant.Compare(x.val, constTokens[op], y.val)))
		return
	}
	x.setValue(types.Typ[types.Bool])
}

// pointerArith handles ptr + int, int + ptr, ptr - int and ptr - ptr.
// Arrays decay to pointers to their element. It reports false if neither
// operand is a pointer.
func (c *Checker) pointerArith(x, y *operand, op syntax.Operator) bool {
	xt, yt := decay(x.typ), decay(y.typ)
	xp, yp := types.IsPointer(xt), types.IsPointer(yt)
	if !xp && !yp {
		return false
	}
	if x.poisoned() || y.poisoned() {
		x.setValue(types.Typ[types.Unknown])
		return true
	}

	switch {
	case xp && yp && op == syntax.Sub:
		if !types.Identical(xt, yt) {
			c.mismatch(y.pos, xt.String(), yt.String(), "invalid operation: %s - %s (mismatched types %s and %s)",
				syntax.ExprString(x.expr), syntax.ExprString(y.expr), xt, yt)
			x.setInvalid()
			return true
		}
		x.setValue(types.Typ[types.Int])
	case xp && types.IsInteger(yt):
		x.setValue(xt)
	case yp && op == syntax.Add && types.IsInteger(xt):
		x.setValue(yt)
	case xp:
		c.opMismatch(y, op, "int")
		x.setInvalid()
	default:
		c.opMismatch(x, op, "int")
	}
	return true
}

func decay(t types.Type) types.Type {
	if a, ok := t.(*types.Array); ok {
		return types.NewPointer(a.Elem())
	}
	return t
}

// arithmetic handles the arithmetic, bitwise and shift operators.
// Mixed int and float operands promote to float. %, bitwise and shift
// operators require integers.
func (c *Checker) arithmetic(x, y *operand, op syntax.Operator) {
	want, accept := "numeric", types.IsNumeric
	if op == syntax.Rem || op.IsBitwise() {
		want, accept = "int", types.IsInteger
	}
	for _, z := range []*operand{x, y} {
		if !z.poisoned() && !accept(z.typ) {
			c.opMismatch(z, op, want)
			x.setInvalid()
			return
		}
	}
	if x.poisoned() || y.poisoned() {
		x.setValue(types.Typ[types.Unknown])
		return
	}

	var result types.Type
	switch {
	case op == syntax.Shl || op == syntax.Shr:
		result = x.typ
	case types.IsFloat(x.typ) || types.IsFloat(y.typ):
		result = types.Typ[types.Float]
	case types.Identical(x.typ, types.Typ[types.Char]) && types.Identical(y.typ, types.Typ[types.Char]):
		result = types.Typ[types.Char]
	default:
		result = types.Typ[types.Int]
	}

	if x.mode == constant_ && y.mode == constant_ {
		if val := foldArith(x.val, y.val, op, types.IsFloat(result)); val != nil {
			x.setConst(result, val)
			return
		}
	}
	x.setValue(result)
}

// foldArith evaluates a constant arithmetic operation. It returns nil for
// operations that cannot be folded, such as division by zero.
func foldArith(x, y constant.Value, op syntax.Operator, float bool) constant.Value {
	if float {
		x, y = constant.ToFloat(x), constant.ToFloat(y)
	}
	switch op {
	case syntax.Div, syntax.Rem:
		if constant.Sign(y) == 0 {
			return nil
		}
		if op == syntax.Div && !float {
			return constant.BinaryOp(x, token.QUO_ASSIGN, y) // integer division
		}
	case syntax.Shl, syntax.Shr:
		s, ok := constant.Uint64Val(y)
		if !ok || s >= 64 {
			return nil
		}
		return constant.Shift(x, constTokens[op], uint(s))
	}
	tok, ok := constTokens[op]
	if !ok {
		return nil
	}
	return constant.BinaryOp(x, tok, y)
}

var constTokens = map[syntax.Operator]token.Token{
	syntax.Add: token.ADD,
	syntax.Sub: token.SUB,
	syntax.Mul: token.MUL,
	syntax.Div: token.QUO,
	syntax.Rem: token.REM,
	syntax.And: token.AND,
	syntax.Or:  token.OR,
	syntax.Xor: token.XOR,
	syntax.Shl: token.SHL,
	syntax.Shr: token.SHR,
	syntax.Eql: token.EQL,
	syntax.Neq: token.NEQ,
	syntax.Lss: token.LSS,
	syntax.Leq: token.LEQ,
	syntax.Gtr: token.GTR,
	syntax.Geq: token.GEQ,
}

// assign evaluates a plain or compound assignment. The left side must be
// an lvalue; the value of the expression is the assigned value.
func (c *Checker) assign(x *operand, e *syntax.AssignExpr) {
	var y operand
	c.expr(x, e.LHS)
	c.expr(&y, e.RHS)

	if x.mode == invalid {
		return
	}
	if x.mode != variable {
		c.errorf(NotAssignable, e.LHS.Pos(), "cannot assign to %s: not an lvalue", syntax.ExprString(e.LHS))
		x.setInvalid()
		return
	}
	x.load()
	target := x.typ

	if e.Op == syntax.Def {
		c.assignment(&y, target, "assignment")
	} else {
		z := *x
		c.binaryOp(&z, &y, e.Op)
		if z.mode != invalid {
			c.assignment(&z, target, "assignment")
		}
	}
	x.setValue(target)
}

// assignment checks that x may be stored in a location of type T and
// poisons x if not. Binding a reference requires an lvalue.
func (c *Checker) assignment(x *operand, T types.Type, context string) {
	if x.mode == invalid {
		return
	}
	if x.mode == novalue {
		c.mismatch(x.pos, T.String(), "void", "%s (no value) used as value in %s", syntax.ExprString(x.expr), context)
		x.setInvalid()
		return
	}
	if types.IsRef(T) && x.mode != variable && !types.IsRef(x.typ) && !x.poisoned() {
		c.errorf(NotAssignable, x.pos, "cannot bind reference %s to %s: not an lvalue", T, syntax.ExprString(x.expr))
		x.setInvalid()
		return
	}
	if !types.Compatible(x.typ, T) {
		c.mismatch(x.pos, T.String(), x.typ.String(), "cannot use %s (type %s) as %s in %s",
			syntax.ExprString(x.expr), x.typ, T, context)
		x.setInvalid()
	}
}

// index evaluates x[i]. Arrays and pointers can be indexed with an
// integer.
func (c *Checker) index(x *operand, e *syntax.IndexExpr) {
	var i operand
	c.expr(x, e.X)
	c.expr(&i, e.Index)

	okx, oki := c.rvalue(x), c.rvalue(&i)
	if !okx {
		x.setInvalid()
		return
	}

	var elem types.Type
	switch t := x.typ.(type) {
	case *types.Array:
		elem = t.Elem()
		if oki && i.mode == constant_ && i.val.Kind() == constant.Int {
			if n, ok := constant.Int64Val(i.val); !ok || n < 0 || n >= t.Len() {
				c.errorf(NotIndexable, i.pos, "index %s out of bounds [0:%d]", i.val, t.Len())
				x.setInvalid()
				return
			}
		}
	case *types.Pointer:
		elem = t.Elem()
	default:
		if x.poisoned() {
			x.setVar(types.Typ[types.Unknown])
			return
		}
		c.errorf(NotIndexable, x.pos, "cannot index %s (type %s)", syntax.ExprString(e.X), x.typ)
		x.setInvalid()
		return
	}

	if !oki {
		x.setInvalid()
		return
	}
	if !i.poisoned() && !types.IsInteger(i.typ) {
		c.errorf(NotIndexable, i.pos, "invalid index %s (type %s): must be an integer", syntax.ExprString(e.Index), i.typ)
		x.setInvalid()
		return
	}
	x.setVar(elem)
}

// selector evaluates x.f. Pointers and references to structs are
// dereferenced automatically.
func (c *Checker) selector(x *operand, e *syntax.SelectorExpr) {
	c.expr(x, e.X)
	if !c.rvalue(x) {
		x.setInvalid()
		return
	}

	t, mode := x.typ, x.mode
	if p, ok := t.(*types.Pointer); ok {
		t, mode = p.Elem(), variable
	}
	if types.IsUnknown(t) || types.IsTypeParam(t) {
		x.setVar(types.Typ[types.Unknown])
		return
	}

	st, ok := t.Underlying().(*types.Struct)
	if !ok {
		c.mismatch(x.pos, "struct", t.String(), "%s (type %s) is not a struct", syntax.ExprString(e.X), t)
		x.setInvalid()
		return
	}
	f, _ := st.Lookup(e.Sel.Value)
	if f == nil {
		c.errorf(UnknownField, e.Sel.Pos(), "%s has no field %s", t, e.Sel.Value)
		x.setInvalid()
		return
	}
	c.recordUse(e.Sel, f)

	if mode == variable {
		x.setVar(f.Type())
	} else {
		x.setValue(f.Type())
	}
}

// constInt64 returns the int64 value of a constant integer operand.
func constInt64(x *operand) (int64, bool) {
	if x.mode != constant_ || x.val == nil || x.val.Kind() != constant.Int {
		return 0, false
	}
	return constant.Int64Val(x.val)
}
