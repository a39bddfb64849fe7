package types2

import (
	"github.com/you-not-fish/cp/internal/syntax"
	"github.com/you-not-fish/cp/internal/types"
)

// call checks a function call expression. The callee is checked first,
// then every argument, even when the callee is invalid.
func (c *Checker) call(x *operand, e *syntax.CallExpr) {
	c.expr(x, e.Fun)

	args := make([]operand, len(e.Args))
	for i, arg := range e.Args {
		c.expr(&args[i], arg)
	}

	if !c.rvalue(x) {
		x.setInvalid()
		return
	}
	if x.poisoned() {
		x.setValue(types.Typ[types.Unknown])
		return
	}

	sig, ok := x.typ.(*types.Func)
	if !ok {
		c.errorf(NotCallable, e.Fun.Pos(), "cannot call non-function %s (type %s)", syntax.ExprString(e.Fun), x.typ)
		x.setInvalid()
		return
	}

	c.arguments(e, sig, args)

	result := sig.Result()
	switch {
	case len(sig.TypeParams()) > 0 && mentionsTypeParam(result):
		// Templates are not instantiated, so the result is not known.
		x.setValue(types.Typ[types.Unknown])
	case types.IsVoid(result):
		x.mode = novalue
		x.typ = result
		x.val = nil
	default:
		x.setValue(result)
	}
}

// arguments checks the argument count and each argument against its
// parameter.
func (c *Checker) arguments(e *syntax.CallExpr, sig *types.Func, args []operand) {
	want, got := sig.NumParams(), len(args)
	if got != want {
		qualifier := "not enough"
		if got > want {
			qualifier = "too many"
		}
		c.errorf(ArityMismatch, e.Pos(), "%s arguments in call to %s: have %d, want %d",
			qualifier, syntax.ExprString(e.Fun), got, want)
	}

	for i := range args {
		if i >= want {
			break
		}
		c.assignment(&args[i], sig.Param(i).Type(), "argument")
	}
}

// mentionsTypeParam reports whether t is or is built from a template
// parameter.
func mentionsTypeParam(t types.Type) bool {
	switch t := t.(type) {
	case *types.TypeParam:
		return true
	case *types.Pointer:
		return mentionsTypeParam(t.Elem())
	case *types.Ref:
		return mentionsTypeParam(t.Elem())
	case *types.Array:
		return mentionsTypeParam(t.Elem())
	}
	return false
}
