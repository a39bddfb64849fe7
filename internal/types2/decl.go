package types2

import (
	"github.com/you-not-fish/cp/internal/syntax"
	"github.com/you-not-fish/cp/internal/types"
)

// varDecl checks a variable declaration. Each name is declared after its
// initializer is checked, so an initializer sees outer declarations of the
// same name.
func (c *Checker) varDecl(decl *syntax.VarDecl) {
	var declared types.Type
	if decl.Type != nil {
		declared = c.varType(decl.Type)
	}

	for _, spec := range decl.Specs {
		typ := declared
		if spec.Value != nil {
			var x operand
			c.expr(&x, spec.Value)
			if typ != nil {
				c.assignment(&x, typ, "variable declaration")
			} else {
				typ = c.inferred(&x, spec.Value)
			}
		}
		if typ == nil {
			c.mismatch(spec.Pos(), "type or initializer", "none", "missing type or initializer for %s", spec.Name.Value)
			typ = types.Typ[types.Unknown]
		}
		c.declare(c.scope, spec.Name, types.NewVar(spec.Name.Pos(), spec.Name.Value, typ))
	}
}

// inferred returns the variable type implied by initializer x.
func (c *Checker) inferred(x *operand, e syntax.Expr) types.Type {
	switch {
	case x.mode == invalid:
		return types.Typ[types.Unknown]
	case x.mode == novalue || types.IsVoid(x.typ):
		c.mismatch(e.Pos(), "value", "void", "%s (no value) used as value", syntax.ExprString(e))
		return types.Typ[types.Unknown]
	}
	x.load()
	return x.typ
}

// varType resolves the declared type of a variable, parameter or field.
// Void is not a valid object type.
func (c *Checker) varType(e syntax.Expr) types.Type {
	typ := c.resolveType(e)
	if types.IsVoid(typ) {
		c.mismatch(e.Pos(), "non-void type", "void", "invalid use of void type")
		return types.Typ[types.Unknown]
	}
	return typ
}

// funcDecl checks a function declaration. The function is declared in
// scope declScope before its body is checked, so it may call itself.
// Parameters live in a function scope that also holds the body's
// top-level declarations.
func (c *Checker) funcDecl(decl *syntax.FuncDecl, tparams []*types.TypeParam, declScope *types.Scope) {
	params := make([]*types.Var, len(decl.Params))
	for i, p := range decl.Params {
		params[i] = types.NewParam(p.Pos(), p.Name.Value, c.varType(p.Type))
	}
	var result types.Type
	if decl.Result != nil {
		result = c.resolveType(decl.Result)
	}
	sig := types.NewFunc(params, result)
	sig.SetTypeParams(tparams)

	fn := types.NewFuncObj(decl.Name.Pos(), decl.Name.Value)
	fn.SetSignature(sig)
	c.declare(declScope, decl.Name, fn)

	oldSig := c.funcSig
	c.funcSig = sig
	defer func() { c.funcSig = oldSig }()

	c.openScope(decl, types.FuncScope, "function "+decl.Name.Value)
	defer c.closeScope()
	if c.info != nil {
		c.info.Scopes[decl.Body] = c.scope
	}

	for i, p := range decl.Params {
		c.declare(c.scope, p.Name, params[i])
	}

	c.stmts(decl.Body.Stmts)
	if decl.Body.Value != nil {
		// A trailing body value is an implicit return.
		c.returnValue(decl.Body.Value.Pos(), decl.Body.Value)
	}
}

// structDecl checks a struct declaration. The name is declared before the
// fields are resolved, so fields may point to the struct itself.
func (c *Checker) structDecl(decl *syntax.StructDecl, tparams []*types.TypeParam, declScope *types.Scope) {
	tn := types.NewTypeName(decl.Name.Pos(), decl.Name.Value, nil)
	named := types.NewNamed(tn, nil)
	named.SetTypeParams(tparams)
	c.declare(declScope, decl.Name, tn)

	fields := make([]*types.Var, len(decl.Fields))
	seen := make(map[string]*types.Var)
	for i, f := range decl.Fields {
		typ := c.varType(f.Type)
		if containsByValue(typ, named) {
			c.mismatch(f.Type.Pos(), "complete type", typ.String(), "invalid recursive type %s", decl.Name.Value)
			typ = types.Typ[types.Unknown]
		}

		name := ""
		if f.Name != nil {
			name = f.Name.Value
		}
		field := types.NewField(f.Pos(), name, typ)
		fields[i] = field
		if f.Name == nil {
			continue
		}
		if prev := seen[name]; prev != nil {
			c.redeclared(&types.RedeclarationError{Name: name, Pos: f.Name.Pos(), Prev: prev})
			continue
		}
		seen[name] = field
		if c.info != nil {
			c.info.Defs[f.Name] = field
		}
	}
	st := types.NewStruct(fields)
	named.SetUnderlying(st)
	if len(tparams) == 0 {
		c.structLayout(decl, st)
	}
}

// structLayout computes the layout of st. A struct whose size does not
// fit in an int64 is reported unless one of its fields already was.
func (c *Checker) structLayout(decl *syntax.StructDecl, st *types.Struct) {
	c.conf.Sizes.ComputeLayout(st)
	if st.Size() >= 0 {
		return
	}
	for i := 0; i < st.NumFields(); i++ {
		if c.conf.Sizes.Sizeof(st.Field(i).Type()) < 0 {
			return
		}
	}
	c.errorf(InvalidArraySize, decl.Name.Pos(), "struct %s is too large", decl.Name.Value)
}

// containsByValue reports whether a value of type t embeds a value of the
// named type n, directly or through arrays and struct fields.
func containsByValue(t types.Type, n *types.Named) bool {
	switch t := t.(type) {
	case *types.Named:
		if t == n {
			return true
		}
		if st := t.Struct(); st != nil {
			for _, f := range st.Fields() {
				if containsByValue(f.Type(), n) {
					return true
				}
			}
		}
	case *types.Array:
		return containsByValue(t.Elem(), n)
	}
	return false
}

// aliasDecl checks an alias declaration: the name denotes the target type.
func (c *Checker) aliasDecl(decl *syntax.AliasDecl) {
	typ := c.resolveType(decl.Type)
	c.declare(c.scope, decl.Name, types.NewAlias(decl.Name.Pos(), decl.Name.Value, typ))
}

// templateDecl checks a template declaration. Its parameters are opaque
// type placeholders in a template scope wrapping the declaration; the
// declared name itself goes into the enclosing scope. Templates are never
// instantiated.
func (c *Checker) templateDecl(decl *syntax.TemplateDecl) {
	outer := c.scope
	c.openScope(decl, types.TemplateScope, "template")
	defer c.closeScope()

	tparams := make([]*types.TypeParam, 0, len(decl.Params))
	for i, name := range decl.Params {
		tn := types.NewTypeName(name.Pos(), name.Value, nil)
		tp := types.NewTypeParam(tn, i)
		if c.declare(c.scope, name, tn) {
			tparams = append(tparams, tp)
		}
	}

	switch d := decl.Decl.(type) {
	case *syntax.FuncDecl:
		c.funcDecl(d, tparams, outer)
	case *syntax.StructDecl:
		c.structDecl(d, tparams, outer)
	default:
		c.internalf(decl.Pos(), "unexpected template declaration %T", decl.Decl)
	}
}
