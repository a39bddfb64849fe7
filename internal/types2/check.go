package types2

import (
	"github.com/you-not-fish/cp/internal/syntax"
	"github.com/you-not-fish/cp/internal/types"
)

// Checker is the type checker.
type Checker struct {
	conf *Config
	info *Info

	// Current checking context
	scope *types.Scope // innermost scope; its parent chain is the scope stack

	// Function context
	funcSig *types.Func // current function signature (nil at file level)

	// Nesting depth of statements and expressions.
	depth         int
	depthReported bool

	diags   []*Diagnostic
	dropped int // diagnostics over Config.MaxDiagnostics
}

func newChecker(conf *Config, info *Info) *Checker {
	cfg := *conf
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if cfg.Universe == nil {
		cfg.Universe = types.Universe
	}
	if cfg.Sizes == nil {
		cfg.Sizes = types.DefaultSizes
	}

	// Initialize info maps if not provided
	if info != nil {
		if info.Types == nil {
			info.Types = make(map[syntax.Expr]TypeAndValue)
		}
		if info.Defs == nil {
			info.Defs = make(map[*syntax.Name]types.Object)
		}
		if info.Uses == nil {
			info.Uses = make(map[*syntax.Name]types.Object)
		}
		if info.Scopes == nil {
			info.Scopes = make(map[syntax.Node]*types.Scope)
		}
	}

	return &Checker{conf: &cfg, info: info, scope: cfg.Universe}
}

// checkFile checks the root block of a file in a fresh global scope.
// Declarations are visible from the point they are declared onward.
func (c *Checker) checkFile(file *syntax.Block) {
	if file == nil {
		c.internalf(syntax.Pos{}, "nil file")
	}
	c.openScope(file, types.GlobalScope, "global")
	defer c.closeScope()

	c.stmts(file.Stmts)
	if file.Value != nil {
		var x operand
		c.expr(&x, file.Value)
	}
}

// openScope creates a new scope as a child of the current scope.
func (c *Checker) openScope(n syntax.Node, kind types.ScopeKind, comment string) *types.Scope {
	end := n.Pos()
	if b, ok := n.(*syntax.Block); ok && b.Rbrace.IsValid() {
		end = b.Rbrace
	}
	s := types.NewScope(c.scope, kind, n.Pos(), end, comment)
	c.scope = s
	if c.info != nil {
		c.info.Scopes[n] = s
	}
	return s
}

// closeScope returns to the parent scope.
func (c *Checker) closeScope() {
	c.scope = c.scope.Parent()
}

// lookup looks up a name in the current scope chain.
func (c *Checker) lookup(name string) types.Object {
	obj, _ := c.scope.LookupParent(name)
	return obj
}

// declare declares an object in scope s.
// Reports a Redeclaration if the name is already declared there.
func (c *Checker) declare(s *types.Scope, name *syntax.Name, obj types.Object) bool {
	if err := s.Declare(obj); err != nil {
		c.redeclared(err.(*types.RedeclarationError))
		return false
	}
	if c.info != nil {
		c.info.Defs[name] = obj
	}
	return true
}

// enter increments the nesting depth. It reports false, after a single
// RecursionLimitExceeded diagnostic, once the depth exceeds the limit.
func (c *Checker) enter(pos syntax.Pos) bool {
	c.depth++
	if c.depth <= c.conf.MaxDepth {
		return true
	}
	if !c.depthReported {
		c.depthReported = true
		c.errorf(RecursionLimitExceeded, pos, "nesting exceeds the limit of %d", c.conf.MaxDepth)
	}
	return false
}

func (c *Checker) leave() {
	c.depth--
}

// recordType records the type information for an expression.
// Invalid operands are recorded with the unknown type.
func (c *Checker) recordType(e syntax.Expr, x *operand) {
	if c.info == nil {
		return
	}
	typ := x.typ
	if x.mode == invalid || typ == nil {
		typ = types.Typ[types.Unknown]
	}
	c.info.Types[e] = TypeAndValue{
		Type:  typ,
		Value: x.val,
		mode:  x.mode,
	}
}

// recordUse records a use of an object.
func (c *Checker) recordUse(name *syntax.Name, obj types.Object) {
	if c.info != nil {
		c.info.Uses[name] = obj
	}
}
