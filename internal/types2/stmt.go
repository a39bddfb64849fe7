package types2

import (
	"github.com/you-not-fish/cp/internal/syntax"
	"github.com/you-not-fish/cp/internal/types"
)

// stmts checks a list of statements.
func (c *Checker) stmts(list []syntax.Stmt) {
	for _, s := range list {
		c.stmt(s)
	}
}

// stmt checks a single statement.
func (c *Checker) stmt(s syntax.Stmt) {
	if !c.enter(s.Pos()) {
		c.leave()
		return
	}
	defer c.leave()

	switch s := s.(type) {
	case *syntax.EmptyStmt:
		// Nothing to check

	case *syntax.ExprStmt:
		var x operand
		c.expr(&x, s.X)

	case *syntax.Block:
		var x operand
		c.block(&x, s)

	case *syntax.IfStmt:
		c.ifStmt(s)

	case *syntax.WhileStmt:
		c.whileStmt(s)

	case *syntax.DoWhileStmt:
		c.doWhileStmt(s)

	case *syntax.ReturnStmt:
		c.returnStmt(s)

	case *syntax.BranchStmt:
		c.branchStmt(s)

	case *syntax.VarDecl:
		c.varDecl(s)

	case *syntax.FuncDecl:
		c.funcDecl(s, nil, c.scope)

	case *syntax.StructDecl:
		c.structDecl(s, nil, c.scope)

	case *syntax.AliasDecl:
		c.aliasDecl(s)

	case *syntax.TemplateDecl:
		c.templateDecl(s)

	default:
		c.internalf(s.Pos(), "unexpected statement %T", s)
	}
}

// block checks a braced block in a new scope. The block's value is its
// trailing expression; without one the block has no value.
func (c *Checker) block(x *operand, b *syntax.Block) {
	c.openScope(b, types.BlockScope, "block")
	defer c.closeScope()
	c.blockBody(x, b)
}

// blockBody checks the statements and value of b in the current scope.
func (c *Checker) blockBody(x *operand, b *syntax.Block) {
	c.stmts(b.Stmts)
	if b.Value == nil {
		x.mode = novalue
		x.typ = types.Typ[types.Void]
		x.val = nil
		return
	}
	c.expr(x, b.Value)
	if x.mode == variable {
		x.mode = value
	}
}

// condition checks the condition of an if or loop statement.
func (c *Checker) condition(e syntax.Expr, context string) {
	var x operand
	c.expr(&x, e)
	x.load()
	if x.poisoned() {
		return
	}
	if x.mode == novalue || !types.BooleanCompatible(x.typ) {
		c.mismatch(e.Pos(), "bool", x.describe(), "non-boolean condition in %s statement (type %s)", context, x.describe())
	}
}

// ifStmt checks an if statement.
func (c *Checker) ifStmt(s *syntax.IfStmt) {
	c.condition(s.Cond, "if")
	c.stmt(s.Then)
	if s.Else != nil {
		c.stmt(s.Else)
	}
}

// whileStmt checks a while statement. The body runs in a loop scope.
func (c *Checker) whileStmt(s *syntax.WhileStmt) {
	c.condition(s.Cond, "while")

	c.openScope(s, types.LoopScope, "while")
	defer c.closeScope()
	c.stmt(s.Body)
}

// doWhileStmt checks a loop ... while statement. The condition is
// checked after the body, outside the loop scope.
func (c *Checker) doWhileStmt(s *syntax.DoWhileStmt) {
	c.openScope(s, types.LoopScope, "loop")
	c.stmt(s.Body)
	c.closeScope()

	c.condition(s.Cond, "loop")
}

// returnStmt checks a return statement.
func (c *Checker) returnStmt(s *syntax.ReturnStmt) {
	if c.funcSig == nil {
		// The parser rejects this; a tree that has it was not built by Parse.
		c.internalf(s.Pos(), "return statement outside function")
	}
	c.returnValue(s.Pos(), s.Result)
}

// returnValue checks e (nil for a bare return) against the result type of
// the current function.
func (c *Checker) returnValue(pos syntax.Pos, e syntax.Expr) {
	result := c.funcSig.Result()

	if e == nil {
		if !types.IsVoid(result) {
			c.mismatch(pos, result.String(), "void", "missing return value (want %s)", result)
		}
		return
	}

	var x operand
	c.expr(&x, e)
	if x.mode == invalid {
		return
	}
	if types.IsVoid(result) {
		if x.mode != novalue {
			c.mismatch(e.Pos(), "void", x.describe(), "unexpected return value of type %s in void function", x.describe())
		}
		return
	}
	c.assignment(&x, result, "return statement")
}

// branchStmt checks a break or continue statement against the loops
// enclosing it in the current function.
func (c *Checker) branchStmt(s *syntax.BranchStmt) {
	depth := c.scope.LoopDepth()
	if s.Levels >= 1 && s.Levels <= depth {
		return
	}
	if depth == 0 {
		c.errorf(InvalidBreakContinueDepth, s.Pos(), "%s is not in a loop", s.Tok)
		return
	}
	c.errorf(InvalidBreakContinueDepth, s.Pos(), "invalid %s depth %d (%d enclosing loops)", s.Tok, s.Levels, depth)
}
