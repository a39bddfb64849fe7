package syntax

// ----------------------------------------------------------------------------
// Interfaces
//
// There are 3 main classes of nodes: Expressions, Statements, and Declarations.
// All nodes implement the Node interface. Declarations may appear anywhere a
// statement may, so every Decl is also a Stmt. A Block is both a Stmt and an
// Expr.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() Pos // position of first character belonging to the node
	aNode()   // marker method to restrict implementations to this package
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	aExpr()
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	aStmt()
}

// Decl is the interface for all declaration nodes.
type Decl interface {
	Stmt
	aDecl()
}

// ----------------------------------------------------------------------------
// Base node types

// node is the base struct embedded in all AST nodes.
type node struct {
	pos Pos
}

func (n *node) Pos() Pos { return n.pos }
func (n *node) aNode()   {}

// expr is embedded in all expression nodes.
type expr struct{ node }

func (*expr) aExpr() {}

// stmt is embedded in all statement nodes.
type stmt struct{ node }

func (*stmt) aStmt() {}

// decl is embedded in all declaration nodes.
type decl struct{ stmt }

func (*decl) aDecl() {}

// ----------------------------------------------------------------------------
// Blocks

// Block represents { Stmts... Value }. The root of every parsed file is a
// Block with no braces. Value is the optional trailing expression that was
// not followed by a semicolon; it is the value of the block.
type Block struct {
	node
	Stmts  []Stmt
	Value  Expr // nil if the block has no value
	Rbrace Pos  // position of closing brace (invalid for the file block)
}

func (*Block) aExpr() {}
func (*Block) aStmt() {}

// ----------------------------------------------------------------------------
// Declarations

// VarDecl represents var a: T = x, b; or the C form T a = x, b;
type VarDecl struct {
	decl
	Type  Expr // declared type (nil if omitted)
	Specs []*VarSpec
}

// VarSpec is one declared name of a VarDecl with its optional initializer.
type VarSpec struct {
	node
	Name  *Name
	Value Expr // nil if none
}

// FuncDecl represents fn Name(Params): Result { Body }
type FuncDecl struct {
	decl
	Name   *Name
	Params []*Field
	Result Expr // nil for void
	Body   *Block
}

// StructDecl represents struct Name { Fields }
type StructDecl struct {
	decl
	Name   *Name
	Fields []*Field
}

// AliasDecl represents type Name = Type; or alias Name = Type;
type AliasDecl struct {
	decl
	Name *Name
	Type Expr
}

// TemplateDecl represents template<Params...> Decl, where Decl is a
// *FuncDecl or *StructDecl.
type TemplateDecl struct {
	decl
	Params []*Name
	Decl   Decl
}

// Field represents a struct field or function parameter.
type Field struct {
	node
	Name *Name // nil for unnamed struct fields
	Type Expr
}

// ----------------------------------------------------------------------------
// Expressions

// Name represents an identifier.
type Name struct {
	expr
	Value string
}

// BasicLit represents a literal value (int, float, string).
type BasicLit struct {
	expr
	Value string  // literal text (decoded for strings)
	Kind  LitKind // IntLit, FloatLit, StringLit
}

// Operation represents a unary, postfix or binary operation.
// For unary and postfix operations, Y is nil.
type Operation struct {
	expr
	Op Operator
	X  Expr
	Y  Expr // nil for unary and postfix operations
}

// AssignExpr represents LHS = RHS or LHS op= RHS. Op is Def for plain
// assignment and the underlying binary operator otherwise.
type AssignExpr struct {
	expr
	Op  Operator
	LHS Expr
	RHS Expr
}

// CallExpr represents a function call: Fun(Args...)
type CallExpr struct {
	expr
	Fun  Expr
	Args []Expr
}

// IndexExpr represents X[Index]
type IndexExpr struct {
	expr
	X     Expr
	Index Expr
}

// SelectorExpr represents member access: X.Sel
type SelectorExpr struct {
	expr
	X   Expr
	Sel *Name
}

// ----------------------------------------------------------------------------
// Type Expressions

// ArrayType represents Elem[Len]
type ArrayType struct {
	expr
	Elem Expr
	Len  Expr // unevaluated size expression
}

// PointerType represents *Base
type PointerType struct {
	expr
	Base Expr
}

// RefType represents &Base
type RefType struct {
	expr
	Base Expr
}

// ----------------------------------------------------------------------------
// Statements

// EmptyStmt represents an empty statement (just a semicolon).
type EmptyStmt struct {
	stmt
}

// ExprStmt represents an expression used as a statement.
type ExprStmt struct {
	stmt
	X Expr
}

// IfStmt represents if (Cond) Then else Else
type IfStmt struct {
	stmt
	Cond Expr
	Then Stmt
	Else Stmt // nil if absent
}

// WhileStmt represents while (Cond) Body
type WhileStmt struct {
	stmt
	Cond Expr
	Body Stmt
}

// DoWhileStmt represents loop Body while (Cond); the condition is tested
// after each execution of the body.
type DoWhileStmt struct {
	stmt
	Body Stmt
	Cond Expr
}

// ReturnStmt represents return Result;
type ReturnStmt struct {
	stmt
	Result Expr // nil for bare return
}

// BranchStmt represents break n; or continue n;
type BranchStmt struct {
	stmt
	Tok    Token // _Break or _Continue
	Levels int   // number of enclosing loops affected; 1 if not written
}
