package syntax

import (
	"fmt"
	"io"
	"strconv"
)

// DefaultMaxDepth is the nesting limit used when none is configured.
const DefaultMaxDepth = 1000

// ParseError represents a syntax error. Parsing stops at the first one.
type ParseError struct {
	Expected string // what the parser wanted (empty if not applicable)
	Found    string // description of the offending token
	Pos      Pos
	Msg      string // overrides the expected/found message when set
}

func (e *ParseError) Error() string {
	if e.Msg != "" {
		return e.Pos.String() + ": " + e.Msg
	}
	return fmt.Sprintf("%s: expected %s, found %s", e.Pos, e.Expected, e.Found)
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxDepth sets the maximum nesting depth of statements, expressions
// and types. Values <= 0 select DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		if n <= 0 {
			n = DefaultMaxDepth
		}
		p.maxDepth = n
	}
}

// bailout is used to unwind the parser on the first error.
type bailout struct{}

// Parser performs syntax analysis on cp source code.
type Parser struct {
	filename string
	src      io.Reader

	toks []Lexeme
	idx  int

	// Current token info (cached from toks[idx])
	tok  Token
	lit  string
	kind LitKind
	pos  Pos

	err *ParseError

	// Context tracking
	fnest    int // function nesting depth (0 = outside any function)
	depth    int // current nesting depth
	maxDepth int
}

// NewParser creates a new Parser for the given source.
func NewParser(filename string, src io.Reader, opts ...Option) *Parser {
	p := &Parser{
		filename: filename,
		src:      src,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses src as a cp source file. It is shorthand for
// NewParser(filename, src, opts...).Parse().
func Parse(filename string, src io.Reader, opts ...Option) (*Block, error) {
	return NewParser(filename, src, opts...).Parse()
}

// Parse scans and parses the whole source and returns the file block.
// The returned error is a *LexError or a *ParseError.
func (p *Parser) Parse() (file *Block, err error) {
	toks, err := Tokenize(p.filename, p.src)
	if err != nil {
		return nil, err
	}
	p.toks = toks
	p.idx = 0
	p.load()

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			file, err = nil, p.err
		}
	}()

	file = &Block{}
	file.pos = NewPosOffset(p.filename, 1, 1, 0)
	for p.tok != _EOF {
		file.Stmts = append(file.Stmts, p.blockItem(false, file))
	}
	return file, nil
}

// ----------------------------------------------------------------------------
// Token navigation

func (p *Parser) load() {
	t := p.toks[p.idx]
	p.tok, p.lit, p.kind, p.pos = t.Tok, t.Lit, t.Kind, t.Pos
}

// next advances to the next token. The final EOF token is sticky.
func (p *Parser) next() {
	if p.idx < len(p.toks)-1 {
		p.idx++
	}
	p.load()
}

// peek returns the token n positions ahead of the current one.
func (p *Parser) peek(n int) Token {
	if i := p.idx + n; i < len(p.toks) {
		return p.toks[i].Tok
	}
	return _EOF
}

// got reports whether the current token is tok.
// If so, it consumes the token and returns true.
func (p *Parser) got(tok Token) bool {
	if p.tok == tok {
		p.next()
		return true
	}
	return false
}

// want consumes the current token if it matches tok.
// Otherwise, it reports an error.
func (p *Parser) want(tok Token) {
	if !p.got(tok) {
		p.syntaxError(tokenDesc(tok))
	}
}

// expect is like want but returns the position of the expected token.
func (p *Parser) expect(tok Token) Pos {
	pos := p.pos
	p.want(tok)
	return pos
}

// ----------------------------------------------------------------------------
// Error handling

func tokenDesc(tok Token) string {
	switch tok {
	case _Name:
		return "name"
	case _Literal:
		return "literal"
	case _EOF:
		return "EOF"
	}
	return strconv.Quote(tok.String())
}

// found describes the current token for error messages.
func (p *Parser) found() string {
	switch p.tok {
	case _Name:
		return "name " + p.lit
	case _Literal:
		if p.kind == StringLit {
			return "literal " + strconv.Quote(p.lit)
		}
		return "literal " + p.lit
	}
	return tokenDesc(p.tok)
}

// syntaxError reports that expected was wanted at the current token and
// aborts the parse.
func (p *Parser) syntaxError(expected string) {
	p.err = &ParseError{Expected: expected, Found: p.found(), Pos: p.pos}
	panic(bailout{})
}

// errorf aborts the parse with a free-form message at pos.
func (p *Parser) errorf(pos Pos, format string, args ...any) {
	p.err = &ParseError{Found: p.found(), Pos: pos, Msg: fmt.Sprintf(format, args...)}
	panic(bailout{})
}

// enter increments the nesting depth and aborts when it exceeds the limit.
// Every call must be paired with a deferred leave.
func (p *Parser) enter() {
	p.depth++
	if p.depth > p.maxDepth {
		p.errorf(p.pos, "recursion limit exceeded")
	}
}

func (p *Parser) leave() {
	p.depth--
}

// ----------------------------------------------------------------------------
// Helper methods

// name parses an identifier and returns a Name node.
func (p *Parser) name() *Name {
	if p.tok != _Name {
		p.syntaxError("name")
	}
	n := &Name{Value: p.lit}
	n.pos = p.pos
	p.next()
	return n
}

// ----------------------------------------------------------------------------
// Blocks

// block parses { stmts... value? }
func (p *Parser) block() *Block {
	p.enter()
	defer p.leave()

	b := &Block{}
	b.pos = p.expect(_Lbrace)
	for p.tok != _Rbrace && b.Value == nil {
		if p.tok == _EOF {
			p.syntaxError(tokenDesc(_Rbrace))
		}
		if s := p.blockItem(true, b); s != nil {
			b.Stmts = append(b.Stmts, s)
		}
	}
	b.Rbrace = p.expect(_Rbrace)
	return b
}

// blockItem parses one statement of b. In a braced block an expression
// directly followed by } becomes the block value and nil is returned.
func (p *Parser) blockItem(braced bool, b *Block) Stmt {
	if !p.isExprStmt() {
		return p.stmt()
	}
	pos := p.pos
	x := p.expr()
	if braced && p.tok == _Rbrace {
		b.Value = x
		return nil
	}
	p.want(_Semi)
	s := &ExprStmt{X: x}
	s.pos = pos
	return s
}

// isExprStmt reports whether the current token starts an expression
// statement rather than a declaration or control statement.
func (p *Parser) isExprStmt() bool {
	switch p.tok {
	case _Lbrace, _Semi, _If, _While, _Loop, _Break, _Continue, _Return,
		_Fn, _Struct, _Type, _Alias, _Template, _Var:
		return false
	case _Name, _Mul, _And:
		return !p.isCVarDecl()
	}
	return true
}

// isCVarDecl reports whether the tokens at the current position form a
// type followed by a name, as in "int x", "*int p" or "int[4] a".
func (p *Parser) isCVarDecl() bool {
	i := 0
	for p.peek(i) == _Mul || p.peek(i) == _And {
		i++
	}
	if p.peek(i) != _Name {
		return false
	}
	i++
	for p.peek(i) == _Lbrack {
		depth := 0
	brackets:
		for {
			switch p.peek(i) {
			case _Lbrack:
				depth++
			case _Rbrack:
				depth--
			case _Semi, _EOF:
				return false
			}
			i++
			if depth == 0 {
				break brackets
			}
		}
	}
	return p.peek(i) == _Name
}

// ----------------------------------------------------------------------------
// Statements

// stmt parses a statement.
func (p *Parser) stmt() Stmt {
	p.enter()
	defer p.leave()

	switch p.tok {
	case _Lbrace:
		return p.block()

	case _If:
		return p.ifStmt()

	case _While:
		return p.whileStmt()

	case _Loop:
		return p.doWhileStmt()

	case _Return:
		return p.returnStmt()

	case _Break, _Continue:
		return p.branchStmt()

	case _Var:
		return p.varDecl()

	case _Fn:
		return p.funcDecl()

	case _Struct:
		return p.structDecl()

	case _Type, _Alias:
		return p.aliasDecl()

	case _Template:
		return p.templateDecl()

	case _Semi:
		s := &EmptyStmt{}
		s.pos = p.pos
		p.next()
		return s

	case _Name, _Mul, _And:
		if p.isCVarDecl() {
			return p.cVarDecl()
		}
	}

	pos := p.pos
	s := &ExprStmt{X: p.expr()}
	s.pos = pos
	p.want(_Semi)
	return s
}

// ifStmt parses: if (cond) stmt [else stmt]
func (p *Parser) ifStmt() Stmt {
	s := &IfStmt{}
	s.pos = p.expect(_If)
	s.Cond = p.condition()
	s.Then = p.stmt()
	if p.got(_Else) {
		s.Else = p.stmt()
	}
	return s
}

// whileStmt parses: while (cond) stmt
func (p *Parser) whileStmt() Stmt {
	s := &WhileStmt{}
	s.pos = p.expect(_While)
	s.Cond = p.condition()
	s.Body = p.stmt()
	return s
}

// doWhileStmt parses: loop stmt while (cond);
func (p *Parser) doWhileStmt() Stmt {
	s := &DoWhileStmt{}
	s.pos = p.expect(_Loop)
	s.Body = p.stmt()
	p.want(_While)
	s.Cond = p.condition()
	p.want(_Semi)
	return s
}

// condition parses a parenthesized condition.
func (p *Parser) condition() Expr {
	p.want(_Lparen)
	x := p.expr()
	p.want(_Rparen)
	return x
}

// returnStmt parses: return [expr];
func (p *Parser) returnStmt() Stmt {
	s := &ReturnStmt{}
	s.pos = p.pos
	if p.fnest == 0 {
		p.errorf(s.pos, "return outside function")
	}
	p.want(_Return)
	if p.tok != _Semi {
		s.Result = p.expr()
	}
	p.want(_Semi)
	return s
}

// branchStmt parses: break [n]; continue [n]; where n may be parenthesized.
func (p *Parser) branchStmt() Stmt {
	s := &BranchStmt{Tok: p.tok, Levels: 1}
	s.pos = p.pos
	p.next()

	paren := p.got(_Lparen)
	if p.tok == _Literal && p.kind == IntLit {
		n, err := strconv.ParseInt(p.lit, 0, 32)
		if err != nil {
			p.errorf(p.pos, "invalid %s level %s", s.Tok, p.lit)
		}
		s.Levels = int(n)
		p.next()
	} else if paren {
		p.syntaxError("integer literal")
	}
	if paren {
		p.want(_Rparen)
	}
	p.want(_Semi)
	return s
}

// ----------------------------------------------------------------------------
// Declarations

// varDecl parses: var a [: T] [= x] {, b [= y]};
func (p *Parser) varDecl() Decl {
	d := &VarDecl{}
	d.pos = p.expect(_Var)

	first := p.name()
	if p.got(_Colon) {
		d.Type = p.type_()
	}
	d.Specs = p.varSpecs(first)
	return d
}

// cVarDecl parses: T a [= x] {, b [= y]};
func (p *Parser) cVarDecl() Decl {
	d := &VarDecl{}
	d.pos = p.pos
	d.Type = p.type_()
	d.Specs = p.varSpecs(p.name())
	return d
}

// varSpecs parses the remainder of a variable declaration after its first
// name (and type), including the terminating semicolon.
func (p *Parser) varSpecs(first *Name) []*VarSpec {
	specs := []*VarSpec{p.varSpec(first)}
	for p.got(_Comma) {
		specs = append(specs, p.varSpec(p.name()))
	}
	p.want(_Semi)
	return specs
}

func (p *Parser) varSpec(name *Name) *VarSpec {
	s := &VarSpec{Name: name}
	s.pos = name.Pos()
	if p.got(_Assign) {
		s.Value = p.expr()
	}
	return s
}

// funcDecl parses: fn name(params) [: T] block
func (p *Parser) funcDecl() *FuncDecl {
	d := &FuncDecl{}
	d.pos = p.expect(_Fn)
	d.Name = p.name()

	p.want(_Lparen)
	if p.tok != _Rparen {
		d.Params = append(d.Params, p.param())
		for p.got(_Comma) {
			d.Params = append(d.Params, p.param())
		}
	}
	p.want(_Rparen)

	if p.got(_Colon) {
		d.Result = p.type_()
	}

	p.fnest++
	d.Body = p.block()
	p.fnest--
	return d
}

// param parses a parameter: name: T or T name
func (p *Parser) param() *Field {
	f := &Field{}
	f.pos = p.pos
	if p.tok == _Name && p.peek(1) == _Colon {
		f.Name = p.name()
		p.next() // :
		f.Type = p.type_()
		return f
	}
	f.Type = p.type_()
	f.Name = p.name()
	return f
}

// structDecl parses: struct name { fields }
func (p *Parser) structDecl() *StructDecl {
	d := &StructDecl{}
	d.pos = p.expect(_Struct)
	d.Name = p.name()

	p.want(_Lbrace)
	for p.tok != _Rbrace {
		d.Fields = append(d.Fields, p.field())
		if p.tok == _Rbrace {
			break
		}
		if !p.got(_Semi) && !p.got(_Comma) {
			p.syntaxError(`";" or ","`)
		}
	}
	p.want(_Rbrace)
	return d
}

// field parses a struct field: name: T, T name, or an unnamed T.
func (p *Parser) field() *Field {
	f := &Field{}
	f.pos = p.pos
	if p.tok == _Name && p.peek(1) == _Colon {
		f.Name = p.name()
		p.next() // :
		f.Type = p.type_()
		return f
	}
	f.Type = p.type_()
	if p.tok == _Name {
		f.Name = p.name()
	}
	return f
}

// aliasDecl parses: type name = T; or alias name = T;
func (p *Parser) aliasDecl() Decl {
	d := &AliasDecl{}
	d.pos = p.pos
	p.next() // type or alias
	d.Name = p.name()
	p.want(_Assign)
	d.Type = p.type_()
	p.want(_Semi)
	return d
}

// templateDecl parses: template<T, U> (fn ... | struct ...)
func (p *Parser) templateDecl() Decl {
	d := &TemplateDecl{}
	d.pos = p.expect(_Template)

	p.want(_Lss)
	d.Params = append(d.Params, p.name())
	for p.got(_Comma) {
		d.Params = append(d.Params, p.name())
	}
	p.want(_Gtr)

	switch p.tok {
	case _Fn:
		d.Decl = p.funcDecl()
	case _Struct:
		d.Decl = p.structDecl()
	default:
		p.syntaxError(`"fn" or "struct"`)
	}
	return d
}

// ----------------------------------------------------------------------------
// Types

// type_ parses a type expression: name, *T, &T, or T[n].
// Prefix forms apply to the whole postfix form: *int[4] is a pointer to an
// array of four ints.
func (p *Parser) type_() Expr {
	p.enter()
	defer p.leave()

	switch p.tok {
	case _Mul:
		t := &PointerType{}
		t.pos = p.pos
		p.next()
		t.Base = p.type_()
		return t

	case _And:
		t := &RefType{}
		t.pos = p.pos
		p.next()
		t.Base = p.type_()
		return t

	case _Name:
		var t Expr = p.name()
		for p.tok == _Lbrack {
			a := &ArrayType{Elem: t}
			a.pos = t.Pos()
			p.next()
			a.Len = p.expr()
			p.want(_Rbrack)
			t = a
		}
		return t
	}

	p.syntaxError("type")
	return nil
}

// ----------------------------------------------------------------------------
// Expressions

// expr parses an expression, including assignments.
func (p *Parser) expr() Expr {
	x := p.binaryExpr(0)
	if !p.tok.IsAssign() {
		return x
	}
	// Assignment is right-associative: a = b = c is a = (b = c).
	a := &AssignExpr{Op: binaryOps[p.tok], LHS: x}
	a.pos = x.Pos()
	p.next()
	p.enter()
	a.RHS = p.expr()
	p.leave()
	return a
}

// binaryExpr parses a binary expression with minimum precedence prec
// using precedence climbing.
func (p *Parser) binaryExpr(prec int) Expr {
	x := p.unaryExpr()

	for {
		oprec := p.tok.Precedence()
		if oprec <= prec {
			return x
		}

		// Binary expression position starts at the left operand.
		op := &Operation{Op: binaryOps[p.tok], X: x}
		op.pos = x.Pos()
		p.next()

		// left associative
		op.Y = p.binaryExpr(oprec)
		x = op
	}
}

// prefixOps maps prefix operator tokens to AST operators.
var prefixOps = map[Token]Operator{
	_Inc:   PreInc,
	_Dec:   PreDec,
	_Not:   Not,
	_Tilde: BitNot,
	_Sub:   Neg,
	_Mul:   Deref,
	_And:   Addr,
}

// unaryExpr parses a prefix expression.
func (p *Parser) unaryExpr() Expr {
	p.enter()
	defer p.leave()

	if op, ok := prefixOps[p.tok]; ok {
		x := &Operation{Op: op}
		x.pos = p.pos
		p.next()
		x.X = p.unaryExpr()
		return x
	}
	return p.postfixExpr()
}

// postfixExpr parses an operand followed by calls, index expressions,
// member accesses and postfix ++/--.
func (p *Parser) postfixExpr() Expr {
	x := p.operand()

	for {
		switch p.tok {
		case _Lparen:
			call := &CallExpr{Fun: x}
			call.pos = x.Pos()
			p.next()
			if p.tok != _Rparen {
				call.Args = append(call.Args, p.expr())
				for p.got(_Comma) {
					call.Args = append(call.Args, p.expr())
				}
			}
			p.want(_Rparen)
			x = call

		case _Lbrack:
			idx := &IndexExpr{X: x}
			idx.pos = x.Pos()
			p.next()
			idx.Index = p.expr()
			p.want(_Rbrack)
			x = idx

		case _Dot:
			sel := &SelectorExpr{X: x}
			sel.pos = x.Pos()
			p.next()
			sel.Sel = p.name()
			x = sel

		case _Inc, _Dec:
			op := &Operation{Op: PostInc, X: x}
			if p.tok == _Dec {
				op.Op = PostDec
			}
			op.pos = x.Pos()
			p.next()
			x = op

		default:
			return x
		}
	}
}

// operand parses a name, literal, parenthesized expression or block.
func (p *Parser) operand() Expr {
	switch p.tok {
	case _Name:
		return p.name()

	case _Literal:
		lit := &BasicLit{Value: p.lit, Kind: p.kind}
		lit.pos = p.pos
		p.next()
		return lit

	case _Lparen:
		p.next()
		x := p.expr()
		p.want(_Rparen)
		return x

	case _Lbrace:
		return p.block()
	}

	p.syntaxError("expression")
	return nil
}
