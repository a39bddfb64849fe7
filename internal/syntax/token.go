// Package syntax implements lexical and syntactic analysis for the cp language.
package syntax

import "fmt"

// Token represents the type of a lexical token.
type Token uint

const (
	// Special tokens
	_EOF Token = iota // end of file

	// Literals
	_Name    // identifier: foo, bar, Point
	_Literal // literal value (used with LitKind)

	// Assignment
	_Assign    // =
	_AddAssign // +=
	_SubAssign // -=
	_MulAssign // *=
	_DivAssign // /=
	_RemAssign // %=
	_AndAssign // &=
	_OrAssign  // |=
	_XorAssign // ^=
	_ShlAssign // <<=
	_ShrAssign // >>=

	// Logical operators
	_OrOr   // ||
	_AndAnd // &&

	// Bitwise operators
	_Or  // |
	_Xor // ^
	_And // &

	// Comparison operators
	_Eql // ==
	_Neq // !=
	_Lss // <
	_Leq // <=
	_Gtr // >
	_Geq // >=

	// Shifts
	_Shl // <<
	_Shr // >>

	// Arithmetic operators
	_Add // +
	_Sub // -
	_Mul // *
	_Div // /
	_Rem // %

	// Unary and postfix operators
	_Not   // !
	_Tilde // ~
	_Inc   // ++
	_Dec   // --

	// Delimiters
	_Lparen // (
	_Rparen // )
	_Lbrack // [
	_Rbrack // ]
	_Lbrace // {
	_Rbrace // }
	_Comma  // ,
	_Semi   // ;
	_Colon  // :
	_Dot    // .

	// Keywords
	_Alias
	_Break
	_Continue
	_Else
	_Fn
	_For
	_If
	_Loop
	_Return
	_Struct
	_Template
	_Type
	_Var
	_While

	tokenCount
)

// tokenNames maps tokens to their string representation.
var tokenNames = [...]string{
	_EOF: "EOF",

	_Name:    "NAME",
	_Literal: "LITERAL",

	_Assign:    "=",
	_AddAssign: "+=",
	_SubAssign: "-=",
	_MulAssign: "*=",
	_DivAssign: "/=",
	_RemAssign: "%=",
	_AndAssign: "&=",
	_OrAssign:  "|=",
	_XorAssign: "^=",
	_ShlAssign: "<<=",
	_ShrAssign: ">>=",

	_OrOr:   "||",
	_AndAnd: "&&",

	_Or:  "|",
	_Xor: "^",
	_And: "&",

	_Eql: "==",
	_Neq: "!=",
	_Lss: "<",
	_Leq: "<=",
	_Gtr: ">",
	_Geq: ">=",

	_Shl: "<<",
	_Shr: ">>",

	_Add: "+",
	_Sub: "-",
	_Mul: "*",
	_Div: "/",
	_Rem: "%",

	_Not:   "!",
	_Tilde: "~",
	_Inc:   "++",
	_Dec:   "--",

	_Lparen: "(",
	_Rparen: ")",
	_Lbrack: "[",
	_Rbrack: "]",
	_Lbrace: "{",
	_Rbrace: "}",
	_Comma:  ",",
	_Semi:   ";",
	_Colon:  ":",
	_Dot:    ".",

	_Alias:    "alias",
	_Break:    "break",
	_Continue: "continue",
	_Else:     "else",
	_Fn:       "fn",
	_For:      "for",
	_If:       "if",
	_Loop:     "loop",
	_Return:   "return",
	_Struct:   "struct",
	_Template: "template",
	_Type:     "type",
	_Var:      "var",
	_While:    "while",
}

// String returns the string representation of the token.
func (t Token) String() string {
	if t < tokenCount {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", t)
}

// IsKeyword reports whether t is a keyword token.
func (t Token) IsKeyword() bool {
	return t >= _Alias && t <= _While
}

// IsOperator reports whether t is an operator token.
func (t Token) IsOperator() bool {
	return t >= _Assign && t <= _Dec
}

// IsAssign reports whether t is = or one of its compound forms.
func (t Token) IsAssign() bool {
	return t >= _Assign && t <= _ShrAssign
}

// IsEOF reports whether t is the EOF token.
func (t Token) IsEOF() bool {
	return t == _EOF
}

// IsBreak reports whether t is the break keyword.
func (t Token) IsBreak() bool {
	return t == _Break
}

// IsContinue reports whether t is the continue keyword.
func (t Token) IsContinue() bool {
	return t == _Continue
}

// Precedence returns the operator precedence for binary operators.
// Returns 0 for non-operators.
// Precedence levels (higher = binds tighter):
//
//	1: ||
//	2: &&
//	3: |
//	4: ^
//	5: &
//	6: == !=
//	7: < <= > >=
//	8: << >>
//	9: + -
//	10: * / %
func (t Token) Precedence() int {
	switch t {
	case _OrOr:
		return 1
	case _AndAnd:
		return 2
	case _Or:
		return 3
	case _Xor:
		return 4
	case _And:
		return 5
	case _Eql, _Neq:
		return 6
	case _Lss, _Leq, _Gtr, _Geq:
		return 7
	case _Shl, _Shr:
		return 8
	case _Add, _Sub:
		return 9
	case _Mul, _Div, _Rem:
		return 10
	}
	return 0
}

// binaryOps maps binary operator tokens (and the operator part of
// compound assignments) to AST operators.
var binaryOps = map[Token]Operator{
	_OrOr:   OrOr,
	_AndAnd: AndAnd,
	_Or:     Or,
	_Xor:    Xor,
	_And:    And,
	_Eql:    Eql,
	_Neq:    Neq,
	_Lss:    Lss,
	_Leq:    Leq,
	_Gtr:    Gtr,
	_Geq:    Geq,
	_Shl:    Shl,
	_Shr:    Shr,
	_Add:    Add,
	_Sub:    Sub,
	_Mul:    Mul,
	_Div:    Div,
	_Rem:    Rem,

	_Assign:    Def,
	_AddAssign: Add,
	_SubAssign: Sub,
	_MulAssign: Mul,
	_DivAssign: Div,
	_RemAssign: Rem,
	_AndAssign: And,
	_OrAssign:  Or,
	_XorAssign: Xor,
	_ShlAssign: Shl,
	_ShrAssign: Shr,
}

// Operator is the operator of an Operation or AssignExpr node.
type Operator uint8

const (
	_ Operator = iota

	// Def is the plain assignment operator of an AssignExpr.
	Def // =

	// Unary and postfix
	Not     // !
	BitNot  // ~
	Neg     // -x
	Deref   // *x
	Addr    // &x
	PreInc  // ++x
	PreDec  // --x
	PostInc // x++
	PostDec // x--

	// Logical
	OrOr   // ||
	AndAnd // &&

	// Bitwise
	Or  // |
	Xor // ^
	And // &

	// Comparison
	Eql // ==
	Neq // !=
	Lss // <
	Leq // <=
	Gtr // >
	Geq // >=

	// Shifts
	Shl // <<
	Shr // >>

	// Arithmetic
	Add // +
	Sub // -
	Mul // *
	Div // /
	Rem // %

	operatorCount
)

var operatorNames = [...]string{
	Def:     "=",
	Not:     "!",
	BitNot:  "~",
	Neg:     "-",
	Deref:   "*",
	Addr:    "&",
	PreInc:  "++",
	PreDec:  "--",
	PostInc: "++",
	PostDec: "--",
	OrOr:    "||",
	AndAnd:  "&&",
	Or:      "|",
	Xor:     "^",
	And:     "&",
	Eql:     "==",
	Neq:     "!=",
	Lss:     "<",
	Leq:     "<=",
	Gtr:     ">",
	Geq:     ">=",
	Shl:     "<<",
	Shr:     ">>",
	Add:     "+",
	Sub:     "-",
	Mul:     "*",
	Div:     "/",
	Rem:     "%",
}

// String returns the source spelling of the operator.
func (op Operator) String() string {
	if op > 0 && op < operatorCount {
		return operatorNames[op]
	}
	return fmt.Sprintf("Operator(%d)", op)
}

// IsComparison reports whether op is one of == != < <= > >=.
func (op Operator) IsComparison() bool {
	return op >= Eql && op <= Geq
}

// IsLogical reports whether op is && or ||.
func (op Operator) IsLogical() bool {
	return op == OrOr || op == AndAnd
}

// IsBitwise reports whether op is one of | ^ & << >>.
func (op Operator) IsBitwise() bool {
	return op >= Or && op <= And || op == Shl || op == Shr
}

// IsArithmetic reports whether op is one of + - * / %.
func (op Operator) IsArithmetic() bool {
	return op >= Add && op <= Rem
}

// IsIncDec reports whether op is a prefix or postfix increment/decrement.
func (op Operator) IsIncDec() bool {
	return op >= PreInc && op <= PostDec
}

// LitKind represents the kind of a literal token.
type LitKind uint8

const (
	IntLit    LitKind = iota // 123, 0x1F, 0o77, 0b1010
	FloatLit                 // 3.14, 1e10, 2.5e-3
	StringLit                // "hello", "line\n"
)

// litKindNames maps literal kinds to their string representation.
var litKindNames = [...]string{
	IntLit:    "int",
	FloatLit:  "float",
	StringLit: "string",
}

// String returns the string representation of the literal kind.
func (k LitKind) String() string {
	if k <= StringLit {
		return litKindNames[k]
	}
	return fmt.Sprintf("LitKind(%d)", k)
}

// keywords maps keyword strings to their token type.
// Primitive type names (int, float, bool, char, void) and true/false are
// NOT keywords; they are scanned as _Name and bound in the Universe.
var keywords = map[string]Token{
	"alias":    _Alias,
	"break":    _Break,
	"continue": _Continue,
	"else":     _Else,
	"fn":       _Fn,
	"for":      _For,
	"if":       _If,
	"loop":     _Loop,
	"return":   _Return,
	"struct":   _Struct,
	"template": _Template,
	"type":     _Type,
	"var":      _Var,
	"while":    _While,
}

// LookupKeyword returns the token for the given identifier string.
// If the identifier is a keyword, returns the keyword token.
// Otherwise, returns _Name.
func LookupKeyword(ident string) Token {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return _Name
}
