package syntax

import (
	"fmt"
	"io"
	"strings"
)

// LexError reports a character the scanner could not turn into a token.
// Char is -1 when the offending input is the end of the file.
type LexError struct {
	Char rune
	Pos  Pos
	Msg  string
}

func (e *LexError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// Lexeme is a scanned token together with its literal text and position.
type Lexeme struct {
	Tok  Token
	Lit  string
	Kind LitKind // only meaningful when Tok is a literal
	Pos  Pos
}

func (l Lexeme) String() string {
	switch l.Tok {
	case _Name:
		return fmt.Sprintf("%s %s", l.Tok, l.Lit)
	case _Literal:
		if l.Kind == StringLit {
			return fmt.Sprintf("%s(%s) %q", l.Tok, l.Kind, l.Lit)
		}
		return fmt.Sprintf("%s(%s) %s", l.Tok, l.Kind, l.Lit)
	}
	return l.Tok.String()
}

// Scanner performs lexical analysis on cp source text.
type Scanner struct {
	source // embedded character reader

	// Current token info
	tok    Token   // token type
	lit    string  // token literal (identifier name, number, string content)
	kind   LitKind // literal kind (only valid when tok == _Literal)
	tokPos Pos     // token start position

	first *LexError // first lexical error, if any

	litBuf strings.Builder
}

// NewScanner creates a new Scanner for the given source.
// The errh function is called for each lexical error; if nil, errors are
// only recorded and available through Err.
func NewScanner(filename string, src io.Reader, errh func(err *LexError)) *Scanner {
	s := &Scanner{}
	s.source = *newSource(filename, src, func(err *LexError) {
		if s.first == nil {
			s.first = err
		}
		if errh != nil {
			errh(err)
		}
	})
	return s
}

// Tokenize scans src completely and returns its tokens, the last of which
// is always EOF. Scanning stops at the first lexical error.
func Tokenize(filename string, src io.Reader) ([]Lexeme, error) {
	s := NewScanner(filename, src, nil)
	var toks []Lexeme
	for {
		s.Next()
		if s.first != nil {
			return nil, s.first
		}
		toks = append(toks, Lexeme{Tok: s.tok, Lit: s.lit, Kind: s.kind, Pos: s.tokPos})
		if s.tok == _EOF {
			return toks, nil
		}
	}
}

// Next advances to the next token.
func (s *Scanner) Next() {
redo:
	s.skipWhitespace()

	s.tokPos = s.pos()
	s.kind = IntLit

	switch {
	case s.ch < 0:
		s.tok = _EOF
		s.lit = ""

	case isLetter(s.ch):
		s.scanIdent()

	case isDigit(s.ch):
		s.scanNumber()

	case s.ch == '"':
		s.scanString()

	case isOperatorStart(s.ch):
		if s.scanOperator() {
			// comment skipped
			goto redo
		}

	default:
		s.error(fmt.Sprintf("unexpected character %q", s.ch))
		s.nextch()
		goto redo
	}
}

// Token returns the current token type.
func (s *Scanner) Token() Token {
	return s.tok
}

// Literal returns the current token's literal value.
func (s *Scanner) Literal() string {
	return s.lit
}

// LitKind returns the current literal's kind (only valid when Token() == _Literal).
func (s *Scanner) LitKind() LitKind {
	return s.kind
}

// Pos returns the current token's start position.
func (s *Scanner) Pos() Pos {
	return s.tokPos
}

// Err returns the first lexical error, or nil.
func (s *Scanner) Err() error {
	if s.first == nil {
		return nil
	}
	return s.first
}

func (s *Scanner) skipWhitespace() {
	for isWhitespace(s.ch) {
		s.nextch()
	}
}

func (s *Scanner) startLit() {
	s.litBuf.Reset()
	s.litBuf.WriteRune(s.ch)
}

func (s *Scanner) continueLit() {
	s.litBuf.WriteRune(s.ch)
}

func (s *Scanner) stopLit() string {
	return s.litBuf.String()
}

// scanIdent scans an identifier or keyword.
func (s *Scanner) scanIdent() {
	s.startLit()
	s.nextch()

	for isLetter(s.ch) || isDigit(s.ch) {
		s.continueLit()
		s.nextch()
	}

	s.lit = s.stopLit()
	s.tok = LookupKeyword(s.lit)
}

// scanNumber scans a number literal (integer or float).
func (s *Scanner) scanNumber() {
	s.litBuf.Reset()
	s.kind = IntLit

	if s.ch == '0' {
		s.litBuf.WriteRune(s.ch)
		s.nextch()
		switch lower(s.ch) {
		case 'x':
			s.continueLit()
			s.nextch()
			s.scanDigits(isHexDigit, "hexadecimal")
		case 'o':
			s.continueLit()
			s.nextch()
			s.scanDigits(isOctalDigit, "octal")
		case 'b':
			s.continueLit()
			s.nextch()
			s.scanDigits(isBinaryDigit, "binary")
		default:
			s.scanDecimalDigits()
			if s.ch == '.' || lower(s.ch) == 'e' {
				s.scanFraction()
			}
		}
	} else {
		s.scanDecimalDigits()
		if s.ch == '.' || lower(s.ch) == 'e' {
			s.scanFraction()
		}
	}

	s.lit = s.litBuf.String()
	s.tok = _Literal
}

func (s *Scanner) scanDecimalDigits() {
	for isDigit(s.ch) {
		s.continueLit()
		s.nextch()
	}
}

// scanDigits scans the digits of a prefixed integer literal. At least one
// digit is required, and a trailing decimal digit outside the base is an error.
func (s *Scanner) scanDigits(valid func(rune) bool, base string) {
	if !valid(s.ch) {
		s.error("invalid " + base + " digit")
		return
	}
	for valid(s.ch) {
		s.continueLit()
		s.nextch()
	}
	if isDigit(s.ch) {
		s.error("invalid " + base + " digit")
	}
}

// scanFraction scans the fractional part of a float (. and/or exponent).
func (s *Scanner) scanFraction() {
	if s.ch == '.' {
		s.kind = FloatLit
		s.continueLit()
		s.nextch()
		s.scanDecimalDigits()
	}

	if lower(s.ch) == 'e' {
		s.kind = FloatLit
		s.continueLit()
		s.nextch()

		if s.ch == '+' || s.ch == '-' {
			s.continueLit()
			s.nextch()
		}

		if !isDigit(s.ch) {
			s.error("exponent has no digits")
			return
		}
		s.scanDecimalDigits()
	}
}

// scanString scans a string literal.
// The resulting literal is the decoded string content.
func (s *Scanner) scanString() {
	start := s.pos()
	s.nextch() // skip opening "
	var b strings.Builder

	s.tok = _Literal
	s.kind = StringLit
	for {
		switch {
		case s.ch == '"':
			s.nextch()
			s.lit = b.String()
			return

		case s.ch == '\\':
			if r, ok := s.scanEscape(); ok {
				b.WriteRune(r)
			}

		case s.ch == '\n' || s.ch < 0:
			s.errorAt(start, '"', "string literal not terminated")
			s.lit = b.String()
			return

		default:
			b.WriteRune(s.ch)
			s.nextch()
		}
	}
}

// scanEscape scans an escape sequence and returns the decoded rune.
func (s *Scanner) scanEscape() (rune, bool) {
	s.nextch() // skip \

	switch s.ch {
	case 'n':
		s.nextch()
		return '\n', true
	case 't':
		s.nextch()
		return '\t', true
	case 'r':
		s.nextch()
		return '\r', true
	case '\\':
		s.nextch()
		return '\\', true
	case '"':
		s.nextch()
		return '"', true
	case '0':
		s.nextch()
		return 0, true
	case 'x':
		s.nextch()
		return s.scanHexEscape()
	default:
		s.error(fmt.Sprintf("unknown escape sequence \\%c", s.ch))
		s.nextch()
		return 0, false
	}
}

// scanHexEscape scans the two digits of a \xNN escape.
func (s *Scanner) scanHexEscape() (rune, bool) {
	var val rune
	for i := 0; i < 2; i++ {
		if !isHexDigit(s.ch) {
			s.error("invalid hex escape")
			return 0, false
		}
		val = val*16 + hexValue(s.ch)
		s.nextch()
	}
	return val, true
}

func hexValue(r rune) rune {
	switch {
	case '0' <= r && r <= '9':
		return r - '0'
	case 'a' <= lower(r) && lower(r) <= 'f':
		return lower(r) - 'a' + 10
	}
	return 0
}

// op sets the current token.
func (s *Scanner) op(tok Token) {
	s.tok = tok
	s.lit = tok.String()
}

// opAssign sets tok, or assign if the next character is '='.
func (s *Scanner) opAssign(tok, assign Token) {
	if s.ch == '=' {
		s.nextch()
		s.op(assign)
		return
	}
	s.op(tok)
}

// scanOperator scans an operator or delimiter.
// Returns true if a comment was skipped (caller should rescan).
func (s *Scanner) scanOperator() bool {
	ch := s.ch
	s.nextch()

	switch ch {
	case '+':
		if s.ch == '+' {
			s.nextch()
			s.op(_Inc)
			break
		}
		s.opAssign(_Add, _AddAssign)
	case '-':
		if s.ch == '-' {
			s.nextch()
			s.op(_Dec)
			break
		}
		s.opAssign(_Sub, _SubAssign)
	case '*':
		s.opAssign(_Mul, _MulAssign)
	case '/':
		switch s.ch {
		case '/':
			s.skipLineComment()
			return true
		case '*':
			s.skipBlockComment()
			return true
		}
		s.opAssign(_Div, _DivAssign)
	case '%':
		s.opAssign(_Rem, _RemAssign)
	case '&':
		if s.ch == '&' {
			s.nextch()
			s.op(_AndAnd)
			break
		}
		s.opAssign(_And, _AndAssign)
	case '|':
		if s.ch == '|' {
			s.nextch()
			s.op(_OrOr)
			break
		}
		s.opAssign(_Or, _OrAssign)
	case '^':
		s.opAssign(_Xor, _XorAssign)
	case '~':
		s.op(_Tilde)
	case '<':
		if s.ch == '<' {
			s.nextch()
			s.opAssign(_Shl, _ShlAssign)
			break
		}
		s.opAssign(_Lss, _Leq)
	case '>':
		if s.ch == '>' {
			s.nextch()
			s.opAssign(_Shr, _ShrAssign)
			break
		}
		s.opAssign(_Gtr, _Geq)
	case '=':
		s.opAssign(_Assign, _Eql)
	case '!':
		s.opAssign(_Not, _Neq)
	case ':':
		s.op(_Colon)
	case '(':
		s.op(_Lparen)
	case ')':
		s.op(_Rparen)
	case '[':
		s.op(_Lbrack)
	case ']':
		s.op(_Rbrack)
	case '{':
		s.op(_Lbrace)
	case '}':
		s.op(_Rbrace)
	case ',':
		s.op(_Comma)
	case ';':
		s.op(_Semi)
	case '.':
		s.op(_Dot)
	}

	return false
}

// skipLineComment skips a line comment (from // to end of line).
func (s *Scanner) skipLineComment() {
	s.nextch() // second /
	for s.ch != '\n' && s.ch >= 0 {
		s.nextch()
	}
}

// skipBlockComment skips a /* */ comment. Block comments do not nest.
func (s *Scanner) skipBlockComment() {
	s.nextch() // *
	for s.ch >= 0 {
		if s.ch == '*' {
			s.nextch()
			if s.ch == '/' {
				s.nextch()
				return
			}
			continue
		}
		s.nextch()
	}
	s.errorAt(s.tokPos, '/', "comment not terminated")
}
