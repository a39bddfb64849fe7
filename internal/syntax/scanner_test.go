package syntax

import (
	"strings"
	"testing"
)

func tokenize(t *testing.T, src string) []Lexeme {
	t.Helper()
	toks, err := Tokenize("test.cp", strings.NewReader(src))
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", src, err)
	}
	return toks
}

func TestScanTokens(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		tokens []Token
		lits   []string
	}{
		// Identifiers; primitive type names are not keywords
		{"ident", "foo", []Token{_Name}, []string{"foo"}},
		{"ident_underscore", "_bar9", []Token{_Name}, []string{"_bar9"}},
		{"predecl_int", "int", []Token{_Name}, []string{"int"}},
		{"predecl_true", "true", []Token{_Name}, []string{"true"}},

		// Keywords
		{"kw_fn", "fn", []Token{_Fn}, []string{"fn"}},
		{"kw_for", "for", []Token{_For}, []string{"for"}},
		{"kw_template", "template", []Token{_Template}, []string{"template"}},

		// Numbers
		{"int_dec", "123", []Token{_Literal}, []string{"123"}},
		{"int_hex", "0xDeAd", []Token{_Literal}, []string{"0xDeAd"}},
		{"int_oct", "0o77", []Token{_Literal}, []string{"0o77"}},
		{"int_bin", "0b1010", []Token{_Literal}, []string{"0b1010"}},
		{"float_simple", "3.14", []Token{_Literal}, []string{"3.14"}},
		{"float_exp", "2.5e-3", []Token{_Literal}, []string{"2.5e-3"}},

		// Strings (decoded content)
		{"string_simple", `"hello"`, []Token{_Literal}, []string{"hello"}},
		{"string_escapes", `"a\n\t\r\\\"\0"`, []Token{_Literal}, []string{"a\n\t\r\\\"\x00"}},
		{"string_hex", `"\x41\x42"`, []Token{_Literal}, []string{"AB"}},

		// Operators
		{"ops_single", "+ - * / % & | ^ ~ ! < > = . , ; :",
			[]Token{_Add, _Sub, _Mul, _Div, _Rem, _And, _Or, _Xor, _Tilde, _Not, _Lss, _Gtr, _Assign, _Dot, _Comma, _Semi, _Colon},
			[]string{"+", "-", "*", "/", "%", "&", "|", "^", "~", "!", "<", ">", "=", ".", ",", ";", ":"}},
		{"ops_double", "== != <= >= << >> && || ++ --",
			[]Token{_Eql, _Neq, _Leq, _Geq, _Shl, _Shr, _AndAnd, _OrOr, _Inc, _Dec},
			[]string{"==", "!=", "<=", ">=", "<<", ">>", "&&", "||", "++", "--"}},
		{"ops_compound", "+= -= *= /= %= &= |= ^= <<= >>=",
			[]Token{_AddAssign, _SubAssign, _MulAssign, _DivAssign, _RemAssign, _AndAssign, _OrAssign, _XorAssign, _ShlAssign, _ShrAssign},
			[]string{"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<=", ">>="}},
		{"delims", "()[]{}",
			[]Token{_Lparen, _Rparen, _Lbrack, _Rbrack, _Lbrace, _Rbrace},
			[]string{"(", ")", "[", "]", "{", "}"}},

		// Longest match
		{"plus_plus_plus", "a+++b", []Token{_Name, _Inc, _Add, _Name}, []string{"a", "++", "+", "b"}},
		{"shift_assign", "x<<=1", []Token{_Name, _ShlAssign, _Literal}, []string{"x", "<<=", "1"}},

		// Trivia
		{"line_comment", "a // b\nc", []Token{_Name, _Name}, []string{"a", "c"}},
		{"block_comment", "a /* b\n * c */ d", []Token{_Name, _Name}, []string{"a", "d"}},
		{"block_comment_stars", "a /***/ d", []Token{_Name, _Name}, []string{"a", "d"}},
		{"newlines", "a\n\n\tb", []Token{_Name, _Name}, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := tokenize(t, tt.src)
			if n := len(toks); n != len(tt.tokens)+1 || toks[n-1].Tok != _EOF {
				t.Fatalf("got %d tokens %v, want %d plus EOF", n, toks, len(tt.tokens))
			}
			for i, want := range tt.tokens {
				if toks[i].Tok != want {
					t.Errorf("token %d: got %v, want %v", i, toks[i].Tok, want)
				}
				if toks[i].Lit != tt.lits[i] {
					t.Errorf("token %d: lit = %q, want %q", i, toks[i].Lit, tt.lits[i])
				}
			}
		})
	}
}

func TestScanLitKind(t *testing.T) {
	tests := []struct {
		src  string
		kind LitKind
	}{
		{"42", IntLit},
		{"0x2A", IntLit},
		{"1.5", FloatLit},
		{"1e9", FloatLit},
		{`"s"`, StringLit},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			toks := tokenize(t, tt.src)
			if toks[0].Kind != tt.kind {
				t.Errorf("kind = %v, want %v", toks[0].Kind, tt.kind)
			}
		})
	}
}

func TestPosition(t *testing.T) {
	src := "fn foo() {\n    x = 123;\n}"

	expected := []struct {
		tok       Token
		line, col uint32
		offset    int
	}{
		{_Fn, 1, 1, 0},
		{_Name, 1, 4, 3},
		{_Lparen, 1, 7, 6},
		{_Rparen, 1, 8, 7},
		{_Lbrace, 1, 10, 9},
		{_Name, 2, 5, 15},
		{_Assign, 2, 7, 17},
		{_Literal, 2, 9, 19},
		{_Semi, 2, 12, 22},
		{_Rbrace, 3, 1, 24},
		{_EOF, 3, 2, 25},
	}

	toks := tokenize(t, src)
	if len(toks) != len(expected) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(expected))
	}
	for i, exp := range expected {
		pos := toks[i].Pos
		if toks[i].Tok != exp.tok {
			t.Errorf("token %d: got %v, want %v", i, toks[i].Tok, exp.tok)
		}
		if pos.Line() != exp.line || pos.Col() != exp.col || pos.Offset() != exp.offset {
			t.Errorf("token %d (%v): pos = %d:%d@%d, want %d:%d@%d",
				i, toks[i].Tok, pos.Line(), pos.Col(), pos.Offset(), exp.line, exp.col, exp.offset)
		}
	}
}

func TestTokenizeDeterministic(t *testing.T) {
	src := "var x: int = 0x10; x <<= 2; /* c */ fn f(a: int): int { return a; }"
	a := tokenize(t, src)
	b := tokenize(t, src)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("token %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestScanErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantErr  string
		wantChar rune
		wantLine uint32
		wantCol  uint32
	}{
		{"unterminated_string", `x = "hello`, "string literal not terminated", '"', 1, 5},
		{"string_newline", "\"ab\ncd\"", "string literal not terminated", '"', 1, 1},
		{"bad_escape", `"\q"`, "unknown escape sequence", 'q', 1, 3},
		{"bad_hex_escape", `"\xGG"`, "invalid hex escape", 'G', 1, 4},
		{"bad_hex_literal", "0xGG", "invalid hexadecimal digit", 'G', 1, 3},
		{"bad_octal_literal", "0o9", "invalid octal digit", '9', 1, 3},
		{"bad_binary_literal", "0b12", "invalid binary digit", '2', 1, 4},
		{"empty_exponent", "1e;", "exponent has no digits", ';', 1, 3},
		{"bad_char", "a @ b", "unexpected character", '@', 1, 3},
		{"bad_char_hash", "\n  #", "unexpected character", '#', 2, 3},
		{"bad_char_unicode", "é", "unexpected character", 'é', 1, 1},
		{"unterminated_comment", "a /* b", "comment not terminated", '/', 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := Tokenize("test.cp", strings.NewReader(tt.src))
			if err == nil {
				t.Fatalf("expected error containing %q, got tokens %v", tt.wantErr, toks)
			}
			lexErr, ok := err.(*LexError)
			if !ok {
				t.Fatalf("error type = %T, want *LexError", err)
			}
			if !strings.Contains(lexErr.Msg, tt.wantErr) {
				t.Errorf("error = %q, want %q", lexErr.Msg, tt.wantErr)
			}
			if lexErr.Char != tt.wantChar {
				t.Errorf("char = %q, want %q", lexErr.Char, tt.wantChar)
			}
			if lexErr.Pos.Line() != tt.wantLine || lexErr.Pos.Col() != tt.wantCol {
				t.Errorf("pos = %s, want %d:%d", lexErr.Pos, tt.wantLine, tt.wantCol)
			}
		})
	}
}

func TestScannerReportsAllErrors(t *testing.T) {
	var errs []*LexError
	s := NewScanner("test.cp", strings.NewReader("a $ b # c"), func(err *LexError) {
		errs = append(errs, err)
	})
	var names []string
	for {
		s.Next()
		if s.Token().IsEOF() {
			break
		}
		names = append(names, s.Literal())
	}
	if len(errs) != 2 {
		t.Errorf("got %d errors, want 2", len(errs))
	}
	if strings.Join(names, " ") != "a b c" {
		t.Errorf("names = %v, want [a b c]", names)
	}
	if s.Err() != error(errs[0]) {
		t.Errorf("Err() = %v, want first error", s.Err())
	}
}

func TestLexemeString(t *testing.T) {
	toks := tokenize(t, `x 12 "s" +=`)
	want := []string{"NAME x", "LITERAL(int) 12", `LITERAL(string) "s"`, "+=", "EOF"}
	for i, w := range want {
		if got := toks[i].String(); got != w {
			t.Errorf("token %d: String() = %q, want %q", i, got, w)
		}
	}
}

func FuzzScanner(f *testing.F) {
	seeds := []string{
		"fn foo() { return 123; }",
		`var s = "hello\nworld";`,
		"x = 0x1F + 0b1010;",
		"if (a && b || c) { }",
		"loop { i++; } while (i < 10);",
		"struct Point { int x; int y; }",
		"/* comment */ foo // tail",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, src string) {
		toks, err := Tokenize("fuzz", strings.NewReader(src))
		if err == nil && (len(toks) == 0 || toks[len(toks)-1].Tok != _EOF) {
			t.Errorf("token stream for %q does not end in EOF", src)
		}
	})
}
