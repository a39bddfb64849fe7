package syntax

import (
	"strings"
	"testing"
)

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{_EOF, "EOF"},
		{_Name, "NAME"},
		{_Literal, "LITERAL"},
		{_Assign, "="},
		{_ShlAssign, "<<="},
		{_XorAssign, "^="},
		{_OrOr, "||"},
		{_Tilde, "~"},
		{_Inc, "++"},
		{_Dec, "--"},
		{_Dot, "."},
		{_Alias, "alias"},
		{_Loop, "loop"},
		{_Template, "template"},
		{_While, "while"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.tok.String(); got != tt.want {
				t.Errorf("Token(%d).String() = %q, want %q", tt.tok, got, tt.want)
			}
		})
	}
}

func TestTokenNamesComplete(t *testing.T) {
	for tok := Token(0); tok < tokenCount; tok++ {
		if tokenNames[tok] == "" {
			t.Errorf("token %d has no name", tok)
		}
	}
	if got := Token(999).String(); !strings.HasPrefix(got, "token(") {
		t.Errorf("unknown token string = %q, want prefix 'token('", got)
	}
}

func TestTokenPrecedence(t *testing.T) {
	tests := []struct {
		tok  Token
		want int
	}{
		{_Name, 0},
		{_Assign, 0},
		{_AddAssign, 0},
		{_OrOr, 1},
		{_AndAnd, 2},
		{_Or, 3},
		{_Xor, 4},
		{_And, 5},
		{_Eql, 6},
		{_Neq, 6},
		{_Lss, 7},
		{_Geq, 7},
		{_Shl, 8},
		{_Shr, 8},
		{_Add, 9},
		{_Sub, 9},
		{_Mul, 10},
		{_Div, 10},
		{_Rem, 10},
	}

	for _, tt := range tests {
		t.Run(tt.tok.String(), func(t *testing.T) {
			if got := tt.tok.Precedence(); got != tt.want {
				t.Errorf("%s.Precedence() = %d, want %d", tt.tok, got, tt.want)
			}
		})
	}
}

func TestBinaryOpsCoverPrecedence(t *testing.T) {
	for tok := Token(0); tok < tokenCount; tok++ {
		if tok.Precedence() == 0 && !tok.IsAssign() {
			continue
		}
		if _, ok := binaryOps[tok]; !ok {
			t.Errorf("binary token %s has no operator", tok)
		}
	}
}

func TestTokenClasses(t *testing.T) {
	for tok := Token(0); tok < tokenCount; tok++ {
		_, isKw := keywords[tok.String()]
		if tok.IsKeyword() != isKw {
			t.Errorf("%s.IsKeyword() = %v, want %v", tok, tok.IsKeyword(), isKw)
		}
		if tok.IsAssign() && !tok.IsOperator() {
			t.Errorf("%s is an assignment but not an operator", tok)
		}
	}
	if !_Break.IsBreak() || _Continue.IsBreak() || !_Continue.IsContinue() {
		t.Error("IsBreak/IsContinue mismatch")
	}
	if !_EOF.IsEOF() || _Name.IsEOF() {
		t.Error("IsEOF mismatch")
	}
}

func TestOperatorClasses(t *testing.T) {
	tests := []struct {
		op                                Operator
		str                               string
		cmp, logical, bitwise, arith, inc bool
	}{
		{Def, "=", false, false, false, false, false},
		{Eql, "==", true, false, false, false, false},
		{Geq, ">=", true, false, false, false, false},
		{AndAnd, "&&", false, true, false, false, false},
		{Xor, "^", false, false, true, false, false},
		{Shr, ">>", false, false, true, false, false},
		{Rem, "%", false, false, false, true, false},
		{PostDec, "--", false, false, false, false, true},
		{Neg, "-", false, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			if got := tt.op.String(); got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}
			if tt.op.IsComparison() != tt.cmp || tt.op.IsLogical() != tt.logical ||
				tt.op.IsBitwise() != tt.bitwise || tt.op.IsArithmetic() != tt.arith ||
				tt.op.IsIncDec() != tt.inc {
				t.Errorf("%s: classification mismatch", tt.op)
			}
		})
	}
}

func TestLookupKeyword(t *testing.T) {
	for word, tok := range keywords {
		if got := LookupKeyword(word); got != tok {
			t.Errorf("LookupKeyword(%q) = %s, want %s", word, got, tok)
		}
	}
	for _, word := range []string{"int", "float", "bool", "char", "void", "true", "false", "func", "package"} {
		if got := LookupKeyword(word); got != _Name {
			t.Errorf("LookupKeyword(%q) = %s, want NAME", word, got)
		}
	}
	if len(keywords) != 14 {
		t.Errorf("keyword count = %d, want 14", len(keywords))
	}
}

func TestLitKindString(t *testing.T) {
	if IntLit.String() != "int" || FloatLit.String() != "float" || StringLit.String() != "string" {
		t.Error("LitKind names mismatch")
	}
	if got := LitKind(9).String(); !strings.HasPrefix(got, "LitKind(") {
		t.Errorf("unknown LitKind = %q", got)
	}
}
