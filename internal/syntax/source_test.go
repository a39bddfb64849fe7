package syntax

import (
	"strings"
	"testing"
)

func TestSourceNewline(t *testing.T) {
	src := newSource("test", strings.NewReader("a\nb\nc"), nil)

	want := []struct {
		ch        rune
		line, col uint32
		offs      int
	}{
		{'a', 1, 1, 0},
		{'\n', 1, 2, 1},
		{'b', 2, 1, 2},
		{'\n', 2, 2, 3},
		{'c', 3, 1, 4},
		{-1, 3, 2, 5},
	}
	for i, w := range want {
		if i > 0 {
			src.nextch()
		}
		pos := src.pos()
		if src.ch != w.ch || pos.Line() != w.line || pos.Col() != w.col || pos.Offset() != w.offs {
			t.Errorf("step %d: got ch=%q pos=%d:%d@%d, want ch=%q pos=%d:%d@%d",
				i, src.ch, pos.Line(), pos.Col(), pos.Offset(), w.ch, w.line, w.col, w.offs)
		}
	}
}

func TestSourceUTF8(t *testing.T) {
	src := newSource("test", strings.NewReader("a中b"), nil)

	src.nextch()
	if src.ch != '中' {
		t.Errorf("ch = %q, want '中'", src.ch)
	}

	// column counts characters, offset counts bytes
	src.nextch()
	if src.ch != 'b' {
		t.Errorf("ch = %q, want 'b'", src.ch)
	}
	if src.col != 3 {
		t.Errorf("col = %d, want 3", src.col)
	}
	if src.choffs != 4 {
		t.Errorf("offset = %d, want 4", src.choffs)
	}
}

func TestSourceEmpty(t *testing.T) {
	src := newSource("test", strings.NewReader(""), nil)
	if src.ch != -1 {
		t.Errorf("ch = %d, want -1 (EOF)", src.ch)
	}
}

func TestSourceError(t *testing.T) {
	var got *LexError
	src := newSource("test.cp", strings.NewReader("ab"), func(err *LexError) { got = err })
	src.nextch()
	src.error("test error")

	if got == nil {
		t.Fatal("error handler not called")
	}
	if got.Msg != "test error" || got.Char != 'b' {
		t.Errorf("error = %+v, want msg %q char 'b'", got, "test error")
	}
	if got.Error() != "test.cp:1:2: test error" {
		t.Errorf("Error() = %q", got.Error())
	}
}

func TestSourceInvalidUTF8(t *testing.T) {
	var errs []*LexError
	newSource("test", strings.NewReader("\xff"), func(err *LexError) { errs = append(errs, err) })
	if len(errs) != 1 || !strings.Contains(errs[0].Msg, "UTF-8") {
		t.Errorf("errors = %v, want one invalid UTF-8 error", errs)
	}
}

func TestCharClasses(t *testing.T) {
	tests := []struct {
		name string
		fn   func(rune) bool
		yes  string
		no   string
	}{
		{"isLetter", isLetter, "azAZ_", "09 $中"},
		{"isDigit", isDigit, "0123456789", "aZ_ "},
		{"isHexDigit", isHexDigit, "09afAF", "gG_"},
		{"isOctalDigit", isOctalDigit, "07", "89a"},
		{"isBinaryDigit", isBinaryDigit, "01", "2a"},
		{"isWhitespace", isWhitespace, " \t\r\n", "a0;"},
		{"isOperatorStart", isOperatorStart, "+-*/%&|^~<>=!:()[]{},;.", "a0_@#$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, r := range tt.yes {
				if !tt.fn(r) {
					t.Errorf("%s(%q) = false, want true", tt.name, r)
				}
			}
			for _, r := range tt.no {
				if tt.fn(r) {
					t.Errorf("%s(%q) = true, want false", tt.name, r)
				}
			}
		})
	}
}
