package types

import (
	"math"
	"testing"

	"github.com/you-not-fish/cp/internal/syntax"
)

func TestSizeof(t *testing.T) {
	sizes := DefaultSizes

	tests := []struct {
		typ  Type
		want int64
	}{
		{Typ[Bool], SizeBool},
		{Typ[Int], SizeInt},
		{Typ[Float], SizeFloat},
		{Typ[Char], SizeChar},
		{Typ[Void], 0},
		{Typ[Unknown], 0},
		{NewPointer(Typ[Int]), SizePtr},
		{NewRef(Typ[Int]), SizePtr},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			got := sizes.Sizeof(tt.typ)
			if got != tt.want {
				t.Errorf("Sizeof(%s) = %d, want %d", tt.typ, got, tt.want)
			}
		})
	}
}

func TestAlignof(t *testing.T) {
	sizes := DefaultSizes

	tests := []struct {
		typ  Type
		want int64
	}{
		{Typ[Bool], AlignBool},
		{Typ[Int], AlignInt},
		{Typ[Float], AlignFloat},
		{Typ[Char], AlignChar},
		{Typ[Void], 1},
		{NewPointer(Typ[Int]), AlignPtr},
		{NewRef(Typ[Int]), AlignPtr},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			got := sizes.Alignof(tt.typ)
			if got != tt.want {
				t.Errorf("Alignof(%s) = %d, want %d", tt.typ, got, tt.want)
			}
		})
	}
}

func TestArraySize(t *testing.T) {
	sizes := DefaultSizes

	tests := []struct {
		len  int64
		elem Type
		want int64
	}{
		{10, Typ[Int], 10 * SizeInt},
		{5, Typ[Bool], 5 * SizeBool},
		{3, NewPointer(Typ[Int]), 3 * SizePtr},
		{16, Typ[Char], 16},
		{0, Typ[Int], 0},
	}

	for _, tt := range tests {
		arr := NewArray(tt.len, tt.elem)
		t.Run(arr.String(), func(t *testing.T) {
			got := sizes.Sizeof(arr)
			if got != tt.want {
				t.Errorf("Sizeof(%s) = %d, want %d", arr, got, tt.want)
			}
		})
	}
}

func TestStructLayout(t *testing.T) {
	sizes := DefaultSizes

	// struct { a int; b bool; c int }
	// Expected layout with padding:
	// offset 0: a (8 bytes)
	// offset 8: b (1 byte)
	// offset 9-15: padding (7 bytes)
	// offset 16: c (8 bytes)
	// Total: 24 bytes, align: 8
	fields := []*Var{
		NewField(syntax.Pos{}, "a", Typ[Int]),
		NewField(syntax.Pos{}, "b", Typ[Bool]),
		NewField(syntax.Pos{}, "c", Typ[Int]),
	}
	st := NewStruct(fields)
	sizes.ComputeLayout(st)

	if st.Offset(0) != 0 {
		t.Errorf("Offset(0) = %d, want 0", st.Offset(0))
	}
	if st.Offset(1) != 8 {
		t.Errorf("Offset(1) = %d, want 8", st.Offset(1))
	}
	if st.Offset(2) != 16 {
		t.Errorf("Offset(2) = %d, want 16", st.Offset(2))
	}
	if st.Size() != 24 {
		t.Errorf("Size() = %d, want 24", st.Size())
	}
	if st.Align() != 8 {
		t.Errorf("Align() = %d, want 8", st.Align())
	}
}

func TestStructLayoutCompact(t *testing.T) {
	sizes := DefaultSizes

	// struct { a bool; b bool; c bool }
	// No padding needed between bool fields
	fields := []*Var{
		NewField(syntax.Pos{}, "a", Typ[Bool]),
		NewField(syntax.Pos{}, "b", Typ[Bool]),
		NewField(syntax.Pos{}, "c", Typ[Bool]),
	}
	st := NewStruct(fields)
	sizes.ComputeLayout(st)

	if st.Offset(0) != 0 {
		t.Errorf("Offset(0) = %d, want 0", st.Offset(0))
	}
	if st.Offset(1) != 1 {
		t.Errorf("Offset(1) = %d, want 1", st.Offset(1))
	}
	if st.Offset(2) != 2 {
		t.Errorf("Offset(2) = %d, want 2", st.Offset(2))
	}
	if st.Size() != 3 {
		t.Errorf("Size() = %d, want 3", st.Size())
	}
	if st.Align() != 1 {
		t.Errorf("Align() = %d, want 1", st.Align())
	}
}

func TestStructLayoutEmpty(t *testing.T) {
	sizes := DefaultSizes

	st := NewStruct(nil)
	sizes.ComputeLayout(st)

	if st.Size() != 0 {
		t.Errorf("Size() = %d, want 0", st.Size())
	}
	if st.Align() != 1 {
		t.Errorf("Align() = %d, want 1", st.Align())
	}
}

func TestStructLayoutWithPointers(t *testing.T) {
	sizes := DefaultSizes

	// struct { p: *int; x: int; q: &int }
	fields := []*Var{
		NewField(syntax.Pos{}, "p", NewPointer(Typ[Int])),
		NewField(syntax.Pos{}, "x", Typ[Int]),
		NewField(syntax.Pos{}, "q", NewRef(Typ[Int])),
	}
	st := NewStruct(fields)
	sizes.ComputeLayout(st)

	// All fields are 8-byte aligned
	if st.Offset(0) != 0 {
		t.Errorf("Offset(0) = %d, want 0", st.Offset(0))
	}
	if st.Offset(1) != 8 {
		t.Errorf("Offset(1) = %d, want 8", st.Offset(1))
	}
	if st.Offset(2) != 16 {
		t.Errorf("Offset(2) = %d, want 16", st.Offset(2))
	}
	if st.Size() != 24 {
		t.Errorf("Size() = %d, want 24", st.Size())
	}
}

func TestNestedStructLayout(t *testing.T) {
	sizes := DefaultSizes

	// Inner: struct { x int; y int }
	innerFields := []*Var{
		NewField(syntax.Pos{}, "x", Typ[Int]),
		NewField(syntax.Pos{}, "y", Typ[Int]),
	}
	inner := NewStruct(innerFields)
	sizes.ComputeLayout(inner)

	// Outer: struct { a bool; inner Inner }
	outerFields := []*Var{
		NewField(syntax.Pos{}, "a", Typ[Bool]),
		NewField(syntax.Pos{}, "inner", inner),
	}
	outer := NewStruct(outerFields)
	sizes.ComputeLayout(outer)

	// a at 0 (1 byte)
	// padding 7 bytes
	// inner at 8 (16 bytes)
	// Total: 24 bytes
	if outer.Offset(0) != 0 {
		t.Errorf("Offset(0) = %d, want 0", outer.Offset(0))
	}
	if outer.Offset(1) != 8 {
		t.Errorf("Offset(1) = %d, want 8", outer.Offset(1))
	}
	if outer.Size() != 24 {
		t.Errorf("Size() = %d, want 24", outer.Size())
	}
}

func TestStructLayoutUnnamedFields(t *testing.T) {
	// struct P { char tag; int; char; int x; }
	// Unnamed fields are padding and still occupy space.
	st := NewStruct([]*Var{
		NewField(syntax.Pos{}, "tag", Typ[Char]),
		NewField(syntax.Pos{}, "", Typ[Int]),
		NewField(syntax.Pos{}, "", Typ[Char]),
		NewField(syntax.Pos{}, "x", Typ[Int]),
	})

	want := []int64{0, 8, 16, 24}
	for i, off := range want {
		if got := DefaultSizes.Offsetof(st, i); got != off {
			t.Errorf("Offsetof(%d) = %d, want %d", i, got, off)
		}
	}
	if st.Size() != 32 {
		t.Errorf("Size() = %d, want 32", st.Size())
	}
}

func TestNamedStructSize(t *testing.T) {
	obj := NewTypeName(syntax.Pos{}, "Node", nil)
	named := NewNamed(obj, nil)

	// struct Node { int val; *Node next; }
	named.SetUnderlying(NewStruct([]*Var{
		NewField(syntax.Pos{}, "val", Typ[Int]),
		NewField(syntax.Pos{}, "next", NewPointer(named)),
	}))

	if got := DefaultSizes.Sizeof(named); got != 16 {
		t.Errorf("Sizeof(Node) = %d, want 16", got)
	}
	if got := DefaultSizes.Alignof(NewArray(4, named)); got != 8 {
		t.Errorf("Alignof(Node[4]) = %d, want 8", got)
	}
}

func TestLayoutIdempotent(t *testing.T) {
	st := NewStruct([]*Var{
		NewField(syntax.Pos{}, "a", Typ[Bool]),
		NewField(syntax.Pos{}, "b", Typ[Float]),
	})
	DefaultSizes.ComputeLayout(st)
	first := st.Offsets()
	DefaultSizes.ComputeLayout(st)
	if &first[0] != &st.Offsets()[0] {
		t.Errorf("ComputeLayout recomputed an existing layout")
	}
	if st.Offset(1) != 8 || st.Size() != 16 {
		t.Errorf("layout = %v size %d, want [0 8] size 16", st.Offsets(), st.Size())
	}
}

func TestSizeofOverflow(t *testing.T) {
	sizes := DefaultSizes
	const limit = math.MaxInt64

	tests := []struct {
		name string
		typ  Type
		want int64
	}{
		{"largest int array", NewArray(limit/SizeInt, Typ[Int]), limit / SizeInt * SizeInt},
		{"int array", NewArray(limit/SizeInt+1, Typ[Int]), -1},
		{"nested array", NewArray(2, NewArray(limit/2+1, Typ[Char])), -1},
		{"array of oversized", NewArray(0, NewArray(limit, Typ[Int])), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sizes.Sizeof(tt.typ); got != tt.want {
				t.Errorf("Sizeof(%s) = %d, want %d", tt.typ, got, tt.want)
			}
		})
	}
}

func TestStructLayoutOverflow(t *testing.T) {
	sizes := DefaultSizes

	// b ends 7 bytes short of the limit, so the 8 bytes of c overflow
	st := NewStruct([]*Var{
		NewField(syntax.Pos{}, "a", NewArray(math.MaxInt64/SizeInt-1, Typ[Int])),
		NewField(syntax.Pos{}, "b", Typ[Int]),
		NewField(syntax.Pos{}, "c", NewArray(8, Typ[Char])),
	})
	sizes.ComputeLayout(st)

	if st.Size() != -1 {
		t.Errorf("Size() = %d, want -1", st.Size())
	}
	wantOffsets := []int64{0, math.MaxInt64/SizeInt*SizeInt - SizeInt, -1}
	for i, want := range wantOffsets {
		if got := st.Offset(i); got != want {
			t.Errorf("Offset(%d) = %d, want %d", i, got, want)
		}
	}

	outer := NewStruct([]*Var{NewField(syntax.Pos{}, "s", st)})
	if got := sizes.Sizeof(outer); got != -1 {
		t.Errorf("Sizeof(outer) = %d, want -1", got)
	}
}

func TestStructLayoutPaddingOverflow(t *testing.T) {
	// the char array ends exactly at the limit, so the tail padding to
	// int alignment overflows
	st := NewStruct([]*Var{
		NewField(syntax.Pos{}, "x", Typ[Int]),
		NewField(syntax.Pos{}, "buf", NewArray(math.MaxInt64-SizeInt, Typ[Char])),
	})
	DefaultSizes.ComputeLayout(st)

	if st.Size() != -1 {
		t.Errorf("Size() = %d, want -1", st.Size())
	}
	if st.Offset(1) != SizeInt {
		t.Errorf("Offset(1) = %d, want %d", st.Offset(1), SizeInt)
	}
}
