package types

import "math"

// Layout of the target machine: 64-bit words, natural alignment.
const (
	SizeInt   = 8
	SizeFloat = 8
	SizeBool  = 1
	SizeChar  = 1
	SizePtr   = 8

	AlignInt   = 8
	AlignFloat = 8
	AlignBool  = 1
	AlignChar  = 1
	AlignPtr   = 8
)

// Sizes provides size and alignment calculations for types.
type Sizes struct{}

// DefaultSizes is the default Sizes implementation.
var DefaultSizes = &Sizes{}

// Sizeof returns the size of type T in bytes, or -1 if the size does not
// fit in an int64. Void, the poison type and template parameters have
// size 0.
func (s *Sizes) Sizeof(T Type) int64 {
	switch t := T.Underlying().(type) {
	case *Basic:
		return s.basicSize(t.Kind())
	case *Array:
		n := t.Len()
		esize := s.Sizeof(t.Elem())
		if esize < 0 || n > 0 && esize > math.MaxInt64/n {
			return -1
		}
		return n * esize
	case *Struct:
		s.ComputeLayout(t)
		return t.Size()
	case *Pointer, *Ref, *Func:
		return SizePtr
	}
	return 0
}

// Alignof returns the alignment of type T in bytes.
func (s *Sizes) Alignof(T Type) int64 {
	switch t := T.Underlying().(type) {
	case *Basic:
		return s.basicAlign(t.Kind())
	case *Array:
		if t.Len() == 0 {
			return 1
		}
		return s.Alignof(t.Elem())
	case *Struct:
		s.ComputeLayout(t)
		return t.Align()
	case *Pointer, *Ref, *Func:
		return AlignPtr
	}
	return 1
}

// Offsetof returns the offset of field i in struct type T.
func (s *Sizes) Offsetof(T *Struct, i int) int64 {
	s.ComputeLayout(T)
	return T.Offset(i)
}

// ComputeLayout computes the size, alignment, and field offsets for a struct.
// Unnamed fields occupy space like named ones. If the layout does not fit
// in an int64, the size and the offsets from the first overflowing field
// on are -1.
// This function is idempotent and safe to call multiple times.
func (s *Sizes) ComputeLayout(st *Struct) {
	if st.LayoutDone() {
		return
	}

	var offset int64
	var maxAlign int64 = 1
	offsets := make([]int64, len(st.fields))
	overflow := false

	for i, f := range st.fields {
		fieldSize := s.Sizeof(f.Type())
		fieldAlign := s.Alignof(f.Type())
		if fieldAlign > maxAlign {
			maxAlign = fieldAlign
		}

		if !overflow {
			var ok bool
			offset, ok = alignChecked(offset, fieldAlign)
			overflow = !ok || fieldSize < 0 || fieldSize > math.MaxInt64-offset
		}
		if overflow {
			offsets[i] = -1
			continue
		}
		offsets[i] = offset
		offset += fieldSize
	}

	// Pad the end to the struct alignment.
	size := int64(-1)
	if !overflow {
		if n, ok := alignChecked(offset, maxAlign); ok {
			size = n
		}
	}

	st.SetLayout(size, maxAlign, offsets)
}

func (s *Sizes) basicSize(kind BasicKind) int64 {
	switch kind {
	case Bool:
		return SizeBool
	case Int:
		return SizeInt
	case Float:
		return SizeFloat
	case Char:
		return SizeChar
	default:
		return 0
	}
}

func (s *Sizes) basicAlign(kind BasicKind) int64 {
	switch kind {
	case Bool:
		return AlignBool
	case Int:
		return AlignInt
	case Float:
		return AlignFloat
	case Char:
		return AlignChar
	default:
		return 1
	}
}

// align returns x rounded up to a multiple of a.
func align(x, a int64) int64 {
	return (x + a - 1) &^ (a - 1)
}

// alignChecked is like align but reports false if the result overflows.
func alignChecked(x, a int64) (int64, bool) {
	if x > math.MaxInt64-(a-1) {
		return 0, false
	}
	return align(x, a), true
}
