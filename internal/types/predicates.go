package types

// Identical reports whether x and y are identical types.
func Identical(x, y Type) bool {
	if x == y {
		return true
	}
	if x == nil || y == nil {
		return false
	}
	return identical(x, y)
}

func identical(x, y Type) bool {
	// Named and template parameter types are identical only to themselves.
	switch x.(type) {
	case *Named, *TypeParam:
		return false
	}

	switch x := x.(type) {
	case *Basic:
		if y, ok := y.(*Basic); ok {
			return x.kind == y.kind
		}
	case *Array:
		if y, ok := y.(*Array); ok {
			return x.len == y.len && Identical(x.elem, y.elem)
		}
	case *Struct:
		if y, ok := y.(*Struct); ok {
			return identicalStructs(x, y)
		}
	case *Pointer:
		if y, ok := y.(*Pointer); ok {
			return Identical(x.base, y.base)
		}
	case *Ref:
		if y, ok := y.(*Ref); ok {
			return Identical(x.base, y.base)
		}
	case *Func:
		if y, ok := y.(*Func); ok {
			return identicalFuncs(x, y)
		}
	}
	return false
}

func identicalStructs(x, y *Struct) bool {
	if len(x.fields) != len(y.fields) {
		return false
	}
	for i := range x.fields {
		if x.fields[i].Name() != y.fields[i].Name() {
			return false
		}
		if !Identical(x.fields[i].Type(), y.fields[i].Type()) {
			return false
		}
	}
	return true
}

func identicalFuncs(x, y *Func) bool {
	if len(x.params) != len(y.params) {
		return false
	}
	for i := range x.params {
		if !Identical(x.params[i].Type(), y.params[i].Type()) {
			return false
		}
	}
	return Identical(x.result, y.result)
}

// Compatible reports whether a value of type V may be used where a value
// of type T is expected: in an initializer, an assignment, an argument or
// a return.
//
// The poison type and template parameters are compatible with everything.
// Numeric types convert implicitly, arrays decay to pointers to their
// element, *void and pointers to template parameters convert to and from
// any pointer, and references are
// bound from or read as values of their element type.
func Compatible(V, T Type) bool {
	if V == nil || T == nil {
		return false
	}
	if IsUnknown(V) || IsUnknown(T) || IsTypeParam(V) || IsTypeParam(T) {
		return true
	}
	if Identical(V, T) {
		return true
	}

	if r, ok := T.(*Ref); ok {
		return Compatible(Deref(V), r.base) && !isVoid(Deref(V))
	}
	if r, ok := V.(*Ref); ok {
		return Compatible(r.base, T)
	}

	if isNumeric(V) && isNumeric(T) {
		return true
	}

	if tp, ok := T.(*Pointer); ok {
		switch v := V.(type) {
		case *Pointer:
			return isVoid(tp.base) || isVoid(v.base) || IsTypeParam(tp.base) || IsTypeParam(v.base)
		case *Array:
			return Identical(v.elem, tp.base) || IsTypeParam(v.elem)
		}
	}
	return false
}

// Deref returns the element type of a reference, or T itself.
func Deref(T Type) Type {
	if r, ok := T.(*Ref); ok {
		return r.base
	}
	return T
}

// IsUnknown reports whether T is the poison type.
func IsUnknown(T Type) bool {
	b, ok := T.(*Basic)
	return ok && b.kind == Unknown
}

// IsTypeParam reports whether T is a template parameter placeholder.
func IsTypeParam(T Type) bool {
	_, ok := T.(*TypeParam)
	return ok
}

// IsVoid reports whether T is void.
func IsVoid(T Type) bool {
	return isVoid(T)
}

func isVoid(T Type) bool {
	b, ok := T.(*Basic)
	return ok && b.kind == Void
}

func basicInfo(T Type) BasicInfo {
	if b, ok := T.Underlying().(*Basic); ok {
		return b.info
	}
	return 0
}

// isBoolean reports whether T is bool.
func isBoolean(T Type) bool {
	return basicInfo(T)&InfoBoolean != 0
}

// isInteger reports whether T is an integer type (int or char).
func isInteger(T Type) bool {
	return basicInfo(T)&InfoInteger != 0
}

// isFloat reports whether T is float.
func isFloat(T Type) bool {
	return basicInfo(T)&InfoFloat != 0
}

// isNumeric reports whether T is a numeric type (int, char or float).
func isNumeric(T Type) bool {
	return basicInfo(T)&InfoNumeric != 0
}

// IsBoolean reports whether T is bool.
func IsBoolean(T Type) bool { return isBoolean(T) }

// IsInteger reports whether T is int or char.
func IsInteger(T Type) bool { return isInteger(T) }

// IsFloat reports whether T is float.
func IsFloat(T Type) bool { return isFloat(T) }

// IsNumeric reports whether T is int, char or float.
func IsNumeric(T Type) bool { return isNumeric(T) }

// IsPointer reports whether T is a pointer type (*T).
func IsPointer(T Type) bool {
	_, ok := T.Underlying().(*Pointer)
	return ok
}

// IsRef reports whether T is a reference type (&T).
func IsRef(T Type) bool {
	_, ok := T.Underlying().(*Ref)
	return ok
}

// IsPointerOrRef reports whether T is a pointer or reference type.
func IsPointerOrRef(T Type) bool {
	return IsPointer(T) || IsRef(T)
}

// BooleanCompatible reports whether a value of type T may be used as a
// condition: bool, an integer, char, or a pointer.
func BooleanCompatible(T Type) bool {
	return isBoolean(T) || isInteger(T) || IsPointer(T)
}

// Comparable reports whether values of type T can be compared with == or !=.
func Comparable(T Type) bool {
	switch t := T.Underlying().(type) {
	case *Basic:
		return t.kind != Invalid && t.kind != Void
	case *Pointer:
		return true
	case *TypeParam:
		return true
	default:
		// Arrays, structs and functions are not comparable.
		return false
	}
}

// Ordered reports whether values of type T can be ordered with <, <=, >, >=.
func Ordered(T Type) bool {
	return isNumeric(T) || IsPointer(T) || IsTypeParam(T)
}
