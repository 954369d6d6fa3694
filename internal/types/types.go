package types

import (
	"fmt"
	"strings"
)

// SimpleType is a scalar-level type tag.
type SimpleType uint8

const (
	Void SimpleType = iota
	Single
	Double
	String
	SimpleUnknown
)

// IsScalar reports whether the simple type is numeric scalar.
func (s SimpleType) IsScalar() bool {
	return s == Single || s == Double
}

func (s SimpleType) String() string {
	switch s {
	case Void:
		return "void"
	case Single:
		return "single"
	case Double:
		return "double"
	case String:
		return "string"
	default:
		return "?"
	}
}

// Type is a structural type: compared and displayed by value, never nominal.
type Type interface {
	isType()
	IsScalar() bool
	fmt.Stringer
}

// Simple wraps a SimpleType as a Type.
type Simple struct {
	T SimpleType
}

// Matrix is a matrix type with an optional known (rows, cols) size.
type Matrix struct {
	Rows  int
	Cols  int
	Sized bool
	Elem  SimpleType
}

// Callable is a function type.
type Callable struct {
	Args   []Type
	Return Type
}

// Unknown is the absent type; the type system never fails, it degrades here.
type Unknown struct{}

func (Simple) isType() {}
func (Matrix) isType() {}
func (Callable) isType() {}
func (Unknown) isType() {}

func (t Simple) IsScalar() bool { return t.T.IsScalar() }
func (Matrix) IsScalar() bool   { return false }
func (t Callable) IsScalar() bool {
	if t.Return == nil {
		return false
	}
	return t.Return.IsScalar()
}
func (Unknown) IsScalar() bool { return false }

func (t Simple) String() string { return t.T.String() }

func (t Matrix) String() string {
	if t.Sized {
		return fmt.Sprintf("%dx%d %s matrix", t.Rows, t.Cols, t.Elem)
	}
	return fmt.Sprintf("%s matrix", t.Elem)
}

func (t Callable) String() string {
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	ret := "?"
	if t.Return != nil {
		ret = t.Return.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(args, ", "), ret)
}

func (Unknown) String() string { return "?" }

// SimpleOf extracts the scalar element type of t: a Simple yields its tag,
// a scalar-returning Callable yields the return's tag.
func SimpleOf(t Type) (SimpleType, bool) {
	switch v := t.(type) {
	case Simple:
		return v.T, true
	case Callable:
		if v.IsScalar() {
			return SimpleOf(v.Return)
		}
	}
	return SimpleUnknown, false
}

// Equal compares two structural types for display-level equality.
func Equal(a, b Type) bool {
	switch av := a.(type) {
	case Simple:
		bv, ok := b.(Simple)
		return ok && av.T == bv.T
	case Matrix:
		bv, ok := b.(Matrix)
		return ok && av == bv
	case Unknown:
		_, ok := b.(Unknown)
		return ok
	case Callable:
		bv, ok := b.(Callable)
		if !ok || len(av.Args) != len(bv.Args) {
			return false
		}
		for i := range av.Args {
			if !Equal(av.Args[i], bv.Args[i]) {
				return false
			}
		}
		return Equal(av.Return, bv.Return)
	default:
		return false
	}
}
