package types

import (
	"maps"

	"octls/internal/ast"
	"octls/internal/source"
)

// Bindings maps identifier names to their inferred types, as accumulated up
// to some point in the statement sequence. The language is single-scope at
// this level: later assignments to a name overwrite earlier ones.
type Bindings map[string]Type

// Prelude returns the fixed set of built-in callable signatures.
func Prelude() Bindings {
	doubleMatrix := Matrix{Elem: Double}
	trig := Callable{
		Args:   []Type{doubleMatrix},
		Return: doubleMatrix,
	}
	return Bindings{
		"sin": trig,
		"cos": trig,
		"tan": trig,
		"sound": Callable{
			Args: []Type{
				doubleMatrix,
				Matrix{Rows: 1, Cols: 1, Sized: true, Elem: Double},
			},
			Return: Simple{T: Void},
		},
	}
}

// Clone returns an independent copy of the bindings.
func (b Bindings) Clone() Bindings {
	return maps.Clone(b)
}

// Lookup returns the binding for name, or Unknown if unbound.
func (b Bindings) Lookup(name string) Type {
	if t, ok := b[name]; ok {
		return t
	}
	return Unknown{}
}

// TypeOf assigns a structural type to an expression node against a bindings
// snapshot. It is pure and total: anything it cannot infer is Unknown.
func TypeOf(n source.Node[ast.Expr], b Bindings) Type {
	switch e := n.Data.(type) {
	case *ast.LitString:
		return Simple{T: String}

	case *ast.LitNumber:
		return Simple{T: Double}

	case *ast.Identifier:
		return b.Lookup(e.Name)

	case *ast.MatrixLit:
		elem := SimpleUnknown
		if elems := e.Elems.Elems(); len(elems) > 0 {
			if s, ok := SimpleOf(TypeOf(elems[0], b)); ok {
				elem = s
			}
		}
		return Matrix{
			Rows:  e.Elems.Width(),
			Cols:  e.Elems.Height(),
			Sized: true,
			Elem:  elem,
		}

	case *ast.BinaryOp:
		// No numeric-promotion modeling: the operation takes its left
		// operand's type.
		return TypeOf(e.LHS, b)

	case *ast.Incr, *ast.Decr:
		return Simple{T: Void}

	case *ast.RangeExpr:
		elem := SimpleUnknown
		if start := TypeOf(e.Start, b); start.IsScalar() {
			if s, ok := SimpleOf(start); ok {
				elem = s
			}
		}
		return Matrix{Elem: elem}

	case *ast.Call:
		if callee, ok := TypeOf(e.Callee, b).(Callable); ok && callee.Return != nil {
			return callee.Return
		}
		return Unknown{}

	default:
		return Unknown{}
	}
}

// AddBindings folds assignment statements into b in document order. Each
// assignment's right-hand side is typed against the bindings accumulated so
// far (sequential, not simultaneous, resolution).
func AddBindings(n source.Node[ast.Statement], b Bindings) {
	switch s := n.Data.(type) {
	case *ast.Assignment:
		b[s.Name] = TypeOf(s.Value, b)
	case *ast.IgnoreOutput:
		AddBindings(s.Inner, b)
	case *ast.Block:
		for _, stmt := range s.Stmts {
			AddBindings(stmt, b)
		}
	}
}
