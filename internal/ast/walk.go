package ast

import (
	"octls/internal/source"
)

// Tree is the uniform "has children" capability shared by Expr and
// Statement. Whole-tree walks (error collection, position lookup) are
// written once against it.
type Tree interface {
	// Children returns the ordered immediate child nodes, left to right
	// in declaration order.
	Children() []source.Node[Tree]
}

// StmtTree wraps a statement node for a uniform walk.
func StmtTree(n source.Node[Statement]) source.Node[Tree] {
	return stmtTree(n)
}

// ExprTree wraps an expression node for a uniform walk.
func ExprTree(n source.Node[Expr]) source.Node[Tree] {
	return exprTree(n)
}

// Errors collects every error node's span and message, in tree order.
func Errors(n source.Node[Tree]) []source.Node[string] {
	var out []source.Node[string]
	collectErrors(n, &out)
	return out
}

func collectErrors(n source.Node[Tree], out *[]source.Node[string]) {
	switch d := n.Data.(type) {
	case *ExprError:
		*out = append(*out, source.Node[string]{Span: n.Span, Data: d.Message})
	case *StmtError:
		*out = append(*out, source.Node[string]{Span: n.Span, Data: d.Message})
	}
	for _, child := range n.Data.Children() {
		collectErrors(child, out)
	}
}

// AtPos finds the smallest expression node whose span contains pos.
// The search descends into the first child whose span contains pos; if no
// child contains it, the node itself is the most specific result.
// Statements never answer position queries themselves: a position inside a
// statement but outside all of its expressions yields no result.
func AtPos(n source.Node[Tree], pos source.Position) (source.Node[Expr], bool) {
	if !n.Span.Contains(pos) {
		return source.Node[Expr]{}, false
	}
	for _, child := range n.Data.Children() {
		if found, ok := AtPos(child, pos); ok {
			return found, true
		}
	}
	if expr, ok := n.Data.(Expr); ok {
		return source.Node[Expr]{Span: n.Span, Data: expr}, true
	}
	return source.Node[Expr]{}, false
}
