package ast

import (
	"octls/internal/source"
)

// Expr is the closed set of expression variants. Malformed input is
// represented by ExprError leaves; parsing never fails outright.
type Expr interface {
	Tree
	isExpr()
}

// ExprError is a parse failure embedded as an expression leaf.
type ExprError struct {
	Message string
}

// LitString is a string literal.
type LitString struct {
	Value string
}

// LitNumber is a numeric literal.
type LitNumber struct {
	Value float64
}

// Identifier is a variable or function name.
type Identifier struct {
	Name string
}

// MatrixLit is a matrix literal of sub-expressions.
type MatrixLit struct {
	Elems Matrix[source.Node[Expr]]
}

// BinaryOp is a binary operation.
type BinaryOp struct {
	Op  Op
	LHS source.Node[Expr]
	RHS source.Node[Expr]
}

// Incr is a postfix '++'.
type Incr struct {
	Operand source.Node[Expr]
}

// Decr is a postfix '--'.
type Decr struct {
	Operand source.Node[Expr]
}

// RangeExpr is start:end or start:step:end.
type RangeExpr struct {
	Start source.Node[Expr]
	Step  *source.Node[Expr]
	End   source.Node[Expr]
}

// Call is a function application.
type Call struct {
	Callee source.Node[Expr]
	Args   []source.Node[Expr]
}

func (*ExprError) isExpr() {}
func (*LitString) isExpr() {}
func (*LitNumber) isExpr() {}
func (*Identifier) isExpr() {}
func (*MatrixLit) isExpr() {}
func (*BinaryOp) isExpr() {}
func (*Incr) isExpr() {}
func (*Decr) isExpr() {}
func (*RangeExpr) isExpr() {}
func (*Call) isExpr() {}

func (*ExprError) Children() []source.Node[Tree]  { return nil }
func (*LitString) Children() []source.Node[Tree]  { return nil }
func (*LitNumber) Children() []source.Node[Tree]  { return nil }
func (*Identifier) Children() []source.Node[Tree] { return nil }

func (e *MatrixLit) Children() []source.Node[Tree] {
	elems := e.Elems.Elems()
	out := make([]source.Node[Tree], 0, len(elems))
	for _, n := range elems {
		out = append(out, exprTree(n))
	}
	return out
}

func (e *BinaryOp) Children() []source.Node[Tree] {
	return []source.Node[Tree]{exprTree(e.LHS), exprTree(e.RHS)}
}

func (e *Incr) Children() []source.Node[Tree] {
	return []source.Node[Tree]{exprTree(e.Operand)}
}

func (e *Decr) Children() []source.Node[Tree] {
	return []source.Node[Tree]{exprTree(e.Operand)}
}

func (e *RangeExpr) Children() []source.Node[Tree] {
	out := []source.Node[Tree]{exprTree(e.Start)}
	if e.Step != nil {
		out = append(out, exprTree(*e.Step))
	}
	return append(out, exprTree(e.End))
}

func (e *Call) Children() []source.Node[Tree] {
	out := make([]source.Node[Tree], 0, 1+len(e.Args))
	out = append(out, exprTree(e.Callee))
	for _, a := range e.Args {
		out = append(out, exprTree(a))
	}
	return out
}

func exprTree(n source.Node[Expr]) source.Node[Tree] {
	return source.Node[Tree]{Span: n.Span, Data: n.Data}
}
