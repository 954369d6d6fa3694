package ast

import (
	"octls/internal/source"
)

// Statement is the closed set of statement variants.
type Statement interface {
	Tree
	isStatement()
}

// StmtError is a parse failure embedded as a statement leaf.
type StmtError struct {
	Message string
}

// IgnoreOutput wraps a statement terminated with a suppressing ';'.
type IgnoreOutput struct {
	Inner source.Node[Statement]
}

// ExprStmt is a bare expression statement.
type ExprStmt struct {
	X source.Node[Expr]
}

// Assignment binds a name to the value of an expression.
type Assignment struct {
	Name  string
	Value source.Node[Expr]
}

// AugAssignment is a compound assignment such as 'x += e'.
type AugAssignment struct {
	Name  string
	Op    Op
	Value source.Node[Expr]
}

// Block is an ordered statement list.
type Block struct {
	Stmts []source.Node[Statement]
}

// EOI is the end-of-input marker, always the trailing element of the
// top-level block.
type EOI struct{}

func (*StmtError) isStatement() {}
func (*IgnoreOutput) isStatement() {}
func (*ExprStmt) isStatement() {}
func (*Assignment) isStatement() {}
func (*AugAssignment) isStatement() {}
func (*Block) isStatement() {}
func (*EOI) isStatement() {}

func (*StmtError) Children() []source.Node[Tree] { return nil }
func (*EOI) Children() []source.Node[Tree]       { return nil }

func (s *IgnoreOutput) Children() []source.Node[Tree] {
	return []source.Node[Tree]{stmtTree(s.Inner)}
}

func (s *ExprStmt) Children() []source.Node[Tree] {
	return []source.Node[Tree]{exprTree(s.X)}
}

func (s *Assignment) Children() []source.Node[Tree] {
	return []source.Node[Tree]{exprTree(s.Value)}
}

func (s *AugAssignment) Children() []source.Node[Tree] {
	return []source.Node[Tree]{exprTree(s.Value)}
}

func (s *Block) Children() []source.Node[Tree] {
	out := make([]source.Node[Tree], 0, len(s.Stmts))
	for _, n := range s.Stmts {
		out = append(out, stmtTree(n))
	}
	return out
}

func stmtTree(n source.Node[Statement]) source.Node[Tree] {
	return source.Node[Tree]{Span: n.Span, Data: n.Data}
}
