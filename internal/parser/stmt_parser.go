package parser

import (
	"octls/internal/ast"
	"octls/internal/source"
	"octls/internal/token"
)

const expectedStatement = "number, string, identifier, '-', '(', '['"

// parseStatement parses one statement up to its terminator. A trailing ';'
// wraps the statement in IgnoreOutput. Garbage before the line end turns the
// whole statement into an Error node spanning the consumed region.
func (p *Parser) parseStatement() source.Node[ast.Statement] {
	stmt := p.parseSimpleStatement()

	if p.at(token.Semicolon) {
		semi := p.lx.Next()
		stmt = source.Node[ast.Statement]{
			Span: stmt.Span.Cover(semi.Span),
			Data: &ast.IgnoreOutput{Inner: stmt},
		}
	}

	if tok := p.lx.Peek(); !tok.IsStatementEnd() {
		span := p.resyncToLineEnd(stmt.Span.Cover(tok.Span))
		return source.Node[ast.Statement]{
			Span: span,
			Data: &ast.StmtError{
				Message: "Parse error: " + unexpected(tok, "newline, ';'"),
			},
		}
	}
	return stmt
}

// parseSimpleStatement parses an assignment, compound assignment or bare
// expression statement. Assignments are recognized after the fact: an
// expression that is a lone identifier followed by '=' becomes the target.
func (p *Parser) parseSimpleStatement() source.Node[ast.Statement] {
	expr := p.parseExpr()

	name, isIdent := identName(expr)
	next := p.lx.Peek()

	switch {
	case isIdent && next.Kind == token.Assign:
		p.lx.Next()
		value := p.parseExpr()
		return source.Node[ast.Statement]{
			Span: expr.Span.Cover(value.Span),
			Data: &ast.Assignment{Name: name, Value: value},
		}

	case isIdent && next.IsAugAssign():
		p.lx.Next()
		op, _ := augOp(next.Kind)
		value := p.parseExpr()
		return source.Node[ast.Statement]{
			Span: expr.Span.Cover(value.Span),
			Data: &ast.AugAssignment{Name: name, Op: op, Value: value},
		}

	case !isIdent && (next.Kind == token.Assign || next.IsAugAssign()):
		p.lx.Next()
		span := p.resyncToLineEnd(expr.Span.Cover(next.Span))
		return source.Node[ast.Statement]{
			Span: span,
			Data: &ast.StmtError{
				Message: "Parse error: " + unexpected(next, "newline, ';'"),
			},
		}

	default:
		return source.Node[ast.Statement]{
			Span: expr.Span,
			Data: &ast.ExprStmt{X: expr},
		}
	}
}

func identName(n source.Node[ast.Expr]) (string, bool) {
	if ident, ok := n.Data.(*ast.Identifier); ok {
		return ident.Name, true
	}
	return "", false
}
