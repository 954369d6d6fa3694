package parser

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"octls/internal/ast"
	"octls/internal/source"
	"octls/internal/token"
)

// parseExpr parses a full expression including range forms:
// a:b and a:step:b. ':' binds looser than any binary operator.
func (p *Parser) parseExpr() source.Node[ast.Expr] {
	first := p.parseBinary(0)
	if !p.at(token.Colon) {
		return first
	}
	p.lx.Next()
	second := p.parseBinary(0)
	if !p.at(token.Colon) {
		return source.Node[ast.Expr]{
			Span: first.Span.Cover(second.Span),
			Data: &ast.RangeExpr{Start: first, End: second},
		}
	}
	p.lx.Next()
	third := p.parseBinary(0)
	return source.Node[ast.Expr]{
		Span: first.Span.Cover(third.Span),
		Data: &ast.RangeExpr{Start: first, Step: &second, End: third},
	}
}

// parseBinary is the precedence climber. Add/Sub/Mul/Div are
// left-associative; Pow and Access are right-associative.
func (p *Parser) parseBinary(minPrec int) source.Node[ast.Expr] {
	lhs := p.parsePostfix()
	for {
		tok := p.lx.Peek()
		op, prec, rightAssoc, ok := binaryOp(tok.Kind)
		if !ok || prec < minPrec {
			return lhs
		}
		p.lx.Next()
		nextMin := prec + 1
		if rightAssoc {
			nextMin = prec
		}
		rhs := p.parseBinary(nextMin)
		lhs = source.Node[ast.Expr]{
			Span: lhs.Span.Cover(rhs.Span),
			Data: &ast.BinaryOp{Op: op, LHS: lhs, RHS: rhs},
		}
	}
}

// parsePostfix handles the '++' and '--' suffixes.
func (p *Parser) parsePostfix() source.Node[ast.Expr] {
	expr := p.parsePrimary()
	for {
		switch tok := p.lx.Peek(); tok.Kind {
		case token.PlusPlus:
			p.lx.Next()
			expr = source.Node[ast.Expr]{
				Span: expr.Span.Cover(tok.Span),
				Data: &ast.Incr{Operand: expr},
			}
		case token.MinusMinus:
			p.lx.Next()
			expr = source.Node[ast.Expr]{
				Span: expr.Span.Cover(tok.Span),
				Data: &ast.Decr{Operand: expr},
			}
		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimary() source.Node[ast.Expr] {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Number:
		p.lx.Next()
		value, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return errExpr(tok.Span, "Cannot parse number")
		}
		return source.Node[ast.Expr]{Span: tok.Span, Data: &ast.LitNumber{Value: value}}

	case token.String:
		p.lx.Next()
		return source.Node[ast.Expr]{
			Span: tok.Span,
			Data: &ast.LitString{Value: unquote(tok.Text)},
		}

	case token.Ident:
		p.lx.Next()
		ident := source.Node[ast.Expr]{
			Span: tok.Span,
			Data: &ast.Identifier{Name: tok.Text},
		}
		if p.at(token.LParen) {
			return p.parseCall(ident)
		}
		return ident

	case token.Minus:
		// Prefix negation desugars to 0 - x; the zero carries the sign's span.
		p.lx.Next()
		operand := p.parsePostfix()
		zero := source.Node[ast.Expr]{Span: tok.Span, Data: &ast.LitNumber{Value: 0}}
		return source.Node[ast.Expr]{
			Span: tok.Span.Cover(operand.Span),
			Data: &ast.BinaryOp{Op: ast.OpSub, LHS: zero, RHS: operand},
		}

	case token.Plus:
		p.lx.Next()
		return p.parsePostfix()

	case token.LParen:
		return p.parseParen()

	case token.LBracket:
		return p.parseMatrix()

	case token.Invalid:
		p.lx.Next()
		return errExpr(tok.Span, invalidTokenMessage(tok))

	default:
		// Do not consume statement terminators: the statement layer reports
		// them with better context.
		if !tok.IsStatementEnd() {
			p.lx.Next()
		}
		return errExpr(tok.Span, unexpected(tok, expectedStatement))
	}
}

func (p *Parser) parseCall(callee source.Node[ast.Expr]) source.Node[ast.Expr] {
	open := p.lx.Next() // '('
	span := callee.Span.Cover(open.Span)

	var args []source.Node[ast.Expr]
	if p.at(token.RParen) {
		closing := p.lx.Next()
		return source.Node[ast.Expr]{
			Span: span.Cover(closing.Span),
			Data: &ast.Call{Callee: callee, Args: args},
		}
	}

	for {
		arg := p.parseExpr()
		args = append(args, arg)
		span = span.Cover(arg.Span)

		switch tok := p.lx.Peek(); tok.Kind {
		case token.Comma:
			p.lx.Next()
		case token.RParen:
			closing := p.lx.Next()
			return source.Node[ast.Expr]{
				Span: span.Cover(closing.Span),
				Data: &ast.Call{Callee: callee, Args: args},
			}
		default:
			// Leave the terminator itself for the statement layer.
			args = append(args, errExpr(tok.Span, unexpected(tok, "',', ')'")))
			span = p.resyncToLineEnd(span.Cover(tok.Span))
			return source.Node[ast.Expr]{
				Span: span,
				Data: &ast.Call{Callee: callee, Args: args},
			}
		}
	}
}

func (p *Parser) parseParen() source.Node[ast.Expr] {
	open := p.lx.Next() // '('
	inner := p.parseExpr()
	if p.at(token.RParen) {
		closing := p.lx.Next()
		return source.Node[ast.Expr]{
			Span: open.Span.Cover(closing.Span),
			Data: inner.Data,
		}
	}
	tok := p.lx.Peek()
	span := p.resyncToLineEnd(open.Span.Cover(tok.Span))
	return errExpr(span, unexpected(tok, "')'"))
}

// parseMatrix parses '[' rows ']'. Rows are separated by ';' or newline;
// elements in a row by optional commas or plain adjacency. Rows of unequal
// width yield a single Error expression for the whole literal.
func (p *Parser) parseMatrix() source.Node[ast.Expr] {
	open := p.lx.Next() // '['
	span := open.Span

	var rows [][]source.Node[ast.Expr]
	var row []source.Node[ast.Expr]

	endRow := func() {
		if len(row) > 0 {
			rows = append(rows, row)
			row = nil
		}
	}

	for {
		switch tok := p.lx.Peek(); tok.Kind {
		case token.RBracket:
			closing := p.lx.Next()
			endRow()
			return matrixNode(span.Cover(closing.Span), rows)

		case token.Semicolon, token.Newline:
			p.lx.Next()
			endRow()

		case token.Comma:
			p.lx.Next()

		case token.EOF:
			endRow()
			return errExpr(span, "Unterminated matrix literal")

		default:
			elem := p.parseExpr()
			span = span.Cover(elem.Span)
			row = append(row, elem)
		}
	}
}

func matrixNode(span source.Span, rows [][]source.Node[ast.Expr]) source.Node[ast.Expr] {
	if len(rows) == 0 {
		return source.Node[ast.Expr]{
			Span: span,
			Data: &ast.MatrixLit{},
		}
	}
	width := len(rows[0])
	for _, r := range rows {
		if len(r) != width {
			return errExpr(span, matrixSizingMessage(rows))
		}
	}
	return source.Node[ast.Expr]{
		Span: span,
		Data: &ast.MatrixLit{Elems: ast.MatrixFromRows(rows)},
	}
}

func matrixSizingMessage(rows [][]source.Node[ast.Expr]) string {
	seen := make(map[int]struct{}, len(rows))
	sizes := make([]int, 0, len(rows))
	for _, r := range rows {
		if _, ok := seen[len(r)]; !ok {
			seen[len(r)] = struct{}{}
			sizes = append(sizes, len(r))
		}
	}
	sort.Ints(sizes)
	parts := make([]string, len(sizes))
	for i, s := range sizes {
		parts[i] = strconv.Itoa(s)
	}
	return fmt.Sprintf("Matrix sizing error: found lines of sizes {%s}", strings.Join(parts, ", "))
}

func errExpr(span source.Span, msg string) source.Node[ast.Expr] {
	return source.Node[ast.Expr]{
		Span: span,
		Data: &ast.ExprError{Message: msg},
	}
}

// unquote strips the surrounding quotes and resolves '\"' and '\\' escapes.
func unquote(text string) string {
	body := strings.TrimPrefix(text, `"`)
	body = strings.TrimSuffix(body, `"`)
	if !strings.ContainsRune(body, '\\') {
		return body
	}
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		if body[i] == '\\' && i+1 < len(body) {
			i++
			switch body[i] {
			case '"', '\\':
				b.WriteByte(body[i])
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte('\\')
				b.WriteByte(body[i])
			}
			continue
		}
		b.WriteByte(body[i])
	}
	return b.String()
}
