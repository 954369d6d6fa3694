package parser

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"octls/internal/ast"
	"octls/internal/lexer"
	"octls/internal/source"
	"octls/internal/token"
)

// Parser holds the state for one document parse.
type Parser struct {
	lx *lexer.Lexer
}

// Parse consumes the whole input and always returns a statement tree:
// the top-level Block with an EOI marker as its trailing element.
// Malformed input degrades to Error nodes; the call cannot fail.
func Parse(input string) source.Node[ast.Statement] {
	p := &Parser{lx: lexer.New(input)}

	p.skipNewlines()
	if tok := p.lx.Peek(); tok.Kind == token.Invalid {
		// The token stream is unusable from the very start: report a single
		// error spanning the first line, like a whole-input rejection.
		return errorStatement(input, fmt.Sprintf("Parse error: %s", invalidTokenMessage(tok)))
	}

	var stmts []source.Node[ast.Statement]
	for {
		p.skipNewlines()
		if p.at(token.EOF) {
			break
		}
		stmts = append(stmts, p.parseStatement())
	}

	eof := p.lx.Peek()
	stmts = append(stmts, source.Node[ast.Statement]{
		Span: eof.Span,
		Data: &ast.EOI{},
	})

	span := stmts[0].Span
	for _, s := range stmts[1:] {
		span = span.Cover(s.Span)
	}
	return source.Node[ast.Statement]{
		Span: span,
		Data: &ast.Block{Stmts: stmts},
	}
}

// errorStatement builds the whole-input rejection form: one Error statement
// spanning the first line of input.
func errorStatement(input, msg string) source.Node[ast.Statement] {
	firstLine := input
	if i := strings.IndexByte(input, '\n'); i >= 0 {
		firstLine = input[:i]
	}
	width, err := safecast.Conv[uint32](len(firstLine))
	if err != nil {
		width = ^uint32(0) - 1
	}
	if width == 0 {
		width = 1
	}
	return source.Node[ast.Statement]{
		Span: source.Span{
			Start: source.Position{Line: 1, Col: 1},
			End:   source.Position{Line: 1, Col: width + 1},
		},
		Data: &ast.StmtError{Message: msg},
	}
}

func invalidTokenMessage(tok token.Token) string {
	if strings.HasPrefix(tok.Text, `"`) {
		return "Unterminated string literal"
	}
	return fmt.Sprintf("Unrecognized token %q", tok.Text)
}

func (p *Parser) at(kind token.Kind) bool {
	return p.lx.Peek().Kind == kind
}

func (p *Parser) skipNewlines() {
	for p.at(token.Newline) {
		p.lx.Next()
	}
}

// resyncToLineEnd consumes tokens up to (not including) the next statement
// boundary and returns the covered span.
func (p *Parser) resyncToLineEnd(from source.Span) source.Span {
	span := from
	for {
		tok := p.lx.Peek()
		if tok.IsStatementEnd() {
			return span
		}
		span = span.Cover(tok.Span)
		p.lx.Next()
	}
}

func unexpected(tok token.Token, expected string) string {
	return fmt.Sprintf("unexpected %s, expected one of {%s}", tok.Kind, expected)
}
