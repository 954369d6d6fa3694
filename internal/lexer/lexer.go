package lexer

import (
	"octls/internal/source"
	"octls/internal/token"
)

// Lexer produces tokens for the Octave dialect. Newlines are significant
// (statement separators) and are emitted as tokens; spaces, tabs and
// comments are skipped.
type Lexer struct {
	cursor Cursor
	look   *token.Token // 1-element lookahead buffer
}

func New(input string) *Lexer {
	return &Lexer{
		cursor: NewCursor(input),
		look:   nil,
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.look == nil {
		tok := lx.scan()
		lx.look = &tok
	}
	return *lx.look
}

// Next returns the next significant token. After EOF it always returns EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	return lx.scan()
}

func (lx *Lexer) scan() token.Token {
	lx.skipBlanks()

	start := lx.cursor.Pos()
	startOff := lx.cursor.Off()

	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: source.Span{Start: start, End: start},
		}
	}

	ch := lx.cursor.Peek()
	switch {
	case ch == '\n':
		lx.cursor.Bump()
		return lx.tok(token.Newline, start, startOff)

	case isIdentStart(ch):
		return lx.scanIdent(start, startOff)

	case isDigit(ch):
		return lx.scanNumber(start, startOff)

	case ch == '.' && lx.isDigitAfterDot():
		return lx.scanNumber(start, startOff)

	case ch == '"':
		return lx.scanString(start, startOff)

	default:
		return lx.scanOperator(start, startOff)
	}
}

// skipBlanks consumes spaces, tabs, carriage returns and comments.
// Comments run from '%' or '#' to the end of the line, newline excluded.
func (lx *Lexer) skipBlanks() {
	for !lx.cursor.EOF() {
		switch ch := lx.cursor.Peek(); ch {
		case ' ', '\t', '\r':
			lx.cursor.Bump()
		case '%', '#':
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
		default:
			return
		}
	}
}

func (lx *Lexer) isDigitAfterDot() bool {
	b0, b1, ok := lx.cursor.Peek2()
	return ok && b0 == '.' && isDigit(b1)
}

func (lx *Lexer) scanIdent(start source.Position, startOff uint32) token.Token {
	for !lx.cursor.EOF() && isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.tok(token.Ident, start, startOff)
}

func (lx *Lexer) scanNumber(start source.Position, startOff uint32) token.Token {
	seenDot := false
	seenExp := false
	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		switch {
		case isDigit(ch):
			lx.cursor.Bump()
		case ch == '.' && !seenDot && !seenExp && lx.afterDotContinuesNumber():
			seenDot = true
			lx.cursor.Bump()
		case (ch == 'e' || ch == 'E') && !seenExp && lx.isExponent():
			seenExp = true
			lx.cursor.Bump() // e
			if next := lx.cursor.Peek(); next == '+' || next == '-' {
				lx.cursor.Bump()
			}
		default:
			return lx.tok(token.Number, start, startOff)
		}
	}
	return lx.tok(token.Number, start, startOff)
}

// afterDotContinuesNumber distinguishes "1.5" and trailing "1." from
// "1.x", where the dot is left for the access operator.
func (lx *Lexer) afterDotContinuesNumber() bool {
	_, b1, ok := lx.cursor.Peek2()
	if !ok {
		return true // trailing "1." is a valid float
	}
	return isDigit(b1) || !isIdentStart(b1)
}

func (lx *Lexer) isExponent() bool {
	_, b1, ok := lx.cursor.Peek2()
	if !ok {
		return false
	}
	return isDigit(b1) || b1 == '+' || b1 == '-'
}

func (lx *Lexer) scanString(start source.Position, startOff uint32) token.Token {
	lx.cursor.Bump() // opening quote
	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		if ch == '\n' {
			// Unterminated: do not swallow the statement separator.
			return lx.tok(token.Invalid, start, startOff)
		}
		if ch == '\\' {
			lx.cursor.Bump()
			if !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
			continue
		}
		lx.cursor.Bump()
		if ch == '"' {
			return lx.tok(token.String, start, startOff)
		}
	}
	return lx.tok(token.Invalid, start, startOff)
}

func (lx *Lexer) scanOperator(start source.Position, startOff uint32) token.Token {
	ch := lx.cursor.Bump()
	kind := token.Invalid
	switch ch {
	case '+':
		kind = token.Plus
		if next := lx.cursor.Peek(); next == '+' {
			lx.cursor.Bump()
			kind = token.PlusPlus
		} else if next == '=' {
			lx.cursor.Bump()
			kind = token.PlusAssign
		}
	case '-':
		kind = token.Minus
		if next := lx.cursor.Peek(); next == '-' {
			lx.cursor.Bump()
			kind = token.MinusMinus
		} else if next == '=' {
			lx.cursor.Bump()
			kind = token.MinusAssign
		}
	case '*':
		kind = token.Star
		if lx.cursor.Peek() == '=' {
			lx.cursor.Bump()
			kind = token.StarAssign
		}
	case '/':
		kind = token.Slash
		if lx.cursor.Peek() == '=' {
			lx.cursor.Bump()
			kind = token.SlashAssign
		}
	case '^':
		kind = token.Caret
	case '.':
		kind = token.Dot
	case '=':
		kind = token.Assign
	case ':':
		kind = token.Colon
	case ';':
		kind = token.Semicolon
	case ',':
		kind = token.Comma
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	}
	return lx.tok(kind, start, startOff)
}

func (lx *Lexer) tok(kind token.Kind, start source.Position, startOff uint32) token.Token {
	return token.Token{
		Kind: kind,
		Span: source.Span{Start: start, End: lx.cursor.Pos()},
		Text: lx.cursor.Slice(startOff, lx.cursor.Off()),
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
