package token

import (
	"octls/internal/source"
)

// Token is a single lexeme with its source span.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a numeric or string literal.
func (t Token) IsLiteral() bool {
	return t.Kind == Number || t.Kind == String
}

// IsAugAssign reports whether the token is a compound assignment operator.
func (t Token) IsAugAssign() bool {
	switch t.Kind {
	case PlusAssign, MinusAssign, StarAssign, SlashAssign:
		return true
	default:
		return false
	}
}

// IsStatementEnd reports whether the token terminates a statement.
func (t Token) IsStatementEnd() bool {
	switch t.Kind {
	case Newline, Semicolon, EOF:
		return true
	default:
		return false
	}
}
