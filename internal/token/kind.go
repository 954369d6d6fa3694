package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Newline separates statements.
	Newline

	// Ident represents an identifier token.
	Ident
	// Number represents a numeric literal.
	Number
	// String represents a string literal.
	String

	// Plus represents '+'.
	Plus
	// Minus represents '-'.
	Minus
	// Star represents '*'.
	Star
	// Slash represents '/'.
	Slash
	// Caret represents '^'.
	Caret
	// Dot represents '.' member access.
	Dot

	// Assign represents '='.
	Assign
	// PlusAssign represents '+='.
	PlusAssign
	// MinusAssign represents '-='.
	MinusAssign
	// StarAssign represents '*='.
	StarAssign
	// SlashAssign represents '/='.
	SlashAssign

	// PlusPlus represents '++'.
	PlusPlus
	// MinusMinus represents '--'.
	MinusMinus

	// Colon represents ':' in range expressions.
	Colon
	// Semicolon represents ';'.
	Semicolon
	// Comma represents ','.
	Comma

	// LBracket represents '['.
	LBracket
	// RBracket represents ']'.
	RBracket
	// LParen represents '('.
	LParen
	// RParen represents ')'.
	RParen
)

var kindNames = [...]string{
	Invalid:     "invalid",
	EOF:         "end of input",
	Newline:     "newline",
	Ident:       "identifier",
	Number:      "number",
	String:      "string",
	Plus:        "'+'",
	Minus:       "'-'",
	Star:        "'*'",
	Slash:       "'/'",
	Caret:       "'^'",
	Dot:         "'.'",
	Assign:      "'='",
	PlusAssign:  "'+='",
	MinusAssign: "'-='",
	StarAssign:  "'*='",
	SlashAssign: "'/='",
	PlusPlus:    "'++'",
	MinusMinus:  "'--'",
	Colon:       "':'",
	Semicolon:   "';'",
	Comma:       "','",
	LBracket:    "'['",
	RBracket:    "']'",
	LParen:      "'('",
	RParen:      "')'",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}
