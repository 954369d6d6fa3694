package source

import "fmt"

// Position is a 1-based line/column location in a document.
// The LSP boundary uses 0-based positions; conversion happens in internal/lsp.
type Position struct {
	Line uint32
	Col  uint32
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Less orders positions by line, then column.
func (p Position) Less(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Col < other.Col
}

// Compare returns -1, 0 or 1.
func (p Position) Compare(other Position) int {
	switch {
	case p.Less(other):
		return -1
	case other.Less(p):
		return 1
	default:
		return 0
	}
}

func minPos(a, b Position) Position {
	if b.Less(a) {
		return b
	}
	return a
}

func maxPos(a, b Position) Position {
	if a.Less(b) {
		return b
	}
	return a
}
