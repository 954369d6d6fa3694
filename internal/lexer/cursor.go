package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"octls/internal/source"
)

// Cursor is a byte position in the input with 1-based line/column tracking.
type Cursor struct {
	input string
	off   uint32
	limit uint32
	line  uint32
	col   uint32
}

// NewCursor creates a cursor at the start of input.
func NewCursor(input string) Cursor {
	limit, err := safecast.Conv[uint32](len(input))
	if err != nil {
		panic(fmt.Errorf("input length overflow: %w", err))
	}
	return Cursor{
		input: input,
		off:   0,
		limit: limit,
		line:  1,
		col:   1,
	}
}

// EOF reports whether the cursor is past the last byte.
func (c *Cursor) EOF() bool {
	return c.off >= c.limit
}

// Peek reads the current byte, or 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.input[c.off]
}

// Peek2 reads the current and next byte.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.off+1 >= c.limit {
		return 0, 0, false
	}
	return c.input[c.off], c.input[c.off+1], true
}

// Bump advances the cursor by one byte, updating line/column.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.input[c.off]
	c.off++
	if b == '\n' {
		c.line++
		c.col = 1
	} else {
		c.col++
	}
	return b
}

// Pos is the current 1-based position.
func (c *Cursor) Pos() source.Position {
	return source.Position{Line: c.line, Col: c.col}
}

// Off is the current byte offset.
func (c *Cursor) Off() uint32 {
	return c.off
}

// Slice returns input bytes in [from, to).
func (c *Cursor) Slice(from, to uint32) string {
	return c.input[from:to]
}
