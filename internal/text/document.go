// Package text implements the incremental text-synchronization buffer: the
// document content plus a line-start offset table, with O(log n)
// offset/position conversion and transactional edit application.
package text

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"fortio.org/safecast"
)

// ErrOverlappingEdit is returned by ApplyEdits when two edits' ranges
// intersect after sort-and-normalize.
var ErrOverlappingEdit = errors.New("overlapping edit")

// Position is a 0-based protocol position. The analysis model uses 1-based
// positions; this package stays on the wire convention like the transport.
type Position struct {
	Line      uint32
	Character uint32
}

// Range is a half-open position range.
type Range struct {
	Start Position
	End   Position
}

// ContentChange is one editor edit: either a full-document replacement
// (Range == nil) or a range replacement.
type ContentChange struct {
	Range *Range
	Text  string
}

// Edit is a batch-path text edit.
type Edit struct {
	Range   Range
	NewText string
}

// TextDocument owns a document's content and its derived line index.
// The line index holds one byte offset per line start; entry 0 is always 0
// and entries are strictly increasing.
type TextDocument struct {
	uri         string
	languageID  string
	version     int32
	content     string
	lineOffsets []uint32
}

// NewTextDocument creates a buffer with a freshly computed line index.
func NewTextDocument(uri, languageID string, version int32, content string) *TextDocument {
	return &TextDocument{
		uri:         uri,
		languageID:  languageID,
		version:     version,
		content:     content,
		lineOffsets: computeLineOffsets(content, true, 0),
	}
}

func (d *TextDocument) URI() string        { return d.uri }
func (d *TextDocument) LanguageID() string { return d.languageID }
func (d *TextDocument) Version() int32     { return d.version }

// Text returns the current full content.
func (d *TextDocument) Text() string { return d.content }

// LineCount is the number of lines; always 1 + count of '\n'.
func (d *TextDocument) LineCount() int { return len(d.lineOffsets) }

// Clone returns an independent copy of the buffer.
func (d *TextDocument) Clone() *TextDocument {
	clone := *d
	clone.lineOffsets = append([]uint32(nil), d.lineOffsets...)
	return &clone
}

// Slice returns the content covered by a range.
func (d *TextDocument) Slice(r Range) string {
	return d.content[d.OffsetAt(r.Start):d.OffsetAt(r.End)]
}

// OffsetAt maps a position to a byte offset. A line past the end clamps to
// the end of text; a column is clamped within its line.
func (d *TextDocument) OffsetAt(pos Position) uint32 {
	if int(pos.Line) >= len(d.lineOffsets) {
		return d.contentLen()
	}
	lineOff := d.lineOffsets[pos.Line]
	nextLineOff := d.contentLen()
	if int(pos.Line)+1 < len(d.lineOffsets) {
		nextLineOff = d.lineOffsets[pos.Line+1]
	}
	// 64-bit sum so a huge column cannot wrap past the line start.
	off := uint64(lineOff) + uint64(pos.Character)
	if off > uint64(nextLineOff) {
		return nextLineOff
	}
	return uint32(off)
}

// PositionAt is the inverse mapping: binary search for the greatest line
// start <= offset. The offset is clamped into [0, len(text)] first.
func (d *TextDocument) PositionAt(offset uint32) Position {
	if offset > d.contentLen() {
		offset = d.contentLen()
	}
	idx := sort.Search(len(d.lineOffsets), func(i int) bool {
		return d.lineOffsets[i] > offset
	})
	// idx is the first line start past offset; entry 0 is 0, so idx >= 1.
	line, err := safecast.Conv[uint32](idx - 1)
	if err != nil {
		panic(fmt.Errorf("line count overflow: %w", err))
	}
	return Position{
		Line:      line,
		Character: offset - d.lineOffsets[idx-1],
	}
}

// Update applies an ordered list of edits. Ranged edits splice the
// replacement into the byte range and patch the line index incrementally;
// a full-document replacement rebuilds it from scratch. The version is set
// from the caller-supplied value, defaulting to 0 if absent.
func (d *TextDocument) Update(changes []ContentChange, version *int32) {
	for _, change := range changes {
		if change.Range == nil {
			d.content = change.Text
			d.lineOffsets = computeLineOffsets(change.Text, true, 0)
			continue
		}
		d.applyRangedChange(wellformedRange(*change.Range), change.Text)
	}
	if version != nil {
		d.version = *version
	} else {
		d.version = 0
	}
}

func (d *TextDocument) applyRangedChange(r Range, replacement string) {
	start := d.OffsetAt(r.Start)
	end := d.OffsetAt(r.End)
	d.content = d.content[:start] + replacement + d.content[end:]

	// Replace the line starts strictly inside the edited line span with the
	// ones discovered inside the replacement text, offset by the edit start.
	startLine := int(r.Start.Line)
	endLine := int(r.End.Line)
	if startLine >= len(d.lineOffsets) {
		startLine = len(d.lineOffsets) - 1
	}
	if endLine >= len(d.lineOffsets) {
		endLine = len(d.lineOffsets) - 1
	}
	added := computeLineOffsets(replacement, false, start)

	patched := make([]uint32, 0, len(d.lineOffsets)-(endLine-startLine)+len(added))
	patched = append(patched, d.lineOffsets[:startLine+1]...)
	patched = append(patched, added...)
	patched = append(patched, d.lineOffsets[endLine+1:]...)

	// Shift every line start after the edit by the net length delta.
	delta := int64(len(replacement)) - int64(end-start)
	if delta != 0 {
		for i := startLine + 1 + len(added); i < len(patched); i++ {
			shifted, err := safecast.Conv[uint32](int64(patched[i]) + delta)
			if err != nil {
				panic(fmt.Errorf("line offset overflow: %w", err))
			}
			patched[i] = shifted
		}
	}
	d.lineOffsets = patched
}

// ApplyEdits applies a batch of independent edits atomically: edits are
// normalized, sorted by start offset, and spliced into an output buffer
// built from the unedited spans between them. It fails with
// ErrOverlappingEdit, leaving the buffer untouched, if any edit starts
// before the end consumed by a previous one.
func (d *TextDocument) ApplyEdits(edits []Edit) error {
	sorted := make([]Edit, len(edits))
	for i, e := range edits {
		sorted[i] = Edit{Range: wellformedRange(e.Range), NewText: e.NewText}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return positionLess(sorted[i].Range.Start, sorted[j].Range.Start)
	})

	var lastModified uint32
	var spans []string
	for _, e := range sorted {
		startOff := d.OffsetAt(e.Range.Start)
		if startOff < lastModified {
			return ErrOverlappingEdit
		}
		if startOff > lastModified {
			spans = append(spans, d.content[lastModified:startOff])
		}
		if len(e.NewText) > 0 {
			spans = append(spans, e.NewText)
		}
		lastModified = d.OffsetAt(e.Range.End)
	}
	spans = append(spans, d.content[lastModified:])

	d.content = strings.Join(spans, "")
	d.lineOffsets = computeLineOffsets(d.content, true, 0)
	return nil
}

func (d *TextDocument) contentLen() uint32 {
	n, err := safecast.Conv[uint32](len(d.content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	return n
}

// computeLineOffsets finds the line starts inside s, shifted by startOffset.
// A line starts right after every '\n'; when isLineStart is set the result
// also includes startOffset itself as the first entry.
func computeLineOffsets(s string, isLineStart bool, startOffset uint32) []uint32 {
	var offsets []uint32
	if isLineStart {
		offsets = append(offsets, startOffset)
	}
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			off, err := safecast.Conv[uint32](i + 1)
			if err != nil {
				panic(fmt.Errorf("line offset overflow: %w", err))
			}
			offsets = append(offsets, startOffset+off)
		}
	}
	return offsets
}

func positionLess(a, b Position) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Character < b.Character
}

// wellformedRange swaps start and end if the range was given backwards.
func wellformedRange(r Range) Range {
	if r.Start.Line > r.End.Line ||
		(r.Start.Line == r.End.Line && r.Start.Character > r.End.Character) {
		return Range{Start: r.End, End: r.Start}
	}
	return r
}
