package source

import "fmt"

// Span is a half-open range of positions [Start, End).
type Span struct {
	Start Position
	End   Position
}

func NewSpan(start, end Position) Span {
	return Span{Start: start, End: end}
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}

// Contains reports whether pos falls inside the half-open range.
func (s Span) Contains(pos Position) bool {
	return !pos.Less(s.Start) && pos.Less(s.End)
}

// Cover returns the union of two spans: min start, max end.
func (s Span) Cover(other Span) Span {
	return Span{
		Start: minPos(s.Start, other.Start),
		End:   maxPos(s.End, other.End),
	}
}
