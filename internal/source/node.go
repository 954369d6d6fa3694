package source

// Node pairs a span with a payload. It is the only carrier of position
// information in the syntax tree: payloads never know their own location.
// A node owns its payload exclusively; trees built from nodes have no
// sharing and no cycles.
type Node[T any] struct {
	Span Span
	Data T
}

func NewNode[T any](span Span, data T) Node[T] {
	return Node[T]{Span: span, Data: data}
}

// MapNode rewraps the payload under the same span.
func MapNode[T, U any](n Node[T], f func(T) U) Node[U] {
	return Node[U]{Span: n.Span, Data: f(n.Data)}
}
