package ast

// Matrix is a row-major fixed-width 2D container. It carries both matrix
// literals (elements are expression nodes) and plain value shapes.
// Invariant: len(data) is a multiple of width.
type Matrix[T any] struct {
	data  []T
	width int
}

// MatrixFromRows flattens rows into a row-major matrix. All rows must have
// the width of the first row; the parser checks this before constructing.
// An empty row set yields a 0x0 matrix.
func MatrixFromRows[T any](rows [][]T) Matrix[T] {
	if len(rows) == 0 {
		return Matrix[T]{}
	}
	width := len(rows[0])
	data := make([]T, 0, width*len(rows))
	for _, row := range rows {
		data = append(data, row...)
	}
	return Matrix[T]{data: data, width: width}
}

// Width is the number of columns.
func (m Matrix[T]) Width() int {
	return m.width
}

// Height is the number of rows.
func (m Matrix[T]) Height() int {
	if m.width == 0 {
		return 0
	}
	return len(m.data) / m.width
}

// Len is the total element count.
func (m Matrix[T]) Len() int {
	return len(m.data)
}

// At returns the element at column i, row j.
func (m Matrix[T]) At(i, j int) (T, bool) {
	idx := m.width*j + i
	if i < 0 || i >= m.width || idx < 0 || idx >= len(m.data) {
		var zero T
		return zero, false
	}
	return m.data[idx], true
}

// Row returns row j as a slice view.
func (m Matrix[T]) Row(j int) []T {
	return m.data[m.width*j : m.width*(j+1)]
}

// Elems returns the flattened row-major elements.
func (m Matrix[T]) Elems() []T {
	return m.data
}

// MapMatrix applies f to every element, preserving the shape.
func MapMatrix[T, U any](m Matrix[T], f func(T) U) Matrix[U] {
	data := make([]U, len(m.data))
	for i, v := range m.data {
		data[i] = f(v)
	}
	return Matrix[U]{data: data, width: m.width}
}
