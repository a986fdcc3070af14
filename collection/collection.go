// Package collection provides observable containers whose elements are
// independently observable cells.
//
// Collection is the heap-shared ordered collection, Scoped is the same
// container with every cell borrowed from a scope.Scope, and HashMap is a
// keyed collection whose entries can remove themselves. Collection and Scoped
// share one implementation written against reactive.Cell; they differ only in
// how cells are allocated.
package collection

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"state-generator/reactive"
)

// Collection is an observable ordered sequence of observable values. Reading
// the sequence subscribes to membership changes; reading an element cell
// subscribes to that element only.
type Collection[T any] struct {
	cells reactive.Cell[[]reactive.Cell[T]]
	alloc func(T) reactive.Cell[T]
}

// New wraps each value in its own cell and the resulting sequence in an outer
// cell.
func New[T any](values []T) *Collection[T] {
	alloc := func(v T) reactive.Cell[T] { return reactive.New(v) }

	return &Collection[T]{
		cells: reactive.New(wrapAll(values, alloc)),
		alloc: alloc,
	}
}

// FromSeq builds a collection from the values yielded by seq.
func FromSeq[T any](seq iter.Seq[T]) *Collection[T] {
	return New(slices.Collect(seq))
}

// Map applies fn to every element of src. Generated constructors use it to
// turn source elements into their companions before building a collection.
func Map[S, D any](src []S, fn func(S) D) []D {
	out := make([]D, len(src))
	for i, v := range src {
		out[i] = fn(v)
	}

	return out
}

func wrapAll[T any](values []T, alloc func(T) reactive.Cell[T]) []reactive.Cell[T] {
	cells := make([]reactive.Cell[T], len(values))
	for i, v := range values {
		cells[i] = alloc(v)
	}

	return cells
}

// Push appends value in a new cell and notifies observers of the sequence.
func (c *Collection[T]) Push(value T) {
	c.pushCell(c.alloc(value))
}

func (c *Collection[T]) pushCell(cell reactive.Cell[T]) {
	c.cells.Modify(func(cells *[]reactive.Cell[T]) {
		*cells = append(*cells, cell)
	})
}

// Position returns the index of the first element whose current value
// satisfies pred. Every element inspected is read, and therefore tracked.
func (c *Collection[T]) Position(pred func(T) bool) (int, bool) {
	for i, cell := range c.cells.Get() {
		if pred(cell.Get()) {
			return i, true
		}
	}

	return -1, false
}

// Find returns the value of the first element satisfying pred.
func (c *Collection[T]) Find(pred func(T) bool) (T, bool) {
	if i, ok := c.Position(pred); ok {
		return c.cells.GetUntracked()[i].GetUntracked(), true
	}

	var zero T

	return zero, false
}

// Remove deletes the element at index, shifting later elements down, and
// returns its value. It panics when index is out of range; nothing is
// notified in that case.
func (c *Collection[T]) Remove(index int) T {
	if n := len(c.cells.GetUntracked()); index < 0 || index >= n {
		panic(fmt.Sprintf("collection: remove index %d out of range [0:%d]", index, n))
	}

	var removed reactive.Cell[T]

	c.cells.Modify(func(cells *[]reactive.Cell[T]) {
		removed = (*cells)[index]
		*cells = slices.Delete(*cells, index, index+1)
	})

	return removed.GetUntracked()
}

// RemoveWhere removes the first element satisfying pred. The collection is
// left untouched when nothing matches.
func (c *Collection[T]) RemoveWhere(pred func(T) bool) (T, bool) {
	if i, ok := c.Position(pred); ok {
		return c.Remove(i), true
	}

	var zero T

	return zero, false
}

// Len returns the number of elements.
func (c *Collection[T]) Len() int {
	return len(c.cells.Get())
}

// Cells returns the element cells in order. The slice is a copy; the cells
// are live.
func (c *Collection[T]) Cells() []reactive.Cell[T] {
	return slices.Clone(c.cells.Get())
}

// Values returns the current element values in order.
func (c *Collection[T]) Values() []T {
	cells := c.cells.Get()

	out := make([]T, len(cells))
	for i, cell := range cells {
		out[i] = cell.Get()
	}

	return out
}

// All iterates indexes and current values over a snapshot of the sequence.
func (c *Collection[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, cell := range slices.Clone(c.cells.Get()) {
			if !yield(i, cell.Get()) {
				return
			}
		}
	}
}

// Equal reports whether both collections hold equal values in the same order.
func (c *Collection[T]) Equal(other *Collection[T]) bool {
	if c == nil || other == nil {
		return c == other
	}

	return slices.EqualFunc(c.cells.Get(), other.cells.Get(), func(a, b reactive.Cell[T]) bool {
		return reactive.Equal(a.Get(), b.Get())
	})
}

// Compare orders two collections lexicographically by element value.
func (c *Collection[T]) Compare(other *Collection[T]) int {
	return slices.CompareFunc(c.cells.Get(), other.cells.Get(), func(a, b reactive.Cell[T]) int {
		return reactive.Compare(a.Get(), b.Get())
	})
}

// String formats the current values without tracking.
func (c *Collection[T]) String() string {
	if c == nil {
		return "<nil>"
	}

	cells := c.cells.GetUntracked()

	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = fmt.Sprint(cell.GetUntracked())
	}

	return "[" + strings.Join(parts, " ") + "]"
}
