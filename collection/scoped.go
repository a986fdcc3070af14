package collection

import (
	"errors"
	"fmt"
	"iter"

	"state-generator/reactive"
	"state-generator/scope"
)

// ErrForeignScope is the panic value (wrapped) raised when a scoped
// collection receives a cell from a scope that may be torn down before the
// collection's own scope.
var ErrForeignScope = errors.New("collection: scope does not outlive the collection")

// Scoped is the borrowed variant of Collection: the sequence and every
// element live in a scope.Scope and become unusable once it is disposed.
// Scoped values are cheap handles and may be copied freely.
type Scoped[T any] struct {
	base *Collection[T]
	cx   *scope.Scope
}

// NewScoped allocates the collection and one cell per value inside cx.
func NewScoped[T any](cx *scope.Scope, values []T) *Scoped[T] {
	alloc := func(v T) reactive.Cell[T] { return scope.NewSignal(cx, v) }

	return &Scoped[T]{
		base: &Collection[T]{
			cells: scope.NewSignal(cx, wrapAll(values, alloc)),
			alloc: alloc,
		},
		cx: cx,
	}
}

// PushValue appends value in a cell allocated from cx. cx must be the
// collection's scope or one of its ancestors.
func (s *Scoped[T]) PushValue(cx *scope.Scope, value T) {
	s.mustAccept(cx)
	s.base.pushCell(scope.NewSignal(cx, value))
}

// PushDeferred builds the value with fn, synchronously and with cx, then
// appends it. This lets callers allocate a nested companion inside the same
// scope at push time.
func (s *Scoped[T]) PushDeferred(cx *scope.Scope, fn func(cx *scope.Scope) T) {
	s.mustAccept(cx)
	s.base.pushCell(scope.NewSignal(cx, fn(cx)))
}

func (s *Scoped[T]) mustAccept(cx *scope.Scope) {
	if cx == nil || !cx.Outlives(s.cx) {
		panic(fmt.Errorf("%w: push from an unrelated or shorter-lived scope", ErrForeignScope))
	}
}

// Scope returns the arena the collection was allocated from.
func (s *Scoped[T]) Scope() *scope.Scope {
	return s.cx
}

// Position returns the index of the first element satisfying pred.
func (s *Scoped[T]) Position(pred func(T) bool) (int, bool) {
	return s.base.Position(pred)
}

// Find returns the value of the first element satisfying pred.
func (s *Scoped[T]) Find(pred func(T) bool) (T, bool) {
	return s.base.Find(pred)
}

// Remove deletes the element at index and returns its value. It panics when
// index is out of range.
func (s *Scoped[T]) Remove(index int) T {
	return s.base.Remove(index)
}

// RemoveWhere removes the first element satisfying pred.
func (s *Scoped[T]) RemoveWhere(pred func(T) bool) (T, bool) {
	return s.base.RemoveWhere(pred)
}

// Len returns the number of elements.
func (s *Scoped[T]) Len() int {
	return s.base.Len()
}

// Cells returns the element cells in order.
func (s *Scoped[T]) Cells() []reactive.Cell[T] {
	return s.base.Cells()
}

// Values returns the current element values in order.
func (s *Scoped[T]) Values() []T {
	return s.base.Values()
}

// All iterates indexes and current values.
func (s *Scoped[T]) All() iter.Seq2[int, T] {
	return s.base.All()
}

// Equal reports whether both collections hold equal values in the same order.
func (s *Scoped[T]) Equal(other *Scoped[T]) bool {
	if s == nil || other == nil {
		return s == other
	}

	return s.base.Equal(other.base)
}

// Compare orders two collections lexicographically by element value.
func (s *Scoped[T]) Compare(other *Scoped[T]) int {
	return s.base.Compare(other.base)
}

// String formats the current values. A collection whose scope is gone renders
// as "<disposed>".
func (s *Scoped[T]) String() string {
	switch {
	case s == nil:
		return "<nil>"
	case !s.cx.Alive():
		return "<disposed>"
	default:
		return s.base.String()
	}
}
