package scope

import (
	"state-generator/reactive"
)

// Signal is a cell borrowed from a Scope. It is valid only while the scope is
// alive; any access afterwards panics with ErrDisposed.
type Signal[T any] struct {
	inner *reactive.Signal[T]
	cx    *Scope
	epoch uint64
}

var _ reactive.Cell[int] = (*Signal[int])(nil)

// NewSignal allocates a cell holding value inside cx.
func NewSignal[T any](cx *Scope, value T) *Signal[T] {
	cx.mustBeAlive()

	return &Signal[T]{
		inner: reactive.New(value),
		cx:    cx,
		epoch: cx.epoch,
	}
}

// NewDeferred allocates a cell whose value is built by fn with the same
// scope, so nested companions land in the arena that owns the cell.
func NewDeferred[T any](cx *Scope, fn func(cx *Scope) T) *Signal[T] {
	cx.mustBeAlive()

	return NewSignal(cx, fn(cx))
}

// Get returns the current value and subscribes the running observer.
func (s *Signal[T]) Get() T {
	s.cx.check(s.epoch)
	return s.inner.Get()
}

// GetUntracked returns the current value without subscribing anyone.
func (s *Signal[T]) GetUntracked() T {
	s.cx.check(s.epoch)
	return s.inner.GetUntracked()
}

// Set replaces the value and notifies subscribers.
func (s *Signal[T]) Set(value T) {
	s.cx.check(s.epoch)
	s.inner.Set(value)
}

// Modify mutates the value in place and notifies subscribers.
func (s *Signal[T]) Modify(fn func(*T)) {
	s.cx.check(s.epoch)
	s.inner.Modify(fn)
}

// Scope returns the arena the cell was allocated from.
func (s *Signal[T]) Scope() *Scope {
	return s.cx
}

// Alive reports whether the cell can still be used.
func (s *Signal[T]) Alive() bool {
	return !s.cx.disposed && s.cx.epoch == s.epoch
}

// Equal reports whether both cells currently hold equal values.
func (s *Signal[T]) Equal(other *Signal[T]) bool {
	if s == nil || other == nil {
		return s == other
	}

	return reactive.Equal(s.Get(), other.Get())
}

// Compare orders two cells by their current values.
func (s *Signal[T]) Compare(other *Signal[T]) int {
	return reactive.Compare(s.Get(), other.Get())
}

// String formats the current value without tracking. A dead cell renders as
// "<disposed>" rather than panicking.
func (s *Signal[T]) String() string {
	switch {
	case s == nil:
		return "<nil>"
	case !s.Alive():
		return "<disposed>"
	default:
		return s.inner.String()
	}
}
