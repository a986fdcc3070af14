package reactive

import (
	"fmt"
	"slices"
)

// Cell is the contract shared by every ownership variant of an observable
// value. Get subscribes the current observer, Set and Modify notify.
type Cell[T any] interface {
	Get() T
	GetUntracked() T
	Set(value T)
	Modify(fn func(*T))
}

// source is a cell an effect depends on.
type source interface {
	unsubscribe(e *Effect)
}

// Signal is a heap-shared observable value. It may be retained and mutated
// from any number of owners.
type Signal[T any] struct {
	value T
	subs  []*Effect
}

var _ Cell[int] = (*Signal[int])(nil)

// New creates a signal holding value.
func New[T any](value T) *Signal[T] {
	return &Signal[T]{value: value}
}

// Get returns the current value and subscribes the running observer.
func (s *Signal[T]) Get() T {
	s.track()
	return s.value
}

// GetUntracked returns the current value without subscribing anyone.
func (s *Signal[T]) GetUntracked() T {
	return s.value
}

// Set replaces the value and notifies subscribers.
func (s *Signal[T]) Set(value T) {
	s.value = value
	s.trigger()
}

// Modify mutates the value in place and notifies subscribers.
func (s *Signal[T]) Modify(fn func(*T)) {
	fn(&s.value)
	s.trigger()
}

// Subscribers returns the number of observers currently subscribed.
func (s *Signal[T]) Subscribers() int {
	return len(s.subs)
}

// Equal reports whether both signals currently hold equal values.
func (s *Signal[T]) Equal(other *Signal[T]) bool {
	if s == nil || other == nil {
		return s == other
	}

	return Equal(s.Get(), other.Get())
}

// Compare orders two signals by their current values.
func (s *Signal[T]) Compare(other *Signal[T]) int {
	return Compare(s.Get(), other.Get())
}

// String formats the current value without tracking.
func (s *Signal[T]) String() string {
	if s == nil {
		return "<nil>"
	}

	return fmt.Sprint(s.value)
}

func (s *Signal[T]) track() {
	e := current
	if e == nil || slices.Contains(s.subs, e) {
		return
	}

	s.subs = append(s.subs, e)
	e.deps = append(e.deps, s)
}

func (s *Signal[T]) unsubscribe(e *Effect) {
	s.subs = slices.DeleteFunc(s.subs, func(sub *Effect) bool { return sub == e })
}

// trigger notifies a snapshot of the subscribers; effects re-subscribe while
// they re-run, so iterating the live slice would revisit them.
func (s *Signal[T]) trigger() {
	for _, e := range slices.Clone(s.subs) {
		e.run()
	}
}
