// Package scope provides the bounded-lifetime arena that borrowed companions
// allocate their cells from.
//
// A Scope is acquired explicitly and torn down with Dispose. Every cell
// allocated from it is stamped with the scope's epoch and checks the stamp on
// each access, so a cell used after its scope was torn down fails fast with
// ErrDisposed instead of silently reading stale state.
package scope

import (
	"errors"
	"fmt"
	"slices"

	"state-generator/reactive"
)

// ErrDisposed is the panic value (wrapped) raised when a disposed scope or
// one of its cells is used.
var ErrDisposed = errors.New("scope: used after dispose")

// Disposer tears down the scope it was returned for.
type Disposer func()

// Scope is an allocation arena with a guaranteed, ordered teardown.
type Scope struct {
	parent   *Scope
	children []*Scope
	cleanups []func()
	epoch    uint64
	disposed bool
}

// New creates a root scope.
func New() *Scope {
	return &Scope{}
}

// Create runs fn with a fresh root scope and returns its disposer.
func Create(fn func(cx *Scope)) Disposer {
	cx := New()
	fn(cx)

	return cx.Dispose
}

// Child creates a scope that is torn down no later than cx.
func (cx *Scope) Child() *Scope {
	cx.mustBeAlive()

	child := &Scope{parent: cx}
	cx.children = append(cx.children, child)

	return child
}

// OnCleanup registers fn to run when the scope is disposed. Cleanups run in
// reverse registration order.
func (cx *Scope) OnCleanup(fn func()) {
	cx.mustBeAlive()
	cx.cleanups = append(cx.cleanups, fn)
}

// CreateEffect creates an effect that is disposed together with the scope.
func (cx *Scope) CreateEffect(fn func()) *reactive.Effect {
	cx.mustBeAlive()

	e := reactive.CreateEffect(fn)
	cx.cleanups = append(cx.cleanups, e.Dispose)

	return e
}

// Alive reports whether the scope has not been disposed yet.
func (cx *Scope) Alive() bool {
	return !cx.disposed
}

// Epoch returns the scope's current generation. It changes exactly once, on
// dispose.
func (cx *Scope) Epoch() uint64 {
	return cx.epoch
}

// Parent returns the enclosing scope, or nil for a root scope.
func (cx *Scope) Parent() *Scope {
	return cx.parent
}

// Outlives reports whether cx is other or one of other's ancestors, i.e.
// whether cx is guaranteed to be torn down no earlier than other.
func (cx *Scope) Outlives(other *Scope) bool {
	for s := other; s != nil; s = s.parent {
		if s == cx {
			return true
		}
	}

	return false
}

// Dispose tears the scope down: children first, newest first, then cleanups
// in reverse order. Every cell allocated from the scope becomes unusable.
// Disposing twice is a no-op.
func (cx *Scope) Dispose() {
	if cx.disposed {
		return
	}

	for _, child := range slices.Backward(cx.children) {
		child.disposeFromParent()
	}

	cx.children = nil

	for _, fn := range slices.Backward(cx.cleanups) {
		fn()
	}

	cx.cleanups = nil
	cx.disposed = true
	cx.epoch++

	if cx.parent != nil {
		cx.parent.children = slices.DeleteFunc(cx.parent.children, func(s *Scope) bool { return s == cx })
		cx.parent = nil
	}
}

// disposeFromParent avoids mutating the parent's children slice while the
// parent iterates it.
func (cx *Scope) disposeFromParent() {
	cx.parent = nil
	cx.Dispose()
}

func (cx *Scope) mustBeAlive() {
	if cx == nil {
		panic(fmt.Errorf("%w: nil scope", ErrDisposed))
	}

	if cx.disposed {
		panic(fmt.Errorf("%w: scope already torn down", ErrDisposed))
	}
}

// check panics when a value stamped with epoch outlived cx.
func (cx *Scope) check(epoch uint64) {
	if cx.disposed || cx.epoch != epoch {
		panic(fmt.Errorf("%w: cell accessed after its scope was torn down", ErrDisposed))
	}
}

// Check panics with ErrDisposed when a value stamped with epoch has outlived
// cx. Containers built on scoped cells use it to guard their own state.
func (cx *Scope) Check(epoch uint64) {
	cx.check(epoch)
}
