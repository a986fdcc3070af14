package reactive

// current is the observer whose reads are being tracked.
var current *Effect

// Effect re-runs its callback whenever a cell read during the previous run
// changes.
type Effect struct {
	fn       func()
	deps     []source
	running  bool
	dirty    bool
	disposed bool
}

// CreateEffect runs fn immediately, tracking every cell it reads, and re-runs
// it on each change of those cells until the effect is disposed.
func CreateEffect(fn func()) *Effect {
	e := &Effect{fn: fn}
	e.run()

	return e
}

// Dispose unsubscribes the effect from all its cells. It never runs again.
func (e *Effect) Dispose() {
	e.disposed = true
	e.clearDeps()
}

// Disposed reports whether Dispose has been called.
func (e *Effect) Disposed() bool {
	return e.disposed
}

// Dependencies returns the number of cells read during the last run.
func (e *Effect) Dependencies() int {
	return len(e.deps)
}

func (e *Effect) run() {
	if e.disposed {
		return
	}

	// Writes to our own dependencies while running are folded into exactly
	// one extra pass. Writes made during that pass do not schedule another.
	if e.running {
		e.dirty = true
		return
	}

	e.running = true
	defer func() { e.running = false }()

	for pass := range 2 {
		e.dirty = false
		e.clearDeps()
		e.runTracked()

		if !e.dirty || e.disposed || pass == 1 {
			break
		}
	}

	e.dirty = false
}

func (e *Effect) runTracked() {
	prev := current
	current = e

	defer func() { current = prev }()

	e.fn()
}

func (e *Effect) clearDeps() {
	for _, dep := range e.deps {
		dep.unsubscribe(e)
	}

	e.deps = e.deps[:0]
}

// Untrack runs fn without subscribing the current observer to anything fn
// reads.
func Untrack(fn func()) {
	prev := current
	current = nil

	defer func() { current = prev }()

	fn()
}

// Tracking reports whether an observer is currently recording reads.
func Tracking() bool {
	return current != nil
}
