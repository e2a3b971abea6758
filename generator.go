package fiber

// Generator wraps a producer fiber body that calls YieldValue to publish
// values of type R, turning it into a pull-style sequence consumed
// through an Iterator. A Generator is single-use: Begin may only be
// called once.
type Generator[R any] struct {
	fn   func()
	pool StackAllocator
	used bool
}

// NewGenerator builds a Generator around body. body runs as an ordinary
// fiber and should call fiber.YieldValue(v) to publish each value of type
// R. A value of any other type (including the nil of a plain Yield) is
// not delivered to the Iterator: the generator's internal Watch records
// no pending value for that step, so iteration ends there and the
// producer is left suspended.
func NewGenerator[R any](body func()) *Generator[R] {
	return &Generator[R]{fn: body, pool: defaultStackPool}
}

// Begin consumes the Generator's body and returns an Iterator already
// advanced to its first value (if body produced one before returning).
// Calling Begin a second time returns ErrDuplicatedRun.
func (g *Generator[R]) Begin() (*Iterator[R], error) {
	if g.used {
		return nil, ErrDuplicatedRun
	}
	g.used = true

	it := &Iterator[R]{pool: g.pool}
	fn := g.fn
	it.ctx = newContext(g.pool, func() {
		// Installed before fn runs, so the watch is in place in time
		// for fn's first yield.
		CreateCurrentFiberWatch(&generatorWatch[R]{it: it})
		fn()
	})

	it.advance()
	return it, it.err
}

// generatorWatch is installed on a Generator's producer Context. It
// intercepts every Action the producer's Context returns to whichever
// private scheduler is currently resuming it: an ActionSched is rewritten
// to ActionStop (so the scheduler does not requeue the still-suspended
// Context) and the Context is stolen into the Iterator for the next
// step; an ActionStop (the producer returned normally) just marks the
// Iterator terminal.
type generatorWatch[R any] struct {
	it *Iterator[R]
}

func (w *generatorWatch[R]) Observe(action *Action, ctx *Context) {
	if v, ok := action.Data.(R); ok {
		w.it.pending = &v
	} else {
		w.it.pending = nil
	}

	switch action.Tag {
	case ActionStop:
		w.it.stopped = true
	case ActionSched:
		action.Tag = ActionStop
		w.it.ctx = ctx
	}
}

// Iterator is a pull-style cursor over a Generator's values. The zero
// value (as returned by Generator's absence, or after exhaustion) behaves
// as the end of iteration: Next returns false and Value is undefined.
type Iterator[R any] struct {
	ctx     *Context
	pool    StackAllocator
	pending *R
	cur     R
	stopped bool
	err     error
}

// Next reports whether a value is available, consuming it and advancing
// the producer by exactly one more step (running it inside a fresh
// private FiberScheduler) so the iterator is ready to answer the next
// call to Next. It follows the bufio.Scanner convention: call Next, then
// read Value.
func (it *Iterator[R]) Next() bool {
	if it.err != nil || it.pending == nil {
		return false
	}
	it.cur = *it.pending
	it.advance()
	return true
}

// Value returns the value produced by the most recent call to Next that
// returned true.
func (it *Iterator[R]) Value() R {
	return it.cur
}

// Err returns the error, if any, that stopped iteration early because
// the producer's fiber body panicked. It is nil if iteration stopped
// because the producer returned normally, or has not stopped yet.
func (it *Iterator[R]) Err() error {
	return it.err
}

// Deref returns the iterator's pending value and advances the producer
// by one more step, the direct analogue of a C++ operator*: it fails
// with ErrEmptyGenerator if there is no pending value, rather than
// reporting exhaustion through a boolean the way Next does.
func (it *Iterator[R]) Deref() (R, error) {
	if it.pending == nil {
		var zero R
		return zero, ErrEmptyGenerator
	}
	v := *it.pending
	it.advance()
	return v, nil
}

// advance drives the producer exactly one more step: it constructs a
// fresh private FiberScheduler, moves the producer Context into it, and
// runs it to completion (which, for a well-behaved producer, means
// "until its next yield or its return", since the generatorWatch steals
// the Context back out before the private scheduler would ever consider
// it done).
func (it *Iterator[R]) advance() {
	it.pending = nil
	if it.stopped || it.err != nil {
		return
	}
	if it.ctx == nil {
		it.stopped = true
		return
	}

	ctx := it.ctx
	it.ctx = nil

	sched := NewFiberScheduler(WithStackPool(it.pool))
	sched.ScheduleContext(ctx)
	if err := sched.Run(); err != nil {
		it.err = err
		it.stopped = true
	}
}
