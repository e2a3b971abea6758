package fiber

// contextState is a fiber's state machine: a
// Context is NEW until its first resume, RUNNING while its body is
// actively executing, SUSPENDED between a yield and its next resume, and
// DONE once its body has returned or panicked.
type contextState int

const (
	contextNew contextState = iota
	contextRunning
	contextSuspended
	contextDone
)

// Context is one suspended (or about to run, or running) fiber's state.
// It exclusively owns its body, its Stack, and its error slot. A Context
// is never resumed by two schedulers at the same time, but the same
// Context can be resumed by a succession of different FiberScheduler
// values over its lifetime: this is exactly what the generator does,
// constructing a fresh private scheduler for every step.
type Context struct {
	body  func()
	stack *Stack
	watch Watch
	err   error
	state contextState

	// resumingScheduler is written by whichever FiberScheduler is about
	// to switch into this Context, immediately before the switch. The
	// context's own goroutine reads it right after waking up (in the
	// trampoline, and again after every subsequent yield) to register
	// itself in goroutine-local storage under the scheduler that is
	// currently responsible for it. A Context can be resumed by a
	// different FiberScheduler value across its lifetime — that is
	// exactly what Generator does, building one private scheduler per
	// step — so this is re-read on every resume rather than cached once.
	resumingScheduler *FiberScheduler
}

// newContext builds a fresh Context wrapping fn, allocating a Stack from
// pool. The Context starts in the NEW state; fn does not run until the
// first switchTo.
func newContext(pool StackAllocator, fn func()) *Context {
	return &Context{
		body:  fn,
		stack: pool.Alloc(),
		state: contextNew,
	}
}

// Watch observes every Action a scheduler receives back from the context
// it resumed, together with that Context. A Watch may rewrite the
// Action's tag (the generator's watch downgrades ActionSched to
// ActionStop to steal the Context out of its private scheduler before it
// would be requeued) and may move a Context out to a consumer of its own.
type Watch interface {
	Observe(action *Action, ctx *Context)
}

// abandon marks ctx done without running its body any further. Only a
// Context in the NEW state has its Stack released: a SUSPENDED context's
// Stack is not released, since a live goroutine is still blocked on its
// channels.
func (ctx *Context) abandon() {
	if ctx.state == contextNew {
		ctx.stack.Release()
	}
	// A SUSPENDED context's goroutine leaks, matching the accepted
	// limitation documented for abandoned generator iterators.
	ctx.state = contextDone
}
