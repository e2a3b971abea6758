package fiber

// FiberScheduler runs a FIFO queue of Contexts to completion, one fiber's
// Go code running at a time. The zero value is not usable; construct one
// with NewFiberScheduler.
type FiberScheduler struct {
	queue   []*Context
	current *Context
	pool    StackAllocator
}

// SchedulerOption configures a FiberScheduler constructed with
// NewFiberScheduler.
type SchedulerOption func(*FiberScheduler)

// WithStackPool makes the scheduler allocate fiber Stacks from pool
// instead of the package-wide default pool. A Generator's private
// per-step schedulers use this to share one pool across every step
// rather than pay for a fresh one each time.
func WithStackPool(pool StackAllocator) SchedulerOption {
	return func(s *FiberScheduler) { s.pool = pool }
}

// NewFiberScheduler constructs an empty FiberScheduler.
func NewFiberScheduler(opts ...SchedulerOption) *FiberScheduler {
	s := &FiberScheduler{pool: defaultStackPool}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule builds a fresh Context wrapping fn and appends it to the
// queue.
func (s *FiberScheduler) Schedule(fn func()) {
	s.ScheduleContext(newContext(s.pool, fn))
}

// ScheduleContext appends an already-constructed Context to the queue,
// fresh or previously suspended. Generator uses this to move a producer
// Context between the private schedulers it constructs one per step.
func (s *FiberScheduler) ScheduleContext(ctx *Context) {
	s.queue = append(s.queue, ctx)
}

func (s *FiberScheduler) dequeue() *Context {
	ctx := s.queue[0]
	s.queue = s.queue[1:]
	return ctx
}

// Empty reports whether the queue is empty. Run leaves it true on every
// normal return; exposed here so tests can assert it directly since Go
// has no destructors to check the invariant automatically.
func (s *FiberScheduler) Empty() bool {
	return len(s.queue) == 0
}

// Run drains the queue, resuming each Context in FIFO order until it
// yields (and is requeued at the tail) or finishes (and its Stack is
// released). If a fiber's body panics, Run stops abandoning every
// Context still in the queue — releasing the Stacks of those that never
// started, and leaking the backing goroutine of any that were merely
// suspended, an accepted limitation matching abandoned generator
// iterators — and returns the captured *FiberError.
func (s *FiberScheduler) Run() error {
	for len(s.queue) > 0 {
		ctx := s.dequeue()
		ctx.err = nil
		ctx.resumingScheduler = s
		s.current = ctx

		action := switchTo(ctx, Action{Tag: ActionStart})

		if ctx.err != nil {
			s.current = nil
			ctx.stack.Release()
			s.abandonQueue()
			return ctx.err
		}

		if ctx.watch != nil {
			ctx.watch.Observe(&action, ctx)
		}

		switch {
		case action.Tag == ActionSched:
			s.enqueue(ctx)
		case ctx.state == contextDone:
			ctx.stack.Release()
		default:
			// A watch rewrote SCHED to STOP and took ownership of ctx
			// itself (ctx.state is still contextSuspended): the fiber is
			// not done, but it is no longer this scheduler's problem.
		}

		s.current = nil
	}
	return nil
}

func (s *FiberScheduler) enqueue(ctx *Context) {
	s.queue = append(s.queue, ctx)
}

func (s *FiberScheduler) abandonQueue() {
	for _, ctx := range s.queue {
		ctx.abandon()
	}
	s.queue = nil
}

// Run drains sched's queue. It is the free-function form of
// (*FiberScheduler).Run, kept for symmetry with Schedule and Yield, which
// have no receiver to hang off of.
func Run(sched *FiberScheduler) error {
	return sched.Run()
}

// Schedule enqueues fn on the current goroutine's current scheduler. It
// returns ErrNoCurrentScheduler if called from a goroutine that is not
// currently running a fiber.
func Schedule(fn func()) error {
	local := glsLoad()
	if local == nil || local.scheduler == nil {
		return ErrNoCurrentScheduler
	}
	local.scheduler.Schedule(fn)
	return nil
}

// Yield suspends the calling fiber, rescheduling it at the tail of its
// scheduler's queue, and returns control to the scheduler. It returns
// ErrNoCurrentScheduler if called outside a running fiber.
func Yield() error {
	return yieldCurrent(nil)
}

// YieldValue suspends the calling fiber the same way Yield does, making
// value available to whatever Watch is installed on the current Context
// (a Generator's Iterator, most commonly) via Watch.Observe.
func YieldValue(value any) error {
	return yieldCurrent(value)
}

// CreateCurrentFiberWatch installs w as the Watch for the currently
// executing fiber's Context. It should be called during the fiber's
// first execution window, typically before its first yield, since the
// Watch only ever observes Actions returned after it is installed.
func CreateCurrentFiberWatch(w Watch) error {
	local := glsLoad()
	if local == nil || local.context == nil {
		return ErrNoCurrentScheduler
	}
	local.context.watch = w
	return nil
}

// CurrentScheduler returns the FiberScheduler currently resuming the
// calling goroutine's fiber, or nil if called outside a running fiber.
func CurrentScheduler() *FiberScheduler {
	local := glsLoad()
	if local == nil {
		return nil
	}
	return local.scheduler
}
