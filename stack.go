package fiber

import "sync"

// Stack is the handle a Context uses to switch into and out of its fiber
// body. It exclusively owns a pair of unbuffered channels used as the
// context-switch primitive's transport (see switch.go) and, once the
// fiber body has actually been started, the goroutine running that body.
//
// A Stack is not safe for concurrent use: exactly one side (the resuming
// scheduler, or the fiber body itself) touches it at a time, by
// construction of the switch protocol.
type Stack struct {
	pool StackAllocator

	resume chan Action // scheduler -> fiber
	pause  chan Action // fiber -> scheduler

	started bool
}

// StackAllocator allocates and recycles Stacks. StackPool is the default
// implementation; lockedStackPool adapts it for concurrent callers.
type StackAllocator interface {
	Alloc() *Stack
	Free(*Stack)
}

func newStack(pool StackAllocator) *Stack {
	return &Stack{
		pool:   pool,
		resume: make(chan Action),
		pause:  make(chan Action),
	}
}

// reset prepares a pooled Stack for reuse by a new fiber. The channels
// are reused as-is: by the time a Stack is freed, both have been fully
// drained by the last completed send/receive pair, so there is nothing
// left to clear.
func (s *Stack) reset() {
	s.started = false
}

// Release returns the Stack to the pool it was allocated from. Callers
// must not use the Stack afterwards. Release must only be called on a
// Stack whose backing goroutine (if any) has already sent its final
// ActionStop and so no longer touches the channels; releasing a Stack
// that is still suspended mid-body would hand out channels a live
// goroutine is still blocked on.
func (s *Stack) Release() {
	if s.pool != nil {
		s.pool.Free(s)
	}
}

// StackPool caches the switching resources backing fibers, so that
// scheduling many short-lived fibers in sequence does not pay for a fresh
// pair of channels every time. StackPool is not thread-safe; use one pool
// per goroutine that drives schedulers, or guard it externally, or rely
// on the package-level default pool which is itself just a StackPool
// guarded by a mutex (see WithStackPool).
type StackPool struct {
	free []*Stack
}

// NewStackPool creates an empty StackPool.
func NewStackPool() *StackPool {
	return &StackPool{}
}

// Alloc returns a Stack, either reused from the free list or freshly
// allocated.
func (p *StackPool) Alloc() *Stack {
	if n := len(p.free); n > 0 {
		s := p.free[n-1]
		p.free = p.free[:n-1]
		s.reset()
		return s
	}
	return newStack(p)
}

// Free returns a Stack to the pool's free list.
func (p *StackPool) Free(s *Stack) {
	p.free = append(p.free, s)
}

// lockedStackPool adapts a StackPool for concurrent use by independent
// schedulers running on separate goroutines; the package-level default
// pool is one.
type lockedStackPool struct {
	mu   sync.Mutex
	pool *StackPool
}

func newLockedStackPool() *lockedStackPool {
	return &lockedStackPool{pool: NewStackPool()}
}

func (p *lockedStackPool) Alloc() *Stack {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pool.Alloc()
}

func (p *lockedStackPool) Free(s *Stack) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pool.Free(s)
}

var defaultStackPool = newLockedStackPool()
