package fiber

import "testing"

func TestStackPoolReusesFreedStacks(t *testing.T) {
	pool := NewStackPool()

	s1 := pool.Alloc()
	pool.Free(s1)
	s2 := pool.Alloc()

	if s1 != s2 {
		t.Fatalf("Alloc after Free returned a different Stack, want the freed one back")
	}
}

func TestStackPoolAllocatesFreshWhenEmpty(t *testing.T) {
	pool := NewStackPool()

	s1 := pool.Alloc()
	s2 := pool.Alloc()

	if s1 == s2 {
		t.Fatalf("two concurrent Allocs from an empty pool returned the same Stack")
	}
}

func TestSchedulerReleasesStackOfCompletedFiber(t *testing.T) {
	pool := NewStackPool()
	sched := NewFiberScheduler(WithStackPool(pool))

	sched.Schedule(func() {})
	if err := sched.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(pool.free) != 1 {
		t.Fatalf("pool.free has %d entries after a completed fiber, want 1", len(pool.free))
	}
}

func TestSchedulerAbandonsUnstartedContextsOnPanicWithoutLeakingTheirStack(t *testing.T) {
	pool := NewStackPool()
	sched := NewFiberScheduler(WithStackPool(pool))

	sched.Schedule(func() { panic("boom") })
	sched.Schedule(func() {})
	sched.Schedule(func() {})

	if err := sched.Run(); err == nil {
		t.Fatalf("Run: want an error")
	}

	// The panicking fiber's own Stack is released as soon as its goroutine
	// has sent its final STOP, and the two never-started fibers
	// behind it in the queue abandon cleanly too, since neither had a
	// goroutine spawned for it yet.
	if len(pool.free) != 3 {
		t.Fatalf("pool.free has %d entries, want 3", len(pool.free))
	}
}
