// Package fiber implements a cooperative, stackful-coroutine runtime.
//
// A FiberScheduler runs a FIFO queue of fibers to completion, one fiber's
// Go code running at a time. Fibers yield control voluntarily with Yield,
// schedule further work with Schedule, and may construct and run a nested
// FiberScheduler of their own. Generator builds a pull-style iterator on
// top of the same primitives, running its producer inside a private
// scheduler one step at a time.
package fiber
