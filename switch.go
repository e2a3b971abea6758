package fiber

// switchTo is the context switch primitive. It hands control, and the
// Action a, to the goroutine backing ctx, and blocks until that goroutine
// hands control back with its own Action.
//
// A native stackful coroutine realizes this as an architecture-specific
// routine that swaps the CPU's instruction and stack pointers. Go gives
// user code no way to do that, so this realizes the same contract —
// exactly one side runs at a time, the Action crosses completely, the
// caller only unblocks once the far side has produced its own Action —
// as a pair of unbuffered channel operations instead. switchTo is kept
// in its own file, isolated behind this single function, the same way a
// per-ISA assembly shim would be isolated behind one seam.
func switchTo(ctx *Context, a Action) Action {
	if !ctx.stack.started {
		ctx.stack.started = true
		go runTrampoline(ctx)
	}
	ctx.stack.resume <- a
	ctx.state = contextRunning
	result := <-ctx.stack.pause
	if result.Tag == ActionSched {
		ctx.state = contextSuspended
	} else {
		ctx.state = contextDone
	}
	return result
}
