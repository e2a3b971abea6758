package fiber

// runTrampoline is the first code that runs on a fiber's backing
// goroutine. It registers the fiber in goroutine-local storage, invokes
// the fiber body inside a recover guard, and performs the final switch
// back to whichever scheduler resumed it with ActionStop. After that
// final send, this goroutine has nothing left to do and exits; it is
// never reused directly (see StackPool for what is reused).
func runTrampoline(ctx *Context) {
	<-ctx.stack.resume
	registerCurrent(ctx)
	defer glsClear()

	ctx.err = runBody(ctx)
	ctx.stack.pause <- Action{Tag: ActionStop}
}

// registerCurrent publishes ctx (and the scheduler that just resumed it)
// into this goroutine's local storage entry, so that package-level
// Schedule, Yield, and CreateCurrentFiberWatch calls made anywhere in
// ctx's call graph can find them without an explicit handle.
func registerCurrent(ctx *Context) {
	glsStore(&fiberLocal{scheduler: ctx.resumingScheduler, context: ctx})
}

// runBody runs ctx's body, turning a panic into a *FiberError so Run can
// surface it once execution switches back out of the fiber.
func runBody(ctx *Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recoverFiberError(r)
		}
	}()
	ctx.body()
	return nil
}

// yieldCurrent implements the fiber side of a voluntary yield: switch
// back to the scheduler with ActionSched carrying value, then block until
// resumed, re-registering this goroutine's current scheduler in case a
// different FiberScheduler (as Generator's private per-step scheduler
// does) is the one that resumes it next.
func yieldCurrent(value any) error {
	local := glsLoad()
	if local == nil || local.context == nil {
		return ErrNoCurrentScheduler
	}
	ctx := local.context
	ctx.stack.pause <- Action{Tag: ActionSched, Data: value}
	<-ctx.stack.resume
	registerCurrent(ctx)
	return nil
}
