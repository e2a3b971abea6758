package fiber

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

// goroutine-local storage: the map contains one entry for each goroutine
// that is currently backing a suspended or running fiber.
//
// Finding "the current goroutine's identity" without a linked runtime
// intrinsic (an unexported runtime.getg reached via a machine-specific
// assembly stub, which cannot be linked without the Go toolchain to
// verify it against the running runtime's ABI) means falling back to a
// portable identity source: the goroutine id parsed out of a short
// runtime.Stack trace. It is slower per call than a linked intrinsic,
// but it is just as correct for our purposes, since
// CreateCurrentFiberWatch, package-level Schedule and Yield are not
// called in a tight loop.
//
// TODO: the global mutex is a contention point if many schedulers run on
// separate goroutines concurrently; sharding the
// map by goroutine id would remove it, but no user of this package has
// needed it yet.
var (
	glsMu    sync.RWMutex
	glsState map[int64]*fiberLocal
)

// fiberLocal is the goroutine-local state resolvable from anywhere in a
// running fiber's call graph: which scheduler resumed it, and which
// Context it is currently executing as.
type fiberLocal struct {
	scheduler *FiberScheduler
	context   *Context
}

func goroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]
	// "goroutine 123 [running]:\n..."
	const prefix = "goroutine "
	if !bytes.HasPrefix(b, []byte(prefix)) {
		return -1
	}
	b = b[len(prefix):]
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	id, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return -1
	}
	return id
}

func glsLoad() *fiberLocal {
	id := goroutineID()
	glsMu.RLock()
	v := glsState[id]
	glsMu.RUnlock()
	return v
}

func glsStore(v *fiberLocal) {
	id := goroutineID()
	glsMu.Lock()
	if glsState == nil {
		glsState = make(map[int64]*fiberLocal)
	}
	glsState[id] = v
	glsMu.Unlock()
}

func glsClear() {
	id := goroutineID()
	glsMu.Lock()
	delete(glsState, id)
	glsMu.Unlock()
}
