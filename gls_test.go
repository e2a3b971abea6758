package fiber

import "testing"

func TestGLSIsolatedPerGoroutine(t *testing.T) {
	ch := make(chan *fiberLocal)

	go func() {
		defer close(ch)
		glsStore(&fiberLocal{})
		ch <- glsLoad()
		glsClear()
		ch <- glsLoad()
	}()

	first := <-ch
	if first == nil {
		t.Fatalf("expected a stored value, got nil")
	}
	second := <-ch
	if second != nil {
		t.Fatalf("expected nil after glsClear, got %v", second)
	}

	if v := glsLoad(); v != nil {
		t.Fatalf("main goroutine's GLS entry was touched by another goroutine: %v", v)
	}
}

func TestGoroutineIDDiffersAcrossGoroutines(t *testing.T) {
	ch := make(chan int64)
	go func() { ch <- goroutineID() }()

	other := <-ch
	mine := goroutineID()

	if other == mine {
		t.Fatalf("goroutineID returned the same id for two different goroutines")
	}
	if other < 0 || mine < 0 {
		t.Fatalf("goroutineID returned an invalid id: other=%d mine=%d", other, mine)
	}
}
