package fiber

import (
	"errors"
	"testing"
)

func TestFiberErrorUnwrapsOriginalError(t *testing.T) {
	inner := errors.New("inner failure")

	sched := NewFiberScheduler()
	sched.Schedule(func() { panic(inner) })

	err := sched.Run()

	var fe *FiberError
	if !errors.As(err, &fe) {
		t.Fatalf("Run error = %v, want *FiberError", err)
	}
	if !errors.Is(err, inner) {
		t.Fatalf("errors.Is(%v, inner) = false, want true", err)
	}
}

func TestFiberErrorWithNonErrorPanicValue(t *testing.T) {
	sched := NewFiberScheduler()
	sched.Schedule(func() { panic("not an error") })

	err := sched.Run()

	var fe *FiberError
	if !errors.As(err, &fe) {
		t.Fatalf("Run error = %v, want *FiberError", err)
	}
	if fe.Value != "not an error" {
		t.Fatalf("fe.Value = %v, want %q", fe.Value, "not an error")
	}
	if fe.Unwrap() != nil {
		t.Fatalf("Unwrap() = %v, want nil for a non-error panic value", fe.Unwrap())
	}
}
