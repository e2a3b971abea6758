package fiber

// Range calls fn with each value the Iterator produces, stopping early
// if fn returns false. It is a thin convenience wrapper around Next and
// Value for callers who don't need a manual loop.
func (it *Iterator[R]) Range(fn func(R) bool) {
	for it.Next() {
		if !fn(it.Value()) {
			return
		}
	}
}

// All adapts the Iterator to the range-over-func shape introduced in Go
// 1.23, so a Generator's values can be consumed with a plain range
// statement:
//
//	for v := range it.All() {
//	    ...
//	}
//
// This is the Go-idiomatic replacement for a begin()/end()/operator!=
// range-for protocol, which Go's range keyword has no equivalent hook
// for on an arbitrary type.
func (it *Iterator[R]) All() func(yield func(R) bool) {
	return func(yield func(R) bool) {
		for it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}
