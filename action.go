package fiber

// ActionTag identifies what the resumed side of a context switch is
// telling the resuming side.
type ActionTag int

const (
	// ActionStart means "begin or continue execution in the resumed
	// context". It is always the tag the scheduler sends when resuming
	// a fiber, whether the fiber is fresh or was previously suspended.
	ActionStart ActionTag = iota

	// ActionStop means the resumed context has finished, normally or
	// with a captured failure.
	ActionStop

	// ActionSched means the resumed context voluntarily yielded and
	// wants to be rescheduled.
	ActionSched
)

func (t ActionTag) String() string {
	switch t {
	case ActionStart:
		return "START"
	case ActionStop:
		return "STOP"
	case ActionSched:
		return "SCHED"
	default:
		return "UNKNOWN"
	}
}

// Action is the value passed across a context switch. Data carries the
// user payload associated with a yield (Yield(value)) or, in the other
// direction, is unused: the scheduler only ever sends Data == nil with
// ActionStart.
type Action struct {
	Tag  ActionTag
	Data any
}
