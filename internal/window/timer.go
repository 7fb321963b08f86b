package window

import "time"

// TimerKind identifies a step of the snap-back sequence.
type TimerKind int

const (
	// TimerNone is the zero kind; no timer is pending.
	TimerNone TimerKind = iota
	// TimerReturn resets the offset and size.
	TimerReturn
	// TimerSettle clears Moved after the window is back in place.
	TimerSettle
)

func (k TimerKind) String() string {
	switch k {
	case TimerReturn:
		return "return"
	case TimerSettle:
		return "settle"
	default:
		return "none"
	}
}

// Timer is a request to call Controller.Fire after Delay. The host schedules
// it (deskfolio uses tea.Tick); the controller never starts goroutines.
// A timer whose Seq no longer matches the controller is stale and ignored.
type Timer struct {
	WindowID string
	Kind     TimerKind
	Seq      uint64
	Delay    time.Duration
}
