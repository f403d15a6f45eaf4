package checkout

// State of the most recent checkout attempt for a cart.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

func (s State) IsTerminal() bool {
	return s == StateSucceeded || s == StateFailed
}

func (s State) String() string {
	return string(s)
}

// CanTransitionTo reports whether the workflow may move from s to next.
// A failed attempt goes back to idle; a succeeded one is followed by a new
// attempt on the now empty cart.
func (s State) CanTransitionTo(next State) bool {
	switch s {
	case StateIdle:
		return next == StateSubmitting
	case StateSubmitting:
		return next == StateSucceeded || next == StateFailed
	case StateSucceeded, StateFailed:
		return next == StateIdle
	}
	return false
}
