package session

// State identifies where a session is in the submission lifecycle.
type State string

const (
	StateIdle       State = "idle"       // Editable, no submission pending
	StateValidating State = "validating" // Synchronous pre-flight checks running
	StateSubmitting State = "submitting" // One request in flight
	StateSucceeded  State = "succeeded"  // Outcome holds a prediction
	StateFailed     State = "failed"     // Outcome holds a failure message
)

// Terminal reports whether the state carries a displayed outcome. A
// terminal state lasts only until the next submit, example-fill, or
// clear action.
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// Busy reports whether a submit action would be rejected.
func (s State) Busy() bool {
	return s == StateValidating || s == StateSubmitting
}

func (s State) String() string {
	return string(s)
}
