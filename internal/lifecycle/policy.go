// Package lifecycle decides what happens to a note around a read: whether it
// is still readable, and what the store must do after a successful decrypt.
package lifecycle

import "time"

// State is the lifecycle state of a single note.
type State int

const (
	Active State = iota
	Consumed
	Expired
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Consumed:
		return "consumed"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

// Action is the store instruction issued after a successful read.
type Action int

const (
	// ActionMarkViewed bumps the informational view counter.
	ActionMarkViewed Action = iota
	// ActionDelete removes a one-time note. The delete must be atomic with
	// respect to concurrent readers.
	ActionDelete
)

// Evaluate reports whether a note with the given expiry is still readable at
// now. A nil expiry never expires. The boundary instant counts as expired.
func Evaluate(expiresAt *time.Time, now time.Time) State {
	if expiresAt != nil && !now.Before(*expiresAt) {
		return Expired
	}
	return Active
}

// AfterRead returns the state a note enters once its plaintext has been
// released, and the store action that makes it so.
func AfterRead(oneTime bool) (State, Action) {
	if oneTime {
		return Consumed, ActionDelete
	}
	return Active, ActionMarkViewed
}
