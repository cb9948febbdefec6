package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition = errors.New("statemachine: transition needs from, to and event")
	ErrInvalidEvent      = errors.New("statemachine: nil event")
	ErrInvalidState      = errors.New("statemachine: nil state")
)

// TransitionError is returned by Fire when an event cannot move the machine.
// Rejected is set when transitions exist but every one failed a guard.
type TransitionError struct {
	From     string
	Event    string
	Rejected bool
}

func (e *TransitionError) Error() string {
	if e.Rejected {
		return fmt.Sprintf("statemachine: %q on %q rejected by guards", e.Event, e.From)
	}
	return fmt.Sprintf("statemachine: no transition for %q from %q", e.Event, e.From)
}

// IsNoTransitionAvailableError reports whether the event is not defined for the state.
func IsNoTransitionAvailableError(err error) bool {
	var e *TransitionError
	return errors.As(err, &e) && !e.Rejected
}

// IsTransitionRejectedError reports whether guards blocked the event.
func IsTransitionRejectedError(err error) bool {
	var e *TransitionError
	return errors.As(err, &e) && e.Rejected
}
