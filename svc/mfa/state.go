package mfa

import (
	"context"
	"errors"

	"github.com/dmitrymomot/authkit/pkg/statemachine"
	"github.com/dmitrymomot/authkit/svc/account"
)

var (
	StateDisabled   = statemachine.StringState("disabled")
	StateUnverified = statemachine.StringState("unverified")
	StateVerified   = statemachine.StringState("verified")
)

var (
	EventSetup      = statemachine.StringEvent("setup")
	EventValidate   = statemachine.StringEvent("validate")
	EventDisable    = statemachine.StringEvent("disable")
	EventActivate   = statemachine.StringEvent("activate")
	EventRegenerate = statemachine.StringEvent("regenerate")
)

// lifecycle is the full set of legal MFA transitions. Anything not listed is
// rejected with the error from rejection.
var lifecycle = statemachine.MustNew(
	statemachine.WithTransitions(
		statemachine.Transition{From: StateDisabled, To: StateDisabled, Event: EventSetup},
		statemachine.Transition{From: StateUnverified, To: StateUnverified, Event: EventSetup},
		statemachine.Transition{From: StateUnverified, To: StateVerified, Event: EventValidate},
		statemachine.Transition{From: StateVerified, To: StateVerified, Event: EventValidate},
		statemachine.Transition{From: StateUnverified, To: StateDisabled, Event: EventDisable},
		statemachine.Transition{From: StateVerified, To: StateDisabled, Event: EventDisable},
		statemachine.Transition{From: StateDisabled, To: StateUnverified, Event: EventActivate},
		statemachine.Transition{From: StateVerified, To: StateVerified, Event: EventRegenerate},
	),
)

// StateOf maps the account flags onto a lifecycle state.
func StateOf(a *account.Account) statemachine.State {
	switch {
	case !a.OTPActivated:
		return StateDisabled
	case a.OTPVerified:
		return StateVerified
	default:
		return StateUnverified
	}
}

// Events lists what can be done with MFA from the account's current state.
func Events(a *account.Account) []statemachine.Event {
	return lifecycle.Events(StateOf(a))
}

// advance fires event for a and writes the resulting flags back into it.
func advance(ctx context.Context, a *account.Account, event statemachine.Event) (statemachine.State, error) {
	from := StateOf(a)
	to, err := lifecycle.Fire(ctx, from, event, a)
	if err != nil {
		if statemachine.IsNoTransitionAvailableError(err) {
			return from, rejection(event, from)
		}
		return from, err
	}

	a.OTPActivated = to != StateDisabled
	a.OTPVerified = to == StateVerified
	return to, nil
}

func rejection(event statemachine.Event, from statemachine.State) error {
	switch {
	case event == EventActivate:
		return ErrAlreadyActivated
	case from == StateDisabled:
		return ErrNotActivated
	case event == EventSetup && from == StateVerified:
		return ErrAlreadyVerified
	case event == EventRegenerate && from == StateUnverified:
		return ErrNotVerified
	default:
		return errors.New("mfa: unexpected transition from " + from.Name() + " on " + event.Name())
	}
}
