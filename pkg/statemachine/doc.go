// Package statemachine provides a transition table for finite-state machines
// whose current state lives elsewhere, typically in a persisted record.
//
// A Table maps (from state, event) to one or more candidate transitions. Fire
// takes the current state as an argument, evaluates guards in registration
// order, runs the actions of the first transition whose guards all pass, and
// returns the target state. The table itself never changes after New, so a
// single package-level Table can serve every record concurrently; the caller
// is responsible for persisting the returned state atomically.
//
// # Usage
//
//	const (
//	    Draft    = statemachine.StringState("draft")
//	    InReview = statemachine.StringState("in_review")
//	    Submit   = statemachine.StringEvent("submit")
//	)
//
//	var lifecycle = statemachine.MustNew(
//	    statemachine.WithTransition(Draft, InReview, Submit),
//	)
//
//	next, err := lifecycle.Fire(ctx, doc.State, Submit, doc)
//
// # Errors
//
// Fire distinguishes "no transition defined" from "guards rejected":
//
//	if statemachine.IsNoTransitionAvailableError(err) { /* ... */ }
//	if statemachine.IsTransitionRejectedError(err)   { /* ... */ }
//
// Action errors are returned wrapped, so errors.Is works on domain sentinels.
package statemachine
