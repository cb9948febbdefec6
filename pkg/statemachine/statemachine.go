package statemachine

import "context"

// State and Event are identified by name; two values with equal names match.
type State interface {
	Name() string
}

type Event interface {
	Name() string
}

// Action runs while a transition fires. An error aborts the transition.
type Action func(ctx context.Context, from, to State, event Event, data any) error

// Guard returns false to veto a transition.
type Guard func(ctx context.Context, from State, event Event, data any) bool

// Transition moves From to To on Event once every guard passes.
type Transition struct {
	From    State
	To      State
	Event   Event
	Guards  []Guard
	Actions []Action
}

// Machine evaluates events against a caller-supplied current state.
// It holds no state of its own, so one Machine serves every entity of a kind.
type Machine interface {
	Fire(ctx context.Context, from State, event Event, data any) (State, error)
	CanFire(ctx context.Context, from State, event Event, data any) bool
	Events(from State) []Event
}

type StringState string

func (s StringState) Name() string { return string(s) }

type StringEvent string

func (e StringEvent) Name() string { return string(e) }
