package statemachine

import (
	"context"
	"fmt"
)

// Table is an immutable transition table. Lookups are [fromState][event][]Transition.
// It is safe for concurrent use once built.
type Table struct {
	transitions map[string]map[string][]Transition
	order       map[string][]Event
}

func newTable() *Table {
	return &Table{
		transitions: make(map[string]map[string][]Transition),
		order:       make(map[string][]Event),
	}
}

func (t *Table) add(tr Transition) error {
	if tr.From == nil || tr.To == nil || tr.Event == nil {
		return ErrInvalidTransition
	}

	from, event := tr.From.Name(), tr.Event.Name()
	if _, ok := t.transitions[from]; !ok {
		t.transitions[from] = make(map[string][]Transition)
	}
	if _, seen := t.transitions[from][event]; !seen {
		t.order[from] = append(t.order[from], tr.Event)
	}

	// Multiple transitions allowed for same from/event to support guard-based branching
	t.transitions[from][event] = append(t.transitions[from][event], tr)
	return nil
}

// Fire resolves event from the given state and returns the target state.
// Actions run in order; the first failing action aborts with its error wrapped.
func (t *Table) Fire(ctx context.Context, from State, event Event, data any) (State, error) {
	if from == nil {
		return nil, ErrInvalidState
	}
	if event == nil {
		return nil, ErrInvalidEvent
	}

	transitions := t.transitions[from.Name()][event.Name()]
	if len(transitions) == 0 {
		return from, &TransitionError{From: from.Name(), Event: event.Name()}
	}

	tr := selectTransition(ctx, transitions, from, event, data)
	if tr == nil {
		return from, &TransitionError{From: from.Name(), Event: event.Name(), Rejected: true}
	}

	for _, action := range tr.Actions {
		if err := action(ctx, from, tr.To, event, data); err != nil {
			return from, fmt.Errorf("action failed: %w", err)
		}
	}

	return tr.To, nil
}

// CanFire reports whether Fire would find a transition whose guards pass.
// Actions are not run.
func (t *Table) CanFire(ctx context.Context, from State, event Event, data any) bool {
	if from == nil || event == nil {
		return false
	}
	transitions := t.transitions[from.Name()][event.Name()]
	return selectTransition(ctx, transitions, from, event, data) != nil
}

// Events lists the events with at least one transition out of from, in registration order.
func (t *Table) Events(from State) []Event {
	if from == nil {
		return nil
	}
	events := t.order[from.Name()]
	out := make([]Event, len(events))
	copy(out, events)
	return out
}

// First transition with passing guards wins (enables priority ordering)
func selectTransition(ctx context.Context, transitions []Transition, from State, event Event, data any) *Transition {
	for i := range transitions {
		passed := true
		for _, guard := range transitions[i].Guards {
			if !guard(ctx, from, event, data) {
				passed = false
				break
			}
		}
		if passed {
			return &transitions[i]
		}
	}
	return nil
}
