package statemachine

import (
	"fmt"
)

// Option configures a transition table during construction.
type Option func(*Table) error

// TransitionOption configures a single transition with guards and actions.
type TransitionOption func(*transitionConfig)

type transitionConfig struct {
	guards  []Guard
	actions []Action
}

// New builds a transition table from the given options.
func New(opts ...Option) (*Table, error) {
	t := newTable()
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// MustNew is New that panics on an invalid definition.
// Tables are usually package-level, so a bad definition should fail at startup.
func MustNew(opts ...Option) *Table {
	t, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to create state machine: %v", err))
	}
	return t
}

// WithTransition adds a single transition to the table.
func WithTransition(from, to State, event Event, opts ...TransitionOption) Option {
	return func(t *Table) error {
		cfg := &transitionConfig{}
		for _, opt := range opts {
			opt(cfg)
		}

		return t.add(Transition{From: from, To: to, Event: event, Guards: cfg.guards, Actions: cfg.actions})
	}
}

// WithTransitions adds multiple transitions at once.
func WithTransitions(transitions ...Transition) Option {
	return func(t *Table) error {
		for i, tr := range transitions {
			if err := t.add(tr); err != nil {
				return fmt.Errorf("failed to add transition[%d] %s->%s on %s: %w",
					i, nameOf(tr.From), nameOf(tr.To), nameOf(tr.Event), err)
			}
		}
		return nil
	}
}

// WithGuard adds a guard to a transition. Nil guards are ignored.
func WithGuard(guards ...Guard) TransitionOption {
	return func(cfg *transitionConfig) {
		for _, guard := range guards {
			if guard != nil {
				cfg.guards = append(cfg.guards, guard)
			}
		}
	}
}

// WithAction adds an action to a transition. Nil actions are ignored.
func WithAction(actions ...Action) TransitionOption {
	return func(cfg *transitionConfig) {
		for _, action := range actions {
			if action != nil {
				cfg.actions = append(cfg.actions, action)
			}
		}
	}
}

func nameOf(n interface{ Name() string }) string {
	if n == nil {
		return "<nil>"
	}
	return n.Name()
}
