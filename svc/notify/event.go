package notify

import "time"

// EventType names an account lifecycle event.
type EventType string

const (
	EventSignup                   EventType = "account.signup"
	EventMFAVerified              EventType = "mfa.verified"
	EventMFADisabled              EventType = "mfa.disabled"
	EventMFAActivated             EventType = "mfa.activated"
	EventRecoveryCodesRegenerated EventType = "mfa.recovery_codes_regenerated"
)

func (t EventType) String() string { return string(t) }

// Event is the payload handed to every notifier.
type Event struct {
	Type       EventType         `json:"type"`
	Identity   string            `json:"identity"`
	AccountID  string            `json:"account_id"`
	OccurredAt time.Time         `json:"occurred_at"`
	Data       map[string]string `json:"data,omitempty"`
}

// NewEvent stamps an event with the current UTC time.
func NewEvent(t EventType, identity, accountID string) *Event {
	return &Event{
		Type:       t,
		Identity:   identity,
		AccountID:  accountID,
		OccurredAt: time.Now().UTC(),
	}
}
