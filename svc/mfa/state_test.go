package mfa_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/authkit/pkg/statemachine"
	"github.com/dmitrymomot/authkit/svc/account"
	"github.com/dmitrymomot/authkit/svc/mfa"
)

func TestStateOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		activated bool
		verified  bool
		want      statemachine.State
	}{
		{"disabled", false, false, mfa.StateDisabled},
		{"unverified", true, false, mfa.StateUnverified},
		{"verified", true, true, mfa.StateVerified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := &account.Account{OTPActivated: tt.activated, OTPVerified: tt.verified}
			assert.Equal(t, tt.want, mfa.StateOf(a))
		})
	}
}

func TestEvents(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		acc  *account.Account
		want []statemachine.Event
	}{
		{
			name: "setup and activate from disabled",
			acc:  &account.Account{},
			want: []statemachine.Event{mfa.EventSetup, mfa.EventActivate},
		},
		{
			name: "unverified",
			acc:  &account.Account{OTPActivated: true},
			want: []statemachine.Event{mfa.EventSetup, mfa.EventValidate, mfa.EventDisable},
		},
		{
			name: "verified",
			acc:  &account.Account{OTPActivated: true, OTPVerified: true},
			want: []statemachine.Event{mfa.EventValidate, mfa.EventDisable, mfa.EventRegenerate},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, mfa.Events(tt.acc))
		})
	}
}
