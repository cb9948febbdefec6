package account

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Account is the persisted login identity with its MFA material.
// OTPSecret and RecoveryCodes hold ciphertext only; the MFA service owns their format.
type Account struct {
	ID             uuid.UUID
	Identity       string // Normalized e-mail; unique and immutable
	CredentialHash []byte

	OTPSecret     string // Sealed TOTP secret; empty when none
	OTPActivated  bool
	OTPVerified   bool
	RecoveryCodes []byte // Sealed JSON list; nil when none

	IsActive    bool
	IsStaff     bool
	IsSuperuser bool

	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New returns an active account with a fresh ID. MFA fields are left for the
// caller's initializer to fill.
func New(identity string, credentialHash []byte) *Account {
	return &Account{
		ID:             uuid.New(),
		Identity:       identity,
		CredentialHash: credentialHash,
		IsActive:       true,
	}
}

// Clone returns a deep copy, so repositories never share byte slices with callers.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	c := *a
	c.CredentialHash = slices.Clone(a.CredentialHash)
	c.RecoveryCodes = slices.Clone(a.RecoveryCodes)
	return &c
}
