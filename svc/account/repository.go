package account

import "context"

// UpdateFunc mutates an account inside Repository.Update. Returning an error
// aborts the update; nothing is written and the error is returned unchanged.
type UpdateFunc func(a *Account) error

// Repository is a keyed account store.
//
// Update is the only way to change an existing account: implementations load
// the record, run fn on it, and persist the result as one atomic step, so
// concurrent updates of the same identity never interleave. Version and
// UpdatedAt are maintained by the repository.
type Repository interface {
	Create(ctx context.Context, a *Account) error
	GetByIdentity(ctx context.Context, identity string) (*Account, error)
	Update(ctx context.Context, identity string, fn UpdateFunc) (*Account, error)
}
