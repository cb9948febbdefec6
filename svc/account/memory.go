package account

import (
	"context"
	"errors"
	"sync"
	"time"
)

// MemoryRepository keeps accounts in a map guarded by one mutex.
// It is meant for tests and single-process development.
type MemoryRepository struct {
	mu       sync.Mutex
	accounts map[string]*Account
	now      func() time.Time
}

// MemoryOption configures a MemoryRepository.
type MemoryOption func(*MemoryRepository)

// WithMemoryClock replaces time.Now for timestamps.
func WithMemoryClock(now func() time.Time) MemoryOption {
	return func(r *MemoryRepository) {
		if now != nil {
			r.now = now
		}
	}
}

func NewMemoryRepository(opts ...MemoryOption) *MemoryRepository {
	r := &MemoryRepository{
		accounts: make(map[string]*Account),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *MemoryRepository) Create(ctx context.Context, a *Account) error {
	if a == nil || a.Identity == "" {
		return errors.Join(ErrUnexpected, errors.New("account identity is empty"))
	}
	if err := ctx.Err(); err != nil {
		return errors.Join(ErrUnexpected, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[a.Identity]; exists {
		return ErrAlreadyExists
	}

	now := r.now()
	a.Version = 1
	a.CreatedAt, a.UpdatedAt = now, now
	r.accounts[a.Identity] = a.Clone()
	return nil
}

func (r *MemoryRepository) GetByIdentity(ctx context.Context, identity string) (*Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrUnexpected, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[identity]
	if !ok {
		return nil, ErrNotFound
	}
	return a.Clone(), nil
}

func (r *MemoryRepository) Update(ctx context.Context, identity string, fn UpdateFunc) (*Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrUnexpected, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.accounts[identity]
	if !ok {
		return nil, ErrNotFound
	}

	next := current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}

	next.ID, next.Identity, next.CreatedAt = current.ID, current.Identity, current.CreatedAt
	next.Version = current.Version + 1
	next.UpdatedAt = r.now()
	r.accounts[identity] = next
	return next.Clone(), nil
}
