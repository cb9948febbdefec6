package account

import "errors"

var (
	ErrNotFound      = errors.New("account: not found")
	ErrAlreadyExists = errors.New("account: identity already exists")
	ErrConflict      = errors.New("account: concurrent modification")
	ErrUnexpected    = errors.New("account: unexpected persistence failure")
)
