package user

import "errors"

var (
	ErrUsernameTooShort = errors.New("username must be at least 3 characters long")
	ErrUsernameInvalid  = errors.New("username can only contain letters, numbers, and underscores")
	// ErrSuperseded is returned to a check that was replaced by a newer one
	// before its result could be applied.
	ErrSuperseded = errors.New("username check superseded")
)
