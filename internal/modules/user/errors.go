package user

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("user not found")
	ErrUsernameTaken    = errors.New("username already taken")
	ErrCannotDeleteSelf = errors.New("cannot delete own account")
)
