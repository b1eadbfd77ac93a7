package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("conflicting concurrent update")
	ErrSecretMismatch     = errors.New("secret code mismatch")
	ErrNoPendingDraft     = errors.New("no pending draft")
)
