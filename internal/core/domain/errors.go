package domain

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateEmail     = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateToken     = errors.New("refresh token already exists")
	ErrTokenRevoked       = errors.New("refresh token revoked")

	// ErrTokenInvalid covers every refresh-token rejection: unknown, expired,
	// revoked, already rotated or failing signature checks. Callers must not
	// reveal which case applied.
	ErrTokenInvalid = errors.New("invalid refresh token")

	ErrWorkoutNotFound = errors.New("workout not found")
	ErrRoutineNotFound = errors.New("routine not found")
	ErrInternal        = errors.New("internal server error")
)
