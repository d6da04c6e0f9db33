package user

import "errors"

var (
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser or RestoreUser")

	// ErrInvalidOrExpired covers a wrong, expired, mismatched or absent secret.
	ErrInvalidOrExpired = errors.New("code or token is invalid or expired")

	// ErrAlreadyVerified is returned when an email verification challenge is
	// requested for a verified user.
	ErrAlreadyVerified = errors.New("email is already verified")
)
