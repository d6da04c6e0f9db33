package commands

import "errors"

var (
	// ErrActorNotFound is returned when the acting or referenced user does
	// not exist.
	ErrActorNotFound = errors.New("actor not found")

	ErrRouteNotFound = errors.New("route not found")

	// ErrTooManyAttempts is returned when challenge validation is rate limited.
	ErrTooManyAttempts = errors.New("too many attempts")
)
