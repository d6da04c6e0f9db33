package route

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is returned when the current status does not allow
	// the requested action.
	ErrInvalidTransition = errors.New("invalid route status transition")

	// ErrAlreadyClaimed is returned to every claimer except the one that won.
	ErrAlreadyClaimed = errors.New("route is already claimed")

	// ErrUnauthorized is returned when the acting user may not perform the
	// action on the route.
	ErrUnauthorized = errors.New("actor is not allowed to act on this route")

	ErrRouteIsNotConstructed = errors.New("Route must be created via NewRoute or RestoreRoute")
)

// TransitionError describes a rejected action. It unwraps to ErrInvalidTransition
// or ErrAlreadyClaimed.
type TransitionError struct {
	From   Status
	Action string
	Err    error
}

func newTransitionError(from Status, action string, err error) *TransitionError {
	return &TransitionError{From: from, Action: action, Err: err}
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s route in status %s: %v", e.Action, e.From, e.Err)
}

func (e *TransitionError) Unwrap() error {
	return e.Err
}
