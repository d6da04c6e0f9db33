package route

import (
	"fmt"
	"strings"

	"routehub/internal/pkg/errs"
)

// Status is the lifecycle state of a route. It is persisted by its String form.
type Status int

const (
	// Unknown is the zero value and never valid.
	Unknown Status = iota

	// Available routes wait for a delivery agent and have no assignee.
	Available

	// InProgress routes belong to the agent that claimed them.
	InProgress

	// Completed is terminal.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		Available:  "AVAILABLE",
		InProgress: "IN_PROGRESS",
		Completed:  "COMPLETED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is not a valid status
	return map[Status]string{
		Available:  "AVAILABLE",
		InProgress: "IN_PROGRESS",
		Completed:  "COMPLETED",
	}
}

// ParseStatus maps the persisted form back to a Status. Matching ignores case.
func ParseStatus(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if strings.EqualFold(str, strings.TrimSpace(s)) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out of range values.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// ValidateCanHaveAgent checks the assignment invariant for this status.
func (s Status) ValidateCanHaveAgent(hasAgent bool) error {
	if hasAgent && s != InProgress && s != Completed {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have a delivery agent", s),
		)
	}

	if !hasAgent && (s == InProgress || s == Completed) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no delivery agent", s),
		)
	}

	return nil
}

// Claim returns InProgress for an available route. A route that is already in
// progress yields ErrAlreadyClaimed, any other status ErrInvalidTransition.
func (s Status) Claim() (Status, error) {
	switch s {
	case Available:
		return InProgress, nil
	case InProgress:
		return Unknown, newTransitionError(s, "claim", ErrAlreadyClaimed)
	default:
		return Unknown, newTransitionError(s, "claim", ErrInvalidTransition)
	}
}

// Complete returns Completed for a route in progress.
func (s Status) Complete() (Status, error) {
	if s != InProgress {
		return Unknown, newTransitionError(s, "complete", ErrInvalidTransition)
	}
	return Completed, nil
}

// ValidateEditable allows descriptive changes only while in progress.
func (s Status) ValidateEditable() error {
	if s != InProgress {
		return newTransitionError(s, "update", ErrInvalidTransition)
	}
	return nil
}
