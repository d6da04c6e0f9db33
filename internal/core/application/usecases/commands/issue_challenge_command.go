package commands

import (
	"errors"

	"routehub/internal/core/domain/model/kernel"
	"routehub/internal/core/domain/model/user"
	"routehub/internal/pkg/guard"
)

var ErrIssueChallengeCommandIsNotConstructed = errors.New(
	"IssueChallengeCommand must be created via NewIssueChallengeCommand constructor",
)

// IssueChallengeCommand requests a fresh verification code for a user.
type IssueChallengeCommand struct {
	userID  kernel.UUID
	purpose user.Purpose

	guard guard.ConstructorGuard
}

func NewIssueChallengeCommand(userID kernel.UUID, purpose user.Purpose) (IssueChallengeCommand, error) {
	if err := errors.Join(userID.Validate(), purpose.Validate()); err != nil {
		return IssueChallengeCommand{}, err
	}

	return IssueChallengeCommand{
		userID:  userID,
		purpose: purpose,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c IssueChallengeCommand) Validate() error {
	return c.guard.Validate(ErrIssueChallengeCommandIsNotConstructed)
}

func (c IssueChallengeCommand) UserID() kernel.UUID   { return c.userID }
func (c IssueChallengeCommand) Purpose() user.Purpose { return c.purpose }
