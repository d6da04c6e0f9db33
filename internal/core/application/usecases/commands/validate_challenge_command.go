package commands

import (
	"errors"

	"routehub/internal/core/domain/model/kernel"
	"routehub/internal/core/domain/model/user"
	"routehub/internal/pkg/guard"
)

var ErrValidateChallengeCommandIsNotConstructed = errors.New(
	"ValidateChallengeCommand must be created via NewValidateChallengeCommand constructor",
)

// ValidateChallengeCommand submits a code. The code is kept verbatim, no
// trimming or other normalization is applied.
type ValidateChallengeCommand struct {
	userID  kernel.UUID
	code    string
	purpose user.Purpose

	guard guard.ConstructorGuard
}

func NewValidateChallengeCommand(
	userID kernel.UUID,
	code string,
	purpose user.Purpose,
) (ValidateChallengeCommand, error) {
	if err := errors.Join(userID.Validate(), purpose.Validate(), requireText("code", code)); err != nil {
		return ValidateChallengeCommand{}, err
	}

	return ValidateChallengeCommand{
		userID:  userID,
		code:    code,
		purpose: purpose,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ValidateChallengeCommand) Validate() error {
	return c.guard.Validate(ErrValidateChallengeCommandIsNotConstructed)
}

func (c ValidateChallengeCommand) UserID() kernel.UUID   { return c.userID }
func (c ValidateChallengeCommand) Code() string          { return c.code }
func (c ValidateChallengeCommand) Purpose() user.Purpose { return c.purpose }
