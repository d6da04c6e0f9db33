package commands

import (
	"errors"

	"routehub/internal/core/domain/model/kernel"
	"routehub/internal/pkg/errs"
	"routehub/internal/pkg/guard"
)

var ErrConsumeResetGrantCommandIsNotConstructed = errors.New(
	"ConsumeResetGrantCommand must be created via NewConsumeResetGrantCommand constructor",
)

// ConsumeResetGrantCommand redeems a reset grant for a new password.
type ConsumeResetGrantCommand struct {
	userID      kernel.UUID
	token       string
	newPassword string

	guard guard.ConstructorGuard
}

func NewConsumeResetGrantCommand(
	userID kernel.UUID,
	token string,
	newPassword string,
) (ConsumeResetGrantCommand, error) {
	errList := []error{userID.Validate(), requireText("token", token)}
	if newPassword == "" {
		errList = append(errList, errs.NewValueIsRequiredError("password"))
	}
	if err := errors.Join(errList...); err != nil {
		return ConsumeResetGrantCommand{}, err
	}

	return ConsumeResetGrantCommand{
		userID:      userID,
		token:       token,
		newPassword: newPassword,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ConsumeResetGrantCommand) Validate() error {
	return c.guard.Validate(ErrConsumeResetGrantCommandIsNotConstructed)
}

func (c ConsumeResetGrantCommand) UserID() kernel.UUID { return c.userID }
func (c ConsumeResetGrantCommand) Token() string       { return c.token }
func (c ConsumeResetGrantCommand) NewPassword() string { return c.newPassword }
