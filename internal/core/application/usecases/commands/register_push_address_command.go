package commands

import (
	"errors"
	"strings"

	"routehub/internal/core/domain/model/kernel"
	"routehub/internal/pkg/guard"
)

var ErrRegisterPushAddressCommandIsNotConstructed = errors.New(
	"RegisterPushAddressCommand must be created via NewRegisterPushAddressCommand constructor",
)

// RegisterPushAddressCommand stores the device address a user receives push
// notifications on.
type RegisterPushAddressCommand struct {
	userID  kernel.UUID
	address string

	guard guard.ConstructorGuard
}

func NewRegisterPushAddressCommand(userID kernel.UUID, address string) (RegisterPushAddressCommand, error) {
	if err := errors.Join(userID.Validate(), requireText("push address", address)); err != nil {
		return RegisterPushAddressCommand{}, err
	}

	return RegisterPushAddressCommand{
		userID:  userID,
		address: strings.TrimSpace(address),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterPushAddressCommand) Validate() error {
	return c.guard.Validate(ErrRegisterPushAddressCommandIsNotConstructed)
}

func (c RegisterPushAddressCommand) UserID() kernel.UUID { return c.userID }
func (c RegisterPushAddressCommand) Address() string     { return c.address }
