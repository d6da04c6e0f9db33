package commands

import (
	"context"
	"errors"

	"routehub/internal/pkg/errs"
)

// RegisterPushAddressCommandHandler persists a push address on the user row.
type RegisterPushAddressCommandHandler struct {
	uowFactory UserUoWFactory
}

func NewRegisterPushAddressCommandHandler(uowFactory UserUoWFactory) RegisterPushAddressCommandHandler {
	return RegisterPushAddressCommandHandler{uowFactory: uowFactory}
}

func (h RegisterPushAddressCommandHandler) Handle(ctx context.Context, command RegisterPushAddressCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return retryOnContention(ctx, func() error {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		users := uow.UserRepository()
		u, err := users.GetForUpdate(ctx, command.UserID())
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ErrActorNotFound
		}
		if err != nil {
			return err
		}

		if err = u.SetPushAddress(command.Address()); err != nil {
			return err
		}

		if err = users.Update(ctx, u); err != nil {
			return err
		}

		return uow.Commit(ctx)
	})
}
