package commands

import (
	"context"
	"errors"
	"fmt"

	"routehub/internal/core/domain/model/user"
	"routehub/internal/core/ports"
	"routehub/internal/pkg/errs"
)

// ConsumeResetGrantCommandHandler replaces the password of a user holding a
// valid reset grant and clears the grant. The password is hashed before the
// row lock is taken so the lock is held only for the check and the write.
type ConsumeResetGrantCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
	clock      ports.Clock
}

func NewConsumeResetGrantCommandHandler(
	uowFactory UserUoWFactory,
	hasher ports.PasswordHasher,
	clock ports.Clock,
) ConsumeResetGrantCommandHandler {
	return ConsumeResetGrantCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		clock:      clock,
	}
}

func (h ConsumeResetGrantCommandHandler) Handle(ctx context.Context, command ConsumeResetGrantCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	hash, err := h.hasher.Hash(command.NewPassword())
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
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
			return user.ErrInvalidOrExpired
		}
		if err != nil {
			return err
		}

		if err = u.ConsumeResetGrant(command.Token(), hash, h.clock.Now()); err != nil {
			return err
		}

		if err = users.Update(ctx, u); err != nil {
			return err
		}

		return uow.Commit(ctx)
	})
}
