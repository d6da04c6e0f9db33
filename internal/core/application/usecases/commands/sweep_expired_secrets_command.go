package commands

import (
	"context"

	"routehub/internal/core/ports"
	"routehub/internal/pkg/guard"
)

// SweepExpiredSecretsCommand clears expired challenges and reset grants.
// Validity never depends on the sweep; it only keeps dead secrets out of
// storage.
type SweepExpiredSecretsCommand struct {
	guard guard.ConstructorGuard
}

func NewSweepExpiredSecretsCommand() SweepExpiredSecretsCommand {
	return SweepExpiredSecretsCommand{guard: guard.NewConstructorGuard()}
}

func (c SweepExpiredSecretsCommand) Validate() error {
	return c.guard.Validate(nil)
}

type SweepExpiredSecretsCommandHandler struct {
	uowFactory UserUoWFactory
	clock      ports.Clock
}

func NewSweepExpiredSecretsCommandHandler(uowFactory UserUoWFactory, clock ports.Clock) SweepExpiredSecretsCommandHandler {
	return SweepExpiredSecretsCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle returns the number of users whose secrets were cleared.
func (h SweepExpiredSecretsCommandHandler) Handle(ctx context.Context, command SweepExpiredSecretsCommand) (int64, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	var cleared int64
	err := retryOnContention(ctx, func() error {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		n, err := uow.UserRepository().ClearExpiredSecrets(ctx, h.clock.Now())
		if err != nil {
			return err
		}

		if err = uow.Commit(ctx); err != nil {
			return err
		}

		cleared = n
		return nil
	})

	return cleared, err
}
