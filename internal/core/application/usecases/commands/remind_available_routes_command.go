package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"routehub/internal/core/ports"
	"routehub/internal/pkg/errs"
	"routehub/internal/pkg/guard"
)

var ErrRemindAvailableRoutesCommandIsNotConstructed = errors.New(
	"RemindAvailableRoutesCommand must be created via NewRemindAvailableRoutesCommand constructor",
)

// RemindAvailableRoutesCommand nudges a delivery agent about routes that have
// stayed AVAILABLE for longer than waitingFor.
type RemindAvailableRoutesCommand struct {
	waitingFor time.Duration

	guard guard.ConstructorGuard
}

func NewRemindAvailableRoutesCommand(waitingFor time.Duration) (RemindAvailableRoutesCommand, error) {
	if waitingFor <= 0 {
		return RemindAvailableRoutesCommand{}, errs.NewValueIsOutOfRangeError("waitingFor", waitingFor, "1ns", "unbounded")
	}
	return RemindAvailableRoutesCommand{waitingFor: waitingFor, guard: guard.NewConstructorGuard()}, nil
}

func (c RemindAvailableRoutesCommand) Validate() error {
	return c.guard.Validate(ErrRemindAvailableRoutesCommandIsNotConstructed)
}

func (c RemindAvailableRoutesCommand) WaitingFor() time.Duration { return c.waitingFor }

// RemindAvailableRoutesCommandHandler is read only. It counts stale routes and
// dispatches one reminder when there are any.
type RemindAvailableRoutesCommandHandler struct {
	uowFactory UoWFactory
	notifier   notifier
	clock      ports.Clock
}

func NewRemindAvailableRoutesCommandHandler(
	uowFactory UoWFactory,
	dispatcher ports.NotificationDispatcher,
	clock ports.Clock,
	logger *slog.Logger,
) RemindAvailableRoutesCommandHandler {
	return RemindAvailableRoutesCommandHandler{
		uowFactory: uowFactory,
		notifier:   newNotifier(dispatcher, logger),
		clock:      clock,
	}
}

// Handle returns how many routes are waiting.
func (h RemindAvailableRoutesCommandHandler) Handle(
	ctx context.Context,
	command RemindAvailableRoutesCommand,
) (int64, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	waiting, err := uow.RouteRepository().CountAvailableCreatedBefore(ctx, h.clock.Now().Add(-command.WaitingFor()))
	if err != nil {
		return 0, err
	}
	if waiting == 0 {
		return 0, nil
	}

	h.notifier.send(ctx, h.notifier.firstAgentAddress(ctx, uow.UserRepository()),
		"Routes waiting",
		fmt.Sprintf("%d routes are still waiting for a delivery agent", waiting),
	)

	return waiting, nil
}
