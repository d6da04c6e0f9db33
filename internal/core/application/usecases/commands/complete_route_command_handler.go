package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"routehub/internal/core/domain/model/route"
	"routehub/internal/core/ports"
	"routehub/internal/pkg/errs"
)

// CompleteRouteCommandHandler finishes an in-progress route. The row is
// locked for the duration of the check and the write.
type CompleteRouteCommandHandler struct {
	uowFactory UoWFactory
	notifier   notifier
	clock      ports.Clock
}

func NewCompleteRouteCommandHandler(
	uowFactory UoWFactory,
	dispatcher ports.NotificationDispatcher,
	clock ports.Clock,
	logger *slog.Logger,
) CompleteRouteCommandHandler {
	return CompleteRouteCommandHandler{
		uowFactory: uowFactory,
		notifier:   newNotifier(dispatcher, logger),
		clock:      clock,
	}
}

// Handle returns route.ErrInvalidTransition when the route is not in progress
// and route.ErrUnauthorized when the requester is not the assignee.
func (h CompleteRouteCommandHandler) Handle(ctx context.Context, command CompleteRouteCommand) (*route.Route, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	var (
		completed       *route.Route
		customerAddress string
	)
	err := retryOnContention(ctx, func() error {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		routes := uow.RouteRepository()
		r, err := routes.GetForUpdate(ctx, command.RouteID())
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ErrRouteNotFound
		}
		if err != nil {
			return err
		}

		if err = r.Complete(command.AgentID(), h.clock.Now()); err != nil {
			return err
		}

		if err = routes.Update(ctx, r); err != nil {
			return err
		}

		address := h.notifier.userAddress(ctx, uow.UserRepository(), r.CustomerID())

		if err = uow.Commit(ctx); err != nil {
			return err
		}

		completed = r
		customerAddress = address
		return nil
	})
	if err != nil {
		return nil, err
	}

	h.notifier.send(ctx, customerAddress,
		"Route completed",
		fmt.Sprintf("Your package was delivered to %s", completed.Destination()),
	)

	return completed, nil
}
