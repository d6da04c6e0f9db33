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

// UpdateRouteFieldsCommandHandler lets the assigned agent edit an in-progress
// route. When a value actually changes, the assigned agent (who is also the
// requester) gets an informational push.
type UpdateRouteFieldsCommandHandler struct {
	uowFactory UoWFactory
	notifier   notifier
	clock      ports.Clock
}

func NewUpdateRouteFieldsCommandHandler(
	uowFactory UoWFactory,
	dispatcher ports.NotificationDispatcher,
	clock ports.Clock,
	logger *slog.Logger,
) UpdateRouteFieldsCommandHandler {
	return UpdateRouteFieldsCommandHandler{
		uowFactory: uowFactory,
		notifier:   newNotifier(dispatcher, logger),
		clock:      clock,
	}
}

func (h UpdateRouteFieldsCommandHandler) Handle(
	ctx context.Context,
	command UpdateRouteFieldsCommand,
) (*route.Route, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	var (
		updated      *route.Route
		changed      bool
		agentAddress string
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

		changed, err = r.UpdateLocations(command.AgentID(), command.Origin(), command.Destination(), h.clock.Now())
		if err != nil {
			return err
		}

		var address string
		if changed {
			if err = routes.Update(ctx, r); err != nil {
				return err
			}
			address = h.notifier.userAddress(ctx, uow.UserRepository(), command.AgentID())
		}

		if err = uow.Commit(ctx); err != nil {
			return err
		}

		updated = r
		agentAddress = address
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		h.notifier.send(ctx, agentAddress,
			"Route updated",
			fmt.Sprintf("Route now goes from %s to %s", updated.Origin(), updated.Destination()),
		)
	}

	return updated, nil
}
