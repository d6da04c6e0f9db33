package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"routehub/internal/core/domain/model/route"
	"routehub/internal/core/domain/model/user"
	"routehub/internal/core/ports"
	"routehub/internal/pkg/errs"
)

// ClaimRouteCommandHandler assigns an available route to the requesting
// delivery agent.
//
// The aggregate rejects claims that are already illegal for the snapshot it
// was loaded with. The repository then writes the claim with a conditional
// update, so when two agents race on the same route exactly one write lands
// and the other handler returns route.ErrAlreadyClaimed.
type ClaimRouteCommandHandler struct {
	uowFactory UoWFactory
	notifier   notifier
	clock      ports.Clock
}

func NewClaimRouteCommandHandler(
	uowFactory UoWFactory,
	dispatcher ports.NotificationDispatcher,
	clock ports.Clock,
	logger *slog.Logger,
) ClaimRouteCommandHandler {
	return ClaimRouteCommandHandler{
		uowFactory: uowFactory,
		notifier:   newNotifier(dispatcher, logger),
		clock:      clock,
	}
}

// Handle returns the claimed route. Errors, in the order they are checked:
// ErrRouteNotFound, ErrActorNotFound, route.ErrUnauthorized for a user that
// is not a delivery agent, then route.ErrAlreadyClaimed and
// route.ErrInvalidTransition.
func (h ClaimRouteCommandHandler) Handle(ctx context.Context, command ClaimRouteCommand) (*route.Route, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	var (
		claimed         *route.Route
		agentName       string
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
		r, err := routes.Get(ctx, command.RouteID())
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ErrRouteNotFound
		}
		if err != nil {
			return err
		}

		users := uow.UserRepository()
		agent, err := users.Get(ctx, command.AgentID())
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ErrActorNotFound
		}
		if err != nil {
			return err
		}
		if agent.Role() != user.DeliveryAgent {
			return route.ErrUnauthorized
		}

		if err = r.Claim(agent.ID(), h.clock.Now()); err != nil {
			return err
		}

		if err = routes.Claim(ctx, r); err != nil {
			return err
		}

		address := h.notifier.userAddress(ctx, users, r.CustomerID())

		if err = uow.Commit(ctx); err != nil {
			return err
		}

		claimed = r
		agentName = agent.DisplayName()
		customerAddress = address
		return nil
	})
	if err != nil {
		return nil, err
	}

	h.notifier.send(ctx, customerAddress,
		"Route in progress",
		fmt.Sprintf("%s is delivering your package to %s", agentName, claimed.Destination()),
	)

	return claimed, nil
}
