package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"routehub/internal/core/domain/model/kernel"
	"routehub/internal/core/domain/model/route"
	"routehub/internal/core/domain/model/user"
	"routehub/internal/core/ports"
	"routehub/internal/pkg/errs"
)

// CreateRouteCommandHandler stores a new route and then tells the first
// delivery agent with a push address that work is waiting.
//
//	handler := NewCreateRouteCommandHandler(uowFactory, dispatcher, clock.System{}, logger)
//	r, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrActorNotFound):
//	    // unknown customer
//	case errors.Is(err, route.ErrUnauthorized):
//	    // the user is not a customer
//	}
type CreateRouteCommandHandler struct {
	uowFactory UoWFactory
	notifier   notifier
	clock      ports.Clock
}

func NewCreateRouteCommandHandler(
	uowFactory UoWFactory,
	dispatcher ports.NotificationDispatcher,
	clock ports.Clock,
	logger *slog.Logger,
) CreateRouteCommandHandler {
	return CreateRouteCommandHandler{
		uowFactory: uowFactory,
		notifier:   newNotifier(dispatcher, logger),
		clock:      clock,
	}
}

func (h CreateRouteCommandHandler) Handle(ctx context.Context, command CreateRouteCommand) (*route.Route, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	var (
		created      *route.Route
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

		users := uow.UserRepository()
		customer, err := users.Get(ctx, command.CustomerID())
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ErrActorNotFound
		}
		if err != nil {
			return err
		}
		if customer.Role() != user.Customer {
			return route.ErrUnauthorized
		}

		r, err := route.NewRoute(
			kernel.NewUUID(),
			customer.ID(),
			command.PackageInfo(),
			command.Origin(),
			command.Destination(),
			h.clock.Now(),
		)
		if err != nil {
			return err
		}

		if err = uow.RouteRepository().Add(ctx, r); err != nil {
			return err
		}

		address := h.notifier.firstAgentAddress(ctx, users)

		if err = uow.Commit(ctx); err != nil {
			return err
		}

		created = r
		agentAddress = address
		return nil
	})
	if err != nil {
		return nil, err
	}

	h.notifier.send(ctx, agentAddress,
		"New route available",
		fmt.Sprintf("Pickup at %s, drop-off at %s", created.Origin(), created.Destination()),
	)

	return created, nil
}
