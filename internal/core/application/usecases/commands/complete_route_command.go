package commands

import (
	"errors"

	"routehub/internal/core/domain/model/kernel"
	"routehub/internal/pkg/guard"
)

var ErrCompleteRouteCommandIsNotConstructed = errors.New(
	"CompleteRouteCommand must be created via NewCompleteRouteCommand constructor",
)

// CompleteRouteCommand marks a route delivered by its assigned agent.
type CompleteRouteCommand struct {
	routeID kernel.UUID
	agentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCompleteRouteCommand(routeID, agentID kernel.UUID) (CompleteRouteCommand, error) {
	if err := errors.Join(routeID.Validate(), agentID.Validate()); err != nil {
		return CompleteRouteCommand{}, err
	}

	return CompleteRouteCommand{
		routeID: routeID,
		agentID: agentID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteRouteCommand) Validate() error {
	return c.guard.Validate(ErrCompleteRouteCommandIsNotConstructed)
}

func (c CompleteRouteCommand) RouteID() kernel.UUID { return c.routeID }
func (c CompleteRouteCommand) AgentID() kernel.UUID { return c.agentID }
