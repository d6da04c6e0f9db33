package commands

import (
	"errors"

	"routehub/internal/core/domain/model/kernel"
	"routehub/internal/pkg/guard"
)

var ErrClaimRouteCommandIsNotConstructed = errors.New(
	"ClaimRouteCommand must be created via NewClaimRouteCommand constructor",
)

// ClaimRouteCommand asks to assign an available route to a delivery agent.
type ClaimRouteCommand struct {
	routeID kernel.UUID
	agentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewClaimRouteCommand(routeID, agentID kernel.UUID) (ClaimRouteCommand, error) {
	if err := errors.Join(routeID.Validate(), agentID.Validate()); err != nil {
		return ClaimRouteCommand{}, err
	}

	return ClaimRouteCommand{
		routeID: routeID,
		agentID: agentID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ClaimRouteCommand) Validate() error {
	return c.guard.Validate(ErrClaimRouteCommandIsNotConstructed)
}

func (c ClaimRouteCommand) RouteID() kernel.UUID { return c.routeID }
func (c ClaimRouteCommand) AgentID() kernel.UUID { return c.agentID }
