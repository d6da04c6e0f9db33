package commands

import (
	"errors"
	"strings"

	"routehub/internal/core/domain/model/kernel"
	"routehub/internal/pkg/guard"
)

var ErrUpdateRouteFieldsCommandIsNotConstructed = errors.New(
	"UpdateRouteFieldsCommand must be created via NewUpdateRouteFieldsCommand constructor",
)

// UpdateRouteFieldsCommand changes origin and/or destination. A nil field is
// left untouched.
type UpdateRouteFieldsCommand struct {
	routeID     kernel.UUID
	agentID     kernel.UUID
	origin      *string
	destination *string

	guard guard.ConstructorGuard
}

func NewUpdateRouteFieldsCommand(
	routeID kernel.UUID,
	agentID kernel.UUID,
	origin *string,
	destination *string,
) (UpdateRouteFieldsCommand, error) {
	errList := []error{routeID.Validate(), agentID.Validate()}
	if origin != nil {
		errList = append(errList, requireText("origin", *origin))
	}
	if destination != nil {
		errList = append(errList, requireText("destination", *destination))
	}
	if err := errors.Join(errList...); err != nil {
		return UpdateRouteFieldsCommand{}, err
	}

	return UpdateRouteFieldsCommand{
		routeID:     routeID,
		agentID:     agentID,
		origin:      trimmed(origin),
		destination: trimmed(destination),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateRouteFieldsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateRouteFieldsCommandIsNotConstructed)
}

func (c UpdateRouteFieldsCommand) RouteID() kernel.UUID { return c.routeID }
func (c UpdateRouteFieldsCommand) AgentID() kernel.UUID { return c.agentID }
func (c UpdateRouteFieldsCommand) Origin() *string      { return trimmed(c.origin) }
func (c UpdateRouteFieldsCommand) Destination() *string { return trimmed(c.destination) }

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
