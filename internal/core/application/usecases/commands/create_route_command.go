package commands

import (
	"errors"
	"strings"

	"routehub/internal/core/domain/model/kernel"
	"routehub/internal/pkg/errs"
	"routehub/internal/pkg/guard"
)

var ErrCreateRouteCommandIsNotConstructed = errors.New(
	"CreateRouteCommand must be created via NewCreateRouteCommand constructor",
)

// CreateRouteCommand asks for a new AVAILABLE route owned by a customer.
type CreateRouteCommand struct {
	customerID  kernel.UUID
	packageInfo string
	origin      string
	destination string

	guard guard.ConstructorGuard
}

func NewCreateRouteCommand(
	customerID kernel.UUID,
	packageInfo string,
	origin string,
	destination string,
) (CreateRouteCommand, error) {
	if err := errors.Join(
		customerID.Validate(),
		requireText("packageInfo", packageInfo),
		requireText("origin", origin),
		requireText("destination", destination),
	); err != nil {
		return CreateRouteCommand{}, err
	}

	return CreateRouteCommand{
		customerID:  customerID,
		packageInfo: strings.TrimSpace(packageInfo),
		origin:      strings.TrimSpace(origin),
		destination: strings.TrimSpace(destination),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreateRouteCommand) Validate() error {
	return c.guard.Validate(ErrCreateRouteCommandIsNotConstructed)
}

func (c CreateRouteCommand) CustomerID() kernel.UUID { return c.customerID }
func (c CreateRouteCommand) PackageInfo() string     { return c.packageInfo }
func (c CreateRouteCommand) Origin() string          { return c.origin }
func (c CreateRouteCommand) Destination() string     { return c.destination }

func requireText(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}
