package queries

import (
	"errors"

	"routehub/internal/core/domain/model/kernel"
	"routehub/internal/pkg/guard"
)

var ErrListRoutesQueryIsNotConstructed = errors.New(
	"ListRoutesQuery must be created via one of the NewList...Query constructors",
)

// RouteScope selects which routes a ListRoutesQuery returns.
type RouteScope int

const (
	// CustomerRoutes is every route the customer created.
	CustomerRoutes RouteScope = iota + 1
	// AgentRoutes is every route assigned to the agent, in progress or done.
	AgentRoutes
	// CompletedCustomerRoutes is the customer's delivery history.
	CompletedCustomerRoutes
	// AvailableRoutes is the board of unclaimed routes.
	AvailableRoutes
)

// ListRoutesQuery lists routes for one scope, ordered by creation time.
//
//	query, err := NewListCustomerRoutesQuery(customerID)
//	routes, err := handler.Handle(ctx, query)
type ListRoutesQuery struct {
	scope  RouteScope
	userID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListCustomerRoutesQuery(customerID kernel.UUID) (ListRoutesQuery, error) {
	return newScopedQuery(CustomerRoutes, customerID)
}

func NewListAgentRoutesQuery(agentID kernel.UUID) (ListRoutesQuery, error) {
	return newScopedQuery(AgentRoutes, agentID)
}

func NewListCompletedCustomerRoutesQuery(customerID kernel.UUID) (ListRoutesQuery, error) {
	return newScopedQuery(CompletedCustomerRoutes, customerID)
}

func NewListAvailableRoutesQuery() ListRoutesQuery {
	return ListRoutesQuery{scope: AvailableRoutes, guard: guard.NewConstructorGuard()}
}

func newScopedQuery(scope RouteScope, userID kernel.UUID) (ListRoutesQuery, error) {
	if err := userID.Validate(); err != nil {
		return ListRoutesQuery{}, err
	}
	return ListRoutesQuery{scope: scope, userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListRoutesQuery) Validate() error {
	return q.guard.Validate(ErrListRoutesQueryIsNotConstructed)
}

func (q ListRoutesQuery) Scope() RouteScope   { return q.scope }
func (q ListRoutesQuery) UserID() kernel.UUID { return q.userID }
