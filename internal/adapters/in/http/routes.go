package http

import (
	"net/http"

	"routehub/internal/core/application/usecases/commands"
	"routehub/internal/core/application/usecases/queries"
	"routehub/internal/core/domain/model/kernel"
	"routehub/internal/core/domain/model/route"
	"routehub/internal/core/domain/model/user"
	"routehub/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

func bindRouteID(c echo.Context) (kernel.UUID, error) {
	var raw uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "routeId", c.Param("routeId"), &raw,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("routeId", err)
	}
	return kernel.UUIDFromString(raw.String())
}

// CreateRoute handles POST /api/v1/routes.
func (s *Server) CreateRoute(c echo.Context) error {
	var body newRouteRequest
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	actorID, _ := actorOf(c)
	cmd, err := commands.NewCreateRouteCommand(actorID, body.PackageInfo, body.Origin, body.Destination)
	if err != nil {
		return s.fail(c, err)
	}

	created, err := s.handlers.CreateRoute.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, fromRoute(created))
}

// GetRoute handles GET /api/v1/routes/{routeId}.
func (s *Server) GetRoute(c echo.Context) error {
	routeID, err := bindRouteID(c)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetRouteQuery(routeID)
	if err != nil {
		return s.fail(c, err)
	}

	summary, err := s.handlers.GetRoute.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, fromSummary(summary))
}

// UpdateRoute handles PATCH /api/v1/routes/{routeId}. Only the assigned
// agent may change origin or destination of a route in progress.
func (s *Server) UpdateRoute(c echo.Context) error {
	routeID, err := bindRouteID(c)
	if err != nil {
		return s.fail(c, err)
	}

	var body routeChangesRequest
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	actorID, _ := actorOf(c)
	cmd, err := commands.NewUpdateRouteFieldsCommand(routeID, actorID, body.Origin, body.Destination)
	if err != nil {
		return s.fail(c, err)
	}

	updated, err := s.handlers.UpdateRouteFields.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, fromRoute(updated))
}

// ClaimRoute handles POST /api/v1/routes/{routeId}/claim.
func (s *Server) ClaimRoute(c echo.Context) error {
	routeID, err := bindRouteID(c)
	if err != nil {
		return s.fail(c, err)
	}

	actorID, _ := actorOf(c)
	cmd, err := commands.NewClaimRouteCommand(routeID, actorID)
	if err != nil {
		return s.fail(c, err)
	}

	claimed, err := s.handlers.ClaimRoute.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, fromRoute(claimed))
}

// CompleteRoute handles POST /api/v1/routes/{routeId}/complete.
func (s *Server) CompleteRoute(c echo.Context) error {
	routeID, err := bindRouteID(c)
	if err != nil {
		return s.fail(c, err)
	}

	actorID, _ := actorOf(c)
	cmd, err := commands.NewCompleteRouteCommand(routeID, actorID)
	if err != nil {
		return s.fail(c, err)
	}

	completed, err := s.handlers.CompleteRoute.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, fromRoute(completed))
}

// ListAvailableRoutes handles GET /api/v1/available-routes.
func (s *Server) ListAvailableRoutes(c echo.Context) error {
	return s.listRoutes(c, queries.NewListAvailableRoutesQuery())
}

// ListMyRoutes handles GET /api/v1/me/routes: the routes a customer created,
// or the routes an agent claimed.
func (s *Server) ListMyRoutes(c echo.Context) error {
	actorID, role := actorOf(c)

	var (
		query queries.ListRoutesQuery
		err   error
	)
	switch role {
	case user.Customer:
		query, err = queries.NewListCustomerRoutesQuery(actorID)
	case user.DeliveryAgent:
		query, err = queries.NewListAgentRoutesQuery(actorID)
	default:
		err = route.ErrUnauthorized
	}
	if err != nil {
		return s.fail(c, err)
	}
	return s.listRoutes(c, query)
}

// ListMyCompletedRoutes handles GET /api/v1/me/routes/completed, the order
// history of a customer.
func (s *Server) ListMyCompletedRoutes(c echo.Context) error {
	actorID, role := actorOf(c)
	if role != user.Customer {
		return s.fail(c, route.ErrUnauthorized)
	}

	query, err := queries.NewListCompletedCustomerRoutesQuery(actorID)
	if err != nil {
		return s.fail(c, err)
	}
	return s.listRoutes(c, query)
}

func (s *Server) listRoutes(c echo.Context, query queries.ListRoutesQuery) error {
	summaries, err := s.handlers.ListRoutes.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, fromSummaries(summaries))
}

// RegisterPushAddress handles PUT /api/v1/me/push-address.
func (s *Server) RegisterPushAddress(c echo.Context) error {
	var body pushAddressRequest
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	actorID, _ := actorOf(c)
	cmd, err := commands.NewRegisterPushAddressCommand(actorID, body.Address)
	if err != nil {
		return s.fail(c, err)
	}

	if err = s.handlers.RegisterPushAddress.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
