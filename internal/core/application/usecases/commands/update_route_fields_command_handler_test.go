package commands_test

import (
	"testing"

	"routehub/internal/core/application/usecases/commands"
	"routehub/internal/core/domain/model/kernel"
	"routehub/internal/core/domain/model/route"
	"routehub/internal/core/domain/model/user"
	"routehub/internal/core/ports"
	"routehub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestUpdateRouteFieldsCommandHandler_Handle_ChangedNotifiesAgent(t *testing.T) {
	ctx := t.Context()
	agent := newTestUser(t, user.DeliveryAgent, "a@example.com", "agent-token")
	r := newClaimedRoute(t, kernel.NewUUID(), agent.ID())
	cmd, err := commands.NewUpdateRouteFieldsCommand(r.ID(), agent.ID(), nil, strPtr("  Harbor Rd 9 "))
	require.NoError(t, err)

	users := new(MockUserRepository)
	routes := new(MockRouteRepository)
	uow := new(MockUoW)
	dispatcher := new(MockDispatcher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RouteRepository").Return(routes).Once(),
		routes.On("GetForUpdate", ctx, r.ID()).Return(r, nil).Once(),
		routes.On("Update", ctx, r).Return(nil).Once(),
		uow.On("UserRepository").Return(users).Once(),
		users.On("Get", ctx, agent.ID()).Return(agent, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
		dispatcher.On("Dispatch", ctx, mock.MatchedBy(func(n ports.PushNotification) bool {
			return n.Address == "agent-token" && n.Body == "Route now goes from Warehouse 4 to Harbor Rd 9"
		})).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateRouteFieldsCommandHandler(factory, dispatcher, newClock(), nil)
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "Warehouse 4", updated.Origin())
	assert.Equal(t, "Harbor Rd 9", updated.Destination())
	assert.Equal(t, now, updated.UpdatedAt())
	routes.AssertExpectations(t)
	users.AssertExpectations(t)
	uow.AssertExpectations(t)
	dispatcher.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestUpdateRouteFieldsCommandHandler_Handle_UnchangedSkipsWriteAndPush(t *testing.T) {
	ctx := t.Context()
	agentID := kernel.NewUUID()
	r := newClaimedRoute(t, kernel.NewUUID(), agentID)
	cmd, _ := commands.NewUpdateRouteFieldsCommand(r.ID(), agentID, strPtr(r.Origin()), nil)

	routes := new(MockRouteRepository)
	routes.On("GetForUpdate", ctx, r.ID()).Return(r, nil).Once()
	uow := openUoW(ctx, routes, nil)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	dispatcher := new(MockDispatcher)

	handler := commands.NewUpdateRouteFieldsCommandHandler(factory, dispatcher, newClock(), nil)
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.NotEqual(t, now, updated.UpdatedAt())
	routes.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertCalled(t, "Commit", ctx)
	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
	factory.AssertExpectations(t)
}

func TestUpdateRouteFieldsCommandHandler_Handle_Rejected(t *testing.T) {
	assignee := kernel.NewUUID()

	tests := map[string]struct {
		route   func(t *testing.T) *route.Route
		agentID kernel.UUID
		wantErr error
	}{
		"not the assignee": {
			route:   func(t *testing.T) *route.Route { return newClaimedRoute(t, kernel.NewUUID(), assignee) },
			agentID: kernel.NewUUID(),
			wantErr: route.ErrUnauthorized,
		},
		"available route has no assignee": {
			route:   func(t *testing.T) *route.Route { return newAvailableRoute(t, kernel.NewUUID()) },
			agentID: assignee,
			wantErr: route.ErrUnauthorized,
		},
		"completed": {
			route: func(t *testing.T) *route.Route {
				r := newClaimedRoute(t, kernel.NewUUID(), assignee)
				require.NoError(t, r.Complete(assignee, now))
				return r
			},
			agentID: assignee,
			wantErr: route.ErrInvalidTransition,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()
			r := tt.route(t)
			cmd, _ := commands.NewUpdateRouteFieldsCommand(r.ID(), tt.agentID, strPtr("Elsewhere"), nil)

			routes := new(MockRouteRepository)
			routes.On("GetForUpdate", ctx, r.ID()).Return(r, nil).Once()
			factory := new(MockUoWFactory)
			factory.On("Create").Return(openUoW(ctx, routes, nil)).Once()

			handler := commands.NewUpdateRouteFieldsCommandHandler(factory, new(MockDispatcher), newClock(), nil)
			_, err := handler.Handle(ctx, cmd)

			require.ErrorIs(t, err, tt.wantErr)
			routes.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateRouteFieldsCommandHandler_Handle_RouteNotFound(t *testing.T) {
	ctx := t.Context()
	routeID := kernel.NewUUID()
	cmd, _ := commands.NewUpdateRouteFieldsCommand(routeID, kernel.NewUUID(), strPtr("x"), nil)

	routes := new(MockRouteRepository)
	routes.On("GetForUpdate", ctx, routeID).Return(nil, errs.NewObjectNotFoundError("route", routeID)).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(openUoW(ctx, routes, nil)).Once()

	handler := commands.NewUpdateRouteFieldsCommandHandler(factory, new(MockDispatcher), newClock(), nil)
	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrRouteNotFound)
}

func TestUpdateRouteFieldsCommandHandler_Handle_ValidationError(t *testing.T) {
	handler := commands.NewUpdateRouteFieldsCommandHandler(new(MockUoWFactory), nil, newClock(), nil)

	_, err := handler.Handle(t.Context(), commands.UpdateRouteFieldsCommand{})

	require.ErrorIs(t, err, commands.ErrUpdateRouteFieldsCommandIsNotConstructed)
}
