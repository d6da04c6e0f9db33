package commands_test

import (
	"errors"
	"testing"

	"routehub/internal/core/application/usecases/commands"
	"routehub/internal/core/domain/model/kernel"
	"routehub/internal/core/domain/model/route"
	"routehub/internal/core/domain/model/user"
	"routehub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateRouteCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	customer := newTestUser(t, user.Customer, "c@example.com", "")
	agent := newTestUser(t, user.DeliveryAgent, "a@example.com", "agent-token")
	cmd, err := commands.NewCreateRouteCommand(customer.ID(), "1 envelope", "Warehouse 4", "Main St 1")
	require.NoError(t, err)

	users := new(MockUserRepository)
	routes := new(MockRouteRepository)
	uow := new(MockUoW)
	dispatcher := new(MockDispatcher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(users).Once(),
		users.On("Get", ctx, customer.ID()).Return(customer, nil).Once(),
		uow.On("RouteRepository").Return(routes).Once(),
		routes.On("Add", ctx, mock.AnythingOfType("*route.Route")).Return(nil).Once(),
		users.On("GetFirstDeliveryAgentWithPushAddress", ctx).Return(agent, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
		dispatcher.On("Dispatch", ctx, addressedTo("agent-token")).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateRouteCommandHandler(factory, dispatcher, newClock(), nil)
	created, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, route.Available, created.Status())
	assert.Nil(t, created.AgentID())
	assert.True(t, created.CustomerID().IsEqual(customer.ID()))
	assert.Equal(t, now, created.CreatedAt())
	users.AssertExpectations(t)
	routes.AssertExpectations(t)
	uow.AssertExpectations(t)
	dispatcher.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateRouteCommandHandler_Handle_NoAgentToNotify(t *testing.T) {
	ctx := t.Context()
	customer := newTestUser(t, user.Customer, "c@example.com", "")
	cmd, _ := commands.NewCreateRouteCommand(customer.ID(), "box", "A", "B")

	users := new(MockUserRepository)
	routes := new(MockRouteRepository)
	uow := new(MockUoW)
	dispatcher := new(MockDispatcher)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("UserRepository").Return(users)
	uow.On("RouteRepository").Return(routes).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	users.On("Get", ctx, customer.ID()).Return(customer, nil).Once()
	routes.On("Add", ctx, mock.Anything).Return(nil).Once()
	users.On("GetFirstDeliveryAgentWithPushAddress", ctx).
		Return(nil, errs.NewObjectNotFoundError("user", "delivery agent with push address")).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateRouteCommandHandler(factory, dispatcher, newClock(), nil)
	_, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestCreateRouteCommandHandler_Handle_NotificationLookupFailureIsSwallowed(t *testing.T) {
	ctx := t.Context()
	customer := newTestUser(t, user.Customer, "c@example.com", "")
	cmd, _ := commands.NewCreateRouteCommand(customer.ID(), "box", "A", "B")

	users := new(MockUserRepository)
	routes := new(MockRouteRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil)
	uow.On("UserRepository").Return(users)
	uow.On("RouteRepository").Return(routes)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	users.On("Get", ctx, customer.ID()).Return(customer, nil)
	routes.On("Add", ctx, mock.Anything).Return(nil)
	users.On("GetFirstDeliveryAgentWithPushAddress", ctx).Return(nil, errors.New("connection refused"))

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow)

	handler := commands.NewCreateRouteCommandHandler(factory, new(MockDispatcher), newClock(), nil)
	created, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.NotNil(t, created)
}

func TestCreateRouteCommandHandler_Handle_CustomerNotFound(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	cmd, _ := commands.NewCreateRouteCommand(customerID, "box", "A", "B")

	users := new(MockUserRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(users).Once(),
		users.On("Get", ctx, customerID).Return(nil, errs.NewObjectNotFoundError("user", customerID.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateRouteCommandHandler(factory, new(MockDispatcher), newClock(), nil)
	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrActorNotFound)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	factory.AssertExpectations(t)
}

func TestCreateRouteCommandHandler_Handle_AgentCannotCreate(t *testing.T) {
	ctx := t.Context()
	agent := newTestUser(t, user.DeliveryAgent, "a@example.com", "")
	cmd, _ := commands.NewCreateRouteCommand(agent.ID(), "box", "A", "B")

	users := new(MockUserRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("UserRepository").Return(users).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	users.On("Get", ctx, agent.ID()).Return(agent, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateRouteCommandHandler(factory, new(MockDispatcher), newClock(), nil)
	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, route.ErrUnauthorized)
}

func TestCreateRouteCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockUoWFactory)
	handler := commands.NewCreateRouteCommandHandler(factory, new(MockDispatcher), newClock(), nil)

	_, err := handler.Handle(t.Context(), commands.CreateRouteCommand{})

	require.ErrorIs(t, err, commands.ErrCreateRouteCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateRouteCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateRouteCommand(kernel.NewUUID(), "box", "A", "B")

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(errors.New("begin error")).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateRouteCommandHandler(factory, new(MockDispatcher), newClock(), nil)
	_, err := handler.Handle(ctx, cmd)

	require.EqualError(t, err, "begin error")
}
