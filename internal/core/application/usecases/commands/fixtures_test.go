package commands_test

import (
	"context"
	"testing"
	"time"

	"routehub/internal/core/domain/model/kernel"
	"routehub/internal/core/domain/model/route"
	"routehub/internal/core/domain/model/user"
	"routehub/internal/pkg/clock"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 6, 10, 8, 30, 0, 0, time.UTC)

func newClock() *clock.Fixed {
	return clock.NewFixed(now)
}

func newTestUser(t *testing.T, role user.Role, email, pushAddress string) *user.User {
	t.Helper()
	u, err := user.NewUser(kernel.NewUUID(), role, email, "Test", role.String(), "hash")
	require.NoError(t, err)
	if pushAddress != "" {
		require.NoError(t, u.SetPushAddress(pushAddress))
	}
	return u
}

func newAvailableRoute(t *testing.T, customerID kernel.UUID) *route.Route {
	t.Helper()
	r, err := route.NewRoute(kernel.NewUUID(), customerID, "1 envelope", "Warehouse 4", "Main St 1", now.Add(-time.Hour))
	require.NoError(t, err)
	return r
}

func newClaimedRoute(t *testing.T, customerID, agentID kernel.UUID) *route.Route {
	t.Helper()
	r := newAvailableRoute(t, customerID)
	require.NoError(t, r.Claim(agentID, now.Add(-30*time.Minute)))
	return r
}

// openUoW returns a unit of work whose transaction calls all succeed.
func openUoW(ctx context.Context, routes *MockRouteRepository, users *MockUserRepository) *MockUoW {
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	if routes != nil {
		uow.On("RouteRepository").Return(routes)
	}
	if users != nil {
		uow.On("UserRepository").Return(users)
	}
	return uow
}

func mustChallenge(t *testing.T, code string, purpose user.Purpose) user.Challenge {
	t.Helper()
	c, err := user.NewChallenge(code, purpose, now.Add(15*time.Minute))
	require.NoError(t, err)
	return c
}
