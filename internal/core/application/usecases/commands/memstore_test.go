package commands_test

import (
	"context"
	"sync"
	"time"

	"routehub/internal/core/application/usecases/commands"
	"routehub/internal/core/domain/model/kernel"
	"routehub/internal/core/domain/model/route"
	"routehub/internal/core/domain/model/user"
	"routehub/internal/core/ports"
	"routehub/internal/pkg/errs"
)

// memStore keeps committed snapshots and applies claims with the same
// compare-and-set rule the postgres repository uses.
type memStore struct {
	mu     sync.Mutex
	routes map[kernel.UUID]*route.Route
	users  map[kernel.UUID]*user.User
}

func newMemStore() *memStore {
	return &memStore{
		routes: make(map[kernel.UUID]*route.Route),
		users:  make(map[kernel.UUID]*user.User),
	}
}

func (s *memStore) Create() commands.UoW { return memUoW{s} }

type memUserUoWFactory struct{ s *memStore }

func (f memUserUoWFactory) Create() commands.UserUoW { return memUoW{f.s} }

type memUoW struct{ s *memStore }

func (memUoW) Begin(context.Context) error    { return nil }
func (memUoW) Commit(context.Context) error   { return nil }
func (memUoW) Rollback(context.Context) error { return nil }

func (u memUoW) RouteRepository() ports.RouteRepository { return memRoutes{u.s} }
func (u memUoW) UserRepository() ports.UserRepository   { return memUsers{u.s} }

func copyRoute(r *route.Route) *route.Route {
	c, err := route.RestoreRoute(r.ID(), r.CustomerID(), r.AgentID(), r.PackageInfo(), r.Origin(),
		r.Destination(), r.Status(), r.CreatedAt(), r.UpdatedAt())
	if err != nil {
		panic(err)
	}
	return c
}

func copyUser(u *user.User) *user.User {
	c, err := user.RestoreUser(u.ID(), u.Role(), u.Email(), u.FirstName(), u.LastName(), u.PasswordHash(),
		u.PushAddress(), u.Challenge(), u.ResetGrant(), u.EmailVerified(), u.Active())
	if err != nil {
		panic(err)
	}
	return c
}

type memRoutes struct{ s *memStore }

func (m memRoutes) Add(_ context.Context, r *route.Route) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.routes[r.ID()] = copyRoute(r)
	return nil
}

func (m memRoutes) Get(_ context.Context, id kernel.UUID) (*route.Route, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	r, ok := m.s.routes[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("route", id)
	}
	return copyRoute(r), nil
}

func (m memRoutes) GetForUpdate(ctx context.Context, id kernel.UUID) (*route.Route, error) {
	return m.Get(ctx, id)
}

func (m memRoutes) Claim(_ context.Context, r *route.Route) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	stored, ok := m.s.routes[r.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("route", r.ID())
	}
	if stored.Status() != route.Available || stored.AgentID() != nil {
		return route.ErrAlreadyClaimed
	}
	m.s.routes[r.ID()] = copyRoute(r)
	return nil
}

func (m memRoutes) Update(_ context.Context, r *route.Route) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.routes[r.ID()] = copyRoute(r)
	return nil
}

func (m memRoutes) CountAvailableCreatedBefore(_ context.Context, before time.Time) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var n int64
	for _, r := range m.s.routes {
		if r.Status() == route.Available && r.CreatedAt().Before(before) {
			n++
		}
	}
	return n, nil
}

type memUsers struct{ s *memStore }

func (m memUsers) Add(_ context.Context, u *user.User) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.users[u.ID()] = copyUser(u)
	return nil
}

func (m memUsers) Get(_ context.Context, id kernel.UUID) (*user.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	u, ok := m.s.users[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("user", id)
	}
	return copyUser(u), nil
}

func (m memUsers) GetForUpdate(ctx context.Context, id kernel.UUID) (*user.User, error) {
	return m.Get(ctx, id)
}

func (m memUsers) GetByEmail(_ context.Context, email string) (*user.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, u := range m.s.users {
		if u.Email() == user.NormalizeEmail(email) {
			return copyUser(u), nil
		}
	}
	return nil, errs.NewObjectNotFoundError("user", email)
}

func (m memUsers) Update(_ context.Context, u *user.User) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.users[u.ID()] = copyUser(u)
	return nil
}

func (m memUsers) GetFirstDeliveryAgentWithPushAddress(context.Context) (*user.User, error) {
	return nil, errs.NewObjectNotFoundError("user", "delivery agent with push address")
}

func (m memUsers) ClearExpiredSecrets(context.Context, time.Time) (int64, error) {
	return 0, nil
}
