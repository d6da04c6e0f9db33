package routerepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"routehub/internal/adapters/out/postgres/pgtest"
	"routehub/internal/adapters/out/postgres/routerepo"
	"routehub/internal/adapters/out/postgres/userrepo"
	"routehub/internal/core/domain/model/kernel"
	"routehub/internal/core/domain/model/route"
	"routehub/internal/core/domain/model/user"
	"routehub/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type RouteRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *routerepo.GormRouteRepository
	users      *userrepo.GormUserRepository
	customer   *user.User
	agent      *user.User
	now        time.Time
}

func (suite *RouteRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *RouteRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *RouteRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.repository = routerepo.NewGormRouteRepository(suite.database.DB)
	suite.users = userrepo.NewGormUserRepository(suite.database.DB)
	suite.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	suite.customer = suite.addUser(user.Customer, "customer@example.com")
	suite.agent = suite.addUser(user.DeliveryAgent, "agent@example.com")
}

func (suite *RouteRepositoryIntegrationTestSuite) addUser(role user.Role, email string) *user.User {
	u, err := user.NewUser(kernel.NewUUID(), role, email, "Pat", "Doe", "hash")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.users.Add(context.Background(), u))
	return u
}

func (suite *RouteRepositoryIntegrationTestSuite) newRoute(createdAt time.Time) *route.Route {
	r, err := route.NewRoute(kernel.NewUUID(), suite.customer.ID(), "parcel", "Depot", "Main St 1", createdAt)
	suite.Require().NoError(err)
	return r
}

func (suite *RouteRepositoryIntegrationTestSuite) TestAdd_AndGet_RoundTrip() {
	ctx := context.Background()
	r := suite.newRoute(suite.now)

	suite.Require().NoError(suite.repository.Add(ctx, r))

	loaded, err := suite.repository.Get(ctx, r.ID())
	suite.Require().NoError(err)
	suite.True(loaded.ID().IsEqual(r.ID()))
	suite.True(loaded.CustomerID().IsEqual(suite.customer.ID()))
	suite.Nil(loaded.AgentID())
	suite.Equal(route.Available, loaded.Status())
	suite.Equal("parcel", loaded.PackageInfo())
	suite.Equal("Depot", loaded.Origin())
	suite.Equal("Main St 1", loaded.Destination())
	suite.True(loaded.CreatedAt().Equal(suite.now))
}

func (suite *RouteRepositoryIntegrationTestSuite) TestAdd_UnknownCustomer_Rejected() {
	r, err := route.NewRoute(kernel.NewUUID(), kernel.NewUUID(), "parcel", "A", "B", suite.now)
	suite.Require().NoError(err)

	err = suite.repository.Add(context.Background(), r)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *RouteRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *RouteRepositoryIntegrationTestSuite) TestClaim_Success() {
	ctx := context.Background()
	r := suite.newRoute(suite.now)
	suite.Require().NoError(suite.repository.Add(ctx, r))
	suite.Require().NoError(r.Claim(suite.agent.ID(), suite.now.Add(time.Minute)))

	suite.Require().NoError(suite.repository.Claim(ctx, r))

	loaded, err := suite.repository.Get(ctx, r.ID())
	suite.Require().NoError(err)
	suite.Equal(route.InProgress, loaded.Status())
	suite.Require().NotNil(loaded.AgentID())
	suite.True(loaded.AgentID().IsEqual(suite.agent.ID()))
	suite.True(loaded.UpdatedAt().Equal(suite.now.Add(time.Minute)))
}

func (suite *RouteRepositoryIntegrationTestSuite) TestClaim_StaleSnapshotLoses() {
	ctx := context.Background()
	r := suite.newRoute(suite.now)
	suite.Require().NoError(suite.repository.Add(ctx, r))

	first, err := suite.repository.Get(ctx, r.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, r.ID())
	suite.Require().NoError(err)

	other := suite.addUser(user.DeliveryAgent, "other@example.com")
	suite.Require().NoError(first.Claim(suite.agent.ID(), suite.now))
	suite.Require().NoError(second.Claim(other.ID(), suite.now))

	suite.Require().NoError(suite.repository.Claim(ctx, first))
	suite.Require().ErrorIs(suite.repository.Claim(ctx, second), route.ErrAlreadyClaimed)

	loaded, err := suite.repository.Get(ctx, r.ID())
	suite.Require().NoError(err)
	suite.True(loaded.AgentID().IsEqual(suite.agent.ID()))
}

func (suite *RouteRepositoryIntegrationTestSuite) TestClaim_ConcurrentAgents_OneWinner() {
	ctx := context.Background()
	r := suite.newRoute(suite.now)
	suite.Require().NoError(suite.repository.Add(ctx, r))

	const agents = 8
	snapshots := make([]*route.Route, agents)
	for i := range snapshots {
		agent := suite.addUser(user.DeliveryAgent, "agent"+string(rune('a'+i))+"@race.example.com")
		snapshot, err := suite.repository.Get(ctx, r.ID())
		suite.Require().NoError(err)
		suite.Require().NoError(snapshot.Claim(agent.ID(), suite.now))
		snapshots[i] = snapshot
	}

	results := make([]error, agents)
	var wg sync.WaitGroup
	for i, snapshot := range snapshots {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = suite.repository.Claim(ctx, snapshot)
		}()
	}
	wg.Wait()

	var winner *route.Route
	var winners int
	for i, err := range results {
		if err == nil {
			winner = snapshots[i]
			winners++
			continue
		}
		suite.ErrorIs(err, route.ErrAlreadyClaimed)
	}
	suite.Require().Equal(1, winners)

	loaded, err := suite.repository.Get(ctx, r.ID())
	suite.Require().NoError(err)
	suite.Equal(route.InProgress, loaded.Status())
	suite.Require().NotNil(loaded.AgentID())
	suite.True(loaded.AgentID().IsEqual(*winner.AgentID()))
}

func (suite *RouteRepositoryIntegrationTestSuite) TestClaim_MissingRoute() {
	r := suite.newRoute(suite.now)
	suite.Require().NoError(r.Claim(suite.agent.ID(), suite.now))

	err := suite.repository.Claim(context.Background(), r)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *RouteRepositoryIntegrationTestSuite) TestUpdate_PersistsCompletionAndLocations() {
	ctx := context.Background()
	r := suite.newRoute(suite.now)
	suite.Require().NoError(suite.repository.Add(ctx, r))
	suite.Require().NoError(r.Claim(suite.agent.ID(), suite.now))
	suite.Require().NoError(suite.repository.Claim(ctx, r))

	destination := "Harbor Rd 9"
	_, err := r.UpdateLocations(suite.agent.ID(), nil, &destination, suite.now.Add(time.Minute))
	suite.Require().NoError(err)
	suite.Require().NoError(r.Complete(suite.agent.ID(), suite.now.Add(2*time.Minute)))
	suite.Require().NoError(suite.repository.Update(ctx, r))

	loaded, err := suite.repository.Get(ctx, r.ID())
	suite.Require().NoError(err)
	suite.Equal(route.Completed, loaded.Status())
	suite.Equal("Harbor Rd 9", loaded.Destination())
	suite.True(loaded.CreatedAt().Equal(suite.now))
	suite.True(loaded.UpdatedAt().Equal(suite.now.Add(2 * time.Minute)))
}

func (suite *RouteRepositoryIntegrationTestSuite) TestUpdate_NotFound() {
	err := suite.repository.Update(context.Background(), suite.newRoute(suite.now))

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *RouteRepositoryIntegrationTestSuite) TestGetForUpdate_LocksRow() {
	ctx := context.Background()
	r := suite.newRoute(suite.now)
	suite.Require().NoError(suite.repository.Add(ctx, r))

	err := suite.database.DB.Transaction(func(tx *gorm.DB) error {
		locked, lockErr := routerepo.NewGormRouteRepository(tx).GetForUpdate(ctx, r.ID())
		suite.Require().NoError(lockErr)
		suite.Equal(route.Available, locked.Status())

		return suite.database.DB.Transaction(func(other *gorm.DB) error {
			suite.Require().NoError(other.Exec("SET LOCAL lock_timeout = '50ms'").Error)
			_, waitErr := routerepo.NewGormRouteRepository(other).GetForUpdate(ctx, r.ID())
			suite.Require().Error(waitErr)
			return nil
		})
	})
	suite.Require().NoError(err)
}

func (suite *RouteRepositoryIntegrationTestSuite) TestCountAvailableCreatedBefore() {
	ctx := context.Background()
	old := suite.newRoute(suite.now.Add(-2 * time.Hour))
	fresh := suite.newRoute(suite.now)
	claimed := suite.newRoute(suite.now.Add(-3 * time.Hour))
	for _, r := range []*route.Route{old, fresh, claimed} {
		suite.Require().NoError(suite.repository.Add(ctx, r))
	}
	suite.Require().NoError(claimed.Claim(suite.agent.ID(), suite.now))
	suite.Require().NoError(suite.repository.Claim(ctx, claimed))

	n, err := suite.repository.CountAvailableCreatedBefore(ctx, suite.now.Add(-time.Hour))

	suite.Require().NoError(err)
	suite.Equal(int64(1), n)
}

func TestRouteRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RouteRepositoryIntegrationTestSuite))
}
