package cmd

import (
	"log/slog"

	routehttp "routehub/internal/adapters/in/http"
	"routehub/internal/adapters/out/crypto"
	"routehub/internal/adapters/out/postgres"
	"routehub/internal/core/application/usecases/commands"
	"routehub/internal/core/application/usecases/queries"
	"routehub/internal/core/domain/services"
	"routehub/internal/core/ports"
	"routehub/internal/jobs"
	"routehub/internal/pkg/clock"

	"gorm.io/gorm"
)

// Adapters are the outbound dependencies built in main.
type Adapters struct {
	Dispatcher ports.NotificationDispatcher
	Mailer     ports.EmailSender
	Limiter    ports.AttemptLimiter
}

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	adapters   Adapters
	hasher     ports.PasswordHasher
	secrets    services.SecretGenerator
	clock      ports.Clock
	logger     *slog.Logger
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, adapters Adapters, logger *slog.Logger) (CompositionRoot, error) {
	cfg = cfg.withDefaults()

	hasher, err := crypto.NewBcryptHasher(cfg.BcryptCost)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, cfg.DBLockTimeout),
		adapters:   adapters,
		hasher:     hasher,
		secrets:    services.NewSecretGenerator(),
		clock:      clock.System{},
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) routeUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) userUoWFactory() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) CreateCreateRouteCommandHandler() commands.CreateRouteCommandHandler {
	return commands.NewCreateRouteCommandHandler(c.routeUoWFactory(), c.adapters.Dispatcher, c.clock, c.logger)
}

func (c *CompositionRoot) CreateClaimRouteCommandHandler() commands.ClaimRouteCommandHandler {
	return commands.NewClaimRouteCommandHandler(c.routeUoWFactory(), c.adapters.Dispatcher, c.clock, c.logger)
}

func (c *CompositionRoot) CreateCompleteRouteCommandHandler() commands.CompleteRouteCommandHandler {
	return commands.NewCompleteRouteCommandHandler(c.routeUoWFactory(), c.adapters.Dispatcher, c.clock, c.logger)
}

func (c *CompositionRoot) CreateUpdateRouteFieldsCommandHandler() commands.UpdateRouteFieldsCommandHandler {
	return commands.NewUpdateRouteFieldsCommandHandler(c.routeUoWFactory(), c.adapters.Dispatcher, c.clock, c.logger)
}

func (c *CompositionRoot) CreateRegisterPushAddressCommandHandler() commands.RegisterPushAddressCommandHandler {
	return commands.NewRegisterPushAddressCommandHandler(c.userUoWFactory())
}

func (c *CompositionRoot) CreateIssueChallengeCommandHandler() commands.IssueChallengeCommandHandler {
	return commands.NewIssueChallengeCommandHandler(
		c.userUoWFactory(), c.adapters.Mailer, c.secrets, c.clock, c.cfg.ChallengeTTL, c.logger,
	)
}

func (c *CompositionRoot) CreateValidateChallengeCommandHandler() commands.ValidateChallengeCommandHandler {
	return commands.NewValidateChallengeCommandHandler(
		c.userUoWFactory(), c.adapters.Limiter, c.secrets, c.clock, c.cfg.ResetGrantTTL, c.logger,
	)
}

func (c *CompositionRoot) CreateConsumeResetGrantCommandHandler() commands.ConsumeResetGrantCommandHandler {
	return commands.NewConsumeResetGrantCommandHandler(c.userUoWFactory(), c.hasher, c.clock)
}

func (c *CompositionRoot) CreateSweepExpiredSecretsCommandHandler() commands.SweepExpiredSecretsCommandHandler {
	return commands.NewSweepExpiredSecretsCommandHandler(c.userUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateRemindAvailableRoutesCommandHandler() commands.RemindAvailableRoutesCommandHandler {
	return commands.NewRemindAvailableRoutesCommandHandler(c.routeUoWFactory(), c.adapters.Dispatcher, c.clock, c.logger)
}

func (c *CompositionRoot) CreateGetRouteQueryHandler() queries.GetRouteQueryHandler {
	return queries.NewGetRouteQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListRoutesQueryHandler() queries.ListRoutesQueryHandler {
	return queries.NewListRoutesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateFindUserByEmailQueryHandler() queries.FindUserByEmailQueryHandler {
	return queries.NewFindUserByEmailQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateValidateResetGrantQueryHandler() queries.ValidateResetGrantQueryHandler {
	return queries.NewValidateResetGrantQueryHandler(c.gormDB, c.clock)
}

func (c *CompositionRoot) CreateHTTPServer() (*routehttp.Server, error) {
	return routehttp.NewServer(routehttp.Handlers{
		CreateRoute:         c.CreateCreateRouteCommandHandler(),
		ClaimRoute:          c.CreateClaimRouteCommandHandler(),
		CompleteRoute:       c.CreateCompleteRouteCommandHandler(),
		UpdateRouteFields:   c.CreateUpdateRouteFieldsCommandHandler(),
		RegisterPushAddress: c.CreateRegisterPushAddressCommandHandler(),
		IssueChallenge:      c.CreateIssueChallengeCommandHandler(),
		ValidateChallenge:   c.CreateValidateChallengeCommandHandler(),
		ConsumeResetGrant:   c.CreateConsumeResetGrantCommandHandler(),
		GetRoute:            c.CreateGetRouteQueryHandler(),
		ListRoutes:          c.CreateListRoutesQueryHandler(),
		FindUserByEmail:     c.CreateFindUserByEmailQueryHandler(),
		ValidateResetGrant:  c.CreateValidateResetGrantQueryHandler(),
	}, routehttp.Config{
		JWTSecret:      c.cfg.JWTSecret,
		RequestTimeout: c.cfg.TxTimeout,
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateSweepExpiredSecretsCommandHandler(),
		c.CreateRemindAvailableRoutesCommandHandler(),
		jobs.Schedules{Sweep: c.cfg.SweepSchedule, Reminder: c.cfg.ReminderSchedule},
		c.cfg.TxTimeout,
		c.logger,
	)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}
