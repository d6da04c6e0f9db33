// Package postgres implements the unit of work over GORM.
//
//	factory := NewGormUnitOfWorkFactory(db, 2*time.Second)
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	r, err := uow.RouteRepository().GetForUpdate(ctx, id)
//	...
//	return uow.Commit(ctx)
//
// Repositories taken before Begin run on the plain connection and are used
// for read only lookups outside a transaction.
package postgres

import (
	"context"
	"fmt"
	"time"

	"routehub/internal/adapters/out/postgres/pgerr"
	"routehub/internal/adapters/out/postgres/routerepo"
	"routehub/internal/adapters/out/postgres/userrepo"
	"routehub/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates one GormUnitOfWork per use case execution.
type GormUnitOfWorkFactory struct {
	db          *gorm.DB
	lockTimeout time.Duration
}

// NewGormUnitOfWorkFactory configures the factory. A positive lockTimeout
// bounds how long a transaction waits for a row lock; waits that run out
// surface as ports.ErrContention.
func NewGormUnitOfWorkFactory(db *gorm.DB, lockTimeout time.Duration) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, lockTimeout: lockTimeout}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.CreateGorm()
}

// CreateGorm returns the concrete type, which satisfies the narrower unit of
// work interfaces of the use case packages.
func (f *GormUnitOfWorkFactory) CreateGorm() *GormUnitOfWork {
	return &GormUnitOfWork{db: f.db, lockTimeout: f.lockTimeout}
}

// GormUnitOfWork is not safe for concurrent use.
type GormUnitOfWork struct {
	db          *gorm.DB
	tx          *gorm.DB
	lockTimeout time.Duration
}

// Begin opens the transaction. Calling it again while one is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return pgerr.Translate(tx.Error)
	}

	if uow.lockTimeout > 0 {
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", uow.lockTimeout.Milliseconds())
		if err := tx.Exec(stmt).Error; err != nil {
			_ = tx.Rollback()
			return pgerr.Translate(err)
		}
	}

	uow.tx = tx
	return nil
}

func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return pgerr.Translate(err)
}

func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) RouteRepository() ports.RouteRepository {
	return routerepo.NewGormRouteRepository(uow.conn())
}

func (uow *GormUnitOfWork) UserRepository() ports.UserRepository {
	return userrepo.NewGormUserRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
