// Package commands holds the write use cases. Every handler validates its
// command, runs one unit of work (retried on lock contention), commits, and
// only then triggers notifications or email.
package commands

import (
	"context"

	"routehub/internal/core/ports"
)

type (
	// TxManager controls the transaction of a unit of work.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	RouteRepoFactory interface {
		RouteRepository() ports.RouteRepository
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	// UserUoW is enough for use cases that only touch users.
	UserUoW interface {
		TxManager
		UserRepoFactory
	}

	UserUoWFactory interface {
		Create() UserUoW
	}

	// UoW spans routes and users.
	UoW interface {
		TxManager
		RouteRepoFactory
		UserRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
