package ports

import (
	"context"
	"errors"
)

// ErrContention marks a transaction that lost a lock or serialization race.
// Use cases retry the whole unit of work when they see it.
var ErrContention = errors.New("transaction aborted by concurrent access")

// UnitOfWorkFactory creates one UnitOfWork per command execution.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a transaction boundary. Repositories obtained after Begin
// run inside the transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	RouteRepository() RouteRepository
	UserRepository() UserRepository
}
