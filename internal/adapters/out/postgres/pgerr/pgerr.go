// Package pgerr maps PostgreSQL failures onto the errors use cases act on.
package pgerr

import (
	"errors"
	"fmt"

	"routehub/internal/core/ports"
	"routehub/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	serializationFailure = "40001"
	deadlockDetected     = "40P01"
	lockNotAvailable     = "55P03"
	uniqueViolation      = "23505"
	foreignKeyViolation  = "23503"
)

// Translate wraps lock and serialization failures with ports.ErrContention so
// the caller can retry the transaction. Unique and foreign key violations
// become value errors. Anything else is returned unchanged.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case serializationFailure, deadlockDetected, lockNotAvailable:
		return fmt.Errorf("%w: %s", ports.ErrContention, pgErr.Message)
	case uniqueViolation:
		return errs.NewValueIsInvalidErrorWithCause(pgErr.ConstraintName, errors.New("already exists"))
	case foreignKeyViolation:
		return errs.NewObjectNotFoundErrorWithCause(pgErr.ConstraintName, pgErr.Detail, err)
	default:
		return err
	}
}
