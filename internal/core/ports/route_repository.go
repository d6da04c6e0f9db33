// Package ports declares the contracts between the use cases and the adapters:
// persistence, unit of work, notification, email, password hashing and
// attempt limiting.
package ports

import (
	"context"
	"time"

	"routehub/internal/core/domain/model/kernel"
	"routehub/internal/core/domain/model/route"
)

// RouteRepository persists route aggregates.
type RouteRepository interface {
	// Add stores a new route.
	Add(ctx context.Context, aggregate *route.Route) error

	// Get loads a route without locking it. A missing route is reported with
	// errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*route.Route, error)

	// GetForUpdate loads a route and locks its row until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*route.Route, error)

	// Claim persists a claimed aggregate only if the stored row is still
	// AVAILABLE with no agent. When another claim won first it returns
	// route.ErrAlreadyClaimed and nothing is written.
	Claim(ctx context.Context, aggregate *route.Route) error

	// Update writes every mutable field of an existing route.
	Update(ctx context.Context, aggregate *route.Route) error

	// CountAvailableCreatedBefore counts unclaimed routes older than before.
	CountAvailableCreatedBefore(ctx context.Context, before time.Time) (int64, error)
}
