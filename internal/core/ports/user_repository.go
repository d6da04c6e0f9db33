package ports

import (
	"context"
	"time"

	"routehub/internal/core/domain/model/kernel"
	"routehub/internal/core/domain/model/user"
)

// UserRepository is the user directory. Missing users are reported with
// errs.ErrObjectNotFound.
type UserRepository interface {
	Add(ctx context.Context, aggregate *user.User) error
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetForUpdate locks the user row, serializing challenge and grant changes.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetByEmail matches the address case-insensitively.
	GetByEmail(ctx context.Context, email string) (*user.User, error)

	Update(ctx context.Context, aggregate *user.User) error

	// GetFirstDeliveryAgentWithPushAddress returns the oldest delivery agent
	// that registered a push address.
	GetFirstDeliveryAgentWithPushAddress(ctx context.Context) (*user.User, error)

	// ClearExpiredSecrets drops challenges and reset grants whose expiry is
	// not after now and returns the number of users touched.
	ClearExpiredSecrets(ctx context.Context, now time.Time) (int64, error)
}
