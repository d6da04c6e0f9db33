package queries

import (
	"context"
	"time"

	"routehub/internal/core/domain/model/user"
	"routehub/internal/core/ports"

	"gorm.io/gorm"
)

type ValidateResetGrantQueryHandler struct {
	db    *gorm.DB
	clock ports.Clock
}

func NewValidateResetGrantQueryHandler(db *gorm.DB, clock ports.Clock) ValidateResetGrantQueryHandler {
	return ValidateResetGrantQueryHandler{db: db, clock: clock}
}

// Handle reports whether token is the user's current, unexpired reset grant.
// An unknown user, a missing grant and a wrong token all yield false with a
// nil error. Only storage failures return an error.
func (h ValidateResetGrantQueryHandler) Handle(ctx context.Context, query ValidateResetGrantQuery) (bool, error) {
	if err := query.Validate(); err != nil {
		return false, err
	}
	if query.Token() == "" {
		return false, nil
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT reset_token, reset_expires_at
		FROM users
		WHERE id = ? AND reset_token IS NOT NULL AND reset_expires_at IS NOT NULL
	`, query.UserID().Bytes()).Rows()
	if err != nil {
		return false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return false, rows.Err()
	}

	var (
		token     string
		expiresAt time.Time
	)
	if err = rows.Scan(&token, &expiresAt); err != nil {
		return false, err
	}

	grant, err := user.NewResetGrant(token, expiresAt.UTC())
	if err != nil {
		// a malformed row counts as no grant
		return false, nil //nolint:nilerr
	}

	return grant.Matches(query.Token(), h.clock.Now()), nil
}
