package queries

import (
	"context"

	"routehub/internal/core/application/usecases/commands"
	"routehub/internal/core/domain/model/kernel"
	"routehub/internal/core/domain/model/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FindUserByEmailQueryHandler struct {
	db *gorm.DB
}

func NewFindUserByEmailQueryHandler(db *gorm.DB) FindUserByEmailQueryHandler {
	return FindUserByEmailQueryHandler{db: db}
}

// Handle returns commands.ErrActorNotFound when no user has the address.
func (h FindUserByEmailQueryHandler) Handle(ctx context.Context, query FindUserByEmailQuery) (UserSummary, error) {
	if err := query.Validate(); err != nil {
		return UserSummary{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, role, email, TRIM(first_name || ' ' || last_name), email_verified, active
		FROM users
		WHERE lower(email) = ?
	`, query.Email()).Rows()
	if err != nil {
		return UserSummary{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return UserSummary{}, err
		}
		return UserSummary{}, commands.ErrActorNotFound
	}

	var (
		summary UserSummary
		id      uuid.UUID
		role    string
	)
	if err = rows.Scan(&id, &role, &summary.Email, &summary.DisplayName, &summary.EmailVerified, &summary.Active); err != nil {
		return UserSummary{}, err
	}

	if summary.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return UserSummary{}, err
	}
	if summary.Role, err = user.ParseRole(role); err != nil {
		return UserSummary{}, err
	}

	return summary, nil
}
