package userrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"routehub/internal/adapters/out/postgres/pgerr"
	"routehub/internal/core/domain/model/kernel"
	"routehub/internal/core/domain/model/user"
	"routehub/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository implements ports.UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Add(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return pgerr.Translate(r.db.WithContext(ctx).Create(&dto).Error)
}

func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(r.db.WithContext(ctx), id.String(), "id = ?", id.Bytes())
}

func (r *GormUserRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*user.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id.String(), "id = ?", id.Bytes())
}

func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	normalized := user.NormalizeEmail(email)
	if normalized == "" {
		return nil, errs.NewValueIsRequiredError("email")
	}
	return r.first(r.db.WithContext(ctx), normalized, "lower(email) = ?", normalized)
}

func (r *GormUserRepository) GetFirstDeliveryAgentWithPushAddress(ctx context.Context) (*user.User, error) {
	db := r.db.WithContext(ctx).Order("created_at, id")
	return r.first(db, "delivery agent with push address",
		"role = ? AND push_address IS NOT NULL AND push_address <> ''", user.DeliveryAgent.String())
}

func (r *GormUserRepository) first(db *gorm.DB, lookup string, query string, args ...any) (*user.User, error) {
	var dto UserDTO
	if err := db.Where(query, args...).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", lookup)
		}
		return nil, pgerr.Translate(err)
	}

	return toDomain(dto)
}

// Update rewrites every column except the key and the creation time, so
// cleared challenges and grants become NULL.
func (r *GormUserRepository) Update(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&UserDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Translate(result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("user", aggregate.ID().String())
	}

	return nil
}

func (r *GormUserRepository) ClearExpiredSecrets(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE users SET
			challenge_code       = CASE WHEN challenge_expires_at <= @now THEN NULL ELSE challenge_code END,
			challenge_purpose    = CASE WHEN challenge_expires_at <= @now THEN NULL ELSE challenge_purpose END,
			challenge_expires_at = CASE WHEN challenge_expires_at <= @now THEN NULL ELSE challenge_expires_at END,
			reset_token          = CASE WHEN reset_expires_at <= @now THEN NULL ELSE reset_token END,
			reset_expires_at     = CASE WHEN reset_expires_at <= @now THEN NULL ELSE reset_expires_at END
		WHERE challenge_expires_at <= @now OR reset_expires_at <= @now
	`, sql.Named("now", now.UTC()))
	if result.Error != nil {
		return 0, pgerr.Translate(result.Error)
	}

	return result.RowsAffected, nil
}
