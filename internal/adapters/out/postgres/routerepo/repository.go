package routerepo

import (
	"context"
	"errors"
	"time"

	"routehub/internal/adapters/out/postgres/pgerr"
	"routehub/internal/core/domain/model/kernel"
	"routehub/internal/core/domain/model/route"
	"routehub/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRouteRepository implements ports.RouteRepository using GORM.
type GormRouteRepository struct {
	db *gorm.DB
}

func NewGormRouteRepository(db *gorm.DB) *GormRouteRepository {
	return &GormRouteRepository{db: db}
}

func (r *GormRouteRepository) Add(ctx context.Context, aggregate *route.Route) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return pgerr.Translate(r.db.WithContext(ctx).Create(&dto).Error)
}

func (r *GormRouteRepository) Get(ctx context.Context, id kernel.UUID) (*route.Route, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate takes a row lock that lasts until the surrounding transaction
// ends. Outside a transaction the lock is released immediately.
func (r *GormRouteRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*route.Route, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormRouteRepository) get(db *gorm.DB, id kernel.UUID) (*route.Route, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RouteDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("route", id.String())
		}
		return nil, pgerr.Translate(err)
	}

	return toDomain(dto)
}

// Claim writes the assignment only while the stored row is still unclaimed.
// Of several concurrent claims on one route exactly one updates a row.
func (r *GormRouteRepository) Claim(ctx context.Context, aggregate *route.Route) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if aggregate.Status() != route.InProgress || aggregate.AgentID() == nil {
		return route.ErrInvalidTransition
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&RouteDTO{}).
		Where("id = ? AND status = ? AND delivery_agent_id IS NULL", dto.ID, route.Available.String()).
		Updates(map[string]any{
			"status":            dto.Status,
			"delivery_agent_id": dto.DeliveryAgentID,
			"updated_at":        dto.UpdatedAt,
		})
	if result.Error != nil {
		return pgerr.Translate(result.Error)
	}

	if result.RowsAffected == 0 {
		var exists int64
		if err := r.db.WithContext(ctx).Model(&RouteDTO{}).Where("id = ?", dto.ID).Count(&exists).Error; err != nil {
			return pgerr.Translate(err)
		}
		if exists == 0 {
			return errs.NewObjectNotFoundError("route", aggregate.ID().String())
		}
		return route.ErrAlreadyClaimed
	}

	return nil
}

func (r *GormRouteRepository) Update(ctx context.Context, aggregate *route.Route) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&RouteDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "customer_id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Translate(result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("route", aggregate.ID().String())
	}

	return nil
}

func (r *GormRouteRepository) CountAvailableCreatedBefore(ctx context.Context, before time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&RouteDTO{}).
		Where("status = ? AND created_at < ?", route.Available.String(), before.UTC()).
		Count(&n).Error
	return n, pgerr.Translate(err)
}
