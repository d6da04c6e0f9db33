// Package routerepo persists route aggregates with GORM.
package routerepo

import (
	"time"

	"routehub/internal/core/domain/model/kernel"
	"routehub/internal/core/domain/model/route"

	"github.com/google/uuid"
)

// RouteDTO is the row layout of the routes table.
type RouteDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID  `gorm:"type:uuid;not null"`
	DeliveryAgentID *uuid.UUID `gorm:"type:uuid"`
	PackageInfo     string
	Origin          string
	Destination     string
	Status          string
	CreatedAt       time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime:false"`
}

func (RouteDTO) TableName() string {
	return "routes"
}

func fromDomain(r *route.Route) RouteDTO {
	var agentID *uuid.UUID
	if id := r.AgentID(); id != nil {
		raw := id.Bytes()
		agentID = &raw
	}

	return RouteDTO{
		ID:              r.ID().Bytes(),
		CustomerID:      r.CustomerID().Bytes(),
		DeliveryAgentID: agentID,
		PackageInfo:     r.PackageInfo(),
		Origin:          r.Origin(),
		Destination:     r.Destination(),
		Status:          r.Status().String(),
		CreatedAt:       r.CreatedAt().UTC(),
		UpdatedAt:       r.UpdatedAt().UTC(),
	}
}

func toDomain(dto RouteDTO) (*route.Route, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	agentID, err := kernel.UUIDPtrFromNullable(dto.DeliveryAgentID)
	if err != nil {
		return nil, err
	}

	status, err := route.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return route.RestoreRoute(
		id,
		customerID,
		agentID,
		dto.PackageInfo,
		dto.Origin,
		dto.Destination,
		status,
		dto.CreatedAt.UTC(),
		dto.UpdatedAt.UTC(),
	)
}
