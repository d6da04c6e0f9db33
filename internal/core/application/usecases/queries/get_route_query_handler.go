package queries

import (
	"context"

	"routehub/internal/core/application/usecases/commands"

	"gorm.io/gorm"
)

type GetRouteQueryHandler struct {
	db *gorm.DB
}

func NewGetRouteQueryHandler(db *gorm.DB) GetRouteQueryHandler {
	return GetRouteQueryHandler{db: db}
}

// Handle returns commands.ErrRouteNotFound for an unknown id.
func (h GetRouteQueryHandler) Handle(ctx context.Context, query GetRouteQuery) (RouteSummary, error) {
	if err := query.Validate(); err != nil {
		return RouteSummary{}, err
	}

	rows, err := h.db.WithContext(ctx).
		Raw(selectRouteSummaries+" WHERE r.id = ?", query.RouteID().Bytes()).
		Rows()
	if err != nil {
		return RouteSummary{}, err
	}
	defer rows.Close()

	summaries, err := scanRouteSummaries(rows)
	if err != nil {
		return RouteSummary{}, err
	}
	if len(summaries) == 0 {
		return RouteSummary{}, commands.ErrRouteNotFound
	}

	return summaries[0], nil
}
