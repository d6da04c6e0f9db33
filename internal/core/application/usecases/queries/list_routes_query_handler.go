package queries

import (
	"context"
	"fmt"

	"routehub/internal/core/domain/model/route"

	"gorm.io/gorm"
)

type ListRoutesQueryHandler struct {
	db *gorm.DB
}

func NewListRoutesQueryHandler(db *gorm.DB) ListRoutesQueryHandler {
	return ListRoutesQueryHandler{db: db}
}

// Handle returns an empty, non-nil slice when nothing matches.
func (h ListRoutesQueryHandler) Handle(ctx context.Context, query ListRoutesQuery) ([]RouteSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		where string
		args  []any
	)
	switch query.Scope() {
	case CustomerRoutes:
		where, args = "r.customer_id = ?", []any{query.UserID().Bytes()}
	case AgentRoutes:
		where, args = "r.delivery_agent_id = ?", []any{query.UserID().Bytes()}
	case CompletedCustomerRoutes:
		where, args = "r.customer_id = ? AND r.status = ?", []any{query.UserID().Bytes(), route.Completed.String()}
	case AvailableRoutes:
		where, args = "r.status = ?", []any{route.Available.String()}
	default:
		return nil, fmt.Errorf("unsupported route scope %d", query.Scope())
	}

	rows, err := h.db.WithContext(ctx).
		Raw(selectRouteSummaries+" WHERE "+where+" ORDER BY r.created_at, r.id", args...).
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRouteSummaries(rows)
}
