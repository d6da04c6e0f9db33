// Package queries holds the read use cases. Handlers run plain SQL over the
// GORM connection and return read models; they never lock and never write.
package queries

import (
	"database/sql"
	"time"

	"routehub/internal/core/domain/model/kernel"
	"routehub/internal/core/domain/model/route"

	"github.com/google/uuid"
)

// RouteSummary is the read model of a route. Names are resolved when the
// route is read, so a renamed user shows up under the new name. AgentID is
// nil and AgentName empty while the route is unclaimed.
type RouteSummary struct {
	ID           kernel.UUID
	CustomerID   kernel.UUID
	CustomerName string
	AgentID      *kernel.UUID
	AgentName    string
	PackageInfo  string
	Origin       string
	Destination  string
	Status       route.Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const selectRouteSummaries = `
	SELECT
		r.id,
		r.customer_id,
		TRIM(c.first_name || ' ' || c.last_name),
		r.delivery_agent_id,
		COALESCE(TRIM(a.first_name || ' ' || a.last_name), ''),
		r.package_info,
		r.origin,
		r.destination,
		r.status,
		r.created_at,
		r.updated_at
	FROM routes r
	JOIN users c ON c.id = r.customer_id
	LEFT JOIN users a ON a.id = r.delivery_agent_id
`

func scanRouteSummaries(rows *sql.Rows) ([]RouteSummary, error) {
	summaries := make([]RouteSummary, 0)

	for rows.Next() {
		summary, err := scanRouteSummary(rows)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}

func scanRouteSummary(rows *sql.Rows) (RouteSummary, error) {
	var (
		summary    RouteSummary
		id         uuid.UUID
		customerID uuid.UUID
		agentID    *uuid.UUID
		status     string
	)

	err := rows.Scan(
		&id,
		&customerID,
		&summary.CustomerName,
		&agentID,
		&summary.AgentName,
		&summary.PackageInfo,
		&summary.Origin,
		&summary.Destination,
		&status,
		&summary.CreatedAt,
		&summary.UpdatedAt,
	)
	if err != nil {
		return RouteSummary{}, err
	}

	if summary.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return RouteSummary{}, err
	}
	if summary.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return RouteSummary{}, err
	}
	if summary.AgentID, err = kernel.UUIDPtrFromNullable(agentID); err != nil {
		return RouteSummary{}, err
	}
	if summary.Status, err = route.ParseStatus(status); err != nil {
		return RouteSummary{}, err
	}

	summary.CreatedAt = summary.CreatedAt.UTC()
	summary.UpdatedAt = summary.UpdatedAt.UTC()
	return summary, nil
}
