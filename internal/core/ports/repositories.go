package ports

import (
	"context"

	"github.com/lorrc/response-metrics-backend/internal/core/domain"
)

// MetricsRepository is the read-only port onto the external metrics feed.
// The core does not own connection handling, auth, or pagination; it only
// asks for rows bounded by date.
type MetricsRepository interface {
	// ListByDateRange returns the rows whose date falls inside the window,
	// ordered by date then employee.
	ListByDateRange(ctx context.Context, r domain.DateRange) ([]domain.MetricRow, error)

	// LatestDate returns the maximum date present in the feed, or a zero
	// Date when the feed holds no rows.
	LatestDate(ctx context.Context) (domain.Date, error)

	// ListEmployees returns the employee directory used to label results.
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
}

// EventBroadcaster pushes real-time events to connected dashboard clients.
type EventBroadcaster interface {
	Broadcast(event domain.Event) error
}
