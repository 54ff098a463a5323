package rollup

import (
	"github.com/lorrc/response-metrics-backend/internal/core/domain"
	apperrors "github.com/lorrc/response-metrics-backend/internal/core/errors"
)

// FilterRows keeps the rows whose date falls inside the window, preserving
// input order. ISO dates compare lexicographically, so no time parsing is
// needed. An inverted or unset range yields ErrInvalidRange, never a panic.
func FilterRows(rows []domain.MetricRow, r domain.DateRange) ([]domain.MetricRow, error) {
	if !r.IsValid() {
		return nil, apperrors.ErrInvalidRange
	}

	filtered := make([]domain.MetricRow, 0, len(rows))
	for _, row := range rows {
		if r.Contains(row.Date) {
			filtered = append(filtered, row)
		}
	}
	return filtered, nil
}
