package rollup

import (
	"testing"

	"github.com/lorrc/response-metrics-backend/internal/core/domain"
	apperrors "github.com/lorrc/response-metrics-backend/internal/core/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(date, employee string, responses int) domain.MetricRow {
	return domain.MetricRow{Date: domain.Date(date), EmployeeID: employee, ResponseCount: responses}
}

func TestFilterRows(t *testing.T) {
	rows := []domain.MetricRow{
		row("2024-02-29", "alice", 1), // day before the window
		row("2024-03-01", "alice", 2), // first day, inclusive
		row("2024-03-04", "bob", 3),
		row("2024-03-07", "carol", 4), // last day, inclusive
		row("2024-03-08", "bob", 5),   // day after the window
	}

	filtered, err := FilterRows(rows, domain.DateRange{Start: "2024-03-01", End: "2024-03-07"})
	require.NoError(t, err)

	require.Len(t, filtered, 3)
	assert.Equal(t, "alice", filtered[0].EmployeeID)
	assert.Equal(t, "bob", filtered[1].EmployeeID)
	assert.Equal(t, "carol", filtered[2].EmployeeID)
}

func TestFilterRows_PreservesInputOrder(t *testing.T) {
	rows := []domain.MetricRow{
		row("2024-03-05", "bob", 1),
		row("2024-03-02", "alice", 2),
		row("2024-03-04", "carol", 3),
	}

	filtered, err := FilterRows(rows, domain.DateRange{Start: "2024-03-01", End: "2024-03-07"})
	require.NoError(t, err)

	require.Len(t, filtered, 3)
	assert.Equal(t, domain.Date("2024-03-05"), filtered[0].Date)
	assert.Equal(t, domain.Date("2024-03-02"), filtered[1].Date)
	assert.Equal(t, domain.Date("2024-03-04"), filtered[2].Date)
}

func TestFilterRows_InvalidRange(t *testing.T) {
	rows := []domain.MetricRow{row("2024-03-01", "alice", 1)}

	_, err := FilterRows(rows, domain.DateRange{Start: "2024-03-07", End: "2024-03-01"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidRange)

	_, err = FilterRows(rows, domain.DateRange{})
	assert.ErrorIs(t, err, apperrors.ErrInvalidRange)
}

func TestFilterRows_EmptyInput(t *testing.T) {
	filtered, err := FilterRows(nil, domain.DateRange{Start: "2024-03-01", End: "2024-03-07"})
	require.NoError(t, err)
	assert.NotNil(t, filtered)
	assert.Empty(t, filtered)
}
