package rollup

import (
	"testing"

	"github.com/lorrc/response-metrics-backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func metricRow(date, employee string, responses int, avg *float64, breaches int) domain.MetricRow {
	return domain.MetricRow{
		Date:               domain.Date(date),
		EmployeeID:         employee,
		ResponseCount:      responses,
		AvgResponseMinutes: avg,
		BreachCount:        breaches,
	}
}

func avgPtr(v float64) *float64 { return &v }

func TestAggregate_TeamTotals(t *testing.T) {
	window := domain.DateRange{Start: "2024-03-01", End: "2024-03-07"}
	rows := []domain.MetricRow{
		metricRow("2024-03-01", "alice", 10, avgPtr(8.5), 2),
		metricRow("2024-03-02", "bob", 5, avgPtr(13.0), 1),
	}

	result := Aggregate(rows, window)

	assert.Equal(t, 15, result.Team.Responses)
	assert.Equal(t, 3, result.Team.Breaches)

	// Weighted: (8.5×10 + 13.0×5) / 15 = 10.0
	require.True(t, result.Team.AvgResponseMinutes.Valid)
	assert.InDelta(t, 10.0, result.Team.AvgResponseMinutes.Float64, 0.0001)

	// round(100 × 12/15) = 80
	require.True(t, result.Team.SLAPercent.Valid)
	assert.Equal(t, 80, result.Team.SLAPercent.Int)
}

func TestAggregate_EmployeeSummaries(t *testing.T) {
	window := domain.DateRange{Start: "2024-03-01", End: "2024-03-07"}
	rows := []domain.MetricRow{
		metricRow("2024-03-01", "bob", 5, avgPtr(13.0), 1),
		metricRow("2024-03-01", "alice", 10, avgPtr(8.5), 2),
		metricRow("2024-03-03", "alice", 2, nil, 0),
	}

	result := Aggregate(rows, window)

	require.Len(t, result.Employees, 2)

	// Sorted by responses descending
	alice := result.Employees[0]
	assert.Equal(t, "alice", alice.EmployeeID)
	assert.Equal(t, 12, alice.Responses)
	assert.Equal(t, 2, alice.Breaches)
	// The nil-average row contributes responses but not latency weight
	require.True(t, alice.AvgResponseMinutes.Valid)
	assert.InDelta(t, 8.5, alice.AvgResponseMinutes.Float64, 0.0001)

	bob := result.Employees[1]
	assert.Equal(t, "bob", bob.EmployeeID)
	assert.Equal(t, 5, bob.Responses)
	require.True(t, bob.SLAPercent.Valid)
	assert.Equal(t, 80, bob.SLAPercent.Int)
}

func TestAggregate_EmployeeOrderTieBreak(t *testing.T) {
	window := domain.DateRange{Start: "2024-03-01", End: "2024-03-07"}
	rows := []domain.MetricRow{
		metricRow("2024-03-01", "zoe", 5, nil, 0),
		metricRow("2024-03-01", "amy", 5, nil, 0),
		metricRow("2024-03-01", "mia", 9, nil, 0),
	}

	result := Aggregate(rows, window)

	require.Len(t, result.Employees, 3)
	assert.Equal(t, "mia", result.Employees[0].EmployeeID)
	assert.Equal(t, "amy", result.Employees[1].EmployeeID, "equal responses break ties by ID")
	assert.Equal(t, "zoe", result.Employees[2].EmployeeID)
}

func TestAggregate_DuplicateKeysAreSummed(t *testing.T) {
	window := domain.DateRange{Start: "2024-03-01", End: "2024-03-01"}
	rows := []domain.MetricRow{
		metricRow("2024-03-01", "alice", 4, avgPtr(10.0), 1),
		metricRow("2024-03-01", "alice", 6, avgPtr(20.0), 2),
	}

	result := Aggregate(rows, window)

	require.Len(t, result.Employees, 1)
	assert.Equal(t, 10, result.Employees[0].Responses)
	assert.Equal(t, 3, result.Employees[0].Breaches)
	// (10×4 + 20×6) / 10 = 16.0
	assert.InDelta(t, 16.0, result.Employees[0].AvgResponseMinutes.Float64, 0.0001)

	require.Len(t, result.Heatmap.Breaches, 1)
	assert.Equal(t, 3, result.Heatmap.Breaches[0][0])
}

func TestAggregate_DailySeriesZeroFilled(t *testing.T) {
	window := domain.DateRange{Start: "2024-03-01", End: "2024-03-07"}
	rows := []domain.MetricRow{
		metricRow("2024-03-02", "alice", 3, avgPtr(12.0), 1),
		metricRow("2024-03-05", "bob", 2, avgPtr(6.0), 0),
	}

	result := Aggregate(rows, window)

	// One point per calendar day, ascending, no gaps
	require.Len(t, result.Daily, 7)
	for i, p := range result.Daily {
		assert.Equal(t, window.Start.AddDays(i), p.Date)
	}

	assert.Equal(t, 3, result.Daily[1].Responses)
	assert.Equal(t, 1, result.Daily[1].Breaches)

	// A day with no rows has zero counts and absent averages
	empty := result.Daily[2]
	assert.Equal(t, 0, empty.Responses)
	assert.False(t, empty.AvgResponseMinutes.Valid)
	assert.False(t, empty.SLAPercent.Valid)
}

func TestAggregate_Heatmap(t *testing.T) {
	window := domain.DateRange{Start: "2024-03-01", End: "2024-03-03"}
	rows := []domain.MetricRow{
		metricRow("2024-03-01", "alice", 8, nil, 4),
		metricRow("2024-03-03", "alice", 2, nil, 1),
		metricRow("2024-03-02", "bob", 3, nil, 2),
	}

	result := Aggregate(rows, window)

	h := result.Heatmap
	// Rows follow the employee summary order, columns the daily series
	assert.Equal(t, []string{"alice", "bob"}, h.EmployeeIDs)
	assert.Equal(t, []domain.Date{"2024-03-01", "2024-03-02", "2024-03-03"}, h.Dates)

	require.Len(t, h.Breaches, 2)
	assert.Equal(t, []int{4, 0, 1}, h.Breaches[0])
	assert.Equal(t, []int{0, 2, 0}, h.Breaches[1])
	assert.Equal(t, 4, h.MaxBreaches)
}

func TestAggregate_Rounding(t *testing.T) {
	window := domain.DateRange{Start: "2024-03-01", End: "2024-03-01"}

	// Average rounds to one decimal place
	result := Aggregate([]domain.MetricRow{
		metricRow("2024-03-01", "alice", 1, avgPtr(10.25), 0),
		metricRow("2024-03-01", "bob", 1, avgPtr(10.34), 0),
	}, window)
	assert.InDelta(t, 10.3, result.Team.AvgResponseMinutes.Float64, 0.0001)

	// SLA percent rounds to the nearest integer
	result = Aggregate([]domain.MetricRow{
		metricRow("2024-03-01", "alice", 3, nil, 1),
	}, window)
	assert.Equal(t, 67, result.Team.SLAPercent.Int)
}

func TestAggregate_SLAClamp(t *testing.T) {
	window := domain.DateRange{Start: "2024-03-01", End: "2024-03-01"}

	// More breaches than responses clamps to 0 rather than going negative
	result := Aggregate([]domain.MetricRow{
		metricRow("2024-03-01", "alice", 2, nil, 5),
	}, window)
	require.True(t, result.Team.SLAPercent.Valid)
	assert.Equal(t, 0, result.Team.SLAPercent.Int)
}

func TestAggregate_EmptyInput(t *testing.T) {
	window := domain.DateRange{Start: "2024-03-01", End: "2024-03-03"}

	result := Aggregate(nil, window)

	assert.Equal(t, 0, result.Team.Responses)
	assert.False(t, result.Team.AvgResponseMinutes.Valid, "no responses means no average, not zero")
	assert.False(t, result.Team.SLAPercent.Valid)
	assert.Empty(t, result.Employees)
	assert.False(t, result.HasData())

	// The series still covers the window
	assert.Len(t, result.Daily, 3)
	assert.Empty(t, result.Heatmap.EmployeeIDs)
}

func TestAggregate_InvalidRange(t *testing.T) {
	result := Aggregate([]domain.MetricRow{
		metricRow("2024-03-01", "alice", 1, nil, 0),
	}, domain.DateRange{Start: "2024-03-07", End: "2024-03-01"})

	assert.Equal(t, domain.EmptyRollup(), result)
}

func TestAggregate_Deterministic(t *testing.T) {
	window := domain.DateRange{Start: "2024-03-01", End: "2024-03-07"}
	rows := []domain.MetricRow{
		metricRow("2024-03-01", "carol", 5, avgPtr(9.0), 1),
		metricRow("2024-03-02", "alice", 5, avgPtr(11.0), 0),
		metricRow("2024-03-03", "bob", 7, avgPtr(15.5), 3),
		metricRow("2024-03-04", "dave", 5, nil, 2),
	}

	first := Aggregate(rows, window)
	second := Aggregate(rows, window)

	assert.Equal(t, first, second)
}
