package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/lorrc/response-metrics-backend/internal/core/domain"
	apperrors "github.com/lorrc/response-metrics-backend/internal/core/errors"
	"github.com/lorrc/response-metrics-backend/internal/core/mocks"
	"github.com/lorrc/response-metrics-backend/internal/core/ports"
	"github.com/lorrc/response-metrics-backend/internal/core/rollup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportRollup(t *testing.T) *domain.Rollup {
	t.Helper()
	window := domain.DateRange{Start: "2024-03-01", End: "2024-03-03"}
	rows, err := rollup.FilterRows(sampleRowsInWindow(), window)
	require.NoError(t, err)
	result := rollup.Aggregate(rows, window)
	result.Employees[0].FullName = "Alice Alvarez"
	return result
}

func sampleRowsInWindow() []domain.MetricRow {
	return []domain.MetricRow{
		{Date: "2024-03-01", EmployeeID: "alice", ResponseCount: 10, AvgResponseMinutes: avgPtr(8.5), BreachCount: 2},
	}
}

func TestExportService_ExportCSV(t *testing.T) {
	ctx := context.Background()
	metrics := mocks.NewMockMetricsService()

	params := ports.RollupParams{PresetDays: 7}
	metrics.On("GetRollup", ctx, params).Return(exportRollup(t), nil).Once()

	svc := NewExportService(metrics)

	file, err := svc.ExportCSV(ctx, ports.ExportParams{
		Dataset:      domain.DatasetEmployees,
		RollupParams: params,
	})
	require.NoError(t, err)

	assert.Equal(t, "employees_2024-03-01_to_2024-03-03.csv", file.Filename)

	parsed, err := csv.NewReader(bytes.NewReader(file.Content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	assert.Equal(t, []string{"employee_id", "name", "responses", "breaches", "avg_response_minutes", "sla_percent"}, parsed[0])
	assert.Equal(t, []string{"alice", "Alice Alvarez", "10", "2", "8.5", "80"}, parsed[1])

	metrics.AssertExpectations(t)
}

func TestExportService_ExportCSV_NoData(t *testing.T) {
	ctx := context.Background()
	metrics := mocks.NewMockMetricsService()

	metrics.On("GetRollup", ctx, ports.RollupParams{}).Return(domain.EmptyRollup(), nil).Once()

	svc := NewExportService(metrics)

	_, err := svc.ExportCSV(ctx, ports.ExportParams{Dataset: domain.DatasetDaily})
	assert.ErrorIs(t, err, apperrors.ErrNoData)
}

func TestExportService_ExportCSV_UnknownDataset(t *testing.T) {
	ctx := context.Background()
	metrics := mocks.NewMockMetricsService()

	metrics.On("GetRollup", ctx, ports.RollupParams{}).Return(exportRollup(t), nil).Once()

	svc := NewExportService(metrics)

	_, err := svc.ExportCSV(ctx, ports.ExportParams{Dataset: "tickets"})
	assert.ErrorIs(t, err, apperrors.ErrUnknownDataset)
}

func TestExportService_ExportCSV_PropagatesRollupError(t *testing.T) {
	ctx := context.Background()
	metrics := mocks.NewMockMetricsService()

	metrics.On("GetRollup", ctx, ports.RollupParams{}).
		Return(nil, apperrors.ErrInvalidRange).Once()

	svc := NewExportService(metrics)

	_, err := svc.ExportCSV(ctx, ports.ExportParams{Dataset: domain.DatasetEmployees})
	assert.ErrorIs(t, err, apperrors.ErrInvalidRange)
}
