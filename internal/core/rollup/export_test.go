package rollup

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/lorrc/response-metrics-backend/internal/core/domain"
	apperrors "github.com/lorrc/response-metrics-backend/internal/core/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRollup() *domain.Rollup {
	window := domain.DateRange{Start: "2024-03-01", End: "2024-03-03"}
	rows := []domain.MetricRow{
		metricRow("2024-03-01", "alice", 10, avgPtr(8.5), 2),
		metricRow("2024-03-02", "bob", 5, avgPtr(13.0), 1),
	}
	result := Aggregate(rows, window)
	result.Employees[0].FullName = "Alice Alvarez"
	result.Employees[1].FullName = "Bob Burke"
	return result
}

func TestExportFilename(t *testing.T) {
	r := domain.DateRange{Start: "2024-01-01", End: "2024-01-31"}
	assert.Equal(t, "employees_2024-01-01_to_2024-01-31.csv", ExportFilename(domain.DatasetEmployees, r))
	assert.Equal(t, "heatmap_2024-01-01_to_2024-01-31.csv", ExportFilename(domain.DatasetHeatmap, r))
}

func TestDatasetRecords_Employees(t *testing.T) {
	header, records, err := DatasetRecords(domain.DatasetEmployees, sampleRollup())
	require.NoError(t, err)

	assert.Equal(t, []string{"employee_id", "name", "responses", "breaches", "avg_response_minutes", "sla_percent"}, header)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"alice", "Alice Alvarez", "10", "2", "8.5", "80"}, records[0])
	assert.Equal(t, []string{"bob", "Bob Burke", "5", "1", "13.0", "80"}, records[1])
}

func TestDatasetRecords_Daily(t *testing.T) {
	header, records, err := DatasetRecords(domain.DatasetDaily, sampleRollup())
	require.NoError(t, err)

	assert.Equal(t, []string{"date", "responses", "breaches", "avg_response_minutes", "sla_percent"}, header)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"2024-03-01", "10", "2", "8.5", "80"}, records[0])
	// A day without rows exports zero counts and empty sentinel cells
	assert.Equal(t, []string{"2024-03-03", "0", "0", "", ""}, records[2])
}

func TestDatasetRecords_Heatmap(t *testing.T) {
	header, records, err := DatasetRecords(domain.DatasetHeatmap, sampleRollup())
	require.NoError(t, err)

	assert.Equal(t, []string{"employee_id", "2024-03-01", "2024-03-02", "2024-03-03"}, header)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"alice", "2", "0", "0"}, records[0])
	assert.Equal(t, []string{"bob", "0", "1", "0"}, records[1])
}

func TestDatasetRecords_UnknownDataset(t *testing.T) {
	_, _, err := DatasetRecords("tickets", sampleRollup())
	assert.ErrorIs(t, err, apperrors.ErrUnknownDataset)

	_, _, err = DatasetRecords("", sampleRollup())
	assert.ErrorIs(t, err, apperrors.ErrUnknownDataset)
}

func TestWriteDelimited_Quoting(t *testing.T) {
	var buf bytes.Buffer
	header := []string{"employee_id", "name"}
	records := [][]string{
		{"a-1", `Smith, Jane`},
		{"a-2", `"Quoty" McQueen`},
		{"a-3", "Line\nBreak"},
	}

	require.NoError(t, WriteDelimited(&buf, header, records))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "employee_id,name\n"))
	assert.Contains(t, out, `"Smith, Jane"`)
	assert.Contains(t, out, `"""Quoty"" McQueen"`)

	// The quoted output must survive a round-trip through a CSV reader
	parsed, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, parsed, 4)
	assert.Equal(t, header, parsed[0])
	assert.Equal(t, records[0], parsed[1:][0])
	assert.Equal(t, records[1], parsed[1:][1])
	assert.Equal(t, records[2], parsed[1:][2])
}
