package services

import (
	"bytes"
	"context"

	"github.com/lorrc/response-metrics-backend/internal/core/ports"
	"github.com/lorrc/response-metrics-backend/internal/core/rollup"

	apperrors "github.com/lorrc/response-metrics-backend/internal/core/errors"
)

// ExportService renders rollup result sets as CSV downloads.
type ExportService struct {
	metrics ports.MetricsService
}

var _ ports.ExportService = (*ExportService)(nil)

// NewExportService creates a new export service.
func NewExportService(metrics ports.MetricsService) *ExportService {
	return &ExportService{metrics: metrics}
}

// ExportCSV builds the delimited file for one dataset over the selected
// range. When no rows fall in the range it returns ErrNoData so the HTTP
// layer suppresses the download instead of emitting a header-only file.
func (s *ExportService) ExportCSV(ctx context.Context, params ports.ExportParams) (*ports.ExportFile, error) {
	result, err := s.metrics.GetRollup(ctx, params.RollupParams)
	if err != nil {
		return nil, err
	}

	header, records, err := rollup.DatasetRecords(params.Dataset, result)
	if err != nil {
		return nil, err
	}

	if !result.HasData() || len(records) == 0 {
		return nil, apperrors.ErrNoData
	}

	var buf bytes.Buffer
	if err := rollup.WriteDelimited(&buf, header, records); err != nil {
		return nil, err
	}

	return &ports.ExportFile{
		Filename: rollup.ExportFilename(params.Dataset, result.Range),
		Content:  buf.Bytes(),
	}, nil
}
