package ports

import (
	"context"

	"github.com/lorrc/response-metrics-backend/internal/core/domain"
)

// AnchorMode selects what "now" means when resolving a preset range.
// Wall-clock today and the latest date in the feed diverge whenever the feed
// lags, so the choice is always explicit.
type AnchorMode string

const (
	// AnchorLatestData anchors presets to the maximum date in the feed.
	AnchorLatestData AnchorMode = "latest"
	// AnchorToday anchors presets to the wall-clock day (UTC).
	AnchorToday AnchorMode = "today"
)

// RollupParams defines the input for computing a rollup.
type RollupParams struct {
	PresetDays int          // 7, 14, 30 or 60; zero means the configured default
	Start      *domain.Date // custom lower bound, optional
	End        *domain.Date // custom upper bound, optional
	Anchor     AnchorMode   // empty means the configured default
}

// ExportParams defines the input for a CSV export.
type ExportParams struct {
	Dataset string // employees, daily or heatmap
	RollupParams
}

// ExportFile is a rendered CSV download.
type ExportFile struct {
	Filename string
	Content  []byte
}

// MetricsService defines the core rollup operations.
type MetricsService interface {
	// GetRollup resolves the range, reads the feed, and aggregates. The
	// returned rollup is a fresh structure owned by the caller.
	GetRollup(ctx context.Context, params RollupParams) (*domain.Rollup, error)

	// Refresh recomputes the most recently requested selection and
	// broadcasts the result to subscribed clients. Called when the feed
	// signals new rows. A refresh superseded by a newer read is discarded
	// rather than broadcast.
	Refresh(ctx context.Context) (*domain.Rollup, error)

	// ListEmployees exposes the feed's employee directory.
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
}

// ExportService renders rollup result sets as CSV downloads.
type ExportService interface {
	// ExportCSV builds the delimited file for a dataset and range.
	// Returns ErrNoData when no rows fall in the range, so the caller can
	// suppress the download instead of serving a header-only file.
	ExportCSV(ctx context.Context, params ExportParams) (*ExportFile, error)
}
