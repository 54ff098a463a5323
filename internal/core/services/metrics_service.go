package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lorrc/response-metrics-backend/internal/core/domain"
	apperrors "github.com/lorrc/response-metrics-backend/internal/core/errors"
	"github.com/lorrc/response-metrics-backend/internal/core/ports"
	"github.com/lorrc/response-metrics-backend/internal/core/rollup"
)

// MetricsService implements the rollup use cases on top of the feed port.
// Each computation works on its own immutable row slice and returns a fresh
// result; the only shared state is the generation counter and the selection
// last requested by the dashboard.
type MetricsService struct {
	repo          ports.MetricsRepository
	broadcaster   ports.EventBroadcaster
	defaultAnchor ports.AnchorMode
	defaultPreset int
	now           func() time.Time

	// gen orders reads so a stale computation can be recognized after its
	// feed read resolves. In-flight reads are never aborted, only discarded.
	gen atomic.Uint64

	mu      sync.RWMutex
	lastSel ports.RollupParams
}

var _ ports.MetricsService = (*MetricsService)(nil)

// NewMetricsService creates a new metrics service. The clock is injected so
// the "today" anchor stays deterministic under test.
func NewMetricsService(
	repo ports.MetricsRepository,
	broadcaster ports.EventBroadcaster,
	defaultAnchor ports.AnchorMode,
	defaultPreset int,
	now func() time.Time,
) *MetricsService {
	if now == nil {
		now = time.Now
	}
	if defaultAnchor == "" {
		defaultAnchor = ports.AnchorLatestData
	}
	if defaultPreset == 0 {
		defaultPreset = rollup.DefaultPresetDays
	}
	return &MetricsService{
		repo:          repo,
		broadcaster:   broadcaster,
		defaultAnchor: defaultAnchor,
		defaultPreset: defaultPreset,
		now:           now,
	}
}

// GetRollup handles the use case behind the dashboard overview: resolve the
// window, read the feed, filter, aggregate, and label employees.
func (s *MetricsService) GetRollup(ctx context.Context, params ports.RollupParams) (*domain.Rollup, error) {
	// Bumping the generation marks any in-flight refresh as stale.
	s.gen.Add(1)

	s.mu.Lock()
	s.lastSel = params
	s.mu.Unlock()

	return s.compute(ctx, params)
}

// Refresh recomputes the active selection after the feed signals new rows and
// broadcasts the result. If a newer read started while this one was in
// flight, the result is returned to the caller but not broadcast: the stale
// rollup must not overwrite what the dashboard is currently looking at.
func (s *MetricsService) Refresh(ctx context.Context) (*domain.Rollup, error) {
	s.mu.RLock()
	params := s.lastSel
	s.mu.RUnlock()

	gen := s.gen.Add(1)

	result, err := s.compute(ctx, params)
	if err != nil {
		return nil, err
	}

	if s.gen.Load() == gen {
		_ = s.broadcaster.Broadcast(domain.Event{
			Type:    domain.EventRollupUpdated,
			Dataset: domain.DatasetOverview,
			Payload: result,
		})
	}

	return result, nil
}

// ListEmployees exposes the feed's employee directory.
func (s *MetricsService) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	employees, err := s.repo.ListEmployees(ctx)
	if err != nil {
		return nil, apperrors.SourceReadError(err)
	}
	return employees, nil
}

func (s *MetricsService) compute(ctx context.Context, params ports.RollupParams) (*domain.Rollup, error) {
	anchor, empty, err := s.resolveAnchor(ctx, params)
	if err != nil {
		return nil, err
	}
	if empty {
		// Empty feed with a data-anchored selection: no valid range
		// exists, so short-circuit to empty results rather than fail.
		return domain.EmptyRollup(), nil
	}

	preset := params.PresetDays
	if preset == 0 {
		preset = s.defaultPreset
	}

	window, err := rollup.ResolveRange(anchor, rollup.RangeSelection{
		PresetDays: preset,
		Start:      params.Start,
		End:        params.End,
	})
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ListByDateRange(ctx, window)
	if err != nil {
		return nil, apperrors.SourceReadError(err)
	}

	// The repository already bounds its query, but the filter is the
	// contract: rows outside the window never reach the aggregator.
	filtered, err := rollup.FilterRows(rows, window)
	if err != nil {
		return nil, err
	}

	result := rollup.Aggregate(filtered, window)

	if err := s.labelEmployees(ctx, result); err != nil {
		return nil, err
	}

	return result, nil
}

// resolveAnchor picks the date that preset windows hang off. The empty return
// is true when the feed has no rows and the selection is data-anchored.
func (s *MetricsService) resolveAnchor(ctx context.Context, params ports.RollupParams) (domain.Date, bool, error) {
	// Fully custom selections carry their own window.
	if params.Start != nil && params.End != nil {
		return domain.Date(""), false, nil
	}

	mode := params.Anchor
	if mode == "" {
		mode = s.defaultAnchor
	}

	if mode == ports.AnchorToday {
		return domain.DateOf(s.now().UTC()), false, nil
	}

	latest, err := s.repo.LatestDate(ctx)
	if err != nil {
		return domain.Date(""), false, apperrors.SourceReadError(err)
	}
	if latest.IsZero() {
		return domain.Date(""), true, nil
	}
	return latest, false, nil
}

// labelEmployees decorates summaries with directory names. IDs without a
// directory entry keep an empty name and render as the raw ID downstream.
func (s *MetricsService) labelEmployees(ctx context.Context, r *domain.Rollup) error {
	if len(r.Employees) == 0 {
		return nil
	}

	employees, err := s.repo.ListEmployees(ctx)
	if err != nil {
		return apperrors.SourceReadError(err)
	}

	names := make(map[string]string, len(employees))
	for _, e := range employees {
		names[e.ID] = e.FullName
	}

	for i := range r.Employees {
		r.Employees[i].FullName = names[r.Employees[i].EmployeeID]
	}
	return nil
}
