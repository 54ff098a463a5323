// Package rollup implements the metrics rollup pipeline: range resolution,
// row filtering, aggregation, and delimited export. Every function is a pure
// transformation of its inputs; the caller owns anchoring, feed access, and
// staleness handling.
package rollup

import (
	"github.com/lorrc/response-metrics-backend/internal/core/domain"
	apperrors "github.com/lorrc/response-metrics-backend/internal/core/errors"
)

// DefaultPresetDays is the window applied when a selection is incomplete.
const DefaultPresetDays = 30

// MaxCustomRangeDays bounds custom windows. The daily series and the heatmap
// allocate one cell per day in the window, so an unbounded custom selection
// would let a single request materialize arbitrarily large matrices.
const MaxCustomRangeDays = 366

// presetDays are the range presets the dashboard offers.
var presetDays = map[int]bool{7: true, 14: true, 30: true, 60: true}

// RangeSelection describes the requested window. When both custom bounds are
// set they win over the preset; a partial custom selection falls back to the
// default preset.
type RangeSelection struct {
	PresetDays int          // 7, 14, 30 or 60; anything else means default
	Start      *domain.Date // custom lower bound, optional
	End        *domain.Date // custom upper bound, optional
}

// ResolveRange computes the inclusive date window for a selection. The anchor
// is an explicit parameter, never an ambient clock read: the caller decides
// whether "now" means wall-clock today or the latest date present in the feed.
// A zero anchor means no valid range exists and the caller must short-circuit
// to empty results.
func ResolveRange(anchor domain.Date, sel RangeSelection) (domain.DateRange, error) {
	if sel.Start != nil && sel.End != nil {
		start, end := *sel.Start, *sel.End
		if end.Before(start) {
			start, end = end, start
		}
		r := domain.DateRange{Start: start, End: end}
		if r.Days() > MaxCustomRangeDays {
			return domain.DateRange{}, apperrors.ErrInvalidRange
		}
		return r, nil
	}

	if anchor.IsZero() {
		return domain.DateRange{}, apperrors.ErrNoData
	}

	days := sel.PresetDays
	if !presetDays[days] {
		days = DefaultPresetDays
	}

	return domain.DateRange{
		Start: anchor.AddDays(-(days - 1)),
		End:   anchor,
	}, nil
}
