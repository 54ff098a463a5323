package domain

// TeamTotals is the team-wide rollup for the selected range.
type TeamTotals struct {
	Responses          int
	Breaches           int
	AvgResponseMinutes OptionalFloat // weighted by response count, 1 decimal
	SLAPercent         OptionalInt   // 0..100
}

// EmployeeSummary is the per-employee rollup, one per distinct employee
// observed in the range.
type EmployeeSummary struct {
	EmployeeID         string
	FullName           string
	Responses          int
	Breaches           int
	AvgResponseMinutes OptionalFloat
	SLAPercent         OptionalInt
}

// DailyPoint is one day of the trend series. Days without rows are present
// with zero counts, never skipped.
type DailyPoint struct {
	Date               Date
	Responses          int
	Breaches           int
	AvgResponseMinutes OptionalFloat
	SLAPercent         OptionalInt
}

// Heatmap is the employee-by-day breach matrix. Rows follow the employee
// summary order, columns ascend by date, and missing cells are zero-filled.
type Heatmap struct {
	EmployeeIDs []string
	Dates       []Date
	Breaches    [][]int // Breaches[row][col], row aligned to EmployeeIDs, col to Dates
	MaxBreaches int
}

// Intensity returns the display intensity of a cell, the breach count scaled
// against the densest cell and clamped to [0, 1].
func (h *Heatmap) Intensity(row, col int) float64 {
	if h.MaxBreaches <= 0 {
		return 0
	}
	v := float64(h.Breaches[row][col]) / float64(h.MaxBreaches)
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Rollup is the full derived result for one range selection. It is recomputed
// from scratch on every request and never cached across range changes.
type Rollup struct {
	Range     DateRange
	Team      TeamTotals
	Employees []EmployeeSummary
	Daily     []DailyPoint
	Heatmap   Heatmap
}

// EmptyRollup is the short-circuit result when no valid range can be resolved,
// e.g. the feed holds no rows and the anchor is the latest data date.
func EmptyRollup() *Rollup {
	return &Rollup{
		Employees: []EmployeeSummary{},
		Daily:     []DailyPoint{},
		Heatmap: Heatmap{
			EmployeeIDs: []string{},
			Dates:       []Date{},
			Breaches:    [][]int{},
		},
	}
}

// HasData reports whether any row contributed to the rollup. Zero-filled
// series entries alone do not count as data.
func (r *Rollup) HasData() bool {
	return len(r.Employees) > 0
}
