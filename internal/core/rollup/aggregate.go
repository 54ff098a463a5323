package rollup

import (
	"math"
	"sort"

	"github.com/lorrc/response-metrics-backend/internal/core/domain"
)

// accumulator folds rows for one grouping key.
type accumulator struct {
	responses     int
	breaches      int
	weightedSum   float64 // Σ avg_i × count_i over rows with a present average
	weightedCount int     // Σ count_i over the same rows
}

func (a *accumulator) add(row domain.MetricRow) {
	a.responses += row.ResponseCount
	a.breaches += row.BreachCount
	if row.AvgResponseMinutes != nil && row.ResponseCount > 0 {
		a.weightedSum += *row.AvgResponseMinutes * float64(row.ResponseCount)
		a.weightedCount += row.ResponseCount
	}
}

// avgMinutes is the count-weighted average latency, rounded to 1 decimal.
// Absent when no row carried an average.
func (a *accumulator) avgMinutes() domain.OptionalFloat {
	if a.weightedCount == 0 {
		return domain.OptionalFloat{}
	}
	return domain.SomeFloat(round1(a.weightedSum / float64(a.weightedCount)))
}

// slaPercent is the share of responses inside the SLA target, rounded to the
// nearest integer and clamped to [0, 100]. Absent when there are no responses.
func (a *accumulator) slaPercent() domain.OptionalInt {
	if a.responses == 0 {
		return domain.OptionalInt{}
	}
	pct := math.Round(100 * float64(a.responses-a.breaches) / float64(a.responses))
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return domain.SomeInt(int(pct))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Aggregate folds filtered rows into team totals, per-employee summaries, the
// zero-filled daily series, and the breach heatmap. It is a total function:
// any well-typed input produces a result, with "no data" sentinels where a
// formula has no defined value. Rows sharing a (date, employee) key are
// summed. Running it twice on the same input yields identical output.
func Aggregate(rows []domain.MetricRow, r domain.DateRange) *domain.Rollup {
	if !r.IsValid() {
		return domain.EmptyRollup()
	}

	team := &accumulator{}
	perEmployee := make(map[string]*accumulator)
	perDay := make(map[domain.Date]*accumulator)
	breachCells := make(map[string]map[domain.Date]int)

	for _, row := range rows {
		team.add(row)

		emp := perEmployee[row.EmployeeID]
		if emp == nil {
			emp = &accumulator{}
			perEmployee[row.EmployeeID] = emp
		}
		emp.add(row)

		day := perDay[row.Date]
		if day == nil {
			day = &accumulator{}
			perDay[row.Date] = day
		}
		day.add(row)

		cells := breachCells[row.EmployeeID]
		if cells == nil {
			cells = make(map[domain.Date]int)
			breachCells[row.EmployeeID] = cells
		}
		cells[row.Date] += row.BreachCount
	}

	dates := rangeDates(r)

	return &domain.Rollup{
		Range: r,
		Team: domain.TeamTotals{
			Responses:          team.responses,
			Breaches:           team.breaches,
			AvgResponseMinutes: team.avgMinutes(),
			SLAPercent:         team.slaPercent(),
		},
		Employees: employeeSummaries(perEmployee),
		Daily:     dailySeries(dates, perDay),
		Heatmap:   buildHeatmap(employeeOrder(perEmployee), dates, breachCells),
	}
}

// rangeDates lists every calendar day in the window, ascending.
func rangeDates(r domain.DateRange) []domain.Date {
	dates := make([]domain.Date, 0, r.Days())
	for d := r.Start; !d.After(r.End); d = d.AddDays(1) {
		dates = append(dates, d)
	}
	return dates
}

// employeeOrder sorts employee IDs by responses descending, ID ascending on
// ties, so identical inputs always produce identical output order.
func employeeOrder(perEmployee map[string]*accumulator) []string {
	ids := make([]string, 0, len(perEmployee))
	for id := range perEmployee {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := perEmployee[ids[i]], perEmployee[ids[j]]
		if a.responses != b.responses {
			return a.responses > b.responses
		}
		return ids[i] < ids[j]
	})
	return ids
}

func employeeSummaries(perEmployee map[string]*accumulator) []domain.EmployeeSummary {
	summaries := make([]domain.EmployeeSummary, 0, len(perEmployee))
	for _, id := range employeeOrder(perEmployee) {
		acc := perEmployee[id]
		summaries = append(summaries, domain.EmployeeSummary{
			EmployeeID:         id,
			Responses:          acc.responses,
			Breaches:           acc.breaches,
			AvgResponseMinutes: acc.avgMinutes(),
			SLAPercent:         acc.slaPercent(),
		})
	}
	return summaries
}

// dailySeries emits one point per day in the window. Days without rows appear
// with zero counts and sentinel averages, never get skipped.
func dailySeries(dates []domain.Date, perDay map[domain.Date]*accumulator) []domain.DailyPoint {
	series := make([]domain.DailyPoint, 0, len(dates))
	for _, d := range dates {
		acc := perDay[d]
		if acc == nil {
			acc = &accumulator{}
		}
		series = append(series, domain.DailyPoint{
			Date:               d,
			Responses:          acc.responses,
			Breaches:           acc.breaches,
			AvgResponseMinutes: acc.avgMinutes(),
			SLAPercent:         acc.slaPercent(),
		})
	}
	return series
}

func buildHeatmap(employeeIDs []string, dates []domain.Date, cells map[string]map[domain.Date]int) domain.Heatmap {
	matrix := make([][]int, len(employeeIDs))
	maxBreaches := 0
	for i, id := range employeeIDs {
		row := make([]int, len(dates))
		for j, d := range dates {
			row[j] = cells[id][d]
			if row[j] > maxBreaches {
				maxBreaches = row[j]
			}
		}
		matrix[i] = row
	}
	return domain.Heatmap{
		EmployeeIDs: employeeIDs,
		Dates:       dates,
		Breaches:    matrix,
		MaxBreaches: maxBreaches,
	}
}
