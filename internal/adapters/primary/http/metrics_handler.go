package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lorrc/response-metrics-backend/internal/adapters/primary/validation"
	"github.com/lorrc/response-metrics-backend/internal/core/domain"
	"github.com/lorrc/response-metrics-backend/internal/core/ports"
)

// RangeDTO is the resolved date window echoed back with every rollup.
type RangeDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// TeamTotalsDTO is the team-wide rollup block.
type TeamTotalsDTO struct {
	Responses          int                  `json:"responses"`
	Breaches           int                  `json:"breaches"`
	AvgResponseMinutes domain.OptionalFloat `json:"avgResponseMinutes"`
	SLAPercent         domain.OptionalInt   `json:"slaPercent"`
}

// EmployeeSummaryDTO is one per-employee rollup row.
type EmployeeSummaryDTO struct {
	EmployeeID         string               `json:"employeeId"`
	FullName           string               `json:"fullName"`
	Responses          int                  `json:"responses"`
	Breaches           int                  `json:"breaches"`
	AvgResponseMinutes domain.OptionalFloat `json:"avgResponseMinutes"`
	SLAPercent         domain.OptionalInt   `json:"slaPercent"`
}

// DailyPointDTO is one day of the trend series.
type DailyPointDTO struct {
	Date               string               `json:"date"`
	Responses          int                  `json:"responses"`
	Breaches           int                  `json:"breaches"`
	AvgResponseMinutes domain.OptionalFloat `json:"avgResponseMinutes"`
	SLAPercent         domain.OptionalInt   `json:"slaPercent"`
}

// HeatmapDTO is the employee-by-day breach matrix with display intensities.
type HeatmapDTO struct {
	EmployeeIDs []string    `json:"employeeIds"`
	Dates       []string    `json:"dates"`
	Breaches    [][]int     `json:"breaches"`
	Intensity   [][]float64 `json:"intensity"`
	MaxBreaches int         `json:"maxBreaches"`
}

// OverviewDTO is the full dashboard payload.
type OverviewDTO struct {
	Range     RangeDTO             `json:"range"`
	Team      TeamTotalsDTO        `json:"team"`
	Employees []EmployeeSummaryDTO `json:"employees"`
	Daily     []DailyPointDTO      `json:"daily"`
	Heatmap   HeatmapDTO           `json:"heatmap"`
}

// EmployeeDTO is one directory entry.
type EmployeeDTO struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
}

// MetricsHandler handles HTTP requests for rollup metrics.
type MetricsHandler struct {
	metricsService ports.MetricsService
	errorHandler   *ErrorHandler
	logger         *slog.Logger
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(
	metricsService ports.MetricsService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *MetricsHandler {
	return &MetricsHandler{
		metricsService: metricsService,
		errorHandler:   errorHandler,
		logger:         logger.With("handler", "metrics"),
	}
}

// RegisterRoutes registers the /metrics routes.
func (h *MetricsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/overview", h.HandleGetOverview)
	r.Get("/employees", h.HandleListEmployees)
	r.Post("/refresh", h.HandleRefresh)
}

// HandleGetOverview handles GET /metrics/overview.
func (h *MetricsHandler) HandleGetOverview(w http.ResponseWriter, r *http.Request) {
	params, err := parseRollupParams(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	rollup, err := h.metricsService.GetRollup(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, mapRollup(rollup))
}

// HandleListEmployees handles GET /metrics/employees.
func (h *MetricsHandler) HandleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.metricsService.ListEmployees(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, mapEmployees(employees))
}

// HandleRefresh handles POST /metrics/refresh. The feed ingester calls this
// after loading new rows; subscribed dashboards receive the recomputed rollup
// over WebSocket.
func (h *MetricsHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	rollup, err := h.metricsService.Refresh(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, mapRollup(rollup))
}

// parseRollupParams extracts range selection from query parameters.
func parseRollupParams(r *http.Request) (ports.RollupParams, error) {
	var params ports.RollupParams

	params.PresetDays = validation.ParseIntQueryParam(r, "preset", 0)

	start, err := validation.ParseDateQueryParam(r, "start")
	if err != nil {
		return params, err
	}
	params.Start = start

	end, err := validation.ParseDateQueryParam(r, "end")
	if err != nil {
		return params, err
	}
	params.End = end

	if anchor := validation.ParseStringQueryParam(r, "anchor"); anchor != nil {
		v := validation.NewValidator()
		v.OneOf("anchor", *anchor, []string{string(ports.AnchorLatestData), string(ports.AnchorToday)})
		if v.HasErrors() {
			return params, v.Errors()
		}
		params.Anchor = ports.AnchorMode(*anchor)
	}

	return params, nil
}

func mapRollup(rollup *domain.Rollup) OverviewDTO {
	employees := make([]EmployeeSummaryDTO, 0, len(rollup.Employees))
	for _, e := range rollup.Employees {
		employees = append(employees, EmployeeSummaryDTO{
			EmployeeID:         e.EmployeeID,
			FullName:           e.FullName,
			Responses:          e.Responses,
			Breaches:           e.Breaches,
			AvgResponseMinutes: e.AvgResponseMinutes,
			SLAPercent:         e.SLAPercent,
		})
	}

	daily := make([]DailyPointDTO, 0, len(rollup.Daily))
	for _, p := range rollup.Daily {
		daily = append(daily, DailyPointDTO{
			Date:               p.Date.String(),
			Responses:          p.Responses,
			Breaches:           p.Breaches,
			AvgResponseMinutes: p.AvgResponseMinutes,
			SLAPercent:         p.SLAPercent,
		})
	}

	return OverviewDTO{
		Range: RangeDTO{
			Start: rollup.Range.Start.String(),
			End:   rollup.Range.End.String(),
		},
		Team: TeamTotalsDTO{
			Responses:          rollup.Team.Responses,
			Breaches:           rollup.Team.Breaches,
			AvgResponseMinutes: rollup.Team.AvgResponseMinutes,
			SLAPercent:         rollup.Team.SLAPercent,
		},
		Employees: employees,
		Daily:     daily,
		Heatmap:   mapHeatmap(&rollup.Heatmap),
	}
}

func mapHeatmap(h *domain.Heatmap) HeatmapDTO {
	dates := make([]string, 0, len(h.Dates))
	for _, d := range h.Dates {
		dates = append(dates, d.String())
	}

	breaches := make([][]int, 0, len(h.Breaches))
	intensity := make([][]float64, 0, len(h.Breaches))
	for row := range h.Breaches {
		breachRow := make([]int, len(h.Breaches[row]))
		copy(breachRow, h.Breaches[row])
		breaches = append(breaches, breachRow)

		intensityRow := make([]float64, len(h.Breaches[row]))
		for col := range h.Breaches[row] {
			intensityRow[col] = h.Intensity(row, col)
		}
		intensity = append(intensity, intensityRow)
	}

	return HeatmapDTO{
		EmployeeIDs: append([]string{}, h.EmployeeIDs...),
		Dates:       dates,
		Breaches:    breaches,
		Intensity:   intensity,
		MaxBreaches: h.MaxBreaches,
	}
}

func mapEmployees(employees []domain.Employee) []EmployeeDTO {
	result := make([]EmployeeDTO, 0, len(employees))
	for _, e := range employees {
		result = append(result, EmployeeDTO{
			ID:       e.ID,
			FullName: e.FullName,
		})
	}
	return result
}
