package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	apperrors "github.com/lorrc/response-metrics-backend/internal/core/errors"
	"github.com/lorrc/response-metrics-backend/internal/core/ports"
)

// ExportHandler handles CSV download requests.
type ExportHandler struct {
	exportService ports.ExportService
	errorHandler  *ErrorHandler
	logger        *slog.Logger
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(
	exportService ports.ExportService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
		errorHandler:  errorHandler,
		logger:        logger.With("handler", "exports"),
	}
}

// RegisterRoutes registers the /exports routes.
func (h *ExportHandler) RegisterRoutes(r chi.Router) {
	r.Get("/{dataset}", h.HandleExport)
}

// HandleExport handles GET /exports/{dataset}.
func (h *ExportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	dataset := chi.URLParam(r, "dataset")

	params, err := parseRollupParams(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	file, err := h.exportService.ExportCSV(r.Context(), ports.ExportParams{
		Dataset:      dataset,
		RollupParams: params,
	})
	if err != nil {
		// An empty range yields no file at all rather than a header-only
		// download.
		if errors.Is(err, apperrors.ErrNoData) {
			WriteNoContent(w)
			return
		}
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("serving export",
		"request_id", GetRequestID(r.Context()),
		"dataset", dataset,
		"filename", file.Filename,
		"bytes", len(file.Content),
	)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Content)
}
