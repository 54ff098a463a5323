package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/lorrc/response-metrics-backend/internal/core/domain"
	apperrors "github.com/lorrc/response-metrics-backend/internal/core/errors"
	"github.com/lorrc/response-metrics-backend/internal/core/mocks"
	"github.com/lorrc/response-metrics-backend/internal/core/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newExportRouter(svc ports.ExportService) chi.Router {
	logger := testLogger()
	handler := NewExportHandler(svc, NewErrorHandler(logger), logger)

	r := chi.NewRouter()
	r.Route("/exports", handler.RegisterRoutes)
	return r
}

func TestExportHandler_ServesCSV(t *testing.T) {
	svc := mocks.NewMockExportService()
	svc.On("ExportCSV", mock.Anything, mock.MatchedBy(func(p ports.ExportParams) bool {
		return p.Dataset == domain.DatasetEmployees && p.PresetDays == 14
	})).Return(&ports.ExportFile{
		Filename: "employees_2024-03-01_to_2024-03-14.csv",
		Content:  []byte("employee_id,name\nalice,Alice Alvarez\n"),
	}, nil).Once()

	router := newExportRouter(svc)

	req := httptest.NewRequest(stdhttp.MethodGet, "/exports/employees?preset=14", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, stdhttp.StatusOK, recorder.Code)
	assert.Equal(t, "text/csv; charset=utf-8", recorder.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="employees_2024-03-01_to_2024-03-14.csv"`, recorder.Header().Get("Content-Disposition"))
	assert.Equal(t, "employee_id,name\nalice,Alice Alvarez\n", recorder.Body.String())

	svc.AssertExpectations(t)
}

func TestExportHandler_NoDataSuppressesDownload(t *testing.T) {
	svc := mocks.NewMockExportService()
	svc.On("ExportCSV", mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrNoData).Once()

	router := newExportRouter(svc)

	req := httptest.NewRequest(stdhttp.MethodGet, "/exports/daily", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, stdhttp.StatusNoContent, recorder.Code)
	assert.Empty(t, recorder.Body.String())
	assert.Empty(t, recorder.Header().Get("Content-Disposition"))
}

func TestExportHandler_UnknownDataset(t *testing.T) {
	svc := mocks.NewMockExportService()
	svc.On("ExportCSV", mock.Anything, mock.MatchedBy(func(p ports.ExportParams) bool {
		return p.Dataset == "tickets"
	})).Return(nil, apperrors.ErrUnknownDataset).Once()

	router := newExportRouter(svc)

	req := httptest.NewRequest(stdhttp.MethodGet, "/exports/tickets", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, stdhttp.StatusBadRequest, recorder.Code)

	var response ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, "UNKNOWN_DATASET", response.Code)
}

func TestExportHandler_MalformedDate(t *testing.T) {
	svc := mocks.NewMockExportService()
	router := newExportRouter(svc)

	req := httptest.NewRequest(stdhttp.MethodGet, "/exports/employees?end=last-tuesday", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, stdhttp.StatusBadRequest, recorder.Code)
	svc.AssertNotCalled(t, "ExportCSV", mock.Anything, mock.Anything)
}
