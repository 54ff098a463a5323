package mocks

import (
	"context"

	"github.com/lorrc/response-metrics-backend/internal/core/domain"
	"github.com/lorrc/response-metrics-backend/internal/core/ports"
	"github.com/stretchr/testify/mock"
)

// MockMetricsRepository is a mock implementation of ports.MetricsRepository
type MockMetricsRepository struct {
	mock.Mock
}

func NewMockMetricsRepository() *MockMetricsRepository {
	return &MockMetricsRepository{}
}

func (m *MockMetricsRepository) ListByDateRange(ctx context.Context, r domain.DateRange) ([]domain.MetricRow, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MetricRow), args.Error(1)
}

func (m *MockMetricsRepository) LatestDate(ctx context.Context) (domain.Date, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Date), args.Error(1)
}

func (m *MockMetricsRepository) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Employee), args.Error(1)
}

// MockMetricsService is a mock implementation of ports.MetricsService
type MockMetricsService struct {
	mock.Mock
}

func NewMockMetricsService() *MockMetricsService {
	return &MockMetricsService{}
}

func (m *MockMetricsService) GetRollup(ctx context.Context, params ports.RollupParams) (*domain.Rollup, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rollup), args.Error(1)
}

func (m *MockMetricsService) Refresh(ctx context.Context) (*domain.Rollup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rollup), args.Error(1)
}

func (m *MockMetricsService) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Employee), args.Error(1)
}

// MockExportService is a mock implementation of ports.ExportService
type MockExportService struct {
	mock.Mock
}

func NewMockExportService() *MockExportService {
	return &MockExportService{}
}

func (m *MockExportService) ExportCSV(ctx context.Context, params ports.ExportParams) (*ports.ExportFile, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.ExportFile), args.Error(1)
}

// MockEventBroadcaster is a mock implementation of ports.EventBroadcaster
type MockEventBroadcaster struct {
	mock.Mock
}

func NewMockEventBroadcaster() *MockEventBroadcaster {
	return &MockEventBroadcaster{}
}

func (m *MockEventBroadcaster) Broadcast(event domain.Event) error {
	args := m.Called(event)
	return args.Error(0)
}
