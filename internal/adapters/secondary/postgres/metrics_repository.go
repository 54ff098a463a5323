package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lorrc/response-metrics-backend/internal/core/domain"
	"github.com/lorrc/response-metrics-backend/internal/core/ports"
)

type MetricsRepository struct {
	pool *pgxpool.Pool
}

var _ ports.MetricsRepository = (*MetricsRepository)(nil)

func NewMetricsRepository(pool *pgxpool.Pool) ports.MetricsRepository {
	return &MetricsRepository{pool: pool}
}

func (r *MetricsRepository) ListByDateRange(ctx context.Context, dateRange domain.DateRange) ([]domain.MetricRow, error) {
	const query = `
SELECT m.event_date, m.employee_id, m.response_count, m.avg_response_minutes, m.breach_count
FROM response_metrics m
WHERE m.event_date >= $1::date
  AND m.event_date <= $2::date
ORDER BY m.event_date, m.employee_id
`

	rows, err := r.pool.Query(ctx, query, string(dateRange.Start), string(dateRange.End))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	metrics := make([]domain.MetricRow, 0)
	for rows.Next() {
		var (
			eventDate  pgtype.Date
			employeeID string
			responses  int
			avgMinutes pgtype.Float8
			breaches   int
		)
		if err := rows.Scan(&eventDate, &employeeID, &responses, &avgMinutes, &breaches); err != nil {
			return nil, err
		}

		var avgPtr *float64
		if avgMinutes.Valid {
			value := avgMinutes.Float64
			avgPtr = &value
		}

		metrics = append(metrics, domain.MetricRow{
			Date:               domain.DateOf(eventDate.Time),
			EmployeeID:         employeeID,
			ResponseCount:      responses,
			AvgResponseMinutes: avgPtr,
			BreachCount:        breaches,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return metrics, nil
}

// LatestDate returns the newest event date in the feed, or the zero Date
// when the feed holds no rows at all.
func (r *MetricsRepository) LatestDate(ctx context.Context) (domain.Date, error) {
	const query = `SELECT MAX(m.event_date) FROM response_metrics m`

	row := r.pool.QueryRow(ctx, query)
	var latest pgtype.Date
	if err := row.Scan(&latest); err != nil {
		return "", err
	}
	if !latest.Valid {
		return "", nil
	}
	return domain.DateOf(latest.Time), nil
}

func (r *MetricsRepository) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	const query = `
SELECT e.id, e.full_name
FROM employees e
ORDER BY e.id
`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]domain.Employee, 0)
	for rows.Next() {
		var (
			id       string
			fullName pgtype.Text
		)
		if err := rows.Scan(&id, &fullName); err != nil {
			return nil, err
		}
		employees = append(employees, domain.Employee{
			ID:       id,
			FullName: textOrEmpty(fullName),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

func textOrEmpty(text pgtype.Text) string {
	if text.Valid {
		return text.String
	}
	return ""
}
