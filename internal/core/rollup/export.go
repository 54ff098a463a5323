package rollup

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/lorrc/response-metrics-backend/internal/core/domain"
	apperrors "github.com/lorrc/response-metrics-backend/internal/core/errors"
)

// ExportFilename builds the download name for a dataset and window, e.g.
// "employees_2024-01-01_to_2024-01-31.csv".
func ExportFilename(dataset string, r domain.DateRange) string {
	return fmt.Sprintf("%s_%s_to_%s.csv", dataset, r.Start, r.End)
}

// DatasetRecords serializes one of the exportable result sets to a header and
// data records, in rollup order. Unknown datasets yield ErrUnknownDataset.
func DatasetRecords(dataset string, r *domain.Rollup) ([]string, [][]string, error) {
	switch dataset {
	case domain.DatasetEmployees:
		header, records := employeeRecords(r)
		return header, records, nil
	case domain.DatasetDaily:
		header, records := dailyRecords(r)
		return header, records, nil
	case domain.DatasetHeatmap:
		header, records := heatmapRecords(r)
		return header, records, nil
	default:
		return nil, nil, apperrors.ErrUnknownDataset
	}
}

func employeeRecords(r *domain.Rollup) ([]string, [][]string) {
	header := []string{"employee_id", "name", "responses", "breaches", "avg_response_minutes", "sla_percent"}
	records := make([][]string, 0, len(r.Employees))
	for _, e := range r.Employees {
		records = append(records, []string{
			e.EmployeeID,
			e.FullName,
			strconv.Itoa(e.Responses),
			strconv.Itoa(e.Breaches),
			e.AvgResponseMinutes.CSVString(),
			e.SLAPercent.CSVString(),
		})
	}
	return header, records
}

func dailyRecords(r *domain.Rollup) ([]string, [][]string) {
	header := []string{"date", "responses", "breaches", "avg_response_minutes", "sla_percent"}
	records := make([][]string, 0, len(r.Daily))
	for _, p := range r.Daily {
		records = append(records, []string{
			p.Date.String(),
			strconv.Itoa(p.Responses),
			strconv.Itoa(p.Breaches),
			p.AvgResponseMinutes.CSVString(),
			p.SLAPercent.CSVString(),
		})
	}
	return header, records
}

// heatmapRecords lays the breach matrix out with one column per day.
func heatmapRecords(r *domain.Rollup) ([]string, [][]string) {
	header := make([]string, 0, len(r.Heatmap.Dates)+1)
	header = append(header, "employee_id")
	for _, d := range r.Heatmap.Dates {
		header = append(header, d.String())
	}

	records := make([][]string, 0, len(r.Heatmap.EmployeeIDs))
	for i, id := range r.Heatmap.EmployeeIDs {
		record := make([]string, 0, len(header))
		record = append(record, id)
		for _, breaches := range r.Heatmap.Breaches[i] {
			record = append(record, strconv.Itoa(breaches))
		}
		records = append(records, record)
	}
	return header, records
}

// WriteDelimited writes a header line followed by the data records with
// RFC 4180 quoting: fields containing a quote, comma, or newline are wrapped
// in quotes with embedded quotes doubled. Output order follows input order.
func WriteDelimited(w io.Writer, header []string, records [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, record := range records {
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
