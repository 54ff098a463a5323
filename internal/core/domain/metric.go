package domain

import (
	"encoding/json"
	"strconv"
)

// MetricRow is one (date, employee) observation from the feed: how many first
// responses the employee sent that day, their average first-response latency,
// and how many responses breached the SLA target.
type MetricRow struct {
	Date               Date
	EmployeeID         string
	ResponseCount      int
	AvgResponseMinutes *float64 // nil when the feed recorded no average for the day
	BreachCount        int
}

// Employee is a directory entry used to label per-employee results.
type Employee struct {
	ID       string
	FullName string
}

// OptionalFloat carries a float that may be absent. Absence means "no data",
// which is distinct from zero: a team with no responses has no average, not an
// average of 0. Marshals to JSON null when absent so the dashboard renders a
// dash instead of a misleading number.
type OptionalFloat struct {
	Float64 float64
	Valid   bool
}

// SomeFloat wraps a present value.
func SomeFloat(v float64) OptionalFloat {
	return OptionalFloat{Float64: v, Valid: true}
}

func (o OptionalFloat) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Float64)
}

func (o *OptionalFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = OptionalFloat{}
		return nil
	}
	if err := json.Unmarshal(data, &o.Float64); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// CSVString renders the value for delimited export, with 1 decimal place.
// Absent values render as an empty cell.
func (o OptionalFloat) CSVString() string {
	if !o.Valid {
		return ""
	}
	return strconv.FormatFloat(o.Float64, 'f', 1, 64)
}

// OptionalInt is the integer counterpart of OptionalFloat.
type OptionalInt struct {
	Int   int
	Valid bool
}

// SomeInt wraps a present value.
func SomeInt(v int) OptionalInt {
	return OptionalInt{Int: v, Valid: true}
}

func (o OptionalInt) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Int)
}

func (o *OptionalInt) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = OptionalInt{}
		return nil
	}
	if err := json.Unmarshal(data, &o.Int); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// CSVString renders the value for delimited export, empty when absent.
func (o OptionalInt) CSVString() string {
	if !o.Valid {
		return ""
	}
	return strconv.Itoa(o.Int)
}
