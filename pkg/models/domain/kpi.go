package domain

import (
	"fmt"
	"time"
)

// Canonical names of the KPIs the planner tracks. Financial KPIs carry
// monthly currency amounts, vehicle KPIs carry monthly unit sales.
const (
	KPIRevenue = "Currency:Revenue/Sales"
	KPIExpense = "Currency:Expense"
	KPIPayroll = "Currency:Payroll/Compensation"

	VehicleOutlander    = "Outlander"
	VehicleRVR          = "RVR"
	VehicleEclipseCross = "Eclipse Cross"
	VehicleMirage       = "Mirage"
)

// PeriodLayout is the wire format for monthly periods.
const PeriodLayout = "2006-01"

type KPICategory string

const (
	KPICategoryFinancial KPICategory = "financial"
	KPICategoryVehicle   KPICategory = "vehicle"
)

func FinancialKPIs() []string {
	return []string{KPIRevenue, KPIExpense, KPIPayroll}
}

func VehicleKPIs() []string {
	return []string{VehicleOutlander, VehicleRVR, VehicleEclipseCross, VehicleMirage}
}

func TrackedKPIs() []string {
	return append(FinancialKPIs(), VehicleKPIs()...)
}

func CategoryOf(kpi string) KPICategory {
	switch kpi {
	case KPIRevenue, KPIExpense, KPIPayroll:
		return KPICategoryFinancial
	default:
		return KPICategoryVehicle
	}
}

// NormalizePeriod truncates a timestamp to the first day of its month in UTC.
// All period arithmetic in the planner happens on normalized values.
func NormalizePeriod(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func AddMonths(t time.Time, n int) time.Time {
	return NormalizePeriod(t).AddDate(0, n, 0)
}

// Series is a contiguous monthly history of a single KPI. Contiguity is
// guaranteed by construction: Values[i] belongs to the month Start+i.
type Series struct {
	Name   string
	Start  time.Time
	Values []float64
}

func NewSeries(name string, start time.Time, values []float64) (Series, error) {
	if name == "" {
		return Series{}, fmt.Errorf("series name is empty")
	}
	if len(values) == 0 {
		return Series{}, fmt.Errorf("series %q has no observations", name)
	}
	return Series{Name: name, Start: NormalizePeriod(start), Values: values}, nil
}

func (s Series) Len() int {
	return len(s.Values)
}

// End returns the month of the last observation.
func (s Series) End() time.Time {
	return AddMonths(s.Start, len(s.Values)-1)
}

func (s Series) Period(i int) time.Time {
	return AddMonths(s.Start, i)
}
