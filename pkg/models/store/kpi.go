package store

import "time"

// Observation is one raw KPI reading as persisted by the history backends.
// Periods are normalized to the first day of the month by the readers.
type Observation struct {
	KPI    string
	Period time.Time
	Value  float64
}
