package domain

import (
	"fmt"
	"slices"
	"sort"
	"time"
)

type ModelKind string

const (
	// ModelKindSeasonal is additive Holt-Winters with a 12 month cycle.
	ModelKindSeasonal ModelKind = "seasonal"
	// ModelKindTrend is Holt's linear trend, used for short histories.
	ModelKindTrend ModelKind = "trend"
)

// Model is a fitted smoothing snapshot for one KPI. The snapshot carries the
// final level, trend and seasonal state, which is everything a forecast
// needs; the training history itself is not retained. A model never changes
// after fitting.
type Model struct {
	KPI   string
	Kind  ModelKind
	Alpha float64
	Beta  float64
	Gamma float64

	Level     float64
	Trend     float64
	Seasonals []float64
	Cycle     int

	Observations int
	LastPeriod   time.Time
	RMSE         float64
	TrainedAt    time.Time
}

// Clone returns a copy that shares no state with the original.
func (m Model) Clone() Model {
	out := m
	out.Seasonals = slices.Clone(m.Seasonals)
	return out
}

func (m Model) Validate() error {
	if m.KPI == "" {
		return fmt.Errorf("model has no KPI name")
	}
	switch m.Kind {
	case ModelKindSeasonal:
		if m.Cycle <= 0 || len(m.Seasonals) != m.Cycle {
			return fmt.Errorf("seasonal model for %q has %d seasonal components for cycle %d",
				m.KPI, len(m.Seasonals), m.Cycle)
		}
	case ModelKindTrend:
		if len(m.Seasonals) != 0 || m.Cycle != 0 {
			return fmt.Errorf("trend model for %q carries seasonal state", m.KPI)
		}
	default:
		return fmt.Errorf("model for %q has unknown kind %q", m.KPI, m.Kind)
	}
	if m.Observations < 2 {
		return fmt.Errorf("model for %q trained on %d observations", m.KPI, m.Observations)
	}
	return nil
}

// ModelBank is an immutable collection of fitted models keyed by KPI name.
// Lookups return copies, so callers cannot disturb the shared snapshots.
type ModelBank struct {
	models map[string]Model
}

func NewModelBank(models []Model) (*ModelBank, error) {
	if len(models) == 0 {
		return nil, fmt.Errorf("model bank is empty")
	}
	byKPI := make(map[string]Model, len(models))
	for _, m := range models {
		if err := m.Validate(); err != nil {
			return nil, err
		}
		if _, ok := byKPI[m.KPI]; ok {
			return nil, fmt.Errorf("duplicate model for KPI %q", m.KPI)
		}
		byKPI[m.KPI] = m.Clone()
	}
	return &ModelBank{models: byKPI}, nil
}

func (b *ModelBank) Model(kpi string) (Model, bool) {
	m, ok := b.models[kpi]
	if !ok {
		return Model{}, false
	}
	return m.Clone(), true
}

func (b *ModelBank) Len() int {
	return len(b.models)
}

func (b *ModelBank) KPIs() []string {
	names := make([]string, 0, len(b.models))
	for name := range b.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
