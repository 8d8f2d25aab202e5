package adapters

import (
	"fmt"
	"slices"
	"time"

	"github.com/de-tools/dealer-planner/pkg/models/domain"
	"github.com/de-tools/dealer-planner/pkg/models/store"
)

func MapModelDomainToStore(m domain.Model) store.ModelRecord {
	return store.ModelRecord{
		KPI:          m.KPI,
		Kind:         string(m.Kind),
		Alpha:        m.Alpha,
		Beta:         m.Beta,
		Gamma:        m.Gamma,
		Level:        m.Level,
		Trend:        m.Trend,
		Seasonals:    slices.Clone(m.Seasonals),
		Cycle:        m.Cycle,
		Observations: m.Observations,
		LastPeriod:   m.LastPeriod.Format(domain.PeriodLayout),
		RMSE:         m.RMSE,
		TrainedAt:    m.TrainedAt,
	}
}

func MapModelStoreToDomain(r store.ModelRecord) (domain.Model, error) {
	lastPeriod, err := time.Parse(domain.PeriodLayout, r.LastPeriod)
	if err != nil {
		return domain.Model{}, fmt.Errorf("model %q has bad last_period %q: %w", r.KPI, r.LastPeriod, err)
	}

	m := domain.Model{
		KPI:          r.KPI,
		Kind:         domain.ModelKind(r.Kind),
		Alpha:        r.Alpha,
		Beta:         r.Beta,
		Gamma:        r.Gamma,
		Level:        r.Level,
		Trend:        r.Trend,
		Seasonals:    slices.Clone(r.Seasonals),
		Cycle:        r.Cycle,
		Observations: r.Observations,
		LastPeriod:   domain.NormalizePeriod(lastPeriod),
		RMSE:         r.RMSE,
		TrainedAt:    r.TrainedAt,
	}
	if err := m.Validate(); err != nil {
		return domain.Model{}, err
	}
	return m, nil
}
