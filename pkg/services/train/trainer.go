// Package train fits the tracked KPI models from a history source and
// assembles the model bank the planner serves from.
package train

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/de-tools/dealer-planner/pkg/adapters"
	pkgerrors "github.com/de-tools/dealer-planner/pkg/errors"
	"github.com/de-tools/dealer-planner/pkg/models/domain"
	"github.com/de-tools/dealer-planner/pkg/models/store"
	"github.com/de-tools/dealer-planner/pkg/services/forecast"
)

// SeriesSource is the KPI history backend. Both the CSV and the warehouse
// readers satisfy it.
type SeriesSource interface {
	GetObservations(ctx context.Context, kpis []string) ([]store.Observation, error)
}

type Trainer struct {
	source SeriesSource
}

func NewTrainer(source SeriesSource) *Trainer {
	return &Trainer{source: source}
}

// TrainTracked fits one model per tracked KPI. All histories must end on the
// same month; a bank with drifting timelines would let the planner add
// figures from different months.
func (t *Trainer) TrainTracked(ctx context.Context) (*domain.ModelBank, error) {
	logger := zerolog.Ctx(ctx)

	observations, err := t.source.GetObservations(ctx, domain.TrackedKPIs())
	if err != nil {
		return nil, fmt.Errorf("reading KPI history: %w", err)
	}

	series, err := adapters.MapObservationsToSeries(observations)
	if err != nil {
		return nil, fmt.Errorf("grouping KPI history: %w", err)
	}
	byName := make(map[string]domain.Series, len(series))
	for _, s := range series {
		byName[s.Name] = s
	}

	var end *domain.Series
	models := make([]domain.Model, 0, len(domain.TrackedKPIs()))
	for _, kpi := range domain.TrackedKPIs() {
		s, ok := byName[kpi]
		if !ok {
			return nil, pkgerrors.Newf(pkgerrors.CodeUnknownKPI,
				"history has no observations for tracked KPI %q", kpi)
		}
		if end == nil {
			end = &s
		} else if !s.End().Equal(end.End()) {
			return nil, fmt.Errorf("histories are not aligned: %q ends %s, %q ends %s",
				end.Name, end.End().Format(domain.PeriodLayout),
				kpi, s.End().Format(domain.PeriodLayout))
		}

		m, err := forecast.Fit(s)
		if err != nil {
			return nil, fmt.Errorf("fitting %q: %w", kpi, err)
		}
		logger.Info().
			Str("kpi", kpi).
			Str("model", string(m.Kind)).
			Int("observations", m.Observations).
			Float64("rmse", m.RMSE).
			Msg("fitted model")
		models = append(models, m)
	}

	return domain.NewModelBank(models)
}
