// Package forecast fits exponential smoothing models to monthly KPI series
// and projects fitted snapshots forward.
//
// Two model families are used. Histories with at least two full yearly
// cycles get additive Holt-Winters:
//
//	Level:    L_t = a(Y_t - S_{t-m}) + (1-a)(L_{t-1} + T_{t-1})
//	Trend:    T_t = b(L_t - L_{t-1}) + (1-b)T_{t-1}
//	Seasonal: S_t = g(Y_t - L_t) + (1-g)S_{t-m}
//	Forecast: F_{t+h} = L_t + h*T_t + S_{t-m+h}
//
// Shorter histories get Holt's linear trend, the same recursions without the
// seasonal term. Smoothing parameters are picked by grid search over the
// one step ahead squared errors.
package forecast

import (
	"github.com/de-tools/dealer-planner/pkg/models/domain"

	pkgerrors "github.com/de-tools/dealer-planner/pkg/errors"
)

const (
	// SeasonalCycle is the number of months in one seasonal cycle.
	SeasonalCycle = 12
	// SeasonalMinObservations is the history length at which fitting switches
	// from Holt's linear trend to seasonal Holt-Winters.
	SeasonalMinObservations = 2 * SeasonalCycle
	// MinObservations is the least history any model can be fitted on.
	MinObservations = 2
)

// Fit trains a smoothing model on one KPI history. The model family is
// chosen here, once, from the history length; the returned snapshot never
// changes kind afterwards.
func Fit(series domain.Series) (domain.Model, error) {
	if series.Len() < MinObservations {
		return domain.Model{}, pkgerrors.Newf(pkgerrors.CodeInsufficientData,
			"kpi %q has %d observations, need at least %d", series.Name, series.Len(), MinObservations)
	}
	if series.Len() >= SeasonalMinObservations {
		return fitSeasonal(series), nil
	}
	return fitTrend(series), nil
}

// Forecast projects a fitted snapshot the given number of months past its
// last observation. The snapshot is read only; calling Forecast twice with
// the same arguments yields the same values.
func Forecast(m domain.Model, horizon int) ([]float64, error) {
	if horizon < 1 {
		return nil, pkgerrors.Newf(pkgerrors.CodeInvalidHorizon,
			"forecast horizon must be at least 1 month, got %d", horizon)
	}
	if err := m.Validate(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "model snapshot is not usable")
	}

	values := make([]float64, horizon)
	for h := 1; h <= horizon; h++ {
		v := m.Level + float64(h)*m.Trend
		if m.Kind == domain.ModelKindSeasonal {
			v += m.Seasonals[(m.Observations+h-1)%m.Cycle]
		}
		values[h-1] = v
	}
	return values, nil
}
