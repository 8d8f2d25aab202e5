package forecast

import (
	"math"
	"time"

	"github.com/de-tools/dealer-planner/pkg/models/domain"
)

// hwState is the smoothing state carried through one pass over the data.
type hwState struct {
	level     float64
	trend     float64
	seasonals []float64
}

func fitSeasonal(series domain.Series) domain.Model {
	data := series.Values
	alpha, beta, gamma := optimizeSeasonal(data)

	state := initSeasonal(data)
	sse := seasonalPass(&state, data, alpha, beta, gamma)

	return domain.Model{
		KPI:          series.Name,
		Kind:         domain.ModelKindSeasonal,
		Alpha:        alpha,
		Beta:         beta,
		Gamma:        gamma,
		Level:        state.level,
		Trend:        state.trend,
		Seasonals:    state.seasonals,
		Cycle:        SeasonalCycle,
		Observations: series.Len(),
		LastPeriod:   series.End(),
		RMSE:         math.Sqrt(sse / float64(len(data))),
		TrainedAt:    time.Now().UTC(),
	}
}

// initSeasonal seeds the state from the first two cycles: the level is the
// first cycle's mean, the trend the average cycle over cycle change, and the
// seasonal components are the first cycle's deviations normalized to sum 0.
func initSeasonal(data []float64) hwState {
	m := SeasonalCycle

	var sum float64
	for i := 0; i < m; i++ {
		sum += data[i]
	}
	level := sum / float64(m)

	var trendSum float64
	for i := 0; i < m; i++ {
		trendSum += (data[m+i] - data[i]) / float64(m)
	}
	trend := trendSum / float64(m)

	seasonals := make([]float64, m)
	var seasonalSum float64
	for i := 0; i < m; i++ {
		seasonals[i] = data[i] - level
		seasonalSum += seasonals[i]
	}
	avg := seasonalSum / float64(m)
	for i := range seasonals {
		seasonals[i] -= avg
	}

	return hwState{level: level, trend: trend, seasonals: seasonals}
}

// seasonalPass runs the smoothing recursions over the whole history and
// returns the sum of squared one step ahead errors. Components update only
// once a full cycle has been seen, so initialization artifacts do not leak
// into the state.
func seasonalPass(state *hwState, data []float64, alpha, beta, gamma float64) float64 {
	m := SeasonalCycle
	var sse float64

	for t := 0; t < len(data); t++ {
		idx := t % m
		fitted := state.level + state.trend + state.seasonals[idx]
		residual := data[t] - fitted
		sse += residual * residual

		if t >= m-1 {
			prevLevel := state.level
			state.level = alpha*(data[t]-state.seasonals[idx]) + (1-alpha)*(state.level+state.trend)
			state.trend = beta*(state.level-prevLevel) + (1-beta)*state.trend
			state.seasonals[idx] = gamma*(data[t]-state.level) + (1-gamma)*state.seasonals[idx]
		}
	}
	return sse
}

// optimizeSeasonal grid searches the smoothing parameters, keeping the
// combination with the lowest SSE. The grid is coarse on purpose: monthly
// dealership series are short and a finer grid only overfits them.
func optimizeSeasonal(data []float64) (alpha, beta, gamma float64) {
	bestAlpha, bestBeta, bestGamma := 0.2, 0.1, 0.1
	bestSSE := math.MaxFloat64

	for ai := 1; ai <= 9; ai++ {
		a := float64(ai) / 10
		for bi := 0; bi < 10; bi++ {
			b := 0.01 + float64(bi)*0.05
			for gi := 0; gi < 10; gi++ {
				g := 0.01 + float64(gi)*0.05

				state := initSeasonal(data)
				sse := seasonalPass(&state, data, a, b, g)
				if sse < bestSSE {
					bestSSE = sse
					bestAlpha, bestBeta, bestGamma = a, b, g
				}
			}
		}
	}
	return bestAlpha, bestBeta, bestGamma
}
