package forecast

import (
	"math"
	"time"

	"github.com/de-tools/dealer-planner/pkg/models/domain"
)

func fitTrend(series domain.Series) domain.Model {
	data := series.Values
	alpha, beta := optimizeTrend(data)

	level, trend, sse := trendPass(data, alpha, beta)

	return domain.Model{
		KPI:          series.Name,
		Kind:         domain.ModelKindTrend,
		Alpha:        alpha,
		Beta:         beta,
		Level:        level,
		Trend:        trend,
		Observations: series.Len(),
		LastPeriod:   series.End(),
		RMSE:         math.Sqrt(sse / float64(len(data)-1)),
		TrainedAt:    time.Now().UTC(),
	}
}

// trendPass runs Holt's recursions seeded from the first two observations
// and returns the final state with the sum of squared one step ahead errors.
func trendPass(data []float64, alpha, beta float64) (level, trend, sse float64) {
	level = data[0]
	trend = data[1] - data[0]

	for t := 1; t < len(data); t++ {
		fitted := level + trend
		residual := data[t] - fitted
		sse += residual * residual

		prevLevel := level
		level = alpha*data[t] + (1-alpha)*(level+trend)
		trend = beta*(level-prevLevel) + (1-beta)*trend
	}
	return level, trend, sse
}

func optimizeTrend(data []float64) (alpha, beta float64) {
	bestAlpha, bestBeta := 0.2, 0.1
	bestSSE := math.MaxFloat64

	for ai := 1; ai <= 9; ai++ {
		a := float64(ai) / 10
		for bi := 0; bi < 10; bi++ {
			b := 0.01 + float64(bi)*0.05

			_, _, sse := trendPass(data, a, b)
			if sse < bestSSE {
				bestSSE = sse
				bestAlpha, bestBeta = a, b
			}
		}
	}
	return bestAlpha, bestBeta
}
