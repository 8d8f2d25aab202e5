package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/de-tools/dealer-planner/pkg/errors"
	"github.com/de-tools/dealer-planner/pkg/models/domain"
)

func makeSeries(t *testing.T, name string, values []float64) domain.Series {
	t.Helper()
	start := time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC)
	s, err := domain.NewSeries(name, start, values)
	require.NoError(t, err)
	return s
}

// linearValues returns base, base+step, base+2*step, ...
func linearValues(base, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = base + step*float64(i)
	}
	return out
}

// seasonalValues repeats base+pattern[i%12] for n months.
func seasonalValues(base float64, pattern [12]float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = base + pattern[i%12]
	}
	return out
}

func TestFit_RejectsTooShortHistory(t *testing.T) {
	series := makeSeries(t, domain.KPIRevenue, []float64{410000})

	_, err := Fit(series)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeInsufficientData, pkgerrors.CodeOf(err))
}

func TestFit_ModelKindFollowsHistoryLength(t *testing.T) {
	tests := []struct {
		name     string
		months   int
		wantKind domain.ModelKind
	}{
		{name: "two points", months: 2, wantKind: domain.ModelKindTrend},
		{name: "one year", months: 12, wantKind: domain.ModelKindTrend},
		{name: "just under two cycles", months: 23, wantKind: domain.ModelKindTrend},
		{name: "two full cycles", months: 24, wantKind: domain.ModelKindSeasonal},
		{name: "three years", months: 36, wantKind: domain.ModelKindSeasonal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series := makeSeries(t, domain.KPIExpense, linearValues(1000, 5, tt.months))

			model, err := Fit(series)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, model.Kind)
			if tt.wantKind == domain.ModelKindSeasonal {
				assert.Equal(t, SeasonalCycle, model.Cycle)
				assert.Len(t, model.Seasonals, SeasonalCycle)
			} else {
				assert.Zero(t, model.Cycle)
				assert.Empty(t, model.Seasonals)
			}
			assert.Equal(t, tt.months, model.Observations)
			assert.Equal(t, series.End(), model.LastPeriod)
		})
	}
}

func TestForecast_LengthMatchesHorizon(t *testing.T) {
	series := makeSeries(t, domain.VehicleOutlander, linearValues(90, 1, 30))
	model, err := Fit(series)
	require.NoError(t, err)

	for _, horizon := range []int{1, 3, 12, 24} {
		values, err := Forecast(model, horizon)
		require.NoError(t, err)
		assert.Len(t, values, horizon)
	}
}

func TestForecast_RejectsNonPositiveHorizon(t *testing.T) {
	series := makeSeries(t, domain.VehicleOutlander, linearValues(90, 1, 12))
	model, err := Fit(series)
	require.NoError(t, err)

	for _, horizon := range []int{0, -1, -12} {
		_, err := Forecast(model, horizon)
		require.Error(t, err)
		assert.Equal(t, pkgerrors.CodeInvalidHorizon, pkgerrors.CodeOf(err))
	}
}

func TestForecast_IsDeterministic(t *testing.T) {
	values := []float64{120, 98, 134, 141, 107, 99, 155, 162, 118, 121, 149, 137, 126, 104, 140}
	series := makeSeries(t, domain.KPIPayroll, values)

	first, err := Fit(series)
	require.NoError(t, err)
	second, err := Fit(series)
	require.NoError(t, err)

	a, err := Forecast(first, 6)
	require.NoError(t, err)
	b, err := Forecast(second, 6)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	again, err := Forecast(first, 6)
	require.NoError(t, err)
	assert.Equal(t, a, again)
}

func TestForecast_ExtendsPerfectLinearTrend(t *testing.T) {
	// On an exact line the one step errors vanish and the final state is the
	// line itself, so forecasts continue it.
	series := makeSeries(t, domain.KPIRevenue, linearValues(100, 10, 10))
	model, err := Fit(series)
	require.NoError(t, err)

	values, err := Forecast(model, 3)
	require.NoError(t, err)
	require.Len(t, values, 3)
	assert.InDelta(t, 200, values[0], 1e-6)
	assert.InDelta(t, 210, values[1], 1e-6)
	assert.InDelta(t, 220, values[2], 1e-6)
	assert.InDelta(t, 0, model.RMSE, 1e-6)
}

func TestForecast_ReproducesPureSeasonalPattern(t *testing.T) {
	pattern := [12]float64{40, -25, 10, 55, -40, 5, 30, -40, -5, -20, -15, 5}
	series := makeSeries(t, domain.VehicleRVR, seasonalValues(500, pattern, 36))

	model, err := Fit(series)
	require.NoError(t, err)
	require.Equal(t, domain.ModelKindSeasonal, model.Kind)
	assert.InDelta(t, 0, model.RMSE, 1e-6)

	// 36 observations end a cycle, so horizon h lands on pattern slot h-1.
	values, err := Forecast(model, 12)
	require.NoError(t, err)
	for h := 1; h <= 12; h++ {
		assert.InDeltaf(t, 500+pattern[h-1], values[h-1], 1e-6, "horizon %d", h)
	}
}

func TestForecast_SeasonalIndexContinuesCycle(t *testing.T) {
	// A handmade snapshot with flat level and a marked January slot. The
	// history ends in October, so horizon 3 lands on January.
	seasonals := make([]float64, 12)
	seasonals[0] = 77
	model := domain.Model{
		KPI:          domain.VehicleMirage,
		Kind:         domain.ModelKindSeasonal,
		Alpha:        0.2,
		Beta:         0.1,
		Gamma:        0.1,
		Level:        100,
		Seasonals:    seasonals,
		Cycle:        12,
		Observations: 34,
		LastPeriod:   time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC),
	}

	values, err := Forecast(model, 3)
	require.NoError(t, err)
	// (34+h-1) % 12 hits slot 10, 11, then 0.
	assert.InDelta(t, 100, values[0], 1e-9)
	assert.InDelta(t, 100, values[1], 1e-9)
	assert.InDelta(t, 177, values[2], 1e-9)
}

func TestForecast_RejectsBrokenSnapshot(t *testing.T) {
	model := domain.Model{
		KPI:          domain.VehicleMirage,
		Kind:         domain.ModelKindSeasonal,
		Level:        100,
		Seasonals:    []float64{1, 2, 3},
		Cycle:        12,
		Observations: 24,
	}

	_, err := Forecast(model, 3)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeInternal, pkgerrors.CodeOf(err))
}
