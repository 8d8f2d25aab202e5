package adapters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/dealer-planner/pkg/models/domain"
	"github.com/de-tools/dealer-planner/pkg/models/store"
)

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func TestMapObservationsToSeries_GroupsAndSorts(t *testing.T) {
	observations := []store.Observation{
		{KPI: domain.VehicleRVR, Period: month(2024, time.February), Value: 52},
		{KPI: domain.KPIRevenue, Period: month(2024, time.January), Value: 410000},
		{KPI: domain.VehicleRVR, Period: month(2024, time.January), Value: 48},
		{KPI: domain.KPIRevenue, Period: month(2024, time.February), Value: 425000},
	}

	series, err := MapObservationsToSeries(observations)
	require.NoError(t, err)
	require.Len(t, series, 2)

	assert.Equal(t, domain.KPIRevenue, series[0].Name)
	assert.Equal(t, []float64{410000, 425000}, series[0].Values)
	assert.Equal(t, domain.VehicleRVR, series[1].Name)
	assert.Equal(t, []float64{48, 52}, series[1].Values)
	assert.Equal(t, month(2024, time.January), series[1].Start)
}

func TestMapObservationsToSeries_NormalizesMidMonthTimestamps(t *testing.T) {
	observations := []store.Observation{
		{KPI: domain.VehicleMirage, Period: time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC), Value: 20},
		{KPI: domain.VehicleMirage, Period: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), Value: 22},
	}

	series, err := MapObservationsToSeries(observations)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, month(2024, time.January), series[0].Start)
	assert.Equal(t, []float64{20, 22}, series[0].Values)
}

func TestMapObservationsToSeries_GapFails(t *testing.T) {
	observations := []store.Observation{
		{KPI: domain.KPIExpense, Period: month(2024, time.January), Value: 100000},
		{KPI: domain.KPIExpense, Period: month(2024, time.March), Value: 110000},
	}

	_, err := MapObservationsToSeries(observations)
	assert.ErrorContains(t, err, "gap")
}

func TestMapObservationsToSeries_DuplicatePeriodFails(t *testing.T) {
	observations := []store.Observation{
		{KPI: domain.KPIExpense, Period: month(2024, time.January), Value: 100000},
		{KPI: domain.KPIExpense, Period: month(2024, time.January), Value: 100500},
	}

	_, err := MapObservationsToSeries(observations)
	assert.ErrorContains(t, err, "duplicate")
}
