package planner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/de-tools/dealer-planner/pkg/errors"
	"github.com/de-tools/dealer-planner/pkg/models/domain"
)

var lastObserved = time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)

// trendModel builds a non-seasonal snapshot whose forecasts are exactly
// level + h*trend, which keeps every expectation in this package closed form.
func trendModel(kpi string, level, trend float64) domain.Model {
	return domain.Model{
		KPI:          kpi,
		Kind:         domain.ModelKindTrend,
		Alpha:        0.5,
		Beta:         0.1,
		Level:        level,
		Trend:        trend,
		Observations: 12,
		LastPeriod:   lastObserved,
		TrainedAt:    lastObserved,
	}
}

// testBank forecasts a flat 50000 profit: revenue 200000, expense 100000,
// payroll 50000, with unit sales 100/50/30/20.
func testBank(t *testing.T) *domain.ModelBank {
	t.Helper()
	bank, err := domain.NewModelBank([]domain.Model{
		trendModel(domain.KPIRevenue, 200000, 0),
		trendModel(domain.KPIExpense, 100000, 0),
		trendModel(domain.KPIPayroll, 50000, 0),
		trendModel(domain.VehicleOutlander, 100, 0),
		trendModel(domain.VehicleRVR, 50, 0),
		trendModel(domain.VehicleEclipseCross, 30, 0),
		trendModel(domain.VehicleMirage, 20, 0),
	})
	require.NoError(t, err)
	return bank
}

// testEconomics yields contributions 1000/800/600/500 at the 5% commission.
func testEconomics() domain.Economics {
	return domain.Economics{
		CommissionRate: 0.05,
		Vehicles: map[string]domain.UnitEconomics{
			domain.VehicleOutlander:    {UnitRevenue: 20000, UnitCost: 18000, Contribution: 1000},
			domain.VehicleRVR:          {UnitRevenue: 16000, UnitCost: 14400, Contribution: 800},
			domain.VehicleEclipseCross: {UnitRevenue: 12000, UnitCost: 10800, Contribution: 600},
			domain.VehicleMirage:       {UnitRevenue: 10000, UnitCost: 9000, Contribution: 500},
		},
	}
}

func testService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(testBank(t), testEconomics(), 3)
	require.NoError(t, err)
	return svc
}

func TestNewService_MissingTrackedModelFails(t *testing.T) {
	bank, err := domain.NewModelBank([]domain.Model{
		trendModel(domain.KPIRevenue, 200000, 0),
	})
	require.NoError(t, err)

	_, err = NewService(bank, testEconomics(), 3)
	assert.ErrorContains(t, err, "no model for tracked KPI")
}

func TestNewService_MisalignedHistoriesFails(t *testing.T) {
	models := []domain.Model{
		trendModel(domain.KPIRevenue, 200000, 0),
		trendModel(domain.KPIExpense, 100000, 0),
		trendModel(domain.KPIPayroll, 50000, 0),
		trendModel(domain.VehicleOutlander, 100, 0),
		trendModel(domain.VehicleRVR, 50, 0),
		trendModel(domain.VehicleEclipseCross, 30, 0),
		trendModel(domain.VehicleMirage, 20, 0),
	}
	models[6].LastPeriod = domain.AddMonths(lastObserved, -1)
	bank, err := domain.NewModelBank(models)
	require.NoError(t, err)

	_, err = NewService(bank, testEconomics(), 3)
	assert.ErrorContains(t, err, "not aligned")
}

func TestNewService_MissingEconomicsEntryFails(t *testing.T) {
	eco := testEconomics()
	delete(eco.Vehicles, domain.VehicleMirage)

	_, err := NewService(testBank(t), eco, 3)
	assert.ErrorContains(t, err, domain.VehicleMirage)
}

func TestNewService_BadDefaultHorizonFails(t *testing.T) {
	_, err := NewService(testBank(t), testEconomics(), 0)
	assert.ErrorContains(t, err, "default horizon")
}

func TestGetBaseline_UsesDefaultHorizon(t *testing.T) {
	svc := testService(t)

	plan, err := svc.GetBaseline(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, 3, plan.Horizon)
	require.Len(t, plan.Lines, 3)

	jan := plan.Lines[0]
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), jan.Period)
	assert.Equal(t, 200000.0, jan.Revenue)
	assert.Equal(t, 100000.0, jan.Expense)
	assert.Equal(t, 50000.0, jan.Payroll)
	assert.Equal(t, 50000.0, jan.Profit)
	assert.Equal(t, map[string]int{
		domain.VehicleOutlander:    100,
		domain.VehicleRVR:          50,
		domain.VehicleEclipseCross: 30,
		domain.VehicleMirage:       20,
	}, jan.Units)

	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), plan.Lines[2].Period)
}

func TestGetBaseline_ExplicitHorizon(t *testing.T) {
	svc := testService(t)

	plan, err := svc.GetBaseline(context.Background(), 6)
	require.NoError(t, err)
	assert.Equal(t, 6, plan.Horizon)
	assert.Len(t, plan.Lines, 6)
}

func TestGetBaseline_NegativeHorizonFails(t *testing.T) {
	svc := testService(t)

	_, err := svc.GetBaseline(context.Background(), -2)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeInvalidHorizon, pkgerrors.CodeOf(err))
}

func TestGetBaseline_ProfitIsRevenueLessExpenseAndPayroll(t *testing.T) {
	// A sloped bank, so every month differs.
	bank, err := domain.NewModelBank([]domain.Model{
		trendModel(domain.KPIRevenue, 200000, 2500),
		trendModel(domain.KPIExpense, 100000, 1000),
		trendModel(domain.KPIPayroll, 50000, 250),
		trendModel(domain.VehicleOutlander, 100, 2),
		trendModel(domain.VehicleRVR, 50, 1),
		trendModel(domain.VehicleEclipseCross, 30, 0),
		trendModel(domain.VehicleMirage, 20, 0),
	})
	require.NoError(t, err)
	svc, err := NewService(bank, testEconomics(), 3)
	require.NoError(t, err)

	plan, err := svc.GetBaseline(context.Background(), 4)
	require.NoError(t, err)
	for i, line := range plan.Lines {
		h := float64(i + 1)
		assert.Equal(t, 200000+2500*h, line.Revenue)
		assert.Equal(t, line.Revenue-line.Expense-line.Payroll, line.Profit)
		assert.Equal(t, 100+2*(i+1), line.Units[domain.VehicleOutlander])
	}
}

func TestGetBaseline_UnitForecastsRoundAndClampPerSalesSheet(t *testing.T) {
	bank, err := domain.NewModelBank([]domain.Model{
		trendModel(domain.KPIRevenue, 200000, 0),
		trendModel(domain.KPIExpense, 100000, 0),
		trendModel(domain.KPIPayroll, 50000, 0),
		trendModel(domain.VehicleOutlander, 30.4, 0),
		trendModel(domain.VehicleRVR, 30.5, 0),
		trendModel(domain.VehicleEclipseCross, 30.6, 0),
		trendModel(domain.VehicleMirage, -5, 0),
	})
	require.NoError(t, err)
	svc, err := NewService(bank, testEconomics(), 3)
	require.NoError(t, err)

	plan, err := svc.GetBaseline(context.Background(), 1)
	require.NoError(t, err)
	units := plan.Lines[0].Units
	assert.Equal(t, 30, units[domain.VehicleOutlander])
	assert.Equal(t, 31, units[domain.VehicleRVR])
	assert.Equal(t, 31, units[domain.VehicleEclipseCross])
	assert.Equal(t, 0, units[domain.VehicleMirage], "negative forecasts clamp to zero")
}

func TestListKPIs_DescribesEveryModel(t *testing.T) {
	svc := testService(t)

	infos, err := svc.ListKPIs(context.Background())
	require.NoError(t, err)
	require.Len(t, infos, 7)

	byName := make(map[string]domain.KPIInfo, len(infos))
	for _, info := range infos {
		byName[info.Name] = info
	}
	assert.Equal(t, domain.KPICategoryFinancial, byName[domain.KPIRevenue].Category)
	assert.Equal(t, domain.KPICategoryVehicle, byName[domain.VehicleRVR].Category)
	assert.Equal(t, domain.ModelKindTrend, byName[domain.KPIRevenue].Model)
	assert.Equal(t, 12, byName[domain.KPIRevenue].Observations)
	assert.Equal(t, lastObserved, byName[domain.KPIRevenue].LastPeriod)
}
