package planner

import (
	"context"
	"math"

	"github.com/rs/zerolog"

	pkgerrors "github.com/de-tools/dealer-planner/pkg/errors"
	"github.com/de-tools/dealer-planner/pkg/models/domain"
	"github.com/de-tools/dealer-planner/pkg/services/forecast"
)

func (s *service) GetBaseline(ctx context.Context, horizon int) (domain.Plan, error) {
	h, err := s.resolveHorizon(horizon)
	if err != nil {
		return domain.Plan{}, err
	}
	zerolog.Ctx(ctx).Debug().Int("horizon", h).Msg("building baseline plan")
	return s.buildBaseline(h)
}

func (s *service) resolveHorizon(horizon int) (int, error) {
	if horizon == 0 {
		return s.defaultHorizon, nil
	}
	if horizon < 0 {
		return 0, pkgerrors.Newf(pkgerrors.CodeInvalidHorizon,
			"forecast horizon must be at least 1 month, got %d", horizon)
	}
	return horizon, nil
}

func (s *service) buildBaseline(h int) (domain.Plan, error) {
	revenue, err := s.forecastKPI(domain.KPIRevenue, h)
	if err != nil {
		return domain.Plan{}, err
	}
	expense, err := s.forecastKPI(domain.KPIExpense, h)
	if err != nil {
		return domain.Plan{}, err
	}
	payroll, err := s.forecastKPI(domain.KPIPayroll, h)
	if err != nil {
		return domain.Plan{}, err
	}

	units := make(map[string][]float64, len(domain.VehicleKPIs()))
	for _, vehicle := range domain.VehicleKPIs() {
		values, err := s.forecastKPI(vehicle, h)
		if err != nil {
			return domain.Plan{}, err
		}
		units[vehicle] = values
	}

	// Histories are aligned, so any tracked model anchors the timeline.
	anchor, _ := s.bank.Model(domain.KPIRevenue)

	lines := make([]domain.PlanLine, h)
	for i := 0; i < h; i++ {
		lineUnits := make(map[string]int, len(units))
		for vehicle, values := range units {
			lineUnits[vehicle] = roundUnits(values[i])
		}
		lines[i] = domain.PlanLine{
			Period:  domain.AddMonths(anchor.LastPeriod, i+1),
			Revenue: revenue[i],
			Expense: expense[i],
			Payroll: payroll[i],
			Profit:  revenue[i] - expense[i] - payroll[i],
			Units:   lineUnits,
		}
	}
	return domain.Plan{Horizon: h, Lines: lines}, nil
}

func (s *service) forecastKPI(kpi string, h int) ([]float64, error) {
	m, ok := s.bank.Model(kpi)
	if !ok {
		return nil, pkgerrors.Newf(pkgerrors.CodeUnknownKPI, "no fitted model for KPI %q", kpi)
	}
	return forecast.Forecast(m, h)
}

// roundUnits mirrors how the sales sheet reads unit forecasts: whole cars,
// never negative, unparseable values count as zero.
func roundUnits(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	n := int(math.Round(v))
	if n < 0 {
		return 0
	}
	return n
}
