package planner

import (
	"context"
	"slices"

	"github.com/rs/zerolog"

	pkgerrors "github.com/de-tools/dealer-planner/pkg/errors"
	"github.com/de-tools/dealer-planner/pkg/models/domain"
)

func (s *service) ApplyScenario(ctx context.Context, scenario domain.Scenario) (domain.ScenarioResult, error) {
	h, err := s.resolveHorizon(scenario.Horizon)
	if err != nil {
		return domain.ScenarioResult{}, err
	}
	if err := validateOverrides(scenario.Overrides); err != nil {
		return domain.ScenarioResult{}, err
	}
	if scenario.Period != nil && (*scenario.Period < 0 || *scenario.Period >= h) {
		return domain.ScenarioResult{}, pkgerrors.Newf(pkgerrors.CodeInvalidPeriod,
			"period %d is outside the %d month horizon", *scenario.Period, h)
	}

	zerolog.Ctx(ctx).Debug().
		Int("horizon", h).
		Int("overrides", len(scenario.Overrides)).
		Msg("applying scenario")

	baseline, err := s.buildBaseline(h)
	if err != nil {
		return domain.ScenarioResult{}, err
	}

	adjusted := baseline.Clone()
	var impact []domain.GrossImpact
	for i := range adjusted.Lines {
		if scenario.Period != nil && i != *scenario.Period {
			continue
		}
		line := &adjusted.Lines[i]
		gross := domain.GrossImpact{Period: line.Period}

		for vehicle, override := range scenario.Overrides {
			delta := float64(override - line.Units[vehicle])
			line.Revenue += delta * s.contributions[vehicle]
			line.Units[vehicle] = override

			ue := s.economics.Vehicles[vehicle]
			gross.RevenueDelta += delta * ue.UnitRevenue
			gross.ExpenseDelta += delta * ue.UnitCost
			gross.PayrollDelta += delta * ue.UnitRevenue * s.economics.CommissionRate
		}

		line.Profit = line.Revenue - line.Expense - line.Payroll
		gross.ProfitDelta = gross.RevenueDelta - gross.ExpenseDelta - gross.PayrollDelta
		if len(scenario.Overrides) > 0 {
			impact = append(impact, gross)
		}
	}

	return domain.ScenarioResult{Baseline: baseline, Adjusted: adjusted, Impact: impact}, nil
}

// validateOverrides checks names against the tracked vehicle lines and
// counts for non-negativity. An empty set is fine, the scenario is a no-op.
func validateOverrides(overrides map[string]int) error {
	tracked := domain.VehicleKPIs()
	for vehicle, units := range overrides {
		if !slices.Contains(tracked, vehicle) {
			return pkgerrors.Newf(pkgerrors.CodeUnknownKPI,
				"%q is not a tracked vehicle line", vehicle).
				WithDetails(map[string]any{"tracked": tracked})
		}
		if units < 0 {
			return pkgerrors.Newf(pkgerrors.CodeInvalidOverride,
				"override for %q is negative (%d units)", vehicle, units)
		}
	}
	return nil
}
