package planner

import (
	"context"
	"math"
	"slices"
	"sort"

	"github.com/rs/zerolog"

	pkgerrors "github.com/de-tools/dealer-planner/pkg/errors"
	"github.com/de-tools/dealer-planner/pkg/models/domain"
)

func (s *service) SolveTarget(ctx context.Context, targetProfit float64, period, horizon int) (domain.TargetSolution, error) {
	line, err := s.baselineLine(period, horizon)
	if err != nil {
		return domain.TargetSolution{}, err
	}

	zerolog.Ctx(ctx).Debug().
		Float64("target_profit", targetProfit).
		Str("period", line.Period.Format(domain.PeriodLayout)).
		Msg("solving for target profit")

	// Profit responds linearly to unit changes; the sensitivity is the
	// profit gained by scaling every line up by one whole baseline.
	var sensitivity float64
	for _, vehicle := range domain.VehicleKPIs() {
		sensitivity += float64(line.Units[vehicle]) * s.contributions[vehicle]
	}

	solution := domain.TargetSolution{
		Period:         line.Period,
		Ratio:          1,
		Units:          make(map[string]int, len(line.Units)),
		BaselineProfit: line.Profit,
		TargetProfit:   targetProfit,
		AchievedProfit: line.Profit,
	}

	if sensitivity == 0 {
		if targetProfit == line.Profit {
			for vehicle, units := range line.Units {
				solution.Units[vehicle] = units
			}
			return solution, nil
		}
		return domain.TargetSolution{}, pkgerrors.Newf(pkgerrors.CodeUnsatisfiableTarget,
			"profit does not respond to unit sales in %s, target %v is out of reach",
			line.Period.Format(domain.PeriodLayout), targetProfit).
			WithDetails(map[string]any{"baseline_profit": line.Profit})
	}

	ratio := 1 + (targetProfit-line.Profit)/sensitivity
	solution.Ratio = ratio

	for _, vehicle := range domain.VehicleKPIs() {
		baseUnits := line.Units[vehicle]
		scaled := math.Round(ratio * float64(baseUnits))
		if scaled < 0 {
			scaled = 0
			solution.Clamped = true
		}
		required := int(scaled)
		solution.Units[vehicle] = required
		solution.AchievedProfit += float64(required-baseUnits) * s.contributions[vehicle]
	}
	return solution, nil
}

func (s *service) PlanActions(ctx context.Context, targetProfit float64, period, horizon int) (domain.ActionPlan, error) {
	line, err := s.baselineLine(period, horizon)
	if err != nil {
		return domain.ActionPlan{}, err
	}

	plan := domain.ActionPlan{
		Period:         line.Period,
		BaselineProfit: line.Profit,
		TargetProfit:   targetProfit,
		AchievedProfit: line.Profit,
	}

	gap := targetProfit - line.Profit
	if gap <= 0 {
		// Baseline already meets the target, nothing to push.
		return plan, nil
	}

	vehicles := slices.Clone(domain.VehicleKPIs())
	sort.Slice(vehicles, func(i, j int) bool {
		ci, cj := s.contributions[vehicles[i]], s.contributions[vehicles[j]]
		if ci != cj {
			return ci > cj
		}
		return vehicles[i] < vehicles[j]
	})

	best := vehicles[0]
	perUnit := s.contributions[best]
	if perUnit <= 0 {
		return domain.ActionPlan{}, pkgerrors.Newf(pkgerrors.CodeUnsatisfiableTarget,
			"no vehicle line earns a positive contribution, profit gap %v cannot be closed", gap)
	}

	extra := int(math.Ceil(gap / perUnit))
	plan.Actions = []domain.PlanAction{{
		Vehicle:         best,
		AdditionalUnits: extra,
		ProfitPerUnit:   perUnit,
	}}
	plan.AchievedProfit = line.Profit + float64(extra)*perUnit

	zerolog.Ctx(ctx).Debug().
		Str("vehicle", best).
		Int("additional_units", extra).
		Msg("planned sales push")
	return plan, nil
}

// baselineLine builds the baseline and picks one forecast month out of it.
func (s *service) baselineLine(period, horizon int) (domain.PlanLine, error) {
	h, err := s.resolveHorizon(horizon)
	if err != nil {
		return domain.PlanLine{}, err
	}
	if period < 0 || period >= h {
		return domain.PlanLine{}, pkgerrors.Newf(pkgerrors.CodeInvalidPeriod,
			"period %d is outside the %d month horizon", period, h)
	}
	baseline, err := s.buildBaseline(h)
	if err != nil {
		return domain.PlanLine{}, err
	}
	return baseline.Lines[period], nil
}
