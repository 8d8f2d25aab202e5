// Package planner turns the fitted model bank into financial plans: baseline
// forecasts, what-if scenarios over vehicle unit sales, and profit target
// inversion. All requests are stateless reads over the shared read-only bank.
package planner

import (
	"context"
	"fmt"

	"github.com/de-tools/dealer-planner/pkg/models/domain"
)

type Service interface {
	// GetBaseline forecasts all tracked KPIs. Horizon 0 means the configured
	// default.
	GetBaseline(ctx context.Context, horizon int) (domain.Plan, error)
	// ApplyScenario recomputes the plan under overridden unit sales.
	ApplyScenario(ctx context.Context, scenario domain.Scenario) (domain.ScenarioResult, error)
	// SolveTarget inverts the unit/profit relationship for one forecast month.
	SolveTarget(ctx context.Context, targetProfit float64, period, horizon int) (domain.TargetSolution, error)
	// PlanActions closes the profit gap with extra units of the most
	// profitable vehicle line.
	PlanActions(ctx context.Context, targetProfit float64, period, horizon int) (domain.ActionPlan, error)
	// ListKPIs describes every fitted model in the bank.
	ListKPIs(ctx context.Context) ([]domain.KPIInfo, error)
}

type service struct {
	bank           *domain.ModelBank
	economics      domain.Economics
	contributions  domain.ContributionTable
	defaultHorizon int
}

// NewService validates the bank against the tracked KPI set once, so request
// handlers never meet a half-usable bank.
func NewService(bank *domain.ModelBank, eco domain.Economics, defaultHorizon int) (Service, error) {
	if bank == nil {
		return nil, fmt.Errorf("model bank is nil")
	}
	if defaultHorizon < 1 {
		return nil, fmt.Errorf("default horizon must be at least 1, got %d", defaultHorizon)
	}

	var lastPeriod *domain.Model
	for _, kpi := range domain.TrackedKPIs() {
		m, ok := bank.Model(kpi)
		if !ok {
			return nil, fmt.Errorf("model bank has no model for tracked KPI %q", kpi)
		}
		if lastPeriod == nil {
			lastPeriod = &m
			continue
		}
		if !m.LastPeriod.Equal(lastPeriod.LastPeriod) {
			return nil, fmt.Errorf("model histories are not aligned: %q ends %s, %q ends %s",
				lastPeriod.KPI, lastPeriod.LastPeriod.Format(domain.PeriodLayout),
				m.KPI, m.LastPeriod.Format(domain.PeriodLayout))
		}
	}

	for _, vehicle := range domain.VehicleKPIs() {
		if _, ok := eco.Unit(vehicle); !ok {
			return nil, fmt.Errorf("unit economics registry has no entry for %q", vehicle)
		}
	}

	return &service{
		bank:           bank,
		economics:      eco,
		contributions:  eco.Contributions(),
		defaultHorizon: defaultHorizon,
	}, nil
}

func (s *service) ListKPIs(_ context.Context) ([]domain.KPIInfo, error) {
	infos := make([]domain.KPIInfo, 0, s.bank.Len())
	for _, name := range s.bank.KPIs() {
		m, _ := s.bank.Model(name)
		infos = append(infos, domain.KPIInfo{
			Name:         m.KPI,
			Category:     domain.CategoryOf(m.KPI),
			Model:        m.Kind,
			Observations: m.Observations,
			LastPeriod:   m.LastPeriod,
			RMSE:         m.RMSE,
		})
	}
	return infos, nil
}
