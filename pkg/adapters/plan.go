package adapters

import (
	"maps"

	"github.com/de-tools/dealer-planner/pkg/models/api"
	"github.com/de-tools/dealer-planner/pkg/models/domain"
)

func MapPlanLineDomainToApi(l domain.PlanLine) api.PlanLine {
	return api.PlanLine{
		Period:  l.Period.Format(domain.PeriodLayout),
		Revenue: l.Revenue,
		Expense: l.Expense,
		Payroll: l.Payroll,
		Profit:  l.Profit,
		Units:   maps.Clone(l.Units),
	}
}

func MapPlanDomainToApi(p domain.Plan) api.Plan {
	lines := make([]api.PlanLine, len(p.Lines))
	for i, l := range p.Lines {
		lines[i] = MapPlanLineDomainToApi(l)
	}
	return api.Plan{Horizon: p.Horizon, Lines: lines}
}

func MapGrossImpactDomainToApi(g domain.GrossImpact) api.GrossImpact {
	return api.GrossImpact{
		Period:       g.Period.Format(domain.PeriodLayout),
		RevenueDelta: g.RevenueDelta,
		ExpenseDelta: g.ExpenseDelta,
		PayrollDelta: g.PayrollDelta,
		ProfitDelta:  g.ProfitDelta,
	}
}

func MapScenarioResultDomainToApi(r domain.ScenarioResult) api.ScenarioResponse {
	impact := make([]api.GrossImpact, len(r.Impact))
	for i, g := range r.Impact {
		impact[i] = MapGrossImpactDomainToApi(g)
	}
	return api.ScenarioResponse{
		Baseline: MapPlanDomainToApi(r.Baseline),
		Adjusted: MapPlanDomainToApi(r.Adjusted),
		Impact:   impact,
	}
}

func MapTargetSolutionDomainToApi(s domain.TargetSolution) api.TargetResponse {
	return api.TargetResponse{
		Period:         s.Period.Format(domain.PeriodLayout),
		Ratio:          s.Ratio,
		RequiredUnits:  maps.Clone(s.Units),
		BaselineProfit: s.BaselineProfit,
		TargetProfit:   s.TargetProfit,
		AchievedProfit: s.AchievedProfit,
		Clamped:        s.Clamped,
	}
}

func MapActionPlanDomainToApi(p domain.ActionPlan) api.ActionPlanResponse {
	actions := make([]api.PlanAction, len(p.Actions))
	for i, a := range p.Actions {
		actions[i] = api.PlanAction{
			Vehicle:         a.Vehicle,
			AdditionalUnits: a.AdditionalUnits,
			ProfitPerUnit:   a.ProfitPerUnit,
		}
	}
	return api.ActionPlanResponse{
		Period:         p.Period.Format(domain.PeriodLayout),
		Actions:        actions,
		BaselineProfit: p.BaselineProfit,
		TargetProfit:   p.TargetProfit,
		AchievedProfit: p.AchievedProfit,
	}
}

func MapKPIInfoDomainToApi(info domain.KPIInfo) api.KPIInfo {
	return api.KPIInfo{
		Name:         info.Name,
		Category:     string(info.Category),
		Model:        string(info.Model),
		Observations: info.Observations,
		LastPeriod:   info.LastPeriod.Format(domain.PeriodLayout),
		RMSE:         info.RMSE,
	}
}
