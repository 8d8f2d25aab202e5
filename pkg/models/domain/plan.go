package domain

import (
	"maps"
	"time"
)

// PlanLine is one forecast month of the financial outlook.
type PlanLine struct {
	Period  time.Time
	Revenue float64
	Expense float64
	Payroll float64
	Profit  float64
	Units   map[string]int
}

func (l PlanLine) Clone() PlanLine {
	out := l
	out.Units = maps.Clone(l.Units)
	return out
}

// Plan is a financial outlook over a forecast horizon. A baseline plan is
// derived from the model bank alone; adjusted plans are always deep copies,
// the baseline itself is never edited in place.
type Plan struct {
	Horizon int
	Lines   []PlanLine
}

func (p Plan) Clone() Plan {
	out := Plan{Horizon: p.Horizon, Lines: make([]PlanLine, len(p.Lines))}
	for i, l := range p.Lines {
		out.Lines[i] = l.Clone()
	}
	return out
}

// Scenario replaces forecast unit sales for selected vehicles. A nil Period
// applies the overrides to every month of the horizon, otherwise only to the
// given zero-based month. Horizon 0 means the configured default.
type Scenario struct {
	Horizon   int
	Period    *int
	Overrides map[string]int
}

type ScenarioResult struct {
	Baseline Plan
	Adjusted Plan
	Impact   []GrossImpact
}

// GrossImpact decomposes an override month the way the showroom reads it:
// gross revenue from the extra units, their cost of sales and the sales
// commission. The plan lines themselves move by net contribution only.
type GrossImpact struct {
	Period       time.Time
	RevenueDelta float64
	ExpenseDelta float64
	PayrollDelta float64
	ProfitDelta  float64
}

// TargetSolution is the uniform volume answer to "how do we hit this profit":
// every vehicle line scales by the same ratio.
type TargetSolution struct {
	Period         time.Time
	Ratio          float64
	Units          map[string]int
	BaselineProfit float64
	TargetProfit   float64
	AchievedProfit float64
	Clamped        bool
}

// PlanAction is a concrete sales push on one vehicle line.
type PlanAction struct {
	Vehicle         string
	AdditionalUnits int
	ProfitPerUnit   float64
}

// ActionPlan is the greedy alternative to a TargetSolution: the whole profit
// gap is closed with additional units of the most profitable vehicle.
type ActionPlan struct {
	Period         time.Time
	Actions        []PlanAction
	BaselineProfit float64
	TargetProfit   float64
	AchievedProfit float64
}

// KPIInfo describes one fitted model in the bank.
type KPIInfo struct {
	Name         string
	Category     KPICategory
	Model        ModelKind
	Observations int
	LastPeriod   time.Time
	RMSE         float64
}
