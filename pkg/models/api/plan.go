package api

// PlanLine is one forecast month of a plan as served over HTTP. Periods use
// the "2006-01" layout.
type PlanLine struct {
	Period  string         `json:"period"`
	Revenue float64        `json:"revenue"`
	Expense float64        `json:"expense"`
	Payroll float64        `json:"payroll"`
	Profit  float64        `json:"profit"`
	Units   map[string]int `json:"units"`
}

type Plan struct {
	Horizon int        `json:"horizon"`
	Lines   []PlanLine `json:"lines"`
}

// ScenarioRequest overrides vehicle unit sales. An empty override set is a
// valid no-op; a missing period applies the overrides to every month.
type ScenarioRequest struct {
	Horizon   int            `json:"horizon,omitempty"`
	Period    *int           `json:"period,omitempty"`
	Overrides map[string]int `json:"overrides"`
}

type GrossImpact struct {
	Period       string  `json:"period"`
	RevenueDelta float64 `json:"revenue_delta"`
	ExpenseDelta float64 `json:"expense_delta"`
	PayrollDelta float64 `json:"payroll_delta"`
	ProfitDelta  float64 `json:"profit_delta"`
}

type ScenarioResponse struct {
	Baseline Plan          `json:"baseline"`
	Adjusted Plan          `json:"adjusted"`
	Impact   []GrossImpact `json:"gross_impact,omitempty"`
}

type TargetRequest struct {
	Horizon      int      `json:"horizon,omitempty"`
	Period       int      `json:"period"`
	TargetProfit *float64 `json:"target_profit" validate:"required"`
}

type TargetResponse struct {
	Period         string         `json:"period"`
	Ratio          float64        `json:"ratio"`
	RequiredUnits  map[string]int `json:"required_units"`
	BaselineProfit float64        `json:"baseline_profit"`
	TargetProfit   float64        `json:"target_profit"`
	AchievedProfit float64        `json:"achieved_profit"`
	Clamped        bool           `json:"clamped"`
}

type PlanAction struct {
	Vehicle         string  `json:"vehicle"`
	AdditionalUnits int     `json:"additional_units"`
	ProfitPerUnit   float64 `json:"profit_per_unit"`
}

type ActionPlanResponse struct {
	Period         string       `json:"period"`
	Actions        []PlanAction `json:"actions"`
	BaselineProfit float64      `json:"baseline_profit"`
	TargetProfit   float64      `json:"target_profit"`
	AchievedProfit float64      `json:"achieved_profit"`
}
