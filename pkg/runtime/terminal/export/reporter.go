package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/dealer-planner/pkg/models/domain"
)

type TableConfig struct {
	PeriodWidth int
	MoneyWidth  int
	UnitsWidth  int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		PeriodWidth: 7,
		MoneyWidth:  12,
		UnitsWidth:  58,
	}
}

// Reporter renders planning results as fixed-width text tables.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) planFuncs() template.FuncMap {
	return template.FuncMap{
		"formatRow": func(period, revenue, expense, payroll, profit, units string) string {
			return fmt.Sprintf("| %-*s | %*s | %*s | %*s | %*s | %-*s |",
				c.config.PeriodWidth, period,
				c.config.MoneyWidth, revenue,
				c.config.MoneyWidth, expense,
				c.config.MoneyWidth, payroll,
				c.config.MoneyWidth, profit,
				c.config.UnitsWidth, units)
		},
		"formatLine": func(l domain.PlanLine) string {
			return fmt.Sprintf("| %-*s | %*.2f | %*.2f | %*.2f | %*.2f | %-*s |",
				c.config.PeriodWidth, l.Period.Format(domain.PeriodLayout),
				c.config.MoneyWidth, l.Revenue,
				c.config.MoneyWidth, l.Expense,
				c.config.MoneyWidth, l.Payroll,
				c.config.MoneyWidth, l.Profit,
				c.config.UnitsWidth, unitsCell(l.Units))
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.PeriodWidth+2),
				strings.Repeat("-", c.config.MoneyWidth+2),
				strings.Repeat("-", c.config.MoneyWidth+2),
				strings.Repeat("-", c.config.MoneyWidth+2),
				strings.Repeat("-", c.config.MoneyWidth+2),
				strings.Repeat("-", c.config.UnitsWidth+2))
		},
		"formatImpact": func(g domain.GrossImpact) string {
			return fmt.Sprintf("| %-*s | %+*.2f | %+*.2f | %+*.2f | %+*.2f |",
				c.config.PeriodWidth, g.Period.Format(domain.PeriodLayout),
				c.config.MoneyWidth, g.RevenueDelta,
				c.config.MoneyWidth, g.ExpenseDelta,
				c.config.MoneyWidth, g.PayrollDelta,
				c.config.MoneyWidth, g.ProfitDelta)
		},
		"impactHeader": func() string {
			return fmt.Sprintf("| %-*s | %*s | %*s | %*s | %*s |",
				c.config.PeriodWidth, "Month",
				c.config.MoneyWidth, "Revenue",
				c.config.MoneyWidth, "Expense",
				c.config.MoneyWidth, "Payroll",
				c.config.MoneyWidth, "Profit")
		},
		"impactSeparator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.PeriodWidth+2),
				strings.Repeat("-", c.config.MoneyWidth+2),
				strings.Repeat("-", c.config.MoneyWidth+2),
				strings.Repeat("-", c.config.MoneyWidth+2),
				strings.Repeat("-", c.config.MoneyWidth+2))
		},
		"unitRows": unitRows,
	}
}

// HandlePlan renders one plan as a table, one row per forecast month.
func (c *Reporter) HandlePlan(title string, plan domain.Plan) error {
	tmpl := `
{{.Title}} ({{.Plan.Horizon}} months)

{{separator}}
{{formatRow "Month" "Revenue" "Expense" "Payroll" "Profit" "Units"}}
{{separator}}
{{range .Plan.Lines}}{{formatLine .}}
{{end}}{{separator}}
`
	t, err := template.New("plan").Funcs(c.planFuncs()).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, struct {
		Title string
		Plan  domain.Plan
	}{Title: title, Plan: plan})
}

// HandleScenario renders the baseline, the adjusted plan and the gross
// impact of the overrides.
func (c *Reporter) HandleScenario(result domain.ScenarioResult) error {
	if err := c.HandlePlan("Baseline plan", result.Baseline); err != nil {
		return err
	}
	if err := c.HandlePlan("Adjusted plan", result.Adjusted); err != nil {
		return err
	}
	if len(result.Impact) == 0 {
		return nil
	}

	tmpl := `
Gross impact of overrides

{{impactSeparator}}
{{impactHeader}}
{{impactSeparator}}
{{range .Impact}}{{formatImpact .}}
{{end}}{{impactSeparator}}
`
	t, err := template.New("impact").Funcs(c.planFuncs()).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, result)
}

func (c *Reporter) HandleTarget(solution domain.TargetSolution) error {
	tmpl := `
Profit target for {{.Period.Format "2006-01"}}

Baseline profit:   {{printf "%.2f" .BaselineProfit}}
Target profit:     {{printf "%.2f" .TargetProfit}}
Scaling ratio:     {{printf "%.4f" .Ratio}}

Required units:
{{range unitRows .Units}}  {{.Name}}: {{.Count}}
{{end}}
Achievable profit: {{printf "%.2f" .AchievedProfit}}
{{if .Clamped}}
Some unit counts were clamped at zero; the target may stay out of reach.
{{end}}`
	t, err := template.New("target").Funcs(c.planFuncs()).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, solution)
}

func (c *Reporter) HandleActions(plan domain.ActionPlan) error {
	tmpl := `
Action plan for {{.Period.Format "2006-01"}}

Baseline profit:  {{printf "%.2f" .BaselineProfit}}
Target profit:    {{printf "%.2f" .TargetProfit}}

{{if .Actions}}Recommended actions:
{{range .Actions}}  - Sell {{.AdditionalUnits}} more {{.Vehicle}} ({{printf "%.2f" .ProfitPerUnit}} profit per unit)
{{end}}{{else}}The baseline already meets the target; nothing to do.
{{end}}
Projected profit: {{printf "%.2f" .AchievedProfit}}
`
	t, err := template.New("actions").Funcs(c.planFuncs()).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, plan)
}

func (c *Reporter) HandleKPIs(infos []domain.KPIInfo) error {
	tmpl := `
Fitted models

{{range .}}{{printf "%-28s" .Name}} {{printf "%-9s" .Category}} {{printf "%-8s" .Model}} {{printf "%3d" .Observations}} months through {{.LastPeriod.Format "2006-01"}}  rmse {{printf "%.2f" .RMSE}}
{{end}}`
	t, err := template.New("kpis").Funcs(c.planFuncs()).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, infos)
}

// unitsCell flattens a unit map into one table cell, vehicles in their
// reporting order.
func unitsCell(units map[string]int) string {
	parts := make([]string, 0, len(units))
	for _, row := range unitRows(units) {
		parts = append(parts, fmt.Sprintf("%s=%d", row.Name, row.Count))
	}
	return strings.Join(parts, "  ")
}

type unitRow struct {
	Name  string
	Count int
}

func unitRows(units map[string]int) []unitRow {
	rows := make([]unitRow, 0, len(units))
	for _, vehicle := range domain.VehicleKPIs() {
		if count, ok := units[vehicle]; ok {
			rows = append(rows, unitRow{Name: vehicle, Count: count})
		}
	}
	return rows
}
