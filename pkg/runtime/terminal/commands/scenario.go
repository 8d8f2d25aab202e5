package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/de-tools/dealer-planner/pkg/models/domain"
	"github.com/de-tools/dealer-planner/pkg/runtime/terminal/export"
)

type ScenarioCmd struct {
	profilePath string
	horizon     int
	period      int
	overrides   []string
	factory     PlannerFactory
	reporter    *export.Reporter
}

func NewScenarioCmd(factory PlannerFactory, reporter *export.Reporter) *cobra.Command {
	sc := &ScenarioCmd{factory: factory, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Recompute the plan under overridden unit sales",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.profilePath, "profile", "", "Path to the configuration profile")
	cmd.Flags().IntVar(&sc.horizon, "horizon", 0, "Forecast horizon in months (0 uses the configured default)")
	cmd.Flags().IntVar(&sc.period, "period", -1, "Apply overrides to one month only (0-based, -1 for all months)")
	cmd.Flags().StringArrayVar(&sc.overrides, "set", nil, `Unit override as "Vehicle=units", repeatable`)

	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func (sc *ScenarioCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	overrides, err := parseOverrides(sc.overrides)
	if err != nil {
		return err
	}

	svc, err := sc.factory(ctx, sc.profilePath)
	if err != nil {
		return fmt.Errorf("failed to build planner from profile %s: %w", sc.profilePath, err)
	}

	scenario := domain.Scenario{
		Horizon:   sc.horizon,
		Overrides: overrides,
	}
	if sc.period >= 0 {
		period := sc.period
		scenario.Period = &period
	}

	result, err := svc.ApplyScenario(ctx, scenario)
	if err != nil {
		return fmt.Errorf("failed to apply scenario: %w", err)
	}

	return sc.reporter.HandleScenario(result)
}

func parseOverrides(pairs []string) (map[string]int, error) {
	overrides := make(map[string]int, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("bad override %q, want Vehicle=units", pair)
		}
		units, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("bad unit count in %q: %w", pair, err)
		}
		overrides[strings.TrimSpace(name)] = units
	}
	return overrides, nil
}
