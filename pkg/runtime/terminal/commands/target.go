package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/dealer-planner/pkg/runtime/terminal/export"
)

type TargetCmd struct {
	profilePath  string
	horizon      int
	period       int
	targetProfit float64
	factory      PlannerFactory
	reporter     *export.Reporter
}

func NewTargetCmd(factory PlannerFactory, reporter *export.Reporter) *cobra.Command {
	tc := &TargetCmd{factory: factory, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "target",
		Short: "Solve for the unit sales that reach a profit target",
		RunE:  tc.run,
	}

	cmd.Flags().StringVar(&tc.profilePath, "profile", "", "Path to the configuration profile")
	cmd.Flags().IntVar(&tc.horizon, "horizon", 0, "Forecast horizon in months (0 uses the configured default)")
	cmd.Flags().IntVar(&tc.period, "period", 0, "Forecast month to solve for (0-based)")
	cmd.Flags().Float64Var(&tc.targetProfit, "target", 0, "Profit target for the month")

	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func (tc *TargetCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	svc, err := tc.factory(ctx, tc.profilePath)
	if err != nil {
		return fmt.Errorf("failed to build planner from profile %s: %w", tc.profilePath, err)
	}

	solution, err := svc.SolveTarget(ctx, tc.targetProfit, tc.period, tc.horizon)
	if err != nil {
		return fmt.Errorf("failed to solve profit target: %w", err)
	}

	return tc.reporter.HandleTarget(solution)
}
