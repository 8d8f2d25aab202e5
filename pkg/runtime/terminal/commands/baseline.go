package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/dealer-planner/pkg/runtime/terminal/export"
)

type BaselineCmd struct {
	profilePath string
	horizon     int
	factory     PlannerFactory
	reporter    *export.Reporter
}

func NewBaselineCmd(factory PlannerFactory, reporter *export.Reporter) *cobra.Command {
	bc := &BaselineCmd{factory: factory, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Forecast the baseline plan",
		RunE:  bc.run,
	}

	cmd.Flags().StringVar(&bc.profilePath, "profile", "", "Path to the configuration profile")
	cmd.Flags().IntVar(&bc.horizon, "horizon", 0, "Forecast horizon in months (0 uses the configured default)")

	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func (bc *BaselineCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	svc, err := bc.factory(ctx, bc.profilePath)
	if err != nil {
		return fmt.Errorf("failed to build planner from profile %s: %w", bc.profilePath, err)
	}

	plan, err := svc.GetBaseline(ctx, bc.horizon)
	if err != nil {
		return fmt.Errorf("failed to compute baseline: %w", err)
	}

	return bc.reporter.HandlePlan("Baseline plan", plan)
}
