package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/dealer-planner/pkg/runtime/terminal/export"
)

type ActionsCmd struct {
	profilePath  string
	horizon      int
	period       int
	targetProfit float64
	factory      PlannerFactory
	reporter     *export.Reporter
}

func NewActionsCmd(factory PlannerFactory, reporter *export.Reporter) *cobra.Command {
	ac := &ActionsCmd{factory: factory, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "actions",
		Short: "Plan the extra unit sales that close a profit gap",
		RunE:  ac.run,
	}

	cmd.Flags().StringVar(&ac.profilePath, "profile", "", "Path to the configuration profile")
	cmd.Flags().IntVar(&ac.horizon, "horizon", 0, "Forecast horizon in months (0 uses the configured default)")
	cmd.Flags().IntVar(&ac.period, "period", 0, "Forecast month to plan for (0-based)")
	cmd.Flags().Float64Var(&ac.targetProfit, "target", 0, "Profit target for the month")

	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func (ac *ActionsCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	svc, err := ac.factory(ctx, ac.profilePath)
	if err != nil {
		return fmt.Errorf("failed to build planner from profile %s: %w", ac.profilePath, err)
	}

	plan, err := svc.PlanActions(ctx, ac.targetProfit, ac.period, ac.horizon)
	if err != nil {
		return fmt.Errorf("failed to plan actions: %w", err)
	}

	return ac.reporter.HandleActions(plan)
}
