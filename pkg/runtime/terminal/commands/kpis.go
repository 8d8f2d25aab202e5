package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/dealer-planner/pkg/runtime/terminal/export"
)

type KPIsCmd struct {
	profilePath string
	factory     PlannerFactory
	reporter    *export.Reporter
}

func NewKPIsCmd(factory PlannerFactory, reporter *export.Reporter) *cobra.Command {
	kc := &KPIsCmd{factory: factory, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "kpis",
		Short: "List the fitted KPI models",
		RunE:  kc.run,
	}

	cmd.Flags().StringVar(&kc.profilePath, "profile", "", "Path to the configuration profile")

	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func (kc *KPIsCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	svc, err := kc.factory(ctx, kc.profilePath)
	if err != nil {
		return fmt.Errorf("failed to build planner from profile %s: %w", kc.profilePath, err)
	}

	infos, err := svc.ListKPIs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list KPI models: %w", err)
	}

	return kc.reporter.HandleKPIs(infos)
}
