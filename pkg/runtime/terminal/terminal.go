package terminal

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/de-tools/dealer-planner/pkg/runtime/terminal/commands"
	"github.com/de-tools/dealer-planner/pkg/runtime/terminal/export"
)

// CLI represents the command-line interface
type CLI struct {
	factory  commands.PlannerFactory
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Factory commands.PlannerFactory
	Output  io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Factory == nil {
		opts.Factory = BuildPlanner
	}

	cli := &CLI{
		factory:  opts.Factory,
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "planner",
		Short: "Dealership KPI planning tool",
	}

	cmd.AddCommand(commands.NewBaselineCmd(cli.factory, cli.reporter))
	cmd.AddCommand(commands.NewScenarioCmd(cli.factory, cli.reporter))
	cmd.AddCommand(commands.NewTargetCmd(cli.factory, cli.reporter))
	cmd.AddCommand(commands.NewActionsCmd(cli.factory, cli.reporter))
	cmd.AddCommand(commands.NewKPIsCmd(cli.factory, cli.reporter))

	return cmd
}
