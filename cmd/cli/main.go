package main

import (
	"fmt"
	"os"

	"github.com/de-tools/dealer-planner/pkg/runtime/terminal"
)

func main() {
	cli := terminal.NewCLI(terminal.Options{
		Factory: terminal.BuildPlanner,
		Output:  os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
