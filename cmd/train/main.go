package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/dealer-planner/pkg/services/config"
	"github.com/de-tools/dealer-planner/pkg/services/registry"
	"github.com/de-tools/dealer-planner/pkg/services/train"
	"github.com/de-tools/dealer-planner/pkg/store/modelbank"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "train",
		Short: "Fit the KPI models and write the model bank",
		RunE:  runTrain,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "planner.yaml",
		"Path to the planner configuration profile")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runTrain(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	source, err := registry.Default().Create(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Store.Kind, err)
	}

	bank, err := train.NewTrainer(source).TrainTracked(ctx)
	if err != nil {
		return fmt.Errorf("training failed: %w", err)
	}

	if err := modelbank.Save(cfg.Models.Path, bank); err != nil {
		return fmt.Errorf("failed to write model bank: %w", err)
	}

	logger.Info().
		Int("models", bank.Len()).
		Str("path", cfg.Models.Path).
		Msg("model bank written")
	return nil
}
