package main

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/dealer-planner/pkg/metrics"
	"github.com/de-tools/dealer-planner/pkg/server"
	"github.com/de-tools/dealer-planner/pkg/services/config"
	"github.com/de-tools/dealer-planner/pkg/services/economics"
	"github.com/de-tools/dealer-planner/pkg/services/planner"
	"github.com/de-tools/dealer-planner/pkg/store/modelbank"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the dealership planning API",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "planner.yaml",
		"Path to the planner configuration profile")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	bank, err := modelbank.Load(cfg.Models.Path)
	if err != nil {
		return fmt.Errorf("failed to load model bank: %w", err)
	}

	eco := economics.Defaults()
	if cfg.Economics.Path != "" {
		if eco, err = economics.Load(cfg.Economics.Path); err != nil {
			return fmt.Errorf("failed to load unit economics: %w", err)
		}
	}

	svc, err := planner.NewService(bank, eco, cfg.Planner.Horizon)
	if err != nil {
		return fmt.Errorf("failed to create planner: %w", err)
	}

	logger.Info().Msgf("Model bank found at `%s` successfully loaded.", cfg.Models.Path)
	logger.Info().Msgf("Found the following models:")
	infos, _ := svc.ListKPIs(ctx)
	for _, info := range infos {
		logger.Info().Msgf("KPI: `%s`, Model: `%s`, Months: %d", info.Name, info.Model, info.Observations)
	}

	registry := prometheus.NewRegistry()

	host := cfg.Server.Host
	if env := os.Getenv("SERVER_HOST"); env != "" {
		host = env
	}
	port := strconv.Itoa(cfg.Server.Port)
	if env := os.Getenv("SERVER_PORT"); env != "" {
		port = env
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr:            net.JoinHostPort(host, port),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Planner:  svc,
			Metrics:  metrics.NewPlannerMetrics(registry),
			Registry: registry,
		},
	})

	return api.Start()
}
