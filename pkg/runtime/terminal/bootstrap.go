package terminal

import (
	"context"
	"fmt"

	"github.com/de-tools/dealer-planner/pkg/services/config"
	"github.com/de-tools/dealer-planner/pkg/services/economics"
	"github.com/de-tools/dealer-planner/pkg/services/planner"
	"github.com/de-tools/dealer-planner/pkg/store/modelbank"
)

// BuildPlanner assembles the planning service from a configuration profile:
// the fitted model bank plus the unit economics registry.
func BuildPlanner(ctx context.Context, profilePath string) (planner.Service, error) {
	cfg, err := config.LoadConfig(profilePath)
	if err != nil {
		return nil, err
	}

	bank, err := modelbank.Load(cfg.Models.Path)
	if err != nil {
		return nil, fmt.Errorf("loading model bank: %w", err)
	}

	eco := economics.Defaults()
	if cfg.Economics.Path != "" {
		if eco, err = economics.Load(cfg.Economics.Path); err != nil {
			return nil, fmt.Errorf("loading unit economics: %w", err)
		}
	}

	return planner.NewService(bank, eco, cfg.Planner.Horizon)
}
