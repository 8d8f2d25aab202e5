package commands

import (
	"context"

	"github.com/de-tools/dealer-planner/pkg/services/planner"
)

// PlannerFactory is a function type that builds the planning service from a
// configuration profile.
type PlannerFactory func(ctx context.Context, profilePath string) (planner.Service, error)
