// Package registry maps store kinds from the configuration onto concrete
// KPI history sources.
package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/de-tools/dealer-planner/pkg/services/config"
	"github.com/de-tools/dealer-planner/pkg/services/train"
	"github.com/de-tools/dealer-planner/pkg/store/csvfile"
	"github.com/de-tools/dealer-planner/pkg/store/postgres"
)

// SourceFactory is a function type that creates a history source from the
// store configuration.
type SourceFactory func(ctx context.Context, cfg config.StoreConfig) (train.SeriesSource, error)

// Registry manages history source factories by store kind.
type Registry interface {
	// Register adds a new source factory for a store kind
	Register(kind string, factory SourceFactory) error
	// Create instantiates a source for the configured store kind
	Create(ctx context.Context, cfg config.StoreConfig) (train.SeriesSource, error)
	// ListKinds returns a list of registered store kinds
	ListKinds() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]SourceFactory
}

// NewRegistry creates an empty source registry
func NewRegistry() Registry {
	return &registry{
		factories: make(map[string]SourceFactory),
	}
}

// Default returns a registry with the built-in csv and postgres sources.
func Default() Registry {
	r := NewRegistry()
	_ = r.Register(config.StoreKindCSV, func(_ context.Context, cfg config.StoreConfig) (train.SeriesSource, error) {
		return csvfile.NewStore(cfg.Path), nil
	})
	_ = r.Register(config.StoreKindPostgres, func(ctx context.Context, cfg config.StoreConfig) (train.SeriesSource, error) {
		db, err := postgres.Open(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return postgres.NewStore(db, cfg.Table), nil
	})
	return r
}

func (r *registry) Register(kind string, factory SourceFactory) error {
	if kind == "" {
		return fmt.Errorf("store kind cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[kind]; exists {
		return fmt.Errorf("store kind %q is already registered", kind)
	}

	r.factories[kind] = factory
	return nil
}

func (r *registry) Create(ctx context.Context, cfg config.StoreConfig) (train.SeriesSource, error) {
	r.mu.RLock()
	factory, exists := r.factories[cfg.Kind]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("store kind %q is not registered", cfg.Kind)
	}

	return factory(ctx, cfg)
}

func (r *registry) ListKinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.factories))
	for kind := range r.factories {
		kinds = append(kinds, kind)
	}
	return kinds
}
