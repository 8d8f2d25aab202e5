// Package config loads the planner configuration from a YAML profile.
// Every field has a workable default so a bare profile still boots a
// csv-backed planner.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	StoreKindCSV      = "csv"
	StoreKindPostgres = "postgres"
)

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port" validate:"required,min=1,max=65535"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type StoreConfig struct {
	Kind  string `mapstructure:"kind" validate:"required,oneof=csv postgres"`
	Path  string `mapstructure:"path"`
	DSN   string `mapstructure:"dsn"`
	Table string `mapstructure:"table"`
}

type ModelsConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

type PlannerConfig struct {
	Horizon int `mapstructure:"horizon" validate:"required,min=1"`
}

// EconomicsConfig points at the ini file with per-vehicle unit figures.
// An empty path means the built-in defaults.
type EconomicsConfig struct {
	Path string `mapstructure:"path"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Store     StoreConfig     `mapstructure:"store"`
	Models    ModelsConfig    `mapstructure:"models"`
	Planner   PlannerConfig   `mapstructure:"planner"`
	Economics EconomicsConfig `mapstructure:"economics"`
}

func LoadConfig(profilePath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(profilePath)

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("store.kind", StoreKindCSV)
	v.SetDefault("store.table", "kpi_observations")
	v.SetDefault("models.path", "models.json")
	v.SetDefault("planner.horizon", 3)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse planner config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid planner config: %w", err)
	}

	switch cfg.Store.Kind {
	case StoreKindCSV:
		if cfg.Store.Path == "" {
			return nil, fmt.Errorf("store.path is required for the csv store")
		}
	case StoreKindPostgres:
		if cfg.Store.DSN == "" {
			return nil, fmt.Errorf("store.dsn is required for the postgres store")
		}
	}

	return &cfg, nil
}
