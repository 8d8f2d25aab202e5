// Package economics loads the dealership's per vehicle unit economics from
// an INI registry file. Each vehicle line is a section:
//
//	commission_rate = 0.05
//
//	[Outlander]
//	revenue = 30000
//	cost_of_sales = 25000
//
// The net contribution per unit is derived, never stored, so the registry
// cannot drift out of sync with itself.
package economics

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/ini.v1"

	"github.com/de-tools/dealer-planner/pkg/models/domain"
)

const DefaultCommissionRate = 0.05

const (
	keyRevenue     = "revenue"
	keyCostOfSales = "cost_of_sales"
	keyCommission  = "commission_rate"
)

// Load reads a unit economics registry from disk.
func Load(path string) (domain.Economics, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return domain.Economics{}, fmt.Errorf("loading unit economics from %s: %w", path, err)
	}
	return fromFile(cfg)
}

func fromFile(cfg *ini.File) (domain.Economics, error) {
	rate := DefaultCommissionRate
	if cfg.Section(ini.DefaultSection).HasKey(keyCommission) {
		parsed, err := cfg.Section(ini.DefaultSection).Key(keyCommission).Float64()
		if err != nil {
			return domain.Economics{}, fmt.Errorf("bad %s: %w", keyCommission, err)
		}
		if parsed < 0 || parsed >= 1 {
			return domain.Economics{}, fmt.Errorf("commission rate %v is outside [0, 1)", parsed)
		}
		rate = parsed
	}

	vehicles := make(map[string]domain.UnitEconomics)
	for _, section := range cfg.Sections() {
		if section.Name() == ini.DefaultSection || len(section.Keys()) == 0 {
			continue
		}

		revenue, err := section.Key(keyRevenue).Float64()
		if err != nil {
			return domain.Economics{}, fmt.Errorf("vehicle %q: bad %s: %w", section.Name(), keyRevenue, err)
		}
		cost, err := section.Key(keyCostOfSales).Float64()
		if err != nil {
			return domain.Economics{}, fmt.Errorf("vehicle %q: bad %s: %w", section.Name(), keyCostOfSales, err)
		}
		if revenue < 0 || cost < 0 {
			return domain.Economics{}, fmt.Errorf("vehicle %q: revenue and cost of sales must be non-negative", section.Name())
		}

		vehicles[section.Name()] = derive(revenue, cost, rate)
	}

	if len(vehicles) == 0 {
		return domain.Economics{}, fmt.Errorf("unit economics registry has no vehicle sections")
	}
	return domain.Economics{CommissionRate: rate, Vehicles: vehicles}, nil
}

// derive computes contribution = revenue - cost - revenue*rate in decimal
// arithmetic, so registry figures like 0.05 behave like the exact fractions
// the sales office means.
func derive(revenue, cost, rate float64) domain.UnitEconomics {
	rev := decimal.NewFromFloat(revenue)
	cst := decimal.NewFromFloat(cost)
	commission := rev.Mul(decimal.NewFromFloat(rate))
	contribution := rev.Sub(cst).Sub(commission)

	return domain.UnitEconomics{
		UnitRevenue:  revenue,
		UnitCost:     cost,
		Contribution: contribution.InexactFloat64(),
	}
}

// Defaults returns the standing showroom assumptions, used when no registry
// file is configured.
func Defaults() domain.Economics {
	rate := DefaultCommissionRate
	return domain.Economics{
		CommissionRate: rate,
		Vehicles: map[string]domain.UnitEconomics{
			domain.VehicleOutlander:    derive(30000, 25000, rate),
			domain.VehicleRVR:          derive(24000, 20000, rate),
			domain.VehicleEclipseCross: derive(28000, 24000, rate),
			domain.VehicleMirage:       derive(18000, 15000, rate),
		},
	}
}
