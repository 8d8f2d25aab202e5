package domain

// UnitEconomics is the per-unit cash profile of one vehicle line.
type UnitEconomics struct {
	UnitRevenue  float64
	UnitCost     float64
	Contribution float64 // revenue - cost of sales - commission
}

// Economics holds the dealership's unit economics for every vehicle line.
type Economics struct {
	CommissionRate float64
	Vehicles       map[string]UnitEconomics
}

// ContributionTable maps a vehicle line to its net profit per unit sold.
type ContributionTable map[string]float64

func (e Economics) Contributions() ContributionTable {
	table := make(ContributionTable, len(e.Vehicles))
	for vehicle, ue := range e.Vehicles {
		table[vehicle] = ue.Contribution
	}
	return table
}

func (e Economics) Unit(vehicle string) (UnitEconomics, bool) {
	ue, ok := e.Vehicles[vehicle]
	return ue, ok
}
