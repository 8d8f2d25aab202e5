package adapters

import (
	"fmt"
	"sort"

	"github.com/de-tools/dealer-planner/pkg/models/domain"
	"github.com/de-tools/dealer-planner/pkg/models/store"
)

// MapObservationsToSeries groups raw observations into per KPI series.
// Input order does not matter; each KPI must form one gapless monthly run.
func MapObservationsToSeries(observations []store.Observation) ([]domain.Series, error) {
	byKPI := make(map[string][]store.Observation)
	for _, obs := range observations {
		byKPI[obs.KPI] = append(byKPI[obs.KPI], obs)
	}

	names := make([]string, 0, len(byKPI))
	for name := range byKPI {
		names = append(names, name)
	}
	sort.Strings(names)

	series := make([]domain.Series, 0, len(names))
	for _, name := range names {
		rows := byKPI[name]
		sort.Slice(rows, func(i, j int) bool {
			return rows[i].Period.Before(rows[j].Period)
		})

		start := domain.NormalizePeriod(rows[0].Period)
		values := make([]float64, 0, len(rows))
		for i, row := range rows {
			period := domain.NormalizePeriod(row.Period)
			expected := domain.AddMonths(start, i)
			if period.Equal(expected) {
				values = append(values, row.Value)
				continue
			}
			if i > 0 && period.Equal(domain.AddMonths(start, i-1)) {
				return nil, fmt.Errorf("kpi %q has duplicate observation for %s",
					name, period.Format(domain.PeriodLayout))
			}
			return nil, fmt.Errorf("kpi %q has a gap: expected %s, found %s",
				name, expected.Format(domain.PeriodLayout), period.Format(domain.PeriodLayout))
		}

		s, err := domain.NewSeries(name, start, values)
		if err != nil {
			return nil, err
		}
		series = append(series, s)
	}
	return series, nil
}
