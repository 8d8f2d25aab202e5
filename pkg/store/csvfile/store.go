// Package csvfile reads KPI history from the flat file produced by the data
// preparation step: one row per (kpi, period, value), one value per month.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/de-tools/dealer-planner/pkg/models/domain"
	"github.com/de-tools/dealer-planner/pkg/models/store"
)

type Store interface {
	GetObservations(ctx context.Context, kpis []string) ([]store.Observation, error)
}

type csvStore struct {
	path string
}

func NewStore(path string) Store {
	return &csvStore{path: path}
}

func (s *csvStore) GetObservations(ctx context.Context, kpis []string) ([]store.Observation, error) {
	logger := zerolog.Ctx(ctx)

	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening KPI history: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close KPI history file")
		}
	}()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 3
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	wanted := make(map[string]bool, len(kpis))
	for _, kpi := range kpis {
		wanted[kpi] = true
	}

	var observations []store.Observation
	for i, row := range rows {
		if i == 0 && strings.EqualFold(row[0], "kpi") {
			continue
		}

		kpi := strings.TrimSpace(row[0])
		if len(wanted) > 0 && !wanted[kpi] {
			continue
		}

		period, err := parsePeriod(row[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad value %q: %w", i+1, row[2], err)
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, fmt.Errorf("row %d: value %q is not finite", i+1, row[2])
		}

		observations = append(observations, store.Observation{
			KPI:    kpi,
			Period: domain.NormalizePeriod(period),
			Value:  value,
		})
	}

	logger.Debug().
		Str("path", s.path).
		Int("observations", len(observations)).
		Msg("loaded KPI history")
	return observations, nil
}

// parsePeriod accepts the month key layout and full dates, which is what the
// preparation step emits depending on the exporting tool.
func parsePeriod(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(domain.PeriodLayout, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("bad period %q, want YYYY-MM or YYYY-MM-DD", raw)
}
