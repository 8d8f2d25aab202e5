// Package postgres reads KPI history from the reporting warehouse. The
// expected table has (kpi, period, value) columns with one row per month.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"

	"github.com/de-tools/dealer-planner/pkg/models/domain"
	"github.com/de-tools/dealer-planner/pkg/models/store"
)

type Store interface {
	GetObservations(ctx context.Context, kpis []string) ([]store.Observation, error)
}

type pgStore struct {
	db    *sql.DB
	table string
}

func NewStore(db *sql.DB, table string) Store {
	return &pgStore{db: db, table: table}
}

// Open dials the warehouse through the pgx driver and verifies the
// connection before handing it out.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening warehouse connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging warehouse: %w", err)
	}
	return db, nil
}

func (s *pgStore) GetObservations(ctx context.Context, kpis []string) ([]store.Observation, error) {
	logger := zerolog.Ctx(ctx)

	query := fmt.Sprintf("SELECT kpi, period, value FROM %s", s.table)
	var args []any
	if len(kpis) > 0 {
		placeholders := make([]string, len(kpis))
		for i, kpi := range kpis {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
			args = append(args, kpi)
		}
		query += " WHERE kpi IN (" + strings.Join(placeholders, ", ") + ")"
	}
	query += " ORDER BY kpi, period"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("kpi history query failed: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close kpi history rows")
		}
	}()

	var observations []store.Observation
	for rows.Next() {
		var obs store.Observation
		if err := rows.Scan(&obs.KPI, &obs.Period, &obs.Value); err != nil {
			return nil, fmt.Errorf("scanning kpi history row: %w", err)
		}
		obs.Period = domain.NormalizePeriod(obs.Period)
		observations = append(observations, obs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating kpi history rows: %w", err)
	}

	logger.Debug().
		Str("table", s.table).
		Int("observations", len(observations)).
		Msg("loaded KPI history")
	return observations, nil
}
