package postgres

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/dealer-planner/pkg/models/domain"
)

func TestGetObservations_FiltersByKPI(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"kpi", "period", "value"}).
		AddRow(domain.KPIRevenue, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), 410000.0).
		AddRow(domain.KPIRevenue, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), 425000.0).
		AddRow(domain.VehicleOutlander, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), 98.0)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT kpi, period, value FROM kpi_monthly WHERE kpi IN ($1, $2) ORDER BY kpi, period")).
		WithArgs(domain.KPIRevenue, domain.VehicleOutlander).
		WillReturnRows(rows)

	observations, err := NewStore(db, "kpi_monthly").
		GetObservations(context.Background(), []string{domain.KPIRevenue, domain.VehicleOutlander})
	require.NoError(t, err)

	require.Len(t, observations, 3)
	assert.Equal(t, domain.KPIRevenue, observations[0].KPI)
	assert.Equal(t, 410000.0, observations[0].Value)
	assert.Equal(t, domain.VehicleOutlander, observations[2].KPI)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetObservations_NormalizesMidMonthPeriods(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"kpi", "period", "value"}).
		AddRow(domain.VehicleRVR, time.Date(2024, time.March, 15, 13, 45, 0, 0, time.UTC), 52.0)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT kpi, period, value FROM kpi_monthly ORDER BY kpi, period")).
		WillReturnRows(rows)

	observations, err := NewStore(db, "kpi_monthly").GetObservations(context.Background(), nil)
	require.NoError(t, err)

	require.Len(t, observations, 1)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), observations[0].Period)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetObservations_QueryErrorPropagates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT kpi, period, value").
		WillReturnError(fmt.Errorf("relation does not exist"))

	_, err = NewStore(db, "kpi_monthly").GetObservations(context.Background(), nil)
	assert.ErrorContains(t, err, "kpi history query failed")
}

func TestGetObservations_RowErrorPropagates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"kpi", "period", "value"}).
		AddRow(domain.VehicleRVR, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), 52.0).
		RowError(0, fmt.Errorf("connection reset"))

	mock.ExpectQuery("SELECT kpi, period, value").WillReturnRows(rows)

	_, err = NewStore(db, "kpi_monthly").GetObservations(context.Background(), nil)
	assert.Error(t, err)
}
