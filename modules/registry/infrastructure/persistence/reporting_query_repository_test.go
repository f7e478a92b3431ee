package persistence

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newReportingMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestReportingQueryRepository_DashboardMetrics(t *testing.T) {
	t.Parallel()

	db, mock := newReportingMock(t)
	repo := NewReportingQueryRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(dashboardMetricsSQL)).WillReturnRows(
		sqlmock.NewRows([]string{
			"total_entities", "active_entities", "root_entities",
			"reporting_groups", "sector_codes", "total_mappings", "active_mappings",
		}).AddRow(11, 10, 1, 3, 4, 8, 7),
	)

	metrics, err := repo.DashboardMetrics(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(11), metrics.TotalEntities)
	require.Equal(t, int64(10), metrics.ActiveEntities)
	require.Equal(t, int64(1), metrics.RootEntities)
	require.Equal(t, int64(3), metrics.ReportingGroups)
	require.Equal(t, int64(4), metrics.SectorCodes)
	require.Equal(t, int64(8), metrics.TotalMappings)
	require.Equal(t, int64(7), metrics.ActiveMappings)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReportingQueryRepository_KindStatusCounts(t *testing.T) {
	t.Parallel()

	db, mock := newReportingMock(t)
	repo := NewReportingQueryRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(kindStatusCountsSQL)).WillReturnRows(
		sqlmock.NewRows([]string{"entity_type", "status", "entity_count"}).
			AddRow("JV", "Active", 4).
			AddRow("Parent", "Active", 1).
			AddRow("Subsidiary", "Active", 5).
			AddRow("Subsidiary", "Inactive", 1),
	)

	counts, err := repo.KindStatusCounts(context.Background())
	require.NoError(t, err)
	require.Len(t, counts, 4)
	require.Equal(t, "Parent", counts[1].Kind)
	require.Equal(t, "Active", counts[1].Status)
	require.Equal(t, int64(1), counts[1].Count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReportingQueryRepository_GroupMappingSummary(t *testing.T) {
	t.Parallel()

	db, mock := newReportingMock(t)
	repo := NewReportingQueryRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(groupMappingSummarySQL)).WillReturnRows(
		sqlmock.NewRows([]string{
			"reporting_group_code", "reporting_group_name",
			"total_mappings", "active_mappings", "distinct_entities", "distinct_sectors",
		}).
			AddRow("FIN_INT", "Financial Internal Reporting", 4, 3, 4, 3).
			AddRow("OPS_MIS", "Operations MIS Reporting", 1, 1, 1, 1),
	)

	rows, err := repo.GroupMappingSummary(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "FIN_INT", rows[0].GroupCode)
	require.Equal(t, int64(4), rows[0].TotalMappings)
	require.Equal(t, int64(3), rows[0].ActiveMappings)
	require.Equal(t, int64(4), rows[0].DistinctEntities)
	require.Equal(t, int64(3), rows[0].DistinctSectors)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReportingQueryRepository_EntityMappingDetails(t *testing.T) {
	t.Parallel()

	db, mock := newReportingMock(t)
	repo := NewReportingQueryRepository(db)

	effective := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(entityMappingDetailsSQL)).
		WithArgs("91000000002").
		WillReturnRows(sqlmock.NewRows([]string{
			"mapping_id", "reporting_group_code", "reporting_group_name",
			"sector_code", "sector_name", "abn", "entity_name",
			"consolidation_percentage", "effective_date", "end_date", "is_active",
		}).AddRow(
			"MAP00001", "FIN_INT", "Financial Internal Reporting",
			"F1N01", "Financial Services", "91000000002", "Alpha Finance Pty Ltd",
			"75.50", effective, nil, true,
		))

	rows, err := repo.EntityMappingDetails(context.Background(), "91000000002")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "MAP00001", rows[0].MappingID)
	require.Equal(t, "Financial Internal Reporting", rows[0].GroupName)
	require.Equal(t, "Financial Services", rows[0].SectorName)
	require.True(t, rows[0].Consolidation.Equal(decimal.RequireFromString("75.5")))
	require.Equal(t, effective, rows[0].EffectiveDate)
	require.Nil(t, rows[0].EndDate)
	require.True(t, rows[0].Active)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReportingQueryRepository_EntityExportRows(t *testing.T) {
	t.Parallel()

	db, mock := newReportingMock(t)
	repo := NewReportingQueryRepository(db)

	created := time.Date(2024, 5, 2, 10, 30, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(entityExportSQL)).WillReturnRows(
		sqlmock.NewRows([]string{
			"abn", "entity_name", "parent_abn", "entity_type", "status",
			"effective_date", "end_date", "created_by", "created_date",
			"modified_by", "modified_date",
		}).
			AddRow("91000000001", "Alpha Holdings Pty Ltd", nil, "Parent", "Active",
				time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC), nil, "system", created, nil, nil).
			AddRow("91000000002", "Alpha Finance Pty Ltd", "91000000001", "Subsidiary", "Active",
				time.Date(2012, 3, 15, 0, 0, 0, 0, time.UTC), nil, "system", created, nil, nil),
	)

	rows, err := repo.EntityExportRows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Nil(t, rows[0].ParentABN)
	require.NotNil(t, rows[1].ParentABN)
	require.Equal(t, "91000000001", *rows[1].ParentABN)
	require.Equal(t, created, rows[0].CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}
