package persistence

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/alphaholdings/entity-registry/modules/registry/services"
)

const (
	dashboardMetricsSQL = `
		SELECT
			(SELECT COUNT(*) FROM legal_entities) AS total_entities,
			(SELECT COUNT(*) FROM legal_entities WHERE status = 'Active') AS active_entities,
			(SELECT COUNT(*) FROM legal_entities WHERE parent_abn IS NULL) AS root_entities,
			(SELECT COUNT(*) FROM reporting_groups WHERE is_active) AS reporting_groups,
			(SELECT COUNT(*) FROM sector_codes WHERE is_active) AS sector_codes,
			(SELECT COUNT(*) FROM sector_abn_mapping) AS total_mappings,
			(SELECT COUNT(*) FROM sector_abn_mapping WHERE is_active) AS active_mappings
	`

	kindStatusCountsSQL = `
		SELECT entity_type, status, COUNT(*) AS entity_count
		FROM legal_entities
		GROUP BY entity_type, status
		ORDER BY entity_type, status
	`

	entityTimelineSQL = `
		SELECT abn, entity_name, entity_type, status, effective_date
		FROM legal_entities
		ORDER BY effective_date, abn
	`

	groupMappingSummarySQL = `
		SELECT
			g.reporting_group_code,
			g.reporting_group_name,
			COUNT(m.mapping_id) AS total_mappings,
			COUNT(m.mapping_id) FILTER (WHERE m.is_active) AS active_mappings,
			COUNT(DISTINCT m.abn) AS distinct_entities,
			COUNT(DISTINCT m.sector_code) AS distinct_sectors
		FROM reporting_groups g
		LEFT JOIN sector_abn_mapping m ON m.reporting_group_code = g.reporting_group_code
		GROUP BY g.reporting_group_code, g.reporting_group_name
		ORDER BY g.reporting_group_code
	`

	mappingDetailsSQL = `
		SELECT
			m.mapping_id,
			m.reporting_group_code,
			g.reporting_group_name,
			m.sector_code,
			s.sector_name,
			m.abn,
			e.entity_name,
			m.consolidation_percentage,
			m.effective_date,
			m.end_date,
			m.is_active
		FROM sector_abn_mapping m
		JOIN reporting_groups g ON g.reporting_group_code = m.reporting_group_code
		JOIN sector_codes s ON s.sector_code = m.sector_code
		JOIN legal_entities e ON e.abn = m.abn
		ORDER BY m.mapping_id
	`

	entityMappingDetailsSQL = `
		SELECT
			m.mapping_id,
			m.reporting_group_code,
			g.reporting_group_name,
			m.sector_code,
			s.sector_name,
			m.abn,
			e.entity_name,
			m.consolidation_percentage,
			m.effective_date,
			m.end_date,
			m.is_active
		FROM sector_abn_mapping m
		JOIN reporting_groups g ON g.reporting_group_code = m.reporting_group_code
		JOIN sector_codes s ON s.sector_code = m.sector_code
		JOIN legal_entities e ON e.abn = m.abn
		WHERE m.abn = $1
		ORDER BY m.mapping_id
	`

	entityExportSQL = `
		SELECT abn, entity_name, parent_abn, entity_type, status,
			effective_date, end_date, created_by, created_date,
			modified_by, modified_date
		FROM legal_entities
		ORDER BY abn
	`
)

// reportingQueryRepository serves the aggregate read side over plain
// database/sql. It never joins the pgx transaction plumbing: reports read a
// committed snapshot.
type reportingQueryRepository struct {
	db *sqlx.DB
}

func NewReportingQueryRepository(db *sqlx.DB) services.ReportingQueryRepository {
	return &reportingQueryRepository{db: db}
}

func (r *reportingQueryRepository) DashboardMetrics(ctx context.Context) (services.DashboardMetrics, error) {
	var m services.DashboardMetrics
	if err := r.db.GetContext(ctx, &m, dashboardMetricsSQL); err != nil {
		return services.DashboardMetrics{}, errors.Wrap(err, "query dashboard metrics")
	}
	return m, nil
}

func (r *reportingQueryRepository) KindStatusCounts(ctx context.Context) ([]services.KindStatusCount, error) {
	out := make([]services.KindStatusCount, 0, 8)
	if err := r.db.SelectContext(ctx, &out, kindStatusCountsSQL); err != nil {
		return nil, errors.Wrap(err, "query kind/status counts")
	}
	return out, nil
}

func (r *reportingQueryRepository) EntityTimeline(ctx context.Context) ([]services.TimelineRow, error) {
	out := make([]services.TimelineRow, 0, 32)
	if err := r.db.SelectContext(ctx, &out, entityTimelineSQL); err != nil {
		return nil, errors.Wrap(err, "query entity timeline")
	}
	return out, nil
}

func (r *reportingQueryRepository) GroupMappingSummary(ctx context.Context) ([]services.GroupMappingSummaryRow, error) {
	out := make([]services.GroupMappingSummaryRow, 0, 8)
	if err := r.db.SelectContext(ctx, &out, groupMappingSummarySQL); err != nil {
		return nil, errors.Wrap(err, "query group mapping summary")
	}
	return out, nil
}

func (r *reportingQueryRepository) MappingDetails(ctx context.Context) ([]services.MappingDetailRow, error) {
	out := make([]services.MappingDetailRow, 0, 32)
	if err := r.db.SelectContext(ctx, &out, mappingDetailsSQL); err != nil {
		return nil, errors.Wrap(err, "query mapping details")
	}
	return out, nil
}

func (r *reportingQueryRepository) EntityMappingDetails(ctx context.Context, abn string) ([]services.MappingDetailRow, error) {
	out := make([]services.MappingDetailRow, 0, 8)
	if err := r.db.SelectContext(ctx, &out, entityMappingDetailsSQL, abn); err != nil {
		return nil, errors.Wrap(err, "query entity mapping details")
	}
	return out, nil
}

func (r *reportingQueryRepository) EntityExportRows(ctx context.Context) ([]services.EntityExportRow, error) {
	out := make([]services.EntityExportRow, 0, 32)
	if err := r.db.SelectContext(ctx, &out, entityExportSQL); err != nil {
		return nil, errors.Wrap(err, "query entity export rows")
	}
	return out, nil
}
