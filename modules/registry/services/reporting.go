package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ReportingQueryRepository is the aggregate read side: denormalized rows the
// dashboard, reports and exports are built from. Implementations run plain
// read-only SQL against the registry pool, outside the write transaction
// plumbing.
type ReportingQueryRepository interface {
	DashboardMetrics(ctx context.Context) (DashboardMetrics, error)
	KindStatusCounts(ctx context.Context) ([]KindStatusCount, error)
	EntityTimeline(ctx context.Context) ([]TimelineRow, error)
	GroupMappingSummary(ctx context.Context) ([]GroupMappingSummaryRow, error)
	MappingDetails(ctx context.Context) ([]MappingDetailRow, error)
	EntityMappingDetails(ctx context.Context, abn string) ([]MappingDetailRow, error)
	EntityExportRows(ctx context.Context) ([]EntityExportRow, error)
}

type DashboardMetrics struct {
	TotalEntities   int64 `db:"total_entities"`
	ActiveEntities  int64 `db:"active_entities"`
	RootEntities    int64 `db:"root_entities"`
	ReportingGroups int64 `db:"reporting_groups"`
	SectorCodes     int64 `db:"sector_codes"`
	TotalMappings   int64 `db:"total_mappings"`
	ActiveMappings  int64 `db:"active_mappings"`
}

type KindStatusCount struct {
	Kind   string `db:"entity_type"`
	Status string `db:"status"`
	Count  int64  `db:"entity_count"`
}

type TimelineRow struct {
	ABN           string    `db:"abn"`
	Name          string    `db:"entity_name"`
	Kind          string    `db:"entity_type"`
	Status        string    `db:"status"`
	EffectiveDate time.Time `db:"effective_date"`
}

type GroupMappingSummaryRow struct {
	GroupCode        string `db:"reporting_group_code"`
	GroupName        string `db:"reporting_group_name"`
	TotalMappings    int64  `db:"total_mappings"`
	ActiveMappings   int64  `db:"active_mappings"`
	DistinctEntities int64  `db:"distinct_entities"`
	DistinctSectors  int64  `db:"distinct_sectors"`
}

type MappingDetailRow struct {
	MappingID     string          `db:"mapping_id"`
	GroupCode     string          `db:"reporting_group_code"`
	GroupName     string          `db:"reporting_group_name"`
	SectorCode    string          `db:"sector_code"`
	SectorName    string          `db:"sector_name"`
	ABN           string          `db:"abn"`
	EntityName    string          `db:"entity_name"`
	Consolidation decimal.Decimal `db:"consolidation_percentage"`
	EffectiveDate time.Time       `db:"effective_date"`
	EndDate       *time.Time      `db:"end_date"`
	Active        bool            `db:"is_active"`
}

type EntityExportRow struct {
	ABN           string     `db:"abn"`
	Name          string     `db:"entity_name"`
	ParentABN     *string    `db:"parent_abn"`
	Kind          string     `db:"entity_type"`
	Status        string     `db:"status"`
	EffectiveDate time.Time  `db:"effective_date"`
	EndDate       *time.Time `db:"end_date"`
	CreatedBy     *string    `db:"created_by"`
	CreatedAt     time.Time  `db:"created_date"`
	ModifiedBy    *string    `db:"modified_by"`
	ModifiedAt    *time.Time `db:"modified_date"`
}
