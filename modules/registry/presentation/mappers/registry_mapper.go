package mappers

import (
	"time"

	"github.com/alphaholdings/entity-registry/modules/registry/domain/aggregates/entity"
	"github.com/alphaholdings/entity-registry/modules/registry/domain/aggregates/group"
	"github.com/alphaholdings/entity-registry/modules/registry/domain/aggregates/mapping"
	"github.com/alphaholdings/entity-registry/modules/registry/domain/aggregates/sector"
	"github.com/alphaholdings/entity-registry/modules/registry/presentation/viewmodels"
	"github.com/alphaholdings/entity-registry/modules/registry/services"
)

const dateLayout = "2006-01-02"

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDate(*t)
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatTimestampPtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTimestamp(*t)
}

func EntityToViewModel(e entity.Entity) viewmodels.Entity {
	return viewmodels.Entity{
		ABN:           e.ABN(),
		Name:          e.Name(),
		ParentABN:     e.ParentABN(),
		Kind:          string(e.Kind()),
		Status:        string(e.Status()),
		EffectiveDate: formatDate(e.EffectiveDate()),
		EndDate:       formatDate(e.EndDate()),
		CreatedBy:     e.CreatedBy(),
		CreatedAt:     formatTimestamp(e.CreatedAt()),
		ModifiedBy:    e.ModifiedBy(),
		ModifiedAt:    formatTimestamp(e.ModifiedAt()),
	}
}

func EntitiesToViewModels(entities []entity.Entity) []viewmodels.Entity {
	out := make([]viewmodels.Entity, 0, len(entities))
	for _, e := range entities {
		out = append(out, EntityToViewModel(e))
	}
	return out
}

func EntityInfoToViewModel(info services.EntityInfo) viewmodels.EntityDetail {
	return viewmodels.EntityDetail{
		Entity:     EntityToViewModel(info.Entity),
		Root:       info.Entity.IsRoot(),
		ChildCount: info.ChildCount,
	}
}

func GroupToViewModel(g group.Group) viewmodels.Group {
	return viewmodels.Group{
		Code:        g.Code(),
		Name:        g.Name(),
		Description: g.Description(),
		Active:      g.IsActive(),
		CreatedAt:   formatTimestamp(g.CreatedAt()),
	}
}

func GroupsToViewModels(groups []group.Group) []viewmodels.Group {
	out := make([]viewmodels.Group, 0, len(groups))
	for _, g := range groups {
		out = append(out, GroupToViewModel(g))
	}
	return out
}

func SectorToViewModel(s sector.Sector) viewmodels.Sector {
	return viewmodels.Sector{
		Code:        s.Code(),
		Name:        s.Name(),
		Description: s.Description(),
		Active:      s.IsActive(),
		CreatedAt:   formatTimestamp(s.CreatedAt()),
	}
}

func SectorsToViewModels(sectors []sector.Sector) []viewmodels.Sector {
	out := make([]viewmodels.Sector, 0, len(sectors))
	for _, s := range sectors {
		out = append(out, SectorToViewModel(s))
	}
	return out
}

func MappingToViewModel(m mapping.Mapping) viewmodels.Mapping {
	return viewmodels.Mapping{
		MappingID:     m.ID(),
		GroupCode:     m.GroupCode(),
		SectorCode:    m.SectorCode(),
		ABN:           m.ABN(),
		Consolidation: m.Consolidation().StringFixed(2),
		EffectiveDate: formatDate(m.EffectiveDate()),
		EndDate:       formatDate(m.EndDate()),
		Active:        m.IsActive(),
		CreatedBy:     m.CreatedBy(),
		CreatedAt:     formatTimestamp(m.CreatedAt()),
		ModifiedBy:    m.ModifiedBy(),
		ModifiedAt:    formatTimestamp(m.ModifiedAt()),
	}
}

func MappingsToViewModels(mappings []mapping.Mapping) []viewmodels.Mapping {
	out := make([]viewmodels.Mapping, 0, len(mappings))
	for _, m := range mappings {
		out = append(out, MappingToViewModel(m))
	}
	return out
}

func MappingDetailToViewModel(row services.MappingDetailRow) viewmodels.MappingDetail {
	return viewmodels.MappingDetail{
		MappingID:     row.MappingID,
		GroupCode:     row.GroupCode,
		GroupName:     row.GroupName,
		SectorCode:    row.SectorCode,
		SectorName:    row.SectorName,
		ABN:           row.ABN,
		EntityName:    row.EntityName,
		Consolidation: row.Consolidation.StringFixed(2),
		EffectiveDate: formatDate(row.EffectiveDate),
		EndDate:       formatDatePtr(row.EndDate),
		Active:        row.Active,
	}
}

func MappingDetailsToViewModels(rows []services.MappingDetailRow) []viewmodels.MappingDetail {
	out := make([]viewmodels.MappingDetail, 0, len(rows))
	for _, row := range rows {
		out = append(out, MappingDetailToViewModel(row))
	}
	return out
}

func DashboardMetricsToViewModel(m services.DashboardMetrics) viewmodels.DashboardMetrics {
	return viewmodels.DashboardMetrics{
		TotalEntities:   m.TotalEntities,
		ActiveEntities:  m.ActiveEntities,
		RootEntities:    m.RootEntities,
		ReportingGroups: m.ReportingGroups,
		SectorCodes:     m.SectorCodes,
		TotalMappings:   m.TotalMappings,
		ActiveMappings:  m.ActiveMappings,
	}
}

func EntitySummaryToViewModel(summary services.EntitySummary) viewmodels.EntitySummaryReport {
	breakdown := make([]viewmodels.KindStatusCount, 0, len(summary.Breakdown))
	for _, row := range summary.Breakdown {
		breakdown = append(breakdown, viewmodels.KindStatusCount{
			Kind:   row.Kind,
			Status: row.Status,
			Count:  row.Count,
		})
	}
	timeline := make([]viewmodels.TimelineEntry, 0, len(summary.Timeline))
	for _, row := range summary.Timeline {
		timeline = append(timeline, viewmodels.TimelineEntry{
			ABN:           row.ABN,
			Name:          row.Name,
			Kind:          row.Kind,
			Status:        row.Status,
			EffectiveDate: formatDate(row.EffectiveDate),
		})
	}
	return viewmodels.EntitySummaryReport{
		Total:     summary.Total,
		Breakdown: breakdown,
		Timeline:  timeline,
	}
}

func HierarchyBreakdownToViewModels(rows []services.HierarchyBreakdownRow) []viewmodels.HierarchyBreakdownRow {
	out := make([]viewmodels.HierarchyBreakdownRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, viewmodels.HierarchyBreakdownRow{
			ABN:        row.ABN,
			Name:       row.Name,
			Kind:       string(row.Kind),
			Status:     string(row.Status),
			ParentABN:  row.ParentABN,
			ParentName: row.ParentName,
			ChildCount: row.ChildCount,
			Depth:      row.Depth,
			Root:       row.Root,
		})
	}
	return out
}

func MappingSummaryToViewModel(summary services.MappingSummary) viewmodels.MappingSummaryReport {
	groups := make([]viewmodels.GroupMappingSummary, 0, len(summary.Groups))
	for _, row := range summary.Groups {
		groups = append(groups, viewmodels.GroupMappingSummary{
			GroupCode:        row.GroupCode,
			GroupName:        row.GroupName,
			TotalMappings:    row.TotalMappings,
			ActiveMappings:   row.ActiveMappings,
			DistinctEntities: row.DistinctEntities,
			DistinctSectors:  row.DistinctSectors,
		})
	}
	return viewmodels.MappingSummaryReport{
		Groups:   groups,
		Mappings: MappingDetailsToViewModels(summary.Mappings),
	}
}

func EntityDetailReportToViewModel(report services.EntityDetailReport) viewmodels.EntityDetailReport {
	return viewmodels.EntityDetailReport{
		Entity:     EntityToViewModel(report.Entity),
		ParentName: report.ParentName,
		Root:       report.Entity.IsRoot(),
		ChildCount: report.ChildCount,
		Children:   EntitiesToViewModels(report.Children),
		Mappings:   MappingDetailsToViewModels(report.Mappings),
	}
}
