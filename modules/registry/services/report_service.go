package services

import (
	"context"
	"errors"

	"github.com/alphaholdings/entity-registry/modules/registry/domain/aggregates/entity"
	"github.com/alphaholdings/entity-registry/modules/registry/domain/hierarchy"
)

// ReportService assembles the operator-facing reports. Aggregate counts come
// from the reporting read side; anything derived from the tree shape (depth,
// child counts, parent names) is computed by the hierarchy engine on a fresh
// snapshot.
type ReportService struct {
	entities  entity.Repository
	reporting ReportingQueryRepository
}

func NewReportService(entities entity.Repository, reporting ReportingQueryRepository) *ReportService {
	return &ReportService{entities: entities, reporting: reporting}
}

type EntitySummary struct {
	Total     int64
	Breakdown []KindStatusCount
	Timeline  []TimelineRow
}

func (s *ReportService) EntitySummary(ctx context.Context) (EntitySummary, error) {
	breakdown, err := s.reporting.KindStatusCounts(ctx)
	if err != nil {
		return EntitySummary{}, storeError(err)
	}
	timeline, err := s.reporting.EntityTimeline(ctx)
	if err != nil {
		return EntitySummary{}, storeError(err)
	}

	var total int64
	for _, row := range breakdown {
		total += row.Count
	}
	return EntitySummary{Total: total, Breakdown: breakdown, Timeline: timeline}, nil
}

type HierarchyBreakdownRow struct {
	ABN        string
	Name       string
	Kind       entity.Kind
	Status     entity.Status
	ParentABN  string
	ParentName string
	ChildCount int
	Depth      int
	Root       bool
}

func (s *ReportService) HierarchyBreakdown(ctx context.Context) ([]HierarchyBreakdownRow, error) {
	snapshot, err := s.entities.GetAll(ctx, nil)
	if err != nil {
		return nil, mapEntityError(err)
	}
	rows, err := hierarchy.BuildTree(snapshot, nil)
	if err != nil {
		return nil, mapHierarchyError(err)
	}

	names := make(map[string]string, len(snapshot))
	for _, e := range snapshot {
		names[e.ABN()] = e.Name()
	}

	out := make([]HierarchyBreakdownRow, 0, len(rows))
	for _, row := range rows {
		e := row.Entity
		out = append(out, HierarchyBreakdownRow{
			ABN:        e.ABN(),
			Name:       e.Name(),
			Kind:       e.Kind(),
			Status:     e.Status(),
			ParentABN:  e.ParentABN(),
			ParentName: names[e.ParentABN()],
			ChildCount: hierarchy.CountChildren(e.ABN(), snapshot),
			Depth:      row.Depth,
			Root:       e.IsRoot(),
		})
	}
	return out, nil
}

type MappingSummary struct {
	Groups   []GroupMappingSummaryRow
	Mappings []MappingDetailRow
}

func (s *ReportService) MappingSummary(ctx context.Context) (MappingSummary, error) {
	groups, err := s.reporting.GroupMappingSummary(ctx)
	if err != nil {
		return MappingSummary{}, storeError(err)
	}
	mappings, err := s.reporting.MappingDetails(ctx)
	if err != nil {
		return MappingSummary{}, storeError(err)
	}
	return MappingSummary{Groups: groups, Mappings: mappings}, nil
}

type EntityDetailReport struct {
	Entity     entity.Entity
	ParentName string
	ChildCount int64
	Children   []entity.Entity
	Mappings   []MappingDetailRow
}

func (s *ReportService) EntityDetail(ctx context.Context, abn string) (EntityDetailReport, error) {
	normalized := entity.NormalizeABN(abn)
	e, err := s.entities.GetByABN(ctx, normalized)
	if err != nil {
		return EntityDetailReport{}, mapEntityError(err)
	}

	report := EntityDetailReport{Entity: e}
	if e.ParentABN() != "" {
		parent, err := s.entities.GetByABN(ctx, e.ParentABN())
		switch {
		case err == nil:
			report.ParentName = parent.Name()
		case !errors.Is(err, entity.ErrNotFound):
			return EntityDetailReport{}, mapEntityError(err)
		}
	}

	parentABN := e.ABN()
	children, err := s.entities.GetAll(ctx, &entity.FindParams{ParentABN: &parentABN})
	if err != nil {
		return EntityDetailReport{}, mapEntityError(err)
	}
	report.Children = children
	report.ChildCount = int64(len(children))

	mappings, err := s.reporting.EntityMappingDetails(ctx, e.ABN())
	if err != nil {
		return EntityDetailReport{}, storeError(err)
	}
	report.Mappings = mappings
	return report, nil
}
