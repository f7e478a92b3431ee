package services

import (
	"context"
	"errors"
	"time"

	"github.com/alphaholdings/entity-registry/modules/registry/domain/aggregates/entity"
	"github.com/alphaholdings/entity-registry/modules/registry/domain/aggregates/group"
	"github.com/alphaholdings/entity-registry/modules/registry/domain/aggregates/sector"
)

// fakeEntityRepo serves a fixed snapshot. Writes are rejected so a test that
// accidentally reaches the store fails loudly.
type fakeEntityRepo struct {
	entities []entity.Entity
}

var errFakeWrite = errors.New("fakeEntityRepo: writes not supported")

func (f *fakeEntityRepo) GetAll(_ context.Context, params *entity.FindParams) ([]entity.Entity, error) {
	if params == nil {
		return append([]entity.Entity(nil), f.entities...), nil
	}
	out := make([]entity.Entity, 0, len(f.entities))
	for _, e := range f.entities {
		if len(params.Statuses) > 0 && !containsStatus(params.Statuses, e.Status()) {
			continue
		}
		if len(params.Kinds) > 0 && !containsKind(params.Kinds, e.Kind()) {
			continue
		}
		if params.ParentABN != nil && e.ParentABN() != *params.ParentABN {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEntityRepo) GetByABN(_ context.Context, abn string) (entity.Entity, error) {
	for _, e := range f.entities {
		if e.ABN() == abn {
			return e, nil
		}
	}
	return entity.Entity{}, entity.ErrNotFound
}

func (f *fakeEntityRepo) CountChildren(_ context.Context, abn string) (int64, error) {
	var n int64
	for _, e := range f.entities {
		if e.ParentABN() == abn {
			n++
		}
	}
	return n, nil
}

func (f *fakeEntityRepo) Create(context.Context, entity.Entity) (entity.Entity, error) {
	return entity.Entity{}, errFakeWrite
}

func (f *fakeEntityRepo) Update(context.Context, entity.Entity) (entity.Entity, error) {
	return entity.Entity{}, errFakeWrite
}

func (f *fakeEntityRepo) Delete(context.Context, string) error {
	return errFakeWrite
}

// fakeReporting answers read-model calls from canned rows.
type fakeReporting struct {
	metrics  DashboardMetrics
	counts   []KindStatusCount
	timeline []TimelineRow
	groups   []GroupMappingSummaryRow
	details  []MappingDetailRow
	byABN    map[string][]MappingDetailRow
	exports  []EntityExportRow
	err      error
}

func (f *fakeReporting) DashboardMetrics(context.Context) (DashboardMetrics, error) {
	return f.metrics, f.err
}

func (f *fakeReporting) KindStatusCounts(context.Context) ([]KindStatusCount, error) {
	return f.counts, f.err
}

func (f *fakeReporting) EntityTimeline(context.Context) ([]TimelineRow, error) {
	return f.timeline, f.err
}

func (f *fakeReporting) GroupMappingSummary(context.Context) ([]GroupMappingSummaryRow, error) {
	return f.groups, f.err
}

func (f *fakeReporting) MappingDetails(context.Context) ([]MappingDetailRow, error) {
	return f.details, f.err
}

func (f *fakeReporting) EntityMappingDetails(_ context.Context, abn string) ([]MappingDetailRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byABN[abn], nil
}

func (f *fakeReporting) EntityExportRows(context.Context) ([]EntityExportRow, error) {
	return f.exports, f.err
}

// fakeGroupRepo and fakeSectorRepo mirror fakeEntityRepo: reads from a fixed
// slice, writes rejected.
type fakeGroupRepo struct {
	groups []group.Group
}

func (f *fakeGroupRepo) GetAll(_ context.Context, activeOnly bool) ([]group.Group, error) {
	out := make([]group.Group, 0, len(f.groups))
	for _, g := range f.groups {
		if activeOnly && !g.IsActive() {
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

func (f *fakeGroupRepo) GetByCode(_ context.Context, code string) (group.Group, error) {
	for _, g := range f.groups {
		if g.Code() == code {
			return g, nil
		}
	}
	return group.Group{}, group.ErrNotFound
}

func (f *fakeGroupRepo) Create(context.Context, group.Group) (group.Group, error) {
	return group.Group{}, errFakeWrite
}

func (f *fakeGroupRepo) Update(context.Context, group.Group) (group.Group, error) {
	return group.Group{}, errFakeWrite
}

func (f *fakeGroupRepo) Delete(context.Context, string) error {
	return errFakeWrite
}

type fakeSectorRepo struct {
	sectors []sector.Sector
}

func (f *fakeSectorRepo) GetAll(_ context.Context, activeOnly bool) ([]sector.Sector, error) {
	out := make([]sector.Sector, 0, len(f.sectors))
	for _, s := range f.sectors {
		if activeOnly && !s.IsActive() {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSectorRepo) GetByCode(_ context.Context, code string) (sector.Sector, error) {
	for _, s := range f.sectors {
		if s.Code() == code {
			return s, nil
		}
	}
	return sector.Sector{}, sector.ErrNotFound
}

func (f *fakeSectorRepo) Create(context.Context, sector.Sector) (sector.Sector, error) {
	return sector.Sector{}, errFakeWrite
}

func (f *fakeSectorRepo) Update(context.Context, sector.Sector) (sector.Sector, error) {
	return sector.Sector{}, errFakeWrite
}

func (f *fakeSectorRepo) Delete(context.Context, string) error {
	return errFakeWrite
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// alphaSnapshot is a trimmed three-level registry: one root, two branches,
// one leaf under each branch.
func alphaSnapshot() []entity.Entity {
	return []entity.Entity{
		entity.New("91000000001", "Alpha Holdings Pty Ltd", "", entity.KindParent, entity.StatusActive, date(2010, 1, 1)),
		entity.New("91000000002", "Alpha Finance Pty Ltd", "91000000001", entity.KindSubsidiary, entity.StatusActive, date(2012, 3, 15)),
		entity.New("91000000003", "Alpha Operations JV", "91000000001", entity.KindJointVenture, entity.StatusActive, date(2013, 6, 1)),
		entity.New("91000000005", "Alpha Finance Services Pty Ltd", "91000000002", entity.KindSubsidiary, entity.StatusInactive, date(2015, 2, 1)),
		entity.New("91000000007", "Alpha Ops Logistics Pty Ltd", "91000000003", entity.KindSubsidiary, entity.StatusActive, date(2016, 8, 1)),
	}
}
