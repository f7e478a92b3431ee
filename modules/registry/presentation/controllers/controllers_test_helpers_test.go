package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/alphaholdings/entity-registry/modules/registry/domain/aggregates/entity"
	"github.com/alphaholdings/entity-registry/modules/registry/domain/aggregates/group"
	"github.com/alphaholdings/entity-registry/modules/registry/domain/aggregates/mapping"
	"github.com/alphaholdings/entity-registry/modules/registry/domain/aggregates/sector"
	"github.com/alphaholdings/entity-registry/modules/registry/services"
	"github.com/alphaholdings/entity-registry/pkg/application"
	"github.com/alphaholdings/entity-registry/pkg/eventbus"
)

var errStubWrite = errors.New("write not supported in this test")

// stubEntityRepo serves the read paths the JSON handlers exercise; writes
// need a database transaction and are covered elsewhere. Listings come back
// name-ordered, matching the store contract.
type stubEntityRepo struct {
	entities []entity.Entity
}

func (r *stubEntityRepo) GetAll(_ context.Context, params *entity.FindParams) ([]entity.Entity, error) {
	out := make([]entity.Entity, 0, len(r.entities))
	for _, e := range r.entities {
		if params != nil {
			if len(params.Statuses) > 0 && !statusIn(params.Statuses, e.Status()) {
				continue
			}
			if len(params.Kinds) > 0 && !kindIn(params.Kinds, e.Kind()) {
				continue
			}
			if params.ParentABN != nil && e.ParentABN() != *params.ParentABN {
				continue
			}
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name() != out[j].Name() {
			return out[i].Name() < out[j].Name()
		}
		return out[i].ABN() < out[j].ABN()
	})
	return out, nil
}

func (r *stubEntityRepo) GetByABN(_ context.Context, abn string) (entity.Entity, error) {
	for _, e := range r.entities {
		if e.ABN() == abn {
			return e, nil
		}
	}
	return entity.Entity{}, entity.ErrNotFound
}

func (r *stubEntityRepo) CountChildren(_ context.Context, abn string) (int64, error) {
	var n int64
	for _, e := range r.entities {
		if e.ParentABN() == abn {
			n++
		}
	}
	return n, nil
}

func (r *stubEntityRepo) Create(context.Context, entity.Entity) (entity.Entity, error) {
	return entity.Entity{}, errStubWrite
}

func (r *stubEntityRepo) Update(context.Context, entity.Entity) (entity.Entity, error) {
	return entity.Entity{}, errStubWrite
}

func (r *stubEntityRepo) Delete(context.Context, string) error {
	return errStubWrite
}

func statusIn(haystack []entity.Status, needle entity.Status) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func kindIn(haystack []entity.Kind, needle entity.Kind) bool {
	for _, k := range haystack {
		if k == needle {
			return true
		}
	}
	return false
}

type stubReporting struct {
	metrics  services.DashboardMetrics
	counts   []services.KindStatusCount
	timeline []services.TimelineRow
	groups   []services.GroupMappingSummaryRow
	details  []services.MappingDetailRow
	byABN    map[string][]services.MappingDetailRow
	exports  []services.EntityExportRow
	err      error
}

func (r *stubReporting) DashboardMetrics(context.Context) (services.DashboardMetrics, error) {
	return r.metrics, r.err
}

func (r *stubReporting) KindStatusCounts(context.Context) ([]services.KindStatusCount, error) {
	return r.counts, r.err
}

func (r *stubReporting) EntityTimeline(context.Context) ([]services.TimelineRow, error) {
	return r.timeline, r.err
}

func (r *stubReporting) GroupMappingSummary(context.Context) ([]services.GroupMappingSummaryRow, error) {
	return r.groups, r.err
}

func (r *stubReporting) MappingDetails(context.Context) ([]services.MappingDetailRow, error) {
	return r.details, r.err
}

func (r *stubReporting) EntityMappingDetails(_ context.Context, abn string) ([]services.MappingDetailRow, error) {
	return r.byABN[abn], r.err
}

func (r *stubReporting) EntityExportRows(context.Context) ([]services.EntityExportRow, error) {
	return r.exports, r.err
}

type stubGroupRepo struct {
	groups []group.Group
}

func (r *stubGroupRepo) GetAll(_ context.Context, activeOnly bool) ([]group.Group, error) {
	out := make([]group.Group, 0, len(r.groups))
	for _, g := range r.groups {
		if activeOnly && !g.IsActive() {
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

func (r *stubGroupRepo) GetByCode(_ context.Context, code string) (group.Group, error) {
	for _, g := range r.groups {
		if g.Code() == code {
			return g, nil
		}
	}
	return group.Group{}, group.ErrNotFound
}

func (r *stubGroupRepo) Create(context.Context, group.Group) (group.Group, error) {
	return group.Group{}, errStubWrite
}

func (r *stubGroupRepo) Update(context.Context, group.Group) (group.Group, error) {
	return group.Group{}, errStubWrite
}

func (r *stubGroupRepo) Delete(context.Context, string) error {
	return errStubWrite
}

type stubSectorRepo struct {
	sectors []sector.Sector
}

func (r *stubSectorRepo) GetAll(_ context.Context, activeOnly bool) ([]sector.Sector, error) {
	out := make([]sector.Sector, 0, len(r.sectors))
	for _, s := range r.sectors {
		if activeOnly && !s.IsActive() {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *stubSectorRepo) GetByCode(_ context.Context, code string) (sector.Sector, error) {
	for _, s := range r.sectors {
		if s.Code() == code {
			return s, nil
		}
	}
	return sector.Sector{}, sector.ErrNotFound
}

func (r *stubSectorRepo) Create(context.Context, sector.Sector) (sector.Sector, error) {
	return sector.Sector{}, errStubWrite
}

func (r *stubSectorRepo) Update(context.Context, sector.Sector) (sector.Sector, error) {
	return sector.Sector{}, errStubWrite
}

func (r *stubSectorRepo) Delete(context.Context, string) error {
	return errStubWrite
}

type stubMappingRepo struct {
	mappings []mapping.Mapping
}

func (r *stubMappingRepo) GetAll(_ context.Context, filter *mapping.Filter) ([]mapping.Mapping, error) {
	out := make([]mapping.Mapping, 0, len(r.mappings))
	for _, m := range r.mappings {
		if filter != nil {
			if filter.ActiveOnly && !m.IsActive() {
				continue
			}
			if len(filter.GroupCodes) > 0 && !stringIn(filter.GroupCodes, m.GroupCode()) {
				continue
			}
			if len(filter.SectorCodes) > 0 && !stringIn(filter.SectorCodes, m.SectorCode()) {
				continue
			}
			if len(filter.ABNs) > 0 && !stringIn(filter.ABNs, m.ABN()) {
				continue
			}
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *stubMappingRepo) GetByID(_ context.Context, id string) (mapping.Mapping, error) {
	for _, m := range r.mappings {
		if m.ID() == id {
			return m, nil
		}
	}
	return mapping.Mapping{}, mapping.ErrNotFound
}

func (r *stubMappingRepo) Create(context.Context, mapping.Mapping) (mapping.Mapping, error) {
	return mapping.Mapping{}, errStubWrite
}

func (r *stubMappingRepo) Update(context.Context, mapping.Mapping) (mapping.Mapping, error) {
	return mapping.Mapping{}, errStubWrite
}

func (r *stubMappingRepo) Delete(context.Context, string) error {
	return errStubWrite
}

func stringIn(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

var _ entity.Repository = (*stubEntityRepo)(nil)
var _ group.Repository = (*stubGroupRepo)(nil)
var _ sector.Repository = (*stubSectorRepo)(nil)
var _ mapping.Repository = (*stubMappingRepo)(nil)
var _ services.ReportingQueryRepository = (*stubReporting)(nil)

func testDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// registryFixture is a five-entity slice of the sample hierarchy, enough to
// exercise filters and connectors without the full seed.
func registryFixture() []entity.Entity {
	return []entity.Entity{
		entity.New("91000000001", "Alpha Holdings Pty Ltd", "", entity.KindParent, entity.StatusActive, testDate(2010, time.January, 1)),
		entity.New("91000000002", "Alpha Finance Pty Ltd", "91000000001", entity.KindSubsidiary, entity.StatusActive, testDate(2012, time.March, 15)),
		entity.New("91000000003", "Alpha Operations Pty Ltd", "91000000001", entity.KindJointVenture, entity.StatusActive, testDate(2013, time.June, 1)),
		entity.New("91000000005", "Alpha Finance Services Pty Ltd", "91000000002", entity.KindSubsidiary, entity.StatusInactive, testDate(2015, time.February, 1)),
	}
}

func detailFixture() services.MappingDetailRow {
	return services.MappingDetailRow{
		MappingID:     "MAP00001",
		GroupCode:     "FIN_INT",
		GroupName:     "Financial Internal",
		SectorCode:    "F1N01",
		SectorName:    "Finance Core",
		ABN:           "91000000002",
		EntityName:    "Alpha Finance Pty Ltd",
		Consolidation: decimal.RequireFromString("75.5"),
		EffectiveDate: testDate(2020, time.January, 1),
		Active:        true,
	}
}

// newTestApp wires stub-backed services into a pool-less application; the
// handlers under test only read.
func newTestApp(repo entity.Repository, reporting services.ReportingQueryRepository) application.Application {
	bus := eventbus.NewEventPublisher(logrus.New())
	app := application.New(&application.ApplicationOptions{EventBus: bus})
	app.RegisterServices(
		services.NewEntityService(repo, bus),
		services.NewDashboardService(reporting),
		services.NewReportService(repo, reporting),
		services.NewExportService(reporting),
	)
	return app
}

func newReferenceTestApp(groups group.Repository, sectors sector.Repository) application.Application {
	bus := eventbus.NewEventPublisher(logrus.New())
	app := application.New(&application.ApplicationOptions{EventBus: bus})
	app.RegisterServices(services.NewReferenceService(groups, sectors, bus))
	return app
}

func newMappingTestApp(repo mapping.Repository) application.Application {
	bus := eventbus.NewEventPublisher(logrus.New())
	app := application.New(&application.ApplicationOptions{EventBus: bus})
	app.RegisterServices(services.NewMappingService(repo, bus))
	return app
}

func serveRegistered(c application.Controller, r *http.Request) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	c.Register(router)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	return rec
}
