package registry

import (
	"embed"
	"io/fs"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/alphaholdings/entity-registry/modules/registry/handlers"
	"github.com/alphaholdings/entity-registry/modules/registry/infrastructure/persistence"
	"github.com/alphaholdings/entity-registry/modules/registry/presentation/controllers"
	"github.com/alphaholdings/entity-registry/modules/registry/seed"
	"github.com/alphaholdings/entity-registry/modules/registry/services"
	"github.com/alphaholdings/entity-registry/pkg/application"
	"github.com/alphaholdings/entity-registry/pkg/configuration"
)

//go:embed infrastructure/persistence/schema/*.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

func (m *Module) Register(app application.Application) error {
	schema, err := fs.Sub(migrationFiles, "infrastructure/persistence/schema")
	if err != nil {
		return err
	}
	app.Migrations().RegisterSchema(schema)

	// Reports read a committed snapshot over database/sql; writes go through
	// the pgx pool carried in request context.
	readDB, err := sqlx.Open("postgres", configuration.Use().Database.Opts)
	if err != nil {
		return err
	}
	reporting := persistence.NewReportingQueryRepository(readDB)

	app.RegisterServices(
		services.NewEntityService(persistence.NewEntityRepository(), app.EventPublisher()),
		services.NewReferenceService(
			persistence.NewGroupRepository(),
			persistence.NewSectorRepository(),
			app.EventPublisher(),
		),
		services.NewMappingService(persistence.NewMappingRepository(), app.EventPublisher()),
		services.NewDashboardService(reporting),
		services.NewReportService(persistence.NewEntityRepository(), reporting),
		services.NewExportService(reporting),
	)
	app.RegisterControllers(
		controllers.NewEntitiesController(app),
		controllers.NewReferenceController(app),
		controllers.NewMappingsController(app),
		controllers.NewDashboardController(app),
		controllers.NewExportController(app),
		controllers.NewHealthController(app),
	)
	handlers.RegisterAuditEventHandlers(app)
	return nil
}

func (m *Module) Name() string {
	return "registry"
}

// SeedFuncs returns the sample dataset seeders in dependency order: reference
// data first, then entities, then the mappings that link them.
func SeedFuncs() []application.SeedFunc {
	return []application.SeedFunc{
		seed.SeedReferenceData,
		seed.SeedEntities,
		seed.SeedMappings,
	}
}
