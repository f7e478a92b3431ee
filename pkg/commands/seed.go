package commands

import (
	"context"
	"fmt"

	"github.com/alphaholdings/entity-registry/modules/registry"
	"github.com/alphaholdings/entity-registry/pkg/application"
	"github.com/alphaholdings/entity-registry/pkg/commands/common"
	"github.com/alphaholdings/entity-registry/pkg/composables"
	"github.com/alphaholdings/entity-registry/pkg/configuration"
)

// SeedDatabase loads the sample Alpha Holdings dataset through the registry
// services. Re-runs are safe: rows that already exist are logged and skipped.
func SeedDatabase(ctx context.Context, mods ...application.Module) error {
	app, pool, err := common.NewApplicationWithDefaults(mods...)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer pool.Close()

	seeder := application.NewSeeder()
	seeder.Register(registry.SeedFuncs()...)

	if err := seeder.Seed(composables.WithPool(ctx, pool), app); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}
	configuration.Use().Logger().Info("Sample dataset seeded successfully")
	return nil
}
