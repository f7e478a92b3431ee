package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pressly/goose/v3"

	"github.com/alphaholdings/entity-registry/pkg/application"
	"github.com/alphaholdings/entity-registry/pkg/commands/common"
)

// RunMigrations executes a schema command (up, down, redo, status) against
// the configured database.
func RunMigrations(ctx context.Context, command string, mods ...application.Module) error {
	app, pool, err := common.NewApplicationWithDefaults(mods...)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer pool.Close()

	migrations := app.Migrations()
	switch command {
	case "up":
		return migrations.Up(ctx)
	case "down":
		return migrations.Down(ctx)
	case "redo":
		return migrations.Redo(ctx)
	case "status":
		statuses, err := migrations.Status(ctx)
		if err != nil {
			return err
		}
		printMigrationStatus(statuses)
		return nil
	}
	return fmt.Errorf("unknown migration command %q", command)
}

func printMigrationStatus(statuses []*goose.MigrationStatus) {
	fmt.Printf("%-10s  %-20s  %s\n", "version", "applied at", "migration")
	for _, s := range statuses {
		applied := "pending"
		if s.State == goose.StateApplied {
			applied = s.AppliedAt.UTC().Format("2006-01-02 15:04:05")
		}
		fmt.Printf("%-10d  %-20s  %s\n", s.Source.Version, applied, filepath.Base(s.Source.Path))
	}
}
