package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/alphaholdings/entity-registry/modules/registry/services"
	"github.com/alphaholdings/entity-registry/pkg/application"
	"github.com/alphaholdings/entity-registry/pkg/commands/common"
)

// ExportData writes a registry export (entities or mappings) to a file. An
// empty out path uses the export's canonical filename in the working
// directory.
func ExportData(ctx context.Context, target, format, out string, mods ...application.Module) error {
	exportFormat, ok := services.ParseExportFormat(format)
	if !ok {
		return fmt.Errorf("unknown export format %q (expected csv or xlsx)", format)
	}

	app, pool, err := common.NewApplicationWithDefaults(mods...)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer pool.Close()

	exportService := app.Service(services.ExportService{}).(*services.ExportService)

	var file *services.ExportFile
	switch target {
	case "entities":
		file, err = exportService.Entities(ctx, exportFormat)
	case "mappings":
		file, err = exportService.Mappings(ctx, exportFormat)
	default:
		return fmt.Errorf("unknown export target %q (expected entities or mappings)", target)
	}
	if err != nil {
		return err
	}

	if out == "" {
		out = file.Name
	}
	if err := os.WriteFile(out, file.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	fmt.Printf("Wrote %d bytes to %s\n", len(file.Data), out)
	return nil
}
