package commands

import (
	"context"
	"fmt"

	"github.com/alphaholdings/entity-registry/modules/registry/domain/aggregates/entity"
	"github.com/alphaholdings/entity-registry/modules/registry/presentation/mappers"
	"github.com/alphaholdings/entity-registry/modules/registry/services"
	"github.com/alphaholdings/entity-registry/pkg/application"
	"github.com/alphaholdings/entity-registry/pkg/commands/common"
	"github.com/alphaholdings/entity-registry/pkg/composables"
)

// PrintTree renders the legal-entity hierarchy with box-drawing connectors.
// Filters prune whole subtrees, matching the API's hierarchy endpoint.
func PrintTree(ctx context.Context, statuses, kinds []string, mods ...application.Module) error {
	filter := &services.EntityFilter{}
	for _, raw := range statuses {
		status, ok := entity.ParseStatus(raw)
		if !ok {
			return fmt.Errorf("unknown status %q", raw)
		}
		filter.Statuses = append(filter.Statuses, status)
	}
	for _, raw := range kinds {
		kind, ok := entity.ParseKind(raw)
		if !ok {
			return fmt.Errorf("unknown entity type %q", raw)
		}
		filter.Kinds = append(filter.Kinds, kind)
	}

	app, pool, err := common.NewApplicationWithDefaults(mods...)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer pool.Close()

	entityService := app.Service(services.EntityService{}).(*services.EntityService)
	rows, err := entityService.Tree(composables.WithPool(ctx, pool), filter)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("No legal entities found.")
		return nil
	}
	for _, vm := range mappers.TreeRowsToViewModels(rows) {
		fmt.Printf("%s (%s) - %s\n", vm.Label, vm.ABN, vm.Kind)
	}
	return nil
}
