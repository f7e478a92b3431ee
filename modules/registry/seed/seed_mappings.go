package seed

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/alphaholdings/entity-registry/modules/registry/services"
	"github.com/alphaholdings/entity-registry/pkg/application"
	"github.com/alphaholdings/entity-registry/pkg/configuration"
)

// SeedMappings links the Alpha Holdings entities to sector codes. IDs are
// fixed so a re-run collides on the primary key instead of minting
// duplicates. Joint ventures carry partial consolidation; MAP00006 is
// end-dated and MAP00008 is retired to give reports both window states.
func SeedMappings(ctx context.Context, app application.Application) error {
	logger := configuration.Use().Logger()
	mappingService := app.Service(services.MappingService{}).(*services.MappingService)

	rows := []services.CreateMappingInput{
		{ID: "MAP00001", GroupCode: "FIN_INT", SectorCode: "F1N01", ABN: "91000000002", Consolidation: decimal.NewFromInt(100), EffectiveDate: seedDate(2020, 1, 1)},
		{ID: "MAP00002", GroupCode: "FIN_REG", SectorCode: "F1N01", ABN: "91000000005", Consolidation: decimal.NewFromInt(100), EffectiveDate: seedDate(2020, 1, 1)},
		{ID: "MAP00003", GroupCode: "FIN_INT", SectorCode: "T3C02", ABN: "91000000004", Consolidation: decimal.NewFromInt(100), EffectiveDate: seedDate(2020, 1, 1)},
		{ID: "MAP00004", GroupCode: "FIN_REG", SectorCode: "T3C02", ABN: "91000000009", Consolidation: decimal.RequireFromString("75.5"), EffectiveDate: seedDate(2020, 1, 1)},
		{ID: "MAP00005", GroupCode: "OPS_MIS", SectorCode: "O9P88", ABN: "91000000003", Consolidation: decimal.NewFromInt(50), EffectiveDate: seedDate(2020, 1, 1)},
		{ID: "MAP00006", GroupCode: "FIN_INT", SectorCode: "O9P88", ABN: "91000000007", Consolidation: decimal.NewFromInt(100), EffectiveDate: seedDate(2020, 1, 1), EndDate: seedDate(2024, 6, 30)},
		{ID: "MAP00007", GroupCode: "FIN_INT", SectorCode: "R7D55", ABN: "91000000011", Consolidation: decimal.NewFromInt(100), EffectiveDate: seedDate(2021, 1, 1)},
		{ID: "MAP00008", GroupCode: "FIN_REG", SectorCode: "R7D55", ABN: "91000000010", Consolidation: decimal.NewFromInt(49), EffectiveDate: seedDate(2021, 1, 1)},
	}
	for _, in := range rows {
		created, err := mappingService.Create(ctx, in)
		if err != nil {
			if alreadySeeded(err) {
				logger.Infof("Mapping %s already exists", in.ID)
				continue
			}
			return errors.Wrapf(err, "failed to seed mapping %s", in.ID)
		}
		logger.Infof("Created mapping %s (%s/%s -> %s)", created.ID(), created.GroupCode(), created.SectorCode(), created.ABN())

		if in.ID != "MAP00008" {
			continue
		}
		_, err = mappingService.Update(ctx, in.ID, services.UpdateMappingInput{
			Consolidation: in.Consolidation,
			Active:        false,
		})
		if err != nil {
			return errors.Wrapf(err, "failed to retire mapping %s", in.ID)
		}
		logger.Infof("Retired mapping %s", in.ID)
	}
	return nil
}
