package seed

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/alphaholdings/entity-registry/modules/registry/domain/aggregates/entity"
	"github.com/alphaholdings/entity-registry/modules/registry/services"
	"github.com/alphaholdings/entity-registry/pkg/application"
	"github.com/alphaholdings/entity-registry/pkg/configuration"
)

// SeedEntities loads the Alpha Holdings group: a root parent with
// subsidiaries and joint ventures over three levels. Rows are ordered
// parent-first so hierarchy validation sees every parent before its children.
func SeedEntities(ctx context.Context, app application.Application) error {
	logger := configuration.Use().Logger()
	entityService := app.Service(services.EntityService{}).(*services.EntityService)

	rows := []services.CreateEntityInput{
		{ABN: "91000000001", Name: "Alpha Holdings Pty Ltd", Kind: entity.KindParent, Status: entity.StatusActive, EffectiveDate: seedDate(2010, 1, 1)},
		{ABN: "91000000002", Name: "Alpha Finance Pty Ltd", ParentABN: "91000000001", Kind: entity.KindSubsidiary, Status: entity.StatusActive, EffectiveDate: seedDate(2012, 3, 15)},
		{ABN: "91000000003", Name: "Alpha Operations JV", ParentABN: "91000000001", Kind: entity.KindJointVenture, Status: entity.StatusActive, EffectiveDate: seedDate(2013, 6, 1)},
		{ABN: "91000000004", Name: "Alpha Technology Pty Ltd", ParentABN: "91000000001", Kind: entity.KindSubsidiary, Status: entity.StatusActive, EffectiveDate: seedDate(2014, 9, 20)},
		{ABN: "91000000005", Name: "Alpha Finance Services Pty Ltd", ParentABN: "91000000002", Kind: entity.KindSubsidiary, Status: entity.StatusActive, EffectiveDate: seedDate(2015, 2, 1)},
		{ABN: "91000000006", Name: "Alpha Finance Consulting JV", ParentABN: "91000000002", Kind: entity.KindJointVenture, Status: entity.StatusActive, EffectiveDate: seedDate(2016, 5, 10)},
		{ABN: "91000000007", Name: "Alpha Ops Logistics Pty Ltd", ParentABN: "91000000003", Kind: entity.KindSubsidiary, Status: entity.StatusActive, EffectiveDate: seedDate(2016, 8, 1)},
		{ABN: "91000000008", Name: "Alpha Ops Support JV", ParentABN: "91000000003", Kind: entity.KindJointVenture, Status: entity.StatusActive, EffectiveDate: seedDate(2017, 1, 15)},
		{ABN: "91000000009", Name: "Alpha Tech Software Pty Ltd", ParentABN: "91000000004", Kind: entity.KindSubsidiary, Status: entity.StatusActive, EffectiveDate: seedDate(2017, 7, 1)},
		{ABN: "91000000010", Name: "Alpha Tech Infrastructure JV", ParentABN: "91000000004", Kind: entity.KindJointVenture, Status: entity.StatusActive, EffectiveDate: seedDate(2018, 3, 12)},
		{ABN: "91000000011", Name: "Alpha Tech R&D Pty Ltd", ParentABN: "91000000004", Kind: entity.KindSubsidiary, Status: entity.StatusActive, EffectiveDate: seedDate(2019, 11, 5)},
	}
	for _, in := range rows {
		if _, err := entityService.Create(ctx, in); err != nil {
			if alreadySeeded(err) {
				logger.Infof("Entity %s already exists", in.ABN)
				continue
			}
			return errors.Wrapf(err, "failed to seed entity %s", in.ABN)
		}
		logger.Infof("Created entity %s (%s)", in.ABN, in.Name)
	}
	return nil
}
