package seed

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/alphaholdings/entity-registry/modules/registry/services"
	"github.com/alphaholdings/entity-registry/pkg/application"
	"github.com/alphaholdings/entity-registry/pkg/configuration"
)

// SeedReferenceData loads the reporting groups and sector codes mappings
// link to.
func SeedReferenceData(ctx context.Context, app application.Application) error {
	logger := configuration.Use().Logger()
	refService := app.Service(services.ReferenceService{}).(*services.ReferenceService)

	groups := []services.ReferenceInput{
		{Code: "FIN_INT", Name: "Financial Internal Reporting", Description: "Management and internal financial reporting"},
		{Code: "FIN_REG", Name: "Financial Regulatory Reporting", Description: "Statutory and regulator submissions"},
		{Code: "OPS_MIS", Name: "Operations MIS Reporting", Description: "Operational performance reporting"},
	}
	for _, in := range groups {
		if _, err := refService.CreateGroup(ctx, in); err != nil {
			if alreadySeeded(err) {
				logger.Infof("Reporting group %s already exists", in.Code)
				continue
			}
			return errors.Wrapf(err, "failed to seed reporting group %s", in.Code)
		}
		logger.Infof("Created reporting group %s", in.Code)
	}

	sectors := []services.ReferenceInput{
		{Code: "F1N01", Name: "Financial Services", Description: "Banking, lending, and financial operations"},
		{Code: "T3C02", Name: "Technology", Description: "Software, IT services, and infrastructure"},
		{Code: "O9P88", Name: "Operations", Description: "Logistics, supply chain, and operations"},
		{Code: "R7D55", Name: "Research & Dev", Description: "Innovation and product development"},
	}
	for _, in := range sectors {
		if _, err := refService.CreateSector(ctx, in); err != nil {
			if alreadySeeded(err) {
				logger.Infof("Sector code %s already exists", in.Code)
				continue
			}
			return errors.Wrapf(err, "failed to seed sector code %s", in.Code)
		}
		logger.Infof("Created sector code %s", in.Code)
	}
	return nil
}
