package dtos

import (
	"context"

	"github.com/alphaholdings/entity-registry/pkg/constants"
	"github.com/alphaholdings/entity-registry/pkg/serrors"
)

// APIError is the uniform JSON error body. Meta carries request-scoped
// context such as the request id.
type APIError struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Meta    map[string]string `json:"meta,omitempty"`
}

type CreateEntityDTO struct {
	ABN           string `json:"abn" validate:"required"`
	EntityName    string `json:"entity_name" validate:"required"`
	ParentABN     string `json:"parent_abn"`
	EntityType    string `json:"entity_type" validate:"required"`
	Status        string `json:"status"`
	EffectiveDate string `json:"effective_date" validate:"required"`
	EndDate       string `json:"end_date"`
}

func (d *CreateEntityDTO) Ok(ctx context.Context) (map[string]string, bool) {
	err := constants.Validate.StructCtx(ctx, d)
	if err == nil {
		return map[string]string{}, true
	}
	return serrors.FieldErrors(err), false
}

type UpdateEntityDTO struct {
	EntityName    string `json:"entity_name" validate:"required"`
	EntityType    string `json:"entity_type" validate:"required"`
	Status        string `json:"status" validate:"required"`
	EffectiveDate string `json:"effective_date"`
	EndDate       string `json:"end_date"`
}

func (d *UpdateEntityDTO) Ok(ctx context.Context) (map[string]string, bool) {
	err := constants.Validate.StructCtx(ctx, d)
	if err == nil {
		return map[string]string{}, true
	}
	return serrors.FieldErrors(err), false
}

// ReferenceDTO creates a reporting group or a sector code; the two share a
// shape.
type ReferenceDTO struct {
	Code        string `json:"code" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

func (d *ReferenceDTO) Ok(ctx context.Context) (map[string]string, bool) {
	err := constants.Validate.StructCtx(ctx, d)
	if err == nil {
		return map[string]string{}, true
	}
	return serrors.FieldErrors(err), false
}

type UpdateReferenceDTO struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}

func (d *UpdateReferenceDTO) Ok(ctx context.Context) (map[string]string, bool) {
	err := constants.Validate.StructCtx(ctx, d)
	if err == nil {
		return map[string]string{}, true
	}
	return serrors.FieldErrors(err), false
}

type CreateMappingDTO struct {
	MappingID               string `json:"mapping_id"`
	ReportingGroupCode      string `json:"reporting_group_code" validate:"required"`
	SectorCode              string `json:"sector_code" validate:"required"`
	ABN                     string `json:"abn" validate:"required"`
	ConsolidationPercentage string `json:"consolidation_percentage" validate:"required"`
	EffectiveDate           string `json:"effective_date" validate:"required"`
	EndDate                 string `json:"end_date"`
}

func (d *CreateMappingDTO) Ok(ctx context.Context) (map[string]string, bool) {
	err := constants.Validate.StructCtx(ctx, d)
	if err == nil {
		return map[string]string{}, true
	}
	return serrors.FieldErrors(err), false
}

type UpdateMappingDTO struct {
	ConsolidationPercentage string `json:"consolidation_percentage" validate:"required"`
	EndDate                 string `json:"end_date"`
	IsActive                bool   `json:"is_active"`
}

func (d *UpdateMappingDTO) Ok(ctx context.Context) (map[string]string, bool) {
	err := constants.Validate.StructCtx(ctx, d)
	if err == nil {
		return map[string]string{}, true
	}
	return serrors.FieldErrors(err), false
}
