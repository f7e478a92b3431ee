package services

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alphaholdings/entity-registry/modules/registry/domain/aggregates/entity"
	"github.com/alphaholdings/entity-registry/modules/registry/domain/aggregates/mapping"
	"github.com/alphaholdings/entity-registry/pkg/composables"
	"github.com/alphaholdings/entity-registry/pkg/configuration"
	"github.com/alphaholdings/entity-registry/pkg/eventbus"
)

// MappingService links legal entities to sector codes inside reporting
// groups. Referential checks ride on the store's foreign keys; the service
// validates the consolidation percentage and the effective window up front.
type MappingService struct {
	repo      mapping.Repository
	publisher eventbus.EventBus
}

func NewMappingService(repo mapping.Repository, publisher eventbus.EventBus) *MappingService {
	return &MappingService{repo: repo, publisher: publisher}
}

func (s *MappingService) List(ctx context.Context, filter *mapping.Filter) ([]mapping.Mapping, error) {
	if filter != nil {
		for i, abn := range filter.ABNs {
			filter.ABNs[i] = entity.NormalizeABN(abn)
		}
	}
	mappings, err := s.repo.GetAll(ctx, filter)
	if err != nil {
		return nil, mapMappingError(err)
	}
	return mappings, nil
}

func (s *MappingService) Get(ctx context.Context, id string) (mapping.Mapping, error) {
	m, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return mapping.Mapping{}, mapMappingError(err)
	}
	return m, nil
}

type CreateMappingInput struct {
	// ID is minted when empty. Seeds pass fixed ids so a re-run collides on
	// the primary key instead of inserting duplicates.
	ID            string
	GroupCode     string
	SectorCode    string
	ABN           string
	Consolidation decimal.Decimal
	EffectiveDate time.Time
	EndDate       time.Time
}

func (s *MappingService) Create(ctx context.Context, in CreateMappingInput) (mapping.Mapping, error) {
	if !mapping.ValidConsolidation(in.Consolidation) {
		return mapping.Mapping{}, newServiceError(400, "MAPPING_INVALID_PERCENTAGE", "consolidation percentage must be between 0 and 100", nil)
	}
	if in.EffectiveDate.IsZero() {
		return mapping.Mapping{}, newServiceError(400, "MAPPING_INVALID_WINDOW", "effective date is required", nil)
	}
	if !in.EndDate.IsZero() && in.EndDate.Before(in.EffectiveDate) {
		return mapping.Mapping{}, newServiceError(400, "MAPPING_INVALID_WINDOW", "end date must not precede the effective date", nil)
	}

	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = mapping.NewID()
	}
	actor := composables.UseActor(ctx, configuration.Use().DefaultActor)
	candidate := mapping.New(id, in.GroupCode, in.SectorCode, entity.NormalizeABN(in.ABN), in.Consolidation, in.EffectiveDate).
		WithEndDate(in.EndDate).
		WithCreator(actor)

	var created mapping.Mapping
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.repo.Create(txCtx, candidate)
		if err != nil {
			return mapMappingError(err)
		}
		return nil
	})
	if err != nil {
		return mapping.Mapping{}, err
	}

	s.publisher.Publish(mapping.NewCreatedEvent(created, actor))
	return created, nil
}

type UpdateMappingInput struct {
	Consolidation decimal.Decimal
	// EndDate zero clears the stored end date, keeping the window open.
	EndDate time.Time
	Active  bool
}

func (s *MappingService) Update(ctx context.Context, id string, in UpdateMappingInput) (mapping.Mapping, error) {
	if !mapping.ValidConsolidation(in.Consolidation) {
		return mapping.Mapping{}, newServiceError(400, "MAPPING_INVALID_PERCENTAGE", "consolidation percentage must be between 0 and 100", nil)
	}
	actor := composables.UseActor(ctx, configuration.Use().DefaultActor)

	var old, updated mapping.Mapping
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.GetByID(txCtx, strings.TrimSpace(id))
		if err != nil {
			return mapMappingError(err)
		}
		if !in.EndDate.IsZero() && in.EndDate.Before(existing.EffectiveDate()) {
			return newServiceError(400, "MAPPING_INVALID_WINDOW", "end date must not precede the effective date", nil)
		}
		old = existing

		updated, err = s.repo.Update(txCtx, existing.
			WithConsolidation(in.Consolidation).
			WithEndDate(in.EndDate).
			WithActive(in.Active).
			WithAudit(actor, time.Now().UTC()))
		if err != nil {
			return mapMappingError(err)
		}
		return nil
	})
	if err != nil {
		return mapping.Mapping{}, err
	}

	s.publisher.Publish(mapping.NewUpdatedEvent(old, updated, actor))
	return updated, nil
}

func (s *MappingService) Delete(ctx context.Context, id string) error {
	actor := composables.UseActor(ctx, configuration.Use().DefaultActor)

	var removed mapping.Mapping
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.GetByID(txCtx, strings.TrimSpace(id))
		if err != nil {
			return mapMappingError(err)
		}
		removed = existing
		if err := s.repo.Delete(txCtx, existing.ID()); err != nil {
			return mapMappingError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publisher.Publish(mapping.NewDeletedEvent(removed, actor))
	return nil
}
