package services

import (
	"context"

	"github.com/alphaholdings/entity-registry/modules/registry/domain/aggregates/group"
	"github.com/alphaholdings/entity-registry/modules/registry/domain/aggregates/sector"
	"github.com/alphaholdings/entity-registry/pkg/composables"
	"github.com/alphaholdings/entity-registry/pkg/configuration"
	"github.com/alphaholdings/entity-registry/pkg/eventbus"
)

// ReferenceService maintains the two reference tables mappings link to:
// reporting groups and sector codes.
type ReferenceService struct {
	groups    group.Repository
	sectors   sector.Repository
	publisher eventbus.EventBus
}

func NewReferenceService(groups group.Repository, sectors sector.Repository, publisher eventbus.EventBus) *ReferenceService {
	return &ReferenceService{groups: groups, sectors: sectors, publisher: publisher}
}

type ReferenceInput struct {
	Code        string
	Name        string
	Description string
}

type ReferenceUpdateInput struct {
	Name        string
	Description string
	Active      bool
}

func (s *ReferenceService) Groups(ctx context.Context, activeOnly bool) ([]group.Group, error) {
	groups, err := s.groups.GetAll(ctx, activeOnly)
	if err != nil {
		return nil, mapGroupError(err)
	}
	return groups, nil
}

func (s *ReferenceService) Group(ctx context.Context, code string) (group.Group, error) {
	g, err := s.groups.GetByCode(ctx, group.NormalizeCode(code))
	if err != nil {
		return group.Group{}, mapGroupError(err)
	}
	return g, nil
}

func (s *ReferenceService) CreateGroup(ctx context.Context, in ReferenceInput) (group.Group, error) {
	actor := composables.UseActor(ctx, configuration.Use().DefaultActor)

	var created group.Group
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.groups.Create(txCtx, group.New(in.Code, in.Name, in.Description))
		if err != nil {
			return mapGroupError(err)
		}
		return nil
	})
	if err != nil {
		return group.Group{}, err
	}

	s.publisher.Publish(group.NewCreatedEvent(created, actor))
	return created, nil
}

func (s *ReferenceService) UpdateGroup(ctx context.Context, code string, in ReferenceUpdateInput) (group.Group, error) {
	actor := composables.UseActor(ctx, configuration.Use().DefaultActor)

	var old, updated group.Group
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		existing, err := s.groups.GetByCode(txCtx, group.NormalizeCode(code))
		if err != nil {
			return mapGroupError(err)
		}
		old = existing

		updated, err = s.groups.Update(txCtx, existing.
			WithName(in.Name).
			WithDescription(in.Description).
			WithActive(in.Active))
		if err != nil {
			return mapGroupError(err)
		}
		return nil
	})
	if err != nil {
		return group.Group{}, err
	}

	s.publisher.Publish(group.NewUpdatedEvent(old, updated, actor))
	return updated, nil
}

func (s *ReferenceService) DeleteGroup(ctx context.Context, code string) error {
	actor := composables.UseActor(ctx, configuration.Use().DefaultActor)

	var removed group.Group
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		existing, err := s.groups.GetByCode(txCtx, group.NormalizeCode(code))
		if err != nil {
			return mapGroupError(err)
		}
		removed = existing
		if err := s.groups.Delete(txCtx, existing.Code()); err != nil {
			return mapGroupError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publisher.Publish(group.NewDeletedEvent(removed, actor))
	return nil
}

func (s *ReferenceService) Sectors(ctx context.Context, activeOnly bool) ([]sector.Sector, error) {
	sectors, err := s.sectors.GetAll(ctx, activeOnly)
	if err != nil {
		return nil, mapSectorError(err)
	}
	return sectors, nil
}

func (s *ReferenceService) Sector(ctx context.Context, code string) (sector.Sector, error) {
	sec, err := s.sectors.GetByCode(ctx, sector.NormalizeCode(code))
	if err != nil {
		return sector.Sector{}, mapSectorError(err)
	}
	return sec, nil
}

func (s *ReferenceService) CreateSector(ctx context.Context, in ReferenceInput) (sector.Sector, error) {
	actor := composables.UseActor(ctx, configuration.Use().DefaultActor)

	var created sector.Sector
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.sectors.Create(txCtx, sector.New(in.Code, in.Name, in.Description))
		if err != nil {
			return mapSectorError(err)
		}
		return nil
	})
	if err != nil {
		return sector.Sector{}, err
	}

	s.publisher.Publish(sector.NewCreatedEvent(created, actor))
	return created, nil
}

func (s *ReferenceService) UpdateSector(ctx context.Context, code string, in ReferenceUpdateInput) (sector.Sector, error) {
	actor := composables.UseActor(ctx, configuration.Use().DefaultActor)

	var old, updated sector.Sector
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		existing, err := s.sectors.GetByCode(txCtx, sector.NormalizeCode(code))
		if err != nil {
			return mapSectorError(err)
		}
		old = existing

		updated, err = s.sectors.Update(txCtx, existing.
			WithName(in.Name).
			WithDescription(in.Description).
			WithActive(in.Active))
		if err != nil {
			return mapSectorError(err)
		}
		return nil
	})
	if err != nil {
		return sector.Sector{}, err
	}

	s.publisher.Publish(sector.NewUpdatedEvent(old, updated, actor))
	return updated, nil
}

func (s *ReferenceService) DeleteSector(ctx context.Context, code string) error {
	actor := composables.UseActor(ctx, configuration.Use().DefaultActor)

	var removed sector.Sector
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		existing, err := s.sectors.GetByCode(txCtx, sector.NormalizeCode(code))
		if err != nil {
			return mapSectorError(err)
		}
		removed = existing
		if err := s.sectors.Delete(txCtx, existing.Code()); err != nil {
			return mapSectorError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publisher.Publish(sector.NewDeletedEvent(removed, actor))
	return nil
}
