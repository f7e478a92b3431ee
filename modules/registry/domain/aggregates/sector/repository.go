package sector

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("sector code not found")
	ErrCodeTaken = errors.New("sector code already registered")
	// ErrReferenced is returned when a delete is blocked by mappings that
	// still reference the sector.
	ErrReferenced = errors.New("sector code is still referenced")
)

type Repository interface {
	GetAll(ctx context.Context, activeOnly bool) ([]Sector, error)
	GetByCode(ctx context.Context, code string) (Sector, error)
	Create(ctx context.Context, s Sector) (Sector, error)
	Update(ctx context.Context, s Sector) (Sector, error)
	Delete(ctx context.Context, code string) error
}
