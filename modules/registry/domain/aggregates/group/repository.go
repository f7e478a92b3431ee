package group

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("reporting group not found")
	ErrCodeTaken = errors.New("reporting group code already registered")
	// ErrReferenced is returned when a delete is blocked by mappings that
	// still reference the group.
	ErrReferenced = errors.New("reporting group is still referenced")
)

type Repository interface {
	GetAll(ctx context.Context, activeOnly bool) ([]Group, error)
	GetByCode(ctx context.Context, code string) (Group, error)
	Create(ctx context.Context, g Group) (Group, error)
	Update(ctx context.Context, g Group) (Group, error)
	Delete(ctx context.Context, code string) error
}
