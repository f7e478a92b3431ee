package mapping

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("mapping not found")
	ErrIDTaken  = errors.New("mapping id already registered")
	// Reference errors distinguish which foreign key rejected the write.
	ErrGroupMissing  = errors.New("reporting group not found")
	ErrSectorMissing = errors.New("sector code not found")
	ErrEntityMissing = errors.New("entity not found")
)

type Filter struct {
	GroupCodes  []string
	SectorCodes []string
	ABNs        []string
	ActiveOnly  bool
}

type Repository interface {
	GetAll(ctx context.Context, filter *Filter) ([]Mapping, error)
	GetByID(ctx context.Context, id string) (Mapping, error)
	Create(ctx context.Context, m Mapping) (Mapping, error)
	Update(ctx context.Context, m Mapping) (Mapping, error)
	Delete(ctx context.Context, id string) error
}
