package entity

import "context"

type FindParams struct {
	// Statuses and Kinds filter the listing; empty slices mean no filter.
	Statuses []Status
	Kinds    []Kind
	// ParentABN narrows to direct children of the given entity. A non-nil
	// pointer to the empty string selects root entities instead.
	ParentABN *string
}

type Repository interface {
	GetAll(ctx context.Context, params *FindParams) ([]Entity, error)
	GetByABN(ctx context.Context, abn string) (Entity, error)
	// CountChildren reports the number of entities whose parent is abn,
	// counted against the current store snapshot.
	CountChildren(ctx context.Context, abn string) (int64, error)
	Create(ctx context.Context, e Entity) (Entity, error)
	Update(ctx context.Context, e Entity) (Entity, error)
	Delete(ctx context.Context, abn string) error
}
