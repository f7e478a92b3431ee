package entity

import "errors"

var (
	ErrNotFound = errors.New("entity not found")
	// ErrABNTaken is returned when an insert collides with an existing ABN.
	ErrABNTaken = errors.New("abn already registered")
	// ErrParentMissing is returned when the referenced parent ABN does not
	// exist at write time.
	ErrParentMissing = errors.New("parent entity not found")
	// ErrReferenced is returned when a delete is blocked by rows that still
	// reference the entity (children or sector mappings).
	ErrReferenced = errors.New("entity is still referenced")
)
