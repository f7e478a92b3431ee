package services

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/alphaholdings/entity-registry/modules/registry/domain/aggregates/entity"
	"github.com/alphaholdings/entity-registry/modules/registry/domain/aggregates/group"
	"github.com/alphaholdings/entity-registry/modules/registry/domain/aggregates/mapping"
	"github.com/alphaholdings/entity-registry/modules/registry/domain/aggregates/sector"
	"github.com/alphaholdings/entity-registry/modules/registry/domain/hierarchy"
	"github.com/alphaholdings/entity-registry/pkg/metrics"
)

type ServiceError struct {
	Status  int
	Code    string
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *ServiceError) Unwrap() error { return e.Cause }

func newServiceError(status int, code, message string, cause error) *ServiceError {
	return &ServiceError{Status: status, Code: code, Message: message, Cause: cause}
}

func storeError(err error) *ServiceError {
	return newServiceError(http.StatusInternalServerError, "REGISTRY_STORE_ERROR", "registry store failure", err)
}

// mapHierarchyError converts an engine rejection into its transport shape.
// Format and referential failures are client errors; a cycle means the
// request (or the stored data) would break the tree, which is 422 territory.
func mapHierarchyError(err error) error {
	var hErr *hierarchy.Error
	if !errors.As(err, &hErr) {
		return storeError(err)
	}

	var se *ServiceError
	switch hErr.Kind {
	case hierarchy.ErrorKindInvalidIdentifier:
		se = newServiceError(http.StatusBadRequest, "ENTITY_INVALID_ABN", fmt.Sprintf("%s must be an 11-digit ABN", hErr.Field), err)
	case hierarchy.ErrorKindMissingName:
		se = newServiceError(http.StatusBadRequest, "ENTITY_MISSING_NAME", "entity name is required", err)
	case hierarchy.ErrorKindDuplicateIdentifier:
		se = newServiceError(http.StatusConflict, "ENTITY_DUPLICATE_ABN", fmt.Sprintf("ABN %s is already registered", hErr.ABN), err)
	case hierarchy.ErrorKindUnknownParent:
		se = newServiceError(http.StatusUnprocessableEntity, "ENTITY_UNKNOWN_PARENT", fmt.Sprintf("parent ABN %s is not registered", hErr.ABN), err)
	case hierarchy.ErrorKindCycleDetected:
		se = newServiceError(http.StatusUnprocessableEntity, "ENTITY_CYCLE", fmt.Sprintf("hierarchy cycle detected at ABN %s", hErr.ABN), err)
	case hierarchy.ErrorKindHasChildren:
		se = newServiceError(http.StatusConflict, "ENTITY_HAS_CHILDREN", fmt.Sprintf("entity %s still has child entities", hErr.ABN), err)
	default:
		se = storeError(err)
	}
	metrics.ValidationRejections.WithLabelValues(se.Code).Inc()
	return se
}

func mapEntityError(err error) error {
	switch {
	case errors.Is(err, entity.ErrNotFound):
		return newServiceError(http.StatusNotFound, "ENTITY_NOT_FOUND", "entity not found", err)
	case errors.Is(err, entity.ErrABNTaken):
		return newServiceError(http.StatusConflict, "ENTITY_DUPLICATE_ABN", "ABN is already registered", err)
	case errors.Is(err, entity.ErrParentMissing):
		return newServiceError(http.StatusUnprocessableEntity, "ENTITY_UNKNOWN_PARENT", "parent ABN is not registered", err)
	case errors.Is(err, entity.ErrReferenced):
		return newServiceError(http.StatusConflict, "ENTITY_REFERENCED", "entity is still referenced by children or mappings", err)
	}
	return storeError(err)
}

func mapGroupError(err error) error {
	switch {
	case errors.Is(err, group.ErrNotFound):
		return newServiceError(http.StatusNotFound, "GROUP_NOT_FOUND", "reporting group not found", err)
	case errors.Is(err, group.ErrCodeTaken):
		return newServiceError(http.StatusConflict, "GROUP_DUPLICATE_CODE", "reporting group code is already registered", err)
	case errors.Is(err, group.ErrReferenced):
		return newServiceError(http.StatusConflict, "GROUP_REFERENCED", "reporting group is still referenced by mappings", err)
	}
	return storeError(err)
}

func mapSectorError(err error) error {
	switch {
	case errors.Is(err, sector.ErrNotFound):
		return newServiceError(http.StatusNotFound, "SECTOR_NOT_FOUND", "sector code not found", err)
	case errors.Is(err, sector.ErrCodeTaken):
		return newServiceError(http.StatusConflict, "SECTOR_DUPLICATE_CODE", "sector code is already registered", err)
	case errors.Is(err, sector.ErrReferenced):
		return newServiceError(http.StatusConflict, "SECTOR_REFERENCED", "sector code is still referenced by mappings", err)
	}
	return storeError(err)
}

func mapMappingError(err error) error {
	switch {
	case errors.Is(err, mapping.ErrNotFound):
		return newServiceError(http.StatusNotFound, "MAPPING_NOT_FOUND", "mapping not found", err)
	case errors.Is(err, mapping.ErrIDTaken):
		return newServiceError(http.StatusConflict, "MAPPING_DUPLICATE_ID", "mapping id is already registered", err)
	case errors.Is(err, mapping.ErrGroupMissing):
		return newServiceError(http.StatusUnprocessableEntity, "MAPPING_GROUP_NOT_FOUND", "reporting group is not registered", err)
	case errors.Is(err, mapping.ErrSectorMissing):
		return newServiceError(http.StatusUnprocessableEntity, "MAPPING_SECTOR_NOT_FOUND", "sector code is not registered", err)
	case errors.Is(err, mapping.ErrEntityMissing):
		return newServiceError(http.StatusUnprocessableEntity, "MAPPING_ENTITY_NOT_FOUND", "entity is not registered", err)
	}
	return storeError(err)
}
