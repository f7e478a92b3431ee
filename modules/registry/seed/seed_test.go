package seed

import (
	"net/http"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/require"

	"github.com/alphaholdings/entity-registry/modules/registry/services"
)

func TestAlreadySeeded_ToleratesConflictsOnly(t *testing.T) {
	conflict := &services.ServiceError{Status: http.StatusConflict, Code: "ENTITY_DUPLICATE_ABN", Message: "ABN is already registered"}
	require.True(t, alreadySeeded(conflict))
	require.True(t, alreadySeeded(errors.Wrap(conflict, "failed to seed entity 91000000001")))

	missing := &services.ServiceError{Status: http.StatusNotFound, Code: "ENTITY_NOT_FOUND", Message: "entity not found"}
	require.False(t, alreadySeeded(missing))
	require.False(t, alreadySeeded(errors.New("connection refused")))
	require.False(t, alreadySeeded(nil))
}
