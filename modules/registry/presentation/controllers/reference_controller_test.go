package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alphaholdings/entity-registry/modules/registry/domain/aggregates/group"
	"github.com/alphaholdings/entity-registry/modules/registry/domain/aggregates/sector"
	"github.com/alphaholdings/entity-registry/modules/registry/presentation/controllers/dtos"
)

func newReferenceController(t *testing.T) *ReferenceController {
	t.Helper()

	created := time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)
	groups := &stubGroupRepo{groups: []group.Group{
		group.Hydrate("FIN_INT", "Financial Internal", "Internal finance reporting", true, created),
		group.Hydrate("OPS_MIS", "Operational MIS", "Management information", false, created),
	}}
	sectors := &stubSectorRepo{sectors: []sector.Sector{
		sector.Hydrate("F1N01", "Finance Core", "Core finance operations", true, created),
	}}
	app := newReferenceTestApp(groups, sectors)
	return NewReferenceController(app).(*ReferenceController)
}

func TestReferenceController_ListGroups(t *testing.T) {
	c := newReferenceController(t)

	req := httptest.NewRequest(http.MethodGet, "/registry/api/reporting-groups", nil)
	rec := serveRegistered(c, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Items []map[string]any `json:"items"`
		Total int              `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 2, body.Total)
	require.Equal(t, "FIN_INT", body.Items[0]["reporting_group_code"])
	require.Equal(t, true, body.Items[0]["is_active"])
}

func TestReferenceController_ListGroupsActiveOnly(t *testing.T) {
	c := newReferenceController(t)

	req := httptest.NewRequest(http.MethodGet, "/registry/api/reporting-groups?active=true", nil)
	rec := serveRegistered(c, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Items []map[string]any `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Items, 1)
	require.Equal(t, "FIN_INT", body.Items[0]["reporting_group_code"])
}

func TestReferenceController_GetGroupUnknownIsNotFound(t *testing.T) {
	c := newReferenceController(t)

	req := httptest.NewRequest(http.MethodGet, "/registry/api/reporting-groups/MISSING", nil)
	rec := serveRegistered(c, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var apiErr dtos.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	require.Equal(t, "GROUP_NOT_FOUND", apiErr.Code)
}

func TestReferenceController_CreateGroupValidatesPayload(t *testing.T) {
	c := newReferenceController(t)

	req := httptest.NewRequest(http.MethodPost, "/registry/api/reporting-groups", strings.NewReader(`{"name":"No Code"}`))
	rec := serveRegistered(c, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr dtos.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	require.Equal(t, "GROUP_VALIDATION_FAILED", apiErr.Code)
	require.Contains(t, apiErr.Message, "Code")
}

func TestReferenceController_ListSectors(t *testing.T) {
	c := newReferenceController(t)

	req := httptest.NewRequest(http.MethodGet, "/registry/api/sector-codes", nil)
	rec := serveRegistered(c, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Items []map[string]any `json:"items"`
		Total int              `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 1, body.Total)
	require.Equal(t, "F1N01", body.Items[0]["sector_code"])
	require.Equal(t, "Finance Core", body.Items[0]["sector_name"])
}

func TestReferenceController_CreateSectorRejectsInvalidJSON(t *testing.T) {
	c := newReferenceController(t)

	req := httptest.NewRequest(http.MethodPost, "/registry/api/sector-codes", strings.NewReader("not-json"))
	rec := serveRegistered(c, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr dtos.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	require.Equal(t, "SECTOR_INVALID_JSON", apiErr.Code)
}
