package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alphaholdings/entity-registry/modules/registry/presentation/controllers/dtos"
)

func newEntitiesController(t *testing.T) *EntitiesController {
	t.Helper()
	app := newTestApp(&stubEntityRepo{entities: registryFixture()}, &stubReporting{})
	return NewEntitiesController(app).(*EntitiesController)
}

func TestEntitiesController_ListReturnsItemsAndTotal(t *testing.T) {
	c := newEntitiesController(t)

	req := httptest.NewRequest(http.MethodGet, "/registry/api/entities", nil)
	rec := serveRegistered(c, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var body struct {
		Items []map[string]any `json:"items"`
		Total int              `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 4, body.Total)
	require.Len(t, body.Items, 4)
	require.Equal(t, "91000000002", body.Items[0]["abn"])
	require.Equal(t, "2012-03-15", body.Items[0]["effective_date"])
}

func TestEntitiesController_ListFiltersByStatus(t *testing.T) {
	c := newEntitiesController(t)

	req := httptest.NewRequest(http.MethodGet, "/registry/api/entities?status=Inactive", nil)
	rec := serveRegistered(c, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Items []map[string]any `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Items, 1)
	require.Equal(t, "91000000005", body.Items[0]["abn"])
}

func TestEntitiesController_ListRejectsUnknownStatus(t *testing.T) {
	c := newEntitiesController(t)

	req := httptest.NewRequest(http.MethodGet, "/registry/api/entities?status=Dormant", nil)
	rec := serveRegistered(c, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr dtos.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	require.Equal(t, "ENTITY_INVALID_QUERY", apiErr.Code)
	require.Contains(t, apiErr.Message, "Dormant")
	require.NotEmpty(t, apiErr.Meta["request_id"])
}

func TestEntitiesController_GetReturnsDetailWithChildCount(t *testing.T) {
	c := newEntitiesController(t)

	req := httptest.NewRequest(http.MethodGet, "/registry/api/entities/91000000001", nil)
	rec := serveRegistered(c, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "91000000001", body["abn"])
	require.Equal(t, true, body["is_root"])
	require.Equal(t, float64(2), body["child_count"])
}

func TestEntitiesController_GetUnknownIsNotFound(t *testing.T) {
	c := newEntitiesController(t)

	req := httptest.NewRequest(http.MethodGet, "/registry/api/entities/91999999999", nil)
	rec := serveRegistered(c, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var apiErr dtos.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	require.Equal(t, "ENTITY_NOT_FOUND", apiErr.Code)
}

func TestEntitiesController_ChildrenListsDirectOnly(t *testing.T) {
	c := newEntitiesController(t)

	req := httptest.NewRequest(http.MethodGet, "/registry/api/entities/91000000001/children", nil)
	rec := serveRegistered(c, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Items []map[string]any `json:"items"`
		Total int              `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 2, body.Total)
	abns := []string{body.Items[0]["abn"].(string), body.Items[1]["abn"].(string)}
	require.ElementsMatch(t, []string{"91000000002", "91000000003"}, abns)
}

func TestEntitiesController_CreateRejectsInvalidJSON(t *testing.T) {
	c := newEntitiesController(t)

	req := httptest.NewRequest(http.MethodPost, "/registry/api/entities", strings.NewReader("{not json"))
	rec := serveRegistered(c, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr dtos.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	require.Equal(t, "ENTITY_INVALID_JSON", apiErr.Code)
}

func TestEntitiesController_CreateRejectsUnknownField(t *testing.T) {
	c := newEntitiesController(t)

	payload := `{"abn":"91000000008","entity_name":"X","entity_type":"Branch","effective_date":"2020-01-01","surprise":true}`
	req := httptest.NewRequest(http.MethodPost, "/registry/api/entities", strings.NewReader(payload))
	rec := serveRegistered(c, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr dtos.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	require.Equal(t, "ENTITY_INVALID_JSON", apiErr.Code)
}

func TestEntitiesController_CreateRejectsMissingFields(t *testing.T) {
	c := newEntitiesController(t)

	req := httptest.NewRequest(http.MethodPost, "/registry/api/entities", strings.NewReader(`{"entity_name":"No ABN"}`))
	rec := serveRegistered(c, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr dtos.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	require.Equal(t, "ENTITY_VALIDATION_FAILED", apiErr.Code)
	require.Contains(t, apiErr.Message, "ABN")
}

func TestEntitiesController_CreateRejectsUnknownKind(t *testing.T) {
	c := newEntitiesController(t)

	payload := `{"abn":"91000000008","entity_name":"X","entity_type":"Franchise","effective_date":"2020-01-01"}`
	req := httptest.NewRequest(http.MethodPost, "/registry/api/entities", strings.NewReader(payload))
	rec := serveRegistered(c, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr dtos.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	require.Equal(t, "ENTITY_INVALID_TYPE", apiErr.Code)
}

func TestEntitiesController_CreateRejectsBadDate(t *testing.T) {
	c := newEntitiesController(t)

	payload := `{"abn":"91000000008","entity_name":"X","entity_type":"Branch","effective_date":"01/02/2020"}`
	req := httptest.NewRequest(http.MethodPost, "/registry/api/entities", strings.NewReader(payload))
	rec := serveRegistered(c, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr dtos.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	require.Equal(t, "ENTITY_INVALID_DATE", apiErr.Code)
}

func TestEntitiesController_HierarchyRendersConnectors(t *testing.T) {
	c := newEntitiesController(t)

	req := httptest.NewRequest(http.MethodGet, "/registry/api/hierarchy", nil)
	rec := serveRegistered(c, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Rows []struct {
			ABN    string `json:"abn"`
			Depth  int    `json:"depth"`
			Prefix string `json:"prefix"`
			Label  string `json:"label"`
		} `json:"rows"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 4, body.Total)

	require.Equal(t, "91000000001", body.Rows[0].ABN)
	require.Empty(t, body.Rows[0].Prefix)
	require.Equal(t, "├── Alpha Finance Pty Ltd", body.Rows[1].Label)
	require.Equal(t, "│   └── ", body.Rows[2].Prefix)
	require.Equal(t, 2, body.Rows[2].Depth)
	require.Equal(t, "└── Alpha Operations Pty Ltd", body.Rows[3].Label)
}

func TestEntitiesController_HierarchyFilterPrunesSubtrees(t *testing.T) {
	c := newEntitiesController(t)

	req := httptest.NewRequest(http.MethodGet, "/registry/api/hierarchy?status=Active", nil)
	rec := serveRegistered(c, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Rows []struct {
			ABN string `json:"abn"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	for _, row := range body.Rows {
		require.NotEqual(t, "91000000005", row.ABN)
	}
	require.Len(t, body.Rows, 3)
}
