package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alphaholdings/entity-registry/modules/registry/services"
)

func newDashboardController(t *testing.T) *DashboardController {
	t.Helper()

	reporting := &stubReporting{
		metrics: services.DashboardMetrics{
			TotalEntities:   11,
			ActiveEntities:  10,
			RootEntities:    1,
			ReportingGroups: 3,
			SectorCodes:     4,
			TotalMappings:   8,
			ActiveMappings:  7,
		},
		counts: []services.KindStatusCount{
			{Kind: "Parent", Status: "Active", Count: 1},
			{Kind: "Subsidiary", Status: "Active", Count: 6},
		},
		timeline: []services.TimelineRow{
			{ABN: "91000000001", Name: "Alpha Holdings Pty Ltd", Kind: "Parent", Status: "Active", EffectiveDate: testDate(2010, time.January, 1)},
		},
		groups: []services.GroupMappingSummaryRow{
			{GroupCode: "FIN_INT", GroupName: "Financial Internal", TotalMappings: 4, ActiveMappings: 4, DistinctEntities: 4, DistinctSectors: 3},
		},
		details: []services.MappingDetailRow{detailFixture()},
		byABN: map[string][]services.MappingDetailRow{
			"91000000002": {detailFixture()},
		},
	}
	app := newTestApp(&stubEntityRepo{entities: registryFixture()}, reporting)
	return NewDashboardController(app).(*DashboardController)
}

func TestDashboardController_Metrics(t *testing.T) {
	c := newDashboardController(t)

	req := httptest.NewRequest(http.MethodGet, "/registry/api/dashboard", nil)
	rec := serveRegistered(c, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]int64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, int64(11), body["total_entities"])
	require.Equal(t, int64(1), body["root_entities"])
	require.Equal(t, int64(7), body["active_mappings"])
}

func TestDashboardController_EntitySummaryTotalsBreakdown(t *testing.T) {
	c := newDashboardController(t)

	req := httptest.NewRequest(http.MethodGet, "/registry/api/reports/entity-summary", nil)
	rec := serveRegistered(c, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Total     int64            `json:"total_entities"`
		Breakdown []map[string]any `json:"breakdown"`
		Timeline  []map[string]any `json:"timeline"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, int64(7), body.Total)
	require.Len(t, body.Breakdown, 2)
	require.Len(t, body.Timeline, 1)
	require.Equal(t, "2010-01-01", body.Timeline[0]["effective_date"])
}

func TestDashboardController_HierarchyReportDerivesDepths(t *testing.T) {
	c := newDashboardController(t)

	req := httptest.NewRequest(http.MethodGet, "/registry/api/reports/hierarchy", nil)
	rec := serveRegistered(c, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Rows []struct {
			ABN        string `json:"abn"`
			ParentName string `json:"parent_name"`
			ChildCount int    `json:"child_count"`
			Depth      int    `json:"depth"`
			Root       bool   `json:"is_root"`
		} `json:"rows"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 4, body.Total)

	require.Equal(t, "91000000001", body.Rows[0].ABN)
	require.True(t, body.Rows[0].Root)
	require.Equal(t, 2, body.Rows[0].ChildCount)
	require.Equal(t, "Alpha Holdings Pty Ltd", body.Rows[1].ParentName)
	require.Equal(t, 1, body.Rows[1].Depth)
}

func TestDashboardController_MappingSummaryCombinesGroupsAndDetails(t *testing.T) {
	c := newDashboardController(t)

	req := httptest.NewRequest(http.MethodGet, "/registry/api/reports/mapping-summary", nil)
	rec := serveRegistered(c, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Groups []struct {
			GroupCode      string `json:"reporting_group_code"`
			ActiveMappings int64  `json:"active_mappings"`
		} `json:"groups"`
		Mappings []struct {
			MappingID     string `json:"mapping_id"`
			Consolidation string `json:"consolidation_percentage"`
		} `json:"mappings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Groups, 1)
	require.Equal(t, "FIN_INT", body.Groups[0].GroupCode)
	require.Len(t, body.Mappings, 1)
	require.Equal(t, "75.50", body.Mappings[0].Consolidation)
}

func TestDashboardController_EntityDetailReport(t *testing.T) {
	c := newDashboardController(t)

	req := httptest.NewRequest(http.MethodGet, "/registry/api/reports/entities/91000000002", nil)
	rec := serveRegistered(c, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Entity struct {
			ABN string `json:"abn"`
		} `json:"entity"`
		ParentName string `json:"parent_name"`
		ChildCount int64  `json:"child_count"`
		Children   []struct {
			ABN string `json:"abn"`
		} `json:"children"`
		Mappings []struct {
			MappingID string `json:"mapping_id"`
		} `json:"mappings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "91000000002", body.Entity.ABN)
	require.Equal(t, "Alpha Holdings Pty Ltd", body.ParentName)
	require.Equal(t, int64(1), body.ChildCount)
	require.Len(t, body.Children, 1)
	require.Equal(t, "91000000005", body.Children[0].ABN)
	require.Len(t, body.Mappings, 1)
	require.Equal(t, "MAP00001", body.Mappings[0].MappingID)
}
