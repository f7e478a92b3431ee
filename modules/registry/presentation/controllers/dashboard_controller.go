package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/alphaholdings/entity-registry/modules/registry/presentation/mappers"
	"github.com/alphaholdings/entity-registry/modules/registry/services"
	"github.com/alphaholdings/entity-registry/pkg/application"
)

// DashboardController serves the aggregate dashboard and the read-only
// reports derived from the registry.
type DashboardController struct {
	app       application.Application
	dashboard *services.DashboardService
	reports   *services.ReportService
	basePath  string
}

func NewDashboardController(app application.Application) application.Controller {
	return &DashboardController{
		app:       app,
		dashboard: app.Service(services.DashboardService{}).(*services.DashboardService),
		reports:   app.Service(services.ReportService{}).(*services.ReportService),
		basePath:  "/registry/api",
	}
}

func (c *DashboardController) Key() string {
	return c.basePath + "/dashboard"
}

func (c *DashboardController) Register(r *mux.Router) {
	api := r.PathPrefix(c.basePath).Subrouter()

	api.HandleFunc("/dashboard", c.Metrics).Methods(http.MethodGet)
	api.HandleFunc("/reports/entity-summary", c.EntitySummary).Methods(http.MethodGet)
	api.HandleFunc("/reports/hierarchy", c.HierarchyBreakdown).Methods(http.MethodGet)
	api.HandleFunc("/reports/mapping-summary", c.MappingSummary).Methods(http.MethodGet)
	api.HandleFunc("/reports/entities/{abn}", c.EntityDetail).Methods(http.MethodGet)
}

func (c *DashboardController) Metrics(w http.ResponseWriter, r *http.Request) {
	requestID := ensureRequestID(r)

	metrics, err := c.dashboard.Metrics(r.Context())
	if err != nil {
		writeServiceError(w, requestID, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.DashboardMetricsToViewModel(metrics))
}

func (c *DashboardController) EntitySummary(w http.ResponseWriter, r *http.Request) {
	requestID := ensureRequestID(r)

	summary, err := c.reports.EntitySummary(r.Context())
	if err != nil {
		writeServiceError(w, requestID, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.EntitySummaryToViewModel(summary))
}

func (c *DashboardController) HierarchyBreakdown(w http.ResponseWriter, r *http.Request) {
	requestID := ensureRequestID(r)

	rows, err := c.reports.HierarchyBreakdown(r.Context())
	if err != nil {
		writeServiceError(w, requestID, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"rows":  mappers.HierarchyBreakdownToViewModels(rows),
		"total": len(rows),
	})
}

func (c *DashboardController) MappingSummary(w http.ResponseWriter, r *http.Request) {
	requestID := ensureRequestID(r)

	summary, err := c.reports.MappingSummary(r.Context())
	if err != nil {
		writeServiceError(w, requestID, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.MappingSummaryToViewModel(summary))
}

func (c *DashboardController) EntityDetail(w http.ResponseWriter, r *http.Request) {
	requestID := ensureRequestID(r)

	report, err := c.reports.EntityDetail(r.Context(), mux.Vars(r)["abn"])
	if err != nil {
		writeServiceError(w, requestID, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.EntityDetailReportToViewModel(report))
}
