package controllers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/alphaholdings/entity-registry/modules/registry/services"
	"github.com/alphaholdings/entity-registry/pkg/application"
)

type ExportController struct {
	app      application.Application
	exports  *services.ExportService
	basePath string
}

func NewExportController(app application.Application) application.Controller {
	return &ExportController{
		app:      app,
		exports:  app.Service(services.ExportService{}).(*services.ExportService),
		basePath: "/registry/api",
	}
}

func (c *ExportController) Key() string {
	return c.basePath + "/export"
}

func (c *ExportController) Register(r *mux.Router) {
	api := r.PathPrefix(c.basePath).Subrouter()

	api.HandleFunc("/export/entities", c.Entities).Methods(http.MethodGet)
	api.HandleFunc("/export/mappings", c.Mappings).Methods(http.MethodGet)
}

func (c *ExportController) Entities(w http.ResponseWriter, r *http.Request) {
	requestID := ensureRequestID(r)

	format, ok := services.ParseExportFormat(r.URL.Query().Get("format"))
	if !ok {
		writeAPIError(w, http.StatusBadRequest, requestID, "EXPORT_INVALID_FORMAT", "format must be csv or xlsx")
		return
	}
	file, err := c.exports.Entities(r.Context(), format)
	if err != nil {
		writeServiceError(w, requestID, err)
		return
	}
	writeExportFile(w, file)
}

func (c *ExportController) Mappings(w http.ResponseWriter, r *http.Request) {
	requestID := ensureRequestID(r)

	format, ok := services.ParseExportFormat(r.URL.Query().Get("format"))
	if !ok {
		writeAPIError(w, http.StatusBadRequest, requestID, "EXPORT_INVALID_FORMAT", "format must be csv or xlsx")
		return
	}
	file, err := c.exports.Mappings(r.Context(), format)
	if err != nil {
		writeServiceError(w, requestID, err)
		return
	}
	writeExportFile(w, file)
}

func writeExportFile(w http.ResponseWriter, file *services.ExportFile) {
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Data)
}
