package controllers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/alphaholdings/entity-registry/modules/registry/presentation/controllers/dtos"
	"github.com/alphaholdings/entity-registry/modules/registry/presentation/mappers"
	"github.com/alphaholdings/entity-registry/modules/registry/services"
	"github.com/alphaholdings/entity-registry/pkg/application"
)

// ReferenceController serves the two reference tables the mappings hang off:
// reporting groups and sector codes. The surfaces are identical in shape.
type ReferenceController struct {
	app      application.Application
	refs     *services.ReferenceService
	basePath string
}

func NewReferenceController(app application.Application) application.Controller {
	return &ReferenceController{
		app:      app,
		refs:     app.Service(services.ReferenceService{}).(*services.ReferenceService),
		basePath: "/registry/api",
	}
}

func (c *ReferenceController) Key() string {
	return c.basePath + "/reference"
}

func (c *ReferenceController) Register(r *mux.Router) {
	api := r.PathPrefix(c.basePath).Subrouter()

	api.HandleFunc("/reporting-groups", c.ListGroups).Methods(http.MethodGet)
	api.HandleFunc("/reporting-groups", c.CreateGroup).Methods(http.MethodPost)
	api.HandleFunc("/reporting-groups/{code}", c.GetGroup).Methods(http.MethodGet)
	api.HandleFunc("/reporting-groups/{code}", c.UpdateGroup).Methods(http.MethodPut)
	api.HandleFunc("/reporting-groups/{code}", c.DeleteGroup).Methods(http.MethodDelete)

	api.HandleFunc("/sector-codes", c.ListSectors).Methods(http.MethodGet)
	api.HandleFunc("/sector-codes", c.CreateSector).Methods(http.MethodPost)
	api.HandleFunc("/sector-codes/{code}", c.GetSector).Methods(http.MethodGet)
	api.HandleFunc("/sector-codes/{code}", c.UpdateSector).Methods(http.MethodPut)
	api.HandleFunc("/sector-codes/{code}", c.DeleteSector).Methods(http.MethodDelete)
}

func activeOnlyFromQuery(r *http.Request) bool {
	return strings.EqualFold(strings.TrimSpace(r.URL.Query().Get("active")), "true")
}

func (c *ReferenceController) ListGroups(w http.ResponseWriter, r *http.Request) {
	requestID := ensureRequestID(r)

	groups, err := c.refs.Groups(r.Context(), activeOnlyFromQuery(r))
	if err != nil {
		writeServiceError(w, requestID, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": mappers.GroupsToViewModels(groups),
		"total": len(groups),
	})
}

func (c *ReferenceController) GetGroup(w http.ResponseWriter, r *http.Request) {
	requestID := ensureRequestID(r)

	g, err := c.refs.Group(r.Context(), mux.Vars(r)["code"])
	if err != nil {
		writeServiceError(w, requestID, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.GroupToViewModel(g))
}

func (c *ReferenceController) CreateGroup(w http.ResponseWriter, r *http.Request) {
	requestID := ensureRequestID(r)

	in, ok := decodeReferenceInput(w, r, requestID, "GROUP")
	if !ok {
		return
	}
	created, err := c.refs.CreateGroup(r.Context(), in)
	if err != nil {
		writeServiceError(w, requestID, err)
		return
	}
	writeJSON(w, http.StatusCreated, mappers.GroupToViewModel(created))
}

func (c *ReferenceController) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	requestID := ensureRequestID(r)

	in, ok := decodeReferenceUpdate(w, r, requestID, "GROUP")
	if !ok {
		return
	}
	updated, err := c.refs.UpdateGroup(r.Context(), mux.Vars(r)["code"], in)
	if err != nil {
		writeServiceError(w, requestID, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.GroupToViewModel(updated))
}

func (c *ReferenceController) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	requestID := ensureRequestID(r)

	if err := c.refs.DeleteGroup(r.Context(), mux.Vars(r)["code"]); err != nil {
		writeServiceError(w, requestID, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *ReferenceController) ListSectors(w http.ResponseWriter, r *http.Request) {
	requestID := ensureRequestID(r)

	sectors, err := c.refs.Sectors(r.Context(), activeOnlyFromQuery(r))
	if err != nil {
		writeServiceError(w, requestID, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": mappers.SectorsToViewModels(sectors),
		"total": len(sectors),
	})
}

func (c *ReferenceController) GetSector(w http.ResponseWriter, r *http.Request) {
	requestID := ensureRequestID(r)

	s, err := c.refs.Sector(r.Context(), mux.Vars(r)["code"])
	if err != nil {
		writeServiceError(w, requestID, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.SectorToViewModel(s))
}

func (c *ReferenceController) CreateSector(w http.ResponseWriter, r *http.Request) {
	requestID := ensureRequestID(r)

	in, ok := decodeReferenceInput(w, r, requestID, "SECTOR")
	if !ok {
		return
	}
	created, err := c.refs.CreateSector(r.Context(), in)
	if err != nil {
		writeServiceError(w, requestID, err)
		return
	}
	writeJSON(w, http.StatusCreated, mappers.SectorToViewModel(created))
}

func (c *ReferenceController) UpdateSector(w http.ResponseWriter, r *http.Request) {
	requestID := ensureRequestID(r)

	in, ok := decodeReferenceUpdate(w, r, requestID, "SECTOR")
	if !ok {
		return
	}
	updated, err := c.refs.UpdateSector(r.Context(), mux.Vars(r)["code"], in)
	if err != nil {
		writeServiceError(w, requestID, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.SectorToViewModel(updated))
}

func (c *ReferenceController) DeleteSector(w http.ResponseWriter, r *http.Request) {
	requestID := ensureRequestID(r)

	if err := c.refs.DeleteSector(r.Context(), mux.Vars(r)["code"]); err != nil {
		writeServiceError(w, requestID, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeReferenceInput(w http.ResponseWriter, r *http.Request, requestID, codePrefix string) (services.ReferenceInput, bool) {
	var dto dtos.ReferenceDTO
	if err := decodeJSON(r.Body, &dto); err != nil {
		writeAPIError(w, http.StatusBadRequest, requestID, codePrefix+"_INVALID_JSON", "invalid json")
		return services.ReferenceInput{}, false
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		message := firstValidationMessage(errs, "Code", "Name")
		writeAPIError(w, http.StatusBadRequest, requestID, codePrefix+"_VALIDATION_FAILED", message)
		return services.ReferenceInput{}, false
	}
	return services.ReferenceInput{
		Code:        dto.Code,
		Name:        dto.Name,
		Description: dto.Description,
	}, true
}

func decodeReferenceUpdate(w http.ResponseWriter, r *http.Request, requestID, codePrefix string) (services.ReferenceUpdateInput, bool) {
	var dto dtos.UpdateReferenceDTO
	if err := decodeJSON(r.Body, &dto); err != nil {
		writeAPIError(w, http.StatusBadRequest, requestID, codePrefix+"_INVALID_JSON", "invalid json")
		return services.ReferenceUpdateInput{}, false
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		message := firstValidationMessage(errs, "Name")
		writeAPIError(w, http.StatusBadRequest, requestID, codePrefix+"_VALIDATION_FAILED", message)
		return services.ReferenceUpdateInput{}, false
	}
	return services.ReferenceUpdateInput{
		Name:        dto.Name,
		Description: dto.Description,
		Active:      dto.IsActive,
	}, true
}
