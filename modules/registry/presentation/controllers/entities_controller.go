package controllers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/alphaholdings/entity-registry/modules/registry/domain/aggregates/entity"
	"github.com/alphaholdings/entity-registry/modules/registry/presentation/controllers/dtos"
	"github.com/alphaholdings/entity-registry/modules/registry/presentation/mappers"
	"github.com/alphaholdings/entity-registry/modules/registry/services"
	"github.com/alphaholdings/entity-registry/pkg/application"
)

type EntitiesController struct {
	app      application.Application
	entities *services.EntityService
	basePath string
}

func NewEntitiesController(app application.Application) application.Controller {
	return &EntitiesController{
		app:      app,
		entities: app.Service(services.EntityService{}).(*services.EntityService),
		basePath: "/registry/api",
	}
}

func (c *EntitiesController) Key() string {
	return c.basePath + "/entities"
}

func (c *EntitiesController) Register(r *mux.Router) {
	api := r.PathPrefix(c.basePath).Subrouter()

	api.HandleFunc("/entities", c.List).Methods(http.MethodGet)
	api.HandleFunc("/entities", c.Create).Methods(http.MethodPost)
	api.HandleFunc("/entities/{abn}", c.Get).Methods(http.MethodGet)
	api.HandleFunc("/entities/{abn}", c.Update).Methods(http.MethodPut)
	api.HandleFunc("/entities/{abn}", c.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/entities/{abn}/children", c.Children).Methods(http.MethodGet)
	api.HandleFunc("/hierarchy", c.Hierarchy).Methods(http.MethodGet)
}

// entityFilterFromQuery reads the list and tree filters. Unknown status or
// kind values fail the request rather than silently matching nothing.
func entityFilterFromQuery(r *http.Request) (*services.EntityFilter, string, bool) {
	filter := &services.EntityFilter{Search: strings.TrimSpace(r.URL.Query().Get("q"))}

	for _, raw := range r.URL.Query()["status"] {
		for _, piece := range strings.Split(raw, ",") {
			piece = strings.TrimSpace(piece)
			if piece == "" {
				continue
			}
			status, ok := entity.ParseStatus(piece)
			if !ok {
				return nil, "status " + piece + " is not recognized", false
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}
	for _, raw := range r.URL.Query()["entity_type"] {
		for _, piece := range strings.Split(raw, ",") {
			piece = strings.TrimSpace(piece)
			if piece == "" {
				continue
			}
			kind, ok := entity.ParseKind(piece)
			if !ok {
				return nil, "entity_type " + piece + " is not recognized", false
			}
			filter.Kinds = append(filter.Kinds, kind)
		}
	}
	return filter, "", true
}

func (c *EntitiesController) List(w http.ResponseWriter, r *http.Request) {
	requestID := ensureRequestID(r)

	filter, message, ok := entityFilterFromQuery(r)
	if !ok {
		writeAPIError(w, http.StatusBadRequest, requestID, "ENTITY_INVALID_QUERY", message)
		return
	}

	entities, err := c.entities.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, requestID, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": mappers.EntitiesToViewModels(entities),
		"total": len(entities),
	})
}

func (c *EntitiesController) Get(w http.ResponseWriter, r *http.Request) {
	requestID := ensureRequestID(r)

	info, err := c.entities.Get(r.Context(), mux.Vars(r)["abn"])
	if err != nil {
		writeServiceError(w, requestID, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.EntityInfoToViewModel(info))
}

func (c *EntitiesController) Children(w http.ResponseWriter, r *http.Request) {
	requestID := ensureRequestID(r)

	children, err := c.entities.Children(r.Context(), mux.Vars(r)["abn"])
	if err != nil {
		writeServiceError(w, requestID, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": mappers.EntitiesToViewModels(children),
		"total": len(children),
	})
}

func (c *EntitiesController) Create(w http.ResponseWriter, r *http.Request) {
	requestID := ensureRequestID(r)

	var dto dtos.CreateEntityDTO
	if err := decodeJSON(r.Body, &dto); err != nil {
		writeAPIError(w, http.StatusBadRequest, requestID, "ENTITY_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		message := firstValidationMessage(errs, "ABN", "EntityName", "EntityType", "EffectiveDate")
		writeAPIError(w, http.StatusBadRequest, requestID, "ENTITY_VALIDATION_FAILED", message)
		return
	}

	kind, ok := entity.ParseKind(dto.EntityType)
	if !ok {
		writeAPIError(w, http.StatusBadRequest, requestID, "ENTITY_INVALID_TYPE", "entity_type "+dto.EntityType+" is not recognized")
		return
	}
	status := entity.StatusActive
	if strings.TrimSpace(dto.Status) != "" {
		status, ok = entity.ParseStatus(dto.Status)
		if !ok {
			writeAPIError(w, http.StatusBadRequest, requestID, "ENTITY_INVALID_STATUS", "status "+dto.Status+" is not recognized")
			return
		}
	}
	effective, err := parseRequiredEffectiveDate(dto.EffectiveDate)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, requestID, "ENTITY_INVALID_DATE", "effective_date is invalid")
		return
	}
	end, err := parseEffectiveDate(dto.EndDate)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, requestID, "ENTITY_INVALID_DATE", "end_date is invalid")
		return
	}

	created, err := c.entities.Create(r.Context(), services.CreateEntityInput{
		ABN:           dto.ABN,
		Name:          dto.EntityName,
		ParentABN:     dto.ParentABN,
		Kind:          kind,
		Status:        status,
		EffectiveDate: effective,
		EndDate:       end,
	})
	if err != nil {
		writeServiceError(w, requestID, err)
		return
	}
	writeJSON(w, http.StatusCreated, mappers.EntityToViewModel(created))
}

func (c *EntitiesController) Update(w http.ResponseWriter, r *http.Request) {
	requestID := ensureRequestID(r)

	var dto dtos.UpdateEntityDTO
	if err := decodeJSON(r.Body, &dto); err != nil {
		writeAPIError(w, http.StatusBadRequest, requestID, "ENTITY_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		message := firstValidationMessage(errs, "EntityName", "EntityType", "Status")
		writeAPIError(w, http.StatusBadRequest, requestID, "ENTITY_VALIDATION_FAILED", message)
		return
	}

	kind, ok := entity.ParseKind(dto.EntityType)
	if !ok {
		writeAPIError(w, http.StatusBadRequest, requestID, "ENTITY_INVALID_TYPE", "entity_type "+dto.EntityType+" is not recognized")
		return
	}
	status, ok := entity.ParseStatus(dto.Status)
	if !ok {
		writeAPIError(w, http.StatusBadRequest, requestID, "ENTITY_INVALID_STATUS", "status "+dto.Status+" is not recognized")
		return
	}
	effective, err := parseEffectiveDate(dto.EffectiveDate)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, requestID, "ENTITY_INVALID_DATE", "effective_date is invalid")
		return
	}
	end, err := parseEffectiveDate(dto.EndDate)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, requestID, "ENTITY_INVALID_DATE", "end_date is invalid")
		return
	}

	updated, err := c.entities.Update(r.Context(), mux.Vars(r)["abn"], services.UpdateEntityInput{
		Name:          dto.EntityName,
		Kind:          kind,
		Status:        status,
		EffectiveDate: effective,
		EndDate:       end,
	})
	if err != nil {
		writeServiceError(w, requestID, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.EntityToViewModel(updated))
}

func (c *EntitiesController) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := ensureRequestID(r)

	if err := c.entities.Delete(r.Context(), mux.Vars(r)["abn"]); err != nil {
		writeServiceError(w, requestID, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *EntitiesController) Hierarchy(w http.ResponseWriter, r *http.Request) {
	requestID := ensureRequestID(r)

	filter, message, ok := entityFilterFromQuery(r)
	if !ok {
		writeAPIError(w, http.StatusBadRequest, requestID, "ENTITY_INVALID_QUERY", message)
		return
	}

	rows, err := c.entities.Tree(r.Context(), filter)
	if err != nil {
		writeServiceError(w, requestID, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"rows":  mappers.TreeRowsToViewModels(rows),
		"total": len(rows),
	})
}
