package controllers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/alphaholdings/entity-registry/modules/registry/domain/aggregates/mapping"
	"github.com/alphaholdings/entity-registry/modules/registry/presentation/controllers/dtos"
	"github.com/alphaholdings/entity-registry/modules/registry/presentation/mappers"
	"github.com/alphaholdings/entity-registry/modules/registry/services"
	"github.com/alphaholdings/entity-registry/pkg/application"
)

type MappingsController struct {
	app      application.Application
	mappings *services.MappingService
	basePath string
}

func NewMappingsController(app application.Application) application.Controller {
	return &MappingsController{
		app:      app,
		mappings: app.Service(services.MappingService{}).(*services.MappingService),
		basePath: "/registry/api",
	}
}

func (c *MappingsController) Key() string {
	return c.basePath + "/mappings"
}

func (c *MappingsController) Register(r *mux.Router) {
	api := r.PathPrefix(c.basePath).Subrouter()

	api.HandleFunc("/mappings", c.List).Methods(http.MethodGet)
	api.HandleFunc("/mappings", c.Create).Methods(http.MethodPost)
	api.HandleFunc("/mappings/{id}", c.Get).Methods(http.MethodGet)
	api.HandleFunc("/mappings/{id}", c.Update).Methods(http.MethodPut)
	api.HandleFunc("/mappings/{id}", c.Delete).Methods(http.MethodDelete)
}

func mappingFilterFromQuery(r *http.Request) *mapping.Filter {
	query := r.URL.Query()
	filter := &mapping.Filter{ActiveOnly: strings.EqualFold(strings.TrimSpace(query.Get("active")), "true")}

	collect := func(key string) []string {
		var values []string
		for _, raw := range query[key] {
			for _, piece := range strings.Split(raw, ",") {
				if piece = strings.TrimSpace(piece); piece != "" {
					values = append(values, piece)
				}
			}
		}
		return values
	}

	filter.GroupCodes = collect("group")
	filter.SectorCodes = collect("sector")
	filter.ABNs = collect("abn")
	return filter
}

func (c *MappingsController) List(w http.ResponseWriter, r *http.Request) {
	requestID := ensureRequestID(r)

	items, err := c.mappings.List(r.Context(), mappingFilterFromQuery(r))
	if err != nil {
		writeServiceError(w, requestID, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": mappers.MappingsToViewModels(items),
		"total": len(items),
	})
}

func (c *MappingsController) Get(w http.ResponseWriter, r *http.Request) {
	requestID := ensureRequestID(r)

	m, err := c.mappings.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, requestID, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.MappingToViewModel(m))
}

func (c *MappingsController) Create(w http.ResponseWriter, r *http.Request) {
	requestID := ensureRequestID(r)

	var dto dtos.CreateMappingDTO
	if err := decodeJSON(r.Body, &dto); err != nil {
		writeAPIError(w, http.StatusBadRequest, requestID, "MAPPING_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		message := firstValidationMessage(errs, "ReportingGroupCode", "SectorCode", "ABN", "ConsolidationPercentage", "EffectiveDate")
		writeAPIError(w, http.StatusBadRequest, requestID, "MAPPING_VALIDATION_FAILED", message)
		return
	}

	consolidation, err := decimal.NewFromString(strings.TrimSpace(dto.ConsolidationPercentage))
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, requestID, "MAPPING_INVALID_PERCENTAGE", "consolidation_percentage is not a number")
		return
	}
	effective, err := parseRequiredEffectiveDate(dto.EffectiveDate)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, requestID, "MAPPING_INVALID_WINDOW", "effective_date is invalid")
		return
	}
	end, err := parseEffectiveDate(dto.EndDate)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, requestID, "MAPPING_INVALID_WINDOW", "end_date is invalid")
		return
	}

	created, err := c.mappings.Create(r.Context(), services.CreateMappingInput{
		ID:            dto.MappingID,
		GroupCode:     dto.ReportingGroupCode,
		SectorCode:    dto.SectorCode,
		ABN:           dto.ABN,
		Consolidation: consolidation,
		EffectiveDate: effective,
		EndDate:       end,
	})
	if err != nil {
		writeServiceError(w, requestID, err)
		return
	}
	writeJSON(w, http.StatusCreated, mappers.MappingToViewModel(created))
}

func (c *MappingsController) Update(w http.ResponseWriter, r *http.Request) {
	requestID := ensureRequestID(r)

	var dto dtos.UpdateMappingDTO
	if err := decodeJSON(r.Body, &dto); err != nil {
		writeAPIError(w, http.StatusBadRequest, requestID, "MAPPING_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		message := firstValidationMessage(errs, "ConsolidationPercentage")
		writeAPIError(w, http.StatusBadRequest, requestID, "MAPPING_VALIDATION_FAILED", message)
		return
	}

	consolidation, err := decimal.NewFromString(strings.TrimSpace(dto.ConsolidationPercentage))
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, requestID, "MAPPING_INVALID_PERCENTAGE", "consolidation_percentage is not a number")
		return
	}
	end, err := parseEffectiveDate(dto.EndDate)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, requestID, "MAPPING_INVALID_WINDOW", "end_date is invalid")
		return
	}

	updated, err := c.mappings.Update(r.Context(), mux.Vars(r)["id"], services.UpdateMappingInput{
		Consolidation: consolidation,
		EndDate:       end,
		Active:        dto.IsActive,
	})
	if err != nil {
		writeServiceError(w, requestID, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.MappingToViewModel(updated))
}

func (c *MappingsController) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := ensureRequestID(r)

	if err := c.mappings.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, requestID, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
