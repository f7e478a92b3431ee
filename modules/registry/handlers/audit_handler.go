package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/alphaholdings/entity-registry/modules/registry/domain/aggregates/entity"
	"github.com/alphaholdings/entity-registry/modules/registry/domain/aggregates/group"
	"github.com/alphaholdings/entity-registry/modules/registry/domain/aggregates/mapping"
	"github.com/alphaholdings/entity-registry/modules/registry/domain/aggregates/sector"
	"github.com/alphaholdings/entity-registry/pkg/application"
	"github.com/alphaholdings/entity-registry/pkg/configuration"
)

// AuditEventsHandler writes one structured log line per registry mutation.
// The audit columns on the rows themselves carry the durable trail; these
// lines exist so operators can follow changes live.
type AuditEventsHandler struct {
	logger *logrus.Logger
}

func NewAuditEventsHandler(logger *logrus.Logger) *AuditEventsHandler {
	return &AuditEventsHandler{logger: logger}
}

func RegisterAuditEventHandlers(app application.Application) {
	handler := NewAuditEventsHandler(configuration.Use().Logger())

	bus := app.EventPublisher()
	bus.Subscribe(handler.onEntityCreated)
	bus.Subscribe(handler.onEntityUpdated)
	bus.Subscribe(handler.onEntityDeleted)
	bus.Subscribe(handler.onGroupCreated)
	bus.Subscribe(handler.onGroupUpdated)
	bus.Subscribe(handler.onGroupDeleted)
	bus.Subscribe(handler.onSectorCreated)
	bus.Subscribe(handler.onSectorUpdated)
	bus.Subscribe(handler.onSectorDeleted)
	bus.Subscribe(handler.onMappingCreated)
	bus.Subscribe(handler.onMappingUpdated)
	bus.Subscribe(handler.onMappingDeleted)
}

func (h *AuditEventsHandler) onEntityCreated(event *entity.CreatedEvent) {
	h.logger.WithFields(logrus.Fields{
		"action":      "entity.created",
		"abn":         event.Result.ABN(),
		"entity_name": event.Result.Name(),
		"parent_abn":  event.Result.ParentABN(),
		"actor":       event.Actor,
	}).Info("legal entity registered")
}

func (h *AuditEventsHandler) onEntityUpdated(event *entity.UpdatedEvent) {
	fields := logrus.Fields{
		"action": "entity.updated",
		"abn":    event.Result.ABN(),
		"actor":  event.Actor,
	}
	if event.Old.Name() != event.Result.Name() {
		fields["renamed_from"] = event.Old.Name()
	}
	if event.Old.Status() != event.Result.Status() {
		fields["status"] = string(event.Result.Status())
	}
	h.logger.WithFields(fields).Info("legal entity updated")
}

func (h *AuditEventsHandler) onEntityDeleted(event *entity.DeletedEvent) {
	h.logger.WithFields(logrus.Fields{
		"action":      "entity.deleted",
		"abn":         event.Result.ABN(),
		"entity_name": event.Result.Name(),
		"actor":       event.Actor,
	}).Info("legal entity removed")
}

func (h *AuditEventsHandler) onGroupCreated(event *group.CreatedEvent) {
	h.logger.WithFields(logrus.Fields{
		"action": "reporting_group.created",
		"code":   event.Result.Code(),
		"name":   event.Result.Name(),
		"actor":  event.Actor,
	}).Info("reporting group registered")
}

func (h *AuditEventsHandler) onGroupUpdated(event *group.UpdatedEvent) {
	h.logger.WithFields(logrus.Fields{
		"action": "reporting_group.updated",
		"code":   event.Result.Code(),
		"active": event.Result.IsActive(),
		"actor":  event.Actor,
	}).Info("reporting group updated")
}

func (h *AuditEventsHandler) onGroupDeleted(event *group.DeletedEvent) {
	h.logger.WithFields(logrus.Fields{
		"action": "reporting_group.deleted",
		"code":   event.Result.Code(),
		"actor":  event.Actor,
	}).Info("reporting group removed")
}

func (h *AuditEventsHandler) onSectorCreated(event *sector.CreatedEvent) {
	h.logger.WithFields(logrus.Fields{
		"action": "sector_code.created",
		"code":   event.Result.Code(),
		"name":   event.Result.Name(),
		"actor":  event.Actor,
	}).Info("sector code registered")
}

func (h *AuditEventsHandler) onSectorUpdated(event *sector.UpdatedEvent) {
	h.logger.WithFields(logrus.Fields{
		"action": "sector_code.updated",
		"code":   event.Result.Code(),
		"active": event.Result.IsActive(),
		"actor":  event.Actor,
	}).Info("sector code updated")
}

func (h *AuditEventsHandler) onSectorDeleted(event *sector.DeletedEvent) {
	h.logger.WithFields(logrus.Fields{
		"action": "sector_code.deleted",
		"code":   event.Result.Code(),
		"actor":  event.Actor,
	}).Info("sector code removed")
}

func (h *AuditEventsHandler) onMappingCreated(event *mapping.CreatedEvent) {
	h.logger.WithFields(logrus.Fields{
		"action":        "mapping.created",
		"mapping_id":    event.Result.ID(),
		"group":         event.Result.GroupCode(),
		"sector":        event.Result.SectorCode(),
		"abn":           event.Result.ABN(),
		"consolidation": event.Result.Consolidation().StringFixed(2),
		"actor":         event.Actor,
	}).Info("sector mapping registered")
}

func (h *AuditEventsHandler) onMappingUpdated(event *mapping.UpdatedEvent) {
	fields := logrus.Fields{
		"action":     "mapping.updated",
		"mapping_id": event.Result.ID(),
		"active":     event.Result.IsActive(),
		"actor":      event.Actor,
	}
	if !event.Old.Consolidation().Equal(event.Result.Consolidation()) {
		fields["consolidation"] = event.Result.Consolidation().StringFixed(2)
	}
	h.logger.WithFields(fields).Info("sector mapping updated")
}

func (h *AuditEventsHandler) onMappingDeleted(event *mapping.DeletedEvent) {
	h.logger.WithFields(logrus.Fields{
		"action":     "mapping.deleted",
		"mapping_id": event.Result.ID(),
		"actor":      event.Actor,
	}).Info("sector mapping removed")
}
