package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EntityWrites counts persisted entity mutations by action
	// (create, update, delete).
	EntityWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "entity_registry_entity_writes_total",
		Help: "Number of entity mutations persisted, by action.",
	}, []string{"action"})

	// ValidationRejections counts mutations rejected by hierarchy validation,
	// by rejection code.
	ValidationRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "entity_registry_validation_rejections_total",
		Help: "Number of entity mutations rejected by validation, by code.",
	}, []string{"code"})

	// TreeBuilds counts hierarchy tree renders.
	TreeBuilds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "entity_registry_tree_builds_total",
		Help: "Number of hierarchy tree builds served.",
	})

	// ExportedRows counts rows written by report exports, by format.
	ExportedRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "entity_registry_exported_rows_total",
		Help: "Number of report rows exported, by format.",
	}, []string{"format"})
)
