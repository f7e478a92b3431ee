package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/alphaholdings/entity-registry/pkg/application"
)

type healthStatus string

const (
	healthStatusHealthy  healthStatus = "healthy"
	healthStatusDegraded healthStatus = "degraded"
	healthStatusDown     healthStatus = "down"
)

const dbDegradedLatency = 100 * time.Millisecond

type healthResponse struct {
	Status    healthStatus               `json:"status"`
	Timestamp string                     `json:"timestamp"`
	Checks    map[string]componentHealth `json:"checks"`
}

type componentHealth struct {
	Status       healthStatus `json:"status"`
	ResponseTime string       `json:"responseTime,omitempty"`
	Error        string       `json:"error,omitempty"`
}

// HealthController answers the ops liveness probe. Degraded still returns
// 200 so orchestrators keep routing; only a down database flips to 503.
type HealthController struct {
	app application.Application
}

func NewHealthController(app application.Application) application.Controller {
	return &HealthController{app: app}
}

func (c *HealthController) Key() string {
	return "/health"
}

func (c *HealthController) Register(r *mux.Router) {
	r.HandleFunc("/health", c.Get).Methods(http.MethodGet)
}

func (c *HealthController) Get(w http.ResponseWriter, r *http.Request) {
	db := c.checkDatabase(r.Context())

	overall := healthStatusHealthy
	status := http.StatusOK
	switch db.Status {
	case healthStatusDegraded:
		overall = healthStatusDegraded
	case healthStatusDown:
		overall = healthStatusDown
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, healthResponse{
		Status:    overall,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    map[string]componentHealth{"database": db},
	})
}

func (c *HealthController) checkDatabase(ctx context.Context) componentHealth {
	start := time.Now()

	timeoutCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	db := c.app.DB()
	if db == nil {
		return componentHealth{
			Status:       healthStatusDown,
			ResponseTime: time.Since(start).String(),
			Error:        "database connection pool not available",
		}
	}

	var result int
	err := db.QueryRow(timeoutCtx, "SELECT 1").Scan(&result)
	responseTime := time.Since(start)
	if err != nil {
		return componentHealth{
			Status:       healthStatusDown,
			ResponseTime: responseTime.String(),
			Error:        fmt.Sprintf("database query failed: %v", err),
		}
	}

	status := healthStatusHealthy
	if responseTime > dbDegradedLatency {
		status = healthStatusDegraded
	}
	return componentHealth{
		Status:       status,
		ResponseTime: responseTime.String(),
	}
}
