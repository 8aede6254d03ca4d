// Package api provides HTTP handlers for kindred.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kindredgraph/kindred/internal/db"
)

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	pool      DatabaseChecker
	clients   ClientCounter
	log       *logrus.Logger
	version   string
	startTime time.Time
}

// NewHealthHandler creates a HealthHandler. pool and clients may be nil.
func NewHealthHandler(pool DatabaseChecker, clients ClientCounter, log *logrus.Logger, version string) *HealthHandler {
	return &HealthHandler{
		pool:      pool,
		clients:   clients,
		log:       log,
		version:   version,
		startTime: time.Now(),
	}
}

// readinessResponse is the JSON payload returned by the readiness endpoint.
type readinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// healthResponse is the JSON payload returned by the health/liveness endpoint.
type healthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Database      string  `json:"database"`
	DBConns       string  `json:"db_connections,omitempty"`
	WSClients     int     `json:"ws_clients"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// Liveness handles GET /api/v1/health. The process is alive even when the
// database is not, so this always answers 200.
func (h *HealthHandler) Liveness(c *gin.Context) {
	resp := healthResponse{
		Status:        "ok",
		Version:       h.version,
		Database:      "connected",
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}

	if h.pool != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.pool.HealthCheck(ctx); err != nil {
			resp.Database = "disconnected"
		}

		acquired, total := h.pool.Stat()
		resp.DBConns = fmt.Sprintf("%d/%d", acquired, total)
	} else {
		resp.Database = "not_configured"
	}

	if h.clients != nil {
		resp.WSClients = h.clients.ClientCount()
	}

	c.JSON(http.StatusOK, resp)
}

// Readiness handles GET /api/v1/ready: the database must answer and carry
// every migration embedded in this binary.
func (h *HealthHandler) Readiness(c *gin.Context) {
	checks := map[string]string{
		"database": "ok",
		"schema":   "ok",
	}

	if h.pool == nil {
		checks["database"] = "not_configured"
		checks["schema"] = "unknown"
		c.JSON(http.StatusServiceUnavailable, readinessResponse{Status: "not_ready", Checks: checks})

		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	status := "ready"
	statusCode := http.StatusOK

	if err := h.pool.HealthCheck(ctx); err != nil {
		h.log.WithError(err).Error("readiness: database health check failed")
		checks["database"] = "error"
		checks["schema"] = "unknown"
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	} else if err := h.checkSchema(ctx); err != nil {
		h.log.WithError(err).Error("readiness: schema check failed")
		checks["schema"] = "error"
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, readinessResponse{
		Status: status,
		Checks: checks,
	})
}

// checkSchema compares the applied goose version with the embedded migrations.
func (h *HealthHandler) checkSchema(ctx context.Context) error {
	var applied int64

	err := h.pool.QueryRow(ctx,
		"SELECT COALESCE(MAX(version_id), 0) FROM goose_db_version WHERE is_applied").Scan(&applied)
	if err != nil {
		return fmt.Errorf("schema check: %w", err)
	}

	if want := int64(db.SchemaVersion()); applied < want {
		return fmt.Errorf("schema check: applied version %d, binary expects %d", applied, want)
	}

	return nil
}
