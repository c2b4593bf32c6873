package handlers

import (
	"context"
	"net/http"

	"github.com/TripStitch/tripstitch-backend/logger"
	"github.com/TripStitch/tripstitch-backend/types"
	"github.com/gin-gonic/gin"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler exposes liveness and readiness probes.
type HealthHandler struct {
	db      Pinger
	version string
}

// NewHealthHandler creates a HealthHandler checking the given database.
func NewHealthHandler(db Pinger, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

// LivenessCheck handles kubernetes liveness probe
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.Status(http.StatusOK)
}

// HealthCheck handles GET /health: liveness plus a database ping.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		logger.GetLogger().Errorw("Health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, types.HealthResponse{
			Status:  "down",
			Version: h.version,
		})
		return
	}
	c.JSON(http.StatusOK, types.HealthResponse{
		Status:  "up",
		Version: h.version,
	})
}
