package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stuartshay/otel-data-api/internal/model"
)

// HealthChecker reports database connectivity status
type HealthChecker interface {
	HealthCheck(ctx context.Context) (*model.DatabaseHealth, error)
}

// HealthHandler handles liveness and readiness probes
type HealthHandler struct {
	db          HealthChecker
	version     string
	buildNumber string
	buildDate   string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db HealthChecker, version, buildNumber, buildDate string) *HealthHandler {
	return &HealthHandler{
		db:          db,
		version:     version,
		buildNumber: buildNumber,
		buildDate:   buildDate,
	}
}

// Live reports process liveness. It never touches the database.
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} model.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, model.HealthResponse{
		Status:      "healthy",
		Version:     h.version,
		BuildNumber: h.buildNumber,
		BuildDate:   h.buildDate,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready reports readiness including a database round-trip
// @Summary Readiness probe
// @Tags Health
// @Produce json
// @Success 200 {object} model.HealthResponse
// @Failure 503 {object} model.HealthResponse
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	dbHealth, err := h.db.HealthCheck(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, model.HealthResponse{
			Status: "not_ready",
			Error:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, model.HealthResponse{
		Status:    "ready",
		Version:   h.version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Database:  dbHealth,
	})
}
