package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/servicedesk/internal/shared/logger"
	"github.com/orris-inc/servicedesk/internal/shared/version"
)

const (
	healthTimeout = 2 * time.Second

	componentUp       = "up"
	componentDown     = "down"
	componentDisabled = "disabled"
)

// Pinger reports whether a backing service answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
	Version  string `json:"version"`
}

type HealthHandler struct {
	database Pinger
	redis    Pinger
	logger   logger.Interface
}

// NewHealthHandler takes a nil redis when redis is not configured.
func NewHealthHandler(database, redis Pinger, logger logger.Interface) *HealthHandler {
	return &HealthHandler{database: database, redis: redis, logger: logger}
}

// Check godoc
// @Summary Liveness and dependency status
// @Tags platform
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	resp := HealthResponse{
		Status:   "ok",
		Database: h.probe(ctx, "database", h.database),
		Redis:    h.probe(ctx, "redis", h.redis),
		Version:  version.Normalize(version.Current),
	}

	status := http.StatusOK
	switch {
	case resp.Database == componentDown:
		resp.Status = "unavailable"
		status = http.StatusServiceUnavailable
	case resp.Redis == componentDown:
		resp.Status = "degraded"
	}
	c.JSON(status, resp)
}

func (h *HealthHandler) probe(ctx context.Context, name string, p Pinger) string {
	if p == nil {
		return componentDisabled
	}
	if err := p.Ping(ctx); err != nil {
		h.logger.Warnw("health probe failed", "component", name, "error", err)
		return componentDown
	}
	return componentUp
}
