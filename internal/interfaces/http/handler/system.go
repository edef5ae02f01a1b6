package handler

import (
	"context"
	"errors"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pricebook/backend/internal/domain/pricebook"
	"github.com/pricebook/backend/internal/infrastructure/logger"
	"github.com/pricebook/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Version is reported by /system/info.
const Version = "1.0.0"

const healthCheckTimeout = 3 * time.Second

// RevisionSource reports how many catalog mutations have been committed.
type RevisionSource interface {
	Revision() uint64
}

// SystemHandler handles system-related API endpoints
type SystemHandler struct {
	BaseHandler
	name      string
	startTime time.Time

	store    pricebook.SnapshotStore
	driver   string
	key      string
	revision RevisionSource
}

// SystemOption configures a SystemHandler.
type SystemOption func(*SystemHandler)

// WithSnapshotStore lets /health probe the persisted snapshot.
func WithSnapshotStore(store pricebook.SnapshotStore, driver, key string) SystemOption {
	return func(h *SystemHandler) {
		h.store = store
		h.driver = driver
		h.key = key
	}
}

// WithRevision reports the catalog revision in /health.
func WithRevision(src RevisionSource) SystemOption {
	return func(h *SystemHandler) { h.revision = src }
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(name string, opts ...SystemOption) *SystemHandler {
	h := &SystemHandler{
		name:      name,
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// SystemInfoResponse represents the system information response
// @name HandlerSystemInfoResponse
type SystemInfoResponse struct {
	Name      string `json:"name" example:"pricebook"`
	Version   string `json:"version" example:"1.0.0"`
	GoVersion string `json:"go_version" example:"go1.25.5"`
	Uptime    string `json:"uptime" example:"1h30m45s"`
}

// GetSystemInfo godoc
// @ID           getSystemSystemInfo
// @Summary      Get system information
// @Description  Returns basic system information including version and uptime
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[SystemInfoResponse]
// @Router       /system/info [get]
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	info := SystemInfoResponse{
		Name:      h.name,
		Version:   Version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(info))
}

// PingResponse represents the ping response
// @name HandlerPingResponse
type PingResponse struct {
	Message   string `json:"message" example:"pong"`
	Timestamp string `json:"timestamp" example:"2026-01-23T12:00:00Z"`
}

// Ping godoc
// @ID           pingSystem
// @Summary      Ping the API
// @Description  Simple ping endpoint to check if the API is responsive
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[PingResponse]
// @Router       /system/ping [get]
func (h *SystemHandler) Ping(c *gin.Context) {
	response := PingResponse{
		Message:   "pong",
		Timestamp: time.Now().Format(time.RFC3339),
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// HealthResponse is the body of /health.
type HealthResponse struct {
	Status   string `json:"status" example:"healthy"`
	Time     string `json:"time" example:"2026-01-23T12:00:00Z"`
	Storage  string `json:"storage" example:"bolt"`
	Snapshot string `json:"snapshot" example:"ok"`
	Revision uint64 `json:"revision" example:"3"`
}

// Health godoc
// @ID           health
// @Summary      Health check
// @Description  Liveness plus a read of the persisted snapshot. A snapshot that was never written still counts as healthy.
// @Tags         system
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:   "healthy",
		Time:     time.Now().Format(time.RFC3339),
		Storage:  h.driver,
		Snapshot: "ok",
	}
	if h.revision != nil {
		resp.Revision = h.revision.Revision()
	}

	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()
		_, err := h.store.Load(ctx, h.key)
		switch {
		case errors.Is(err, pricebook.ErrSnapshotNotFound):
			resp.Snapshot = "empty"
		case err != nil:
			logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
			resp.Status = "unhealthy"
			resp.Snapshot = "error"
			c.JSON(http.StatusServiceUnavailable, resp)
			return
		}
	}

	c.JSON(http.StatusOK, resp)
}
