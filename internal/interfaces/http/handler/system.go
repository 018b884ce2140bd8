package handler

import (
	"net/http"
	"time"

	"github.com/crm/backend/internal/infrastructure/cache"
	"github.com/crm/backend/internal/infrastructure/persistence"
	"github.com/gin-gonic/gin"
)

// SystemHandler handles health and readiness endpoints
type SystemHandler struct {
	db    *persistence.Database
	cache *cache.RedisCacheService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *persistence.Database, cacheService *cache.RedisCacheService) *SystemHandler {
	return &SystemHandler{db: db, cache: cacheService}
}

// ServiceStatus reports the state of one dependency
type ServiceStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HealthResponse is the health endpoint payload
type HealthResponse struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Services  map[string]ServiceStatus `json:"services"`
}

// RegisterRoutes registers system routes on the engine root, outside the
// versioned API group.
func (h *SystemHandler) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/health", h.Health)
}

// Health handles GET /health. Returns 503 when any dependency is down.
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Services:  make(map[string]ServiceStatus),
	}

	if err := h.db.Ping(); err != nil {
		resp.Status = "unhealthy"
		resp.Services["postgres"] = ServiceStatus{Status: "down", Error: err.Error()}
	} else {
		resp.Services["postgres"] = ServiceStatus{Status: "up"}
	}

	if err := h.cache.Ping(c.Request.Context()); err != nil {
		resp.Status = "unhealthy"
		resp.Services["redis"] = ServiceStatus{Status: "down", Error: err.Error()}
	} else {
		resp.Services["redis"] = ServiceStatus{Status: "up"}
	}

	status := http.StatusOK
	if resp.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}
