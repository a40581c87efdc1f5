// Package handlers provides HTTP request handlers.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Version is reported by /health/info.
var Version = "dev"

// Database is what the health endpoints need from the pool.
type Database interface {
	Ping(ctx context.Context) error
}

// PoolStats is implemented by pools that expose connection statistics.
type PoolStats interface {
	Stats() map[string]any
}

// HealthHandler provides health check endpoints.
type HealthHandler struct {
	db Database
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db Database) *HealthHandler {
	return &HealthHandler{db: db}
}

// Live handles the liveness probe.
// GET /health/live
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready checks the database.
// GET /health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": map[string]string{"database": "not configured"}})
		return
	}
	if err := h.db.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"checks": map[string]string{"database": "unhealthy: " + err.Error()},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"checks": map[string]string{"database": "healthy"},
	})
}

// Info returns application information.
// GET /health/info
func (h *HealthHandler) Info(c *gin.Context) {
	body := gin.H{"app": "adminsuite", "version": Version}
	if s, ok := h.db.(PoolStats); ok {
		body["database"] = s.Stats()
	}
	c.JSON(http.StatusOK, body)
}
