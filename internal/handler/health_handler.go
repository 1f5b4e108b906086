package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	credentialSet bool
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(credentialSet bool) *HealthHandler {
	return &HealthHandler{credentialSet: credentialSet}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	if !h.credentialSet {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "generation API credential not configured"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
