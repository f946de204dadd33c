package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"clinic-records-server/internal/store"
)

// HealthHandler reports process liveness and store reachability.
type HealthHandler struct {
	Store store.PatientStore
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(s store.PatientStore) *HealthHandler {
	return &HealthHandler{Store: s}
}

// Check handles the health probe. A reachable store is 200; anything else
// is 503 so load balancers stop routing here.
func (h *HealthHandler) Check(c *gin.Context) {
	if err := h.Store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "unavailable",
			"database":  "disconnected",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
