package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"clinic-records-server/internal/middleware"
	"clinic-records-server/internal/store"
	"clinic-records-server/internal/utils"
)

// StatsHandler serves the aggregate dashboard statistics. The same snapshot
// backs every stats route, so the dashboard, the patients page, and the bare
// stats endpoint cannot drift apart.
type StatsHandler struct {
	Store store.PatientStore
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(s store.PatientStore) *StatsHandler {
	return &StatsHandler{Store: s}
}

// GetStats handles fetching the aggregate statistics snapshot.
func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.Store.Stats(c.Request.Context())
	if err != nil {
		reqID, _ := middleware.GetRequestID(c)
		log.Printf("[%s] get stats: %v", reqID, err)
		utils.InternalServerError(c, "Database error")
		return
	}
	c.JSON(http.StatusOK, stats)
}
