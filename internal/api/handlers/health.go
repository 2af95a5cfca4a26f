package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/senseiyukisan/sports-analytics/internal/dataset"
)

type HealthHandler struct {
	data     *dataset.Enriched
	loadedAt time.Time
}

func NewHealthHandler(data *dataset.Enriched, loadedAt time.Time) *HealthHandler {
	return &HealthHandler{data: data, loadedAt: loadedAt}
}

// GetHealth reports liveness and the size of the loaded dataset
func (h *HealthHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   "stats-api",
		"loaded_at": h.loadedAt.UTC(),
		"players":   len(h.data.Players),
		"clubs":     len(h.data.Clubs),
		"games":     len(h.data.Games),
	})
}
