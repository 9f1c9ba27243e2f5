package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/feed-notify/app/database"
)

func NewHandler(itemRepo database.ItemRepository, scheduler SchedulerStateProvider, version string) *Handler {
	return &Handler{
		itemRepo:  itemRepo,
		scheduler: scheduler,
		version:   version,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"version":   h.version,
		"scheduler": h.scheduler.State().String(),
	}

	stats, err := h.itemRepo.Statistics(c.Request.Context())
	if err != nil {
		slog.Error("Database error", "operation", "statistics", "error", err)
		health["store"] = "unavailable"
		c.JSON(http.StatusServiceUnavailable, health)
		return
	}

	health["store"] = "ok"
	health["items"] = stats.TotalCount
	if stats.LastStoredAt != nil {
		health["last_stored_at"] = stats.LastStoredAt.In(time.Local).Format(time.RFC3339)
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.itemRepo.Statistics(c.Request.Context())
	if err != nil {
		slog.Error("Database error", "operation", "statistics", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":        stats.TotalCount,
		"by_partition": stats.CountByPartition,
		"last_stored":  stats.LastStoredAt,
	})
}
