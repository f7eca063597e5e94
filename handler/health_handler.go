package handler

import (
	"context"
	"log/slog"
	"time"

	"colornotes/dto"
	"colornotes/utils"

	"github.com/gin-gonic/gin"
)

// StoreProbe is the part of the note store the health check uses.
type StoreProbe interface {
	Ping(ctx context.Context) error
	Count(ctx context.Context) (int, error)
}

// poolReporter is implemented by stores backed by a driver connection pool.
type poolReporter interface {
	PoolStats() utils.MongoMetrics
}

type HealthHandler struct {
	store   StoreProbe
	started time.Time
	logger  *slog.Logger
}

func NewHealthHandler(store StoreProbe, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		store:   store,
		started: time.Now(),
		logger:  logger,
	}
}

// GetHealth reports store reachability, the note count and host load.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx := c.Request.Context()

	response := dto.HealthResponse{
		Status: "ok",
		Store:  "up",
		Uptime: utils.FormatUptime(h.started),
		System: dto.SystemStats{
			CPUPercent:    utils.GetCPUUsage(ctx),
			MemoryPercent: utils.GetMemoryUsage(ctx),
		},
	}

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Warn("Health check failed to reach store", "error", err)
		response.Status = "degraded"
		response.Store = "down"
		utils.ServiceUnavailable(c, response)
		return
	}

	count, err := h.store.Count(ctx)
	if err != nil {
		h.logger.Warn("Health check failed to count notes", "error", err)
		response.Status = "degraded"
		response.Store = "down"
		utils.ServiceUnavailable(c, response)
		return
	}
	response.NoteCount = count
	if p, ok := h.store.(poolReporter); ok {
		stats := p.PoolStats()
		response.Pool = &stats
	}

	utils.Success(c, response)
}
