package handler

import (
	"context"
	"log"
	"sort"
	"time"

	"eightify/usecase"
	"eightify/utils"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck checks one dependency; a nil error means reachable.
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	checks   map[string]HealthCheck
	registry *usecase.Registry
	started  time.Time
}

func NewHealthHandler(checks map[string]HealthCheck, registry *usecase.Registry) *HealthHandler {
	return &HealthHandler{checks: checks, registry: registry, started: time.Now()}
}

func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	healthy := true
	dependencies := make(map[string]string, len(names))
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			log.Printf("Health check %s failed: %v", name, err)
			dependencies[name] = "down"
			healthy = false
			continue
		}
		dependencies[name] = "up"
	}

	trackers := 0
	if h.registry != nil {
		trackers = h.registry.Len()
	}
	data := gin.H{
		"dependencies":   dependencies,
		"cpu_percent":    utils.GetCPUUsage(),
		"mongo_pool":     utils.GetMongoMetrics(),
		"live_trackers":  trackers,
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
	}
	if !healthy {
		utils.ServiceUnavailable(c, "One or more dependencies are unavailable", data)
		return
	}
	utils.Success(c, data)
}
