package rest

import (
	"context"
	"foodRanking/pkg/logger"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthChecker is any dependency that can be probed.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type HealthHandler struct {
	checkers map[string]HealthChecker
	timeout  time.Duration
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks"`
	Timestamp time.Time         `json:"timestamp"`
}

// NewHealthHandler probes every named checker. Nil checkers are skipped.
func NewHealthHandler(checkers map[string]HealthChecker) *HealthHandler {
	active := make(map[string]HealthChecker, len(checkers))
	for name, c := range checkers {
		if c != nil {
			active[name] = c
		}
	}

	return &HealthHandler{
		checkers: active,
		timeout:  5 * time.Second,
	}
}

// GET /health
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checkers))
	for name := range h.checkers {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := HealthResponse{
		Status:    "healthy",
		Checks:    make(map[string]string, len(names)),
		Timestamp: time.Now().UTC(),
	}

	for _, name := range names {
		if err := h.checkers[name].HealthCheck(ctx); err != nil {
			logger.Warn("health check failed", "check", name, "error", err)
			resp.Checks[name] = "error"
			resp.Status = "unhealthy"
			continue
		}
		resp.Checks[name] = "ok"
	}

	status := http.StatusOK
	if resp.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}

	return c.JSON(status, resp)
}
