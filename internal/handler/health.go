package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/fyyur/internal/middleware"
	"github.com/deppfellow/fyyur/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler reports whether the service and its dependencies are up.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

type checkResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time,omitempty"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]checkResult `json:"checks"`
}

// CheckHealth answers 200 when every configured check passes and 503
// otherwise. Redis is optional: without a client it reports "disabled".
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().Str("operation", "health_check").Logger()

	response := healthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]checkResult),
	}

	hc := h.server.Config.Observability.HealthChecks
	if !hc.Enabled {
		return c.JSON(http.StatusOK, response)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), hc.Timeout)
	defer cancel()

	probes := map[string]func(context.Context) error{
		"database": h.server.DB.Ping,
	}
	if h.server.Redis != nil {
		probes["redis"] = func(ctx context.Context) error { return h.server.Redis.Ping(ctx).Err() }
	}

	for _, name := range hc.Checks {
		probe, ok := probes[name]
		if !ok {
			response.Checks[name] = checkResult{Status: "disabled"}
			continue
		}

		probeStart := time.Now()
		err := probe(ctx)
		elapsed := time.Since(probeStart)

		if err != nil {
			response.Checks[name] = checkResult{Status: "unhealthy", ResponseTime: elapsed.String(), Error: err.Error()}
			response.Status = "unhealthy"

			logger.Error().Err(err).Str("check", name).Dur("response_time", elapsed).Msg("health check failed")
			h.recordFailure(name, elapsed, err)
			continue
		}

		response.Checks[name] = checkResult{Status: "healthy", ResponseTime: elapsed.String()}
		logger.Debug().Str("check", name).Dur("response_time", elapsed).Msg("health check passed")
	}

	if response.Status != "healthy" {
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("service unhealthy")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}
	return nil
}

func (h *HealthHandler) recordFailure(check string, elapsed time.Duration, err error) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}
	app.RecordCustomEvent("HealthCheckError", map[string]any{
		"check_type":       check,
		"operation":        "health_check",
		"error_type":       check + "_unhealthy",
		"response_time_ms": elapsed.Milliseconds(),
		"error_message":    err.Error(),
	})
}
