package router

import (
	"github.com/deppfellow/fyyur/internal/handler"
	"github.com/deppfellow/fyyur/internal/server"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that are not part of the site:
// health, API docs and static assets.
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	// CSS for the site plus openapi.json/openapi.html for the docs page.
	r.Static("/static", handler.StaticDir)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)

	if s.Config.IsLocal() {
		r.GET("/dev/emails/:template", h.EmailPreview.Preview)
	}
}
