// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares, the server-rendered pages and the JSON API
// group, mapping specific paths to their corresponding handlers.
package router

import (
	"fmt"
	"net/http"

	"github.com/deppfellow/fyyur/internal/form"
	"github.com/deppfellow/fyyur/internal/handler"
	"github.com/deppfellow/fyyur/internal/middleware"
	"github.com/deppfellow/fyyur/internal/render"
	"github.com/deppfellow/fyyur/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the echo instance serving the whole site.
func NewRouter(s *server.Server, h *handler.Handlers) (*echo.Echo, error) {
	renderer, err := render.New()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.Renderer = renderer
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.RateLimit.Limit(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, s, h)
	registerPageRoutes(router, h)
	registerAPIRoutes(router, h, middlewares.Auth)

	return router, nil
}

// registerPageRoutes mounts the server-rendered site. Static segments such as
// /venues/create win over /venues/:id in echo's router regardless of order.
func registerPageRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/", h.Home.Index)

	venues := r.Group("/venues")
	venues.GET("", h.Venue.List)
	venues.POST("/search", h.Venue.Search)
	venues.GET("/create", h.Venue.CreateForm)
	venues.POST("/create", h.Venue.Create)
	venues.GET("/:id", h.Venue.Show)
	venues.DELETE("/:id", h.Venue.Delete)
	venues.POST("/:id/delete", h.Venue.DeleteForm)
	venues.GET("/:id/edit", h.Venue.EditForm)
	venues.POST("/:id/edit", h.Venue.Edit)

	artists := r.Group("/artists")
	artists.GET("", h.Artist.List)
	artists.POST("/search", h.Artist.Search)
	artists.GET("/create", h.Artist.CreateForm)
	artists.POST("/create", h.Artist.Create)
	artists.GET("/:id", h.Artist.Show)
	artists.DELETE("/:id", h.Artist.Delete)
	artists.POST("/:id/delete", h.Artist.DeleteForm)
	artists.GET("/:id/edit", h.Artist.EditForm)
	artists.POST("/:id/edit", h.Artist.Edit)

	shows := r.Group("/shows")
	shows.GET("", h.Show.List)
	shows.GET("/create", h.Show.CreateForm)
	shows.POST("/create", h.Show.Create)
}

// registerAPIRoutes mounts the JSON API. Reads are public; writes need a
// Clerk session token.
func registerAPIRoutes(r *echo.Echo, h *handler.Handlers, auth *middleware.AuthMiddleware) {
	v1 := r.Group("/api/v1")
	base := h.API.Handler

	venues := v1.Group("/venues")
	venues.GET("", handler.Handle(base, h.API.ListVenues, http.StatusOK, &handler.ListRequest{}))
	venues.GET("/:id", handler.Handle(base, h.API.GetVenue, http.StatusOK, &handler.IDRequest{}))
	venues.POST("", handler.Handle(base, h.API.CreateVenue, http.StatusCreated, &form.VenueForm{}), auth.RequireAuth)
	venues.PUT("/:id", handler.Handle(base, h.API.UpdateVenue, http.StatusOK, &handler.UpdateVenueRequest{}), auth.RequireAuth)
	venues.DELETE("/:id", handler.HandleNoContent(base, h.API.DeleteVenue, http.StatusNoContent, &handler.IDRequest{}), auth.RequireAuth)

	artists := v1.Group("/artists")
	artists.GET("", handler.Handle(base, h.API.ListArtists, http.StatusOK, &handler.ListRequest{}))
	artists.GET("/:id", handler.Handle(base, h.API.GetArtist, http.StatusOK, &handler.IDRequest{}))
	artists.POST("", handler.Handle(base, h.API.CreateArtist, http.StatusCreated, &form.ArtistForm{}), auth.RequireAuth)
	artists.PUT("/:id", handler.Handle(base, h.API.UpdateArtist, http.StatusOK, &handler.UpdateArtistRequest{}), auth.RequireAuth)
	artists.DELETE("/:id", handler.HandleNoContent(base, h.API.DeleteArtist, http.StatusNoContent, &handler.IDRequest{}), auth.RequireAuth)

	shows := v1.Group("/shows")
	shows.GET("", handler.Handle(base, h.API.ListShows, http.StatusOK, &handler.ListRequest{}))
	shows.POST("", handler.Handle(base, h.API.CreateShow, http.StatusCreated, &form.ShowForm{}), auth.RequireAuth)
}
