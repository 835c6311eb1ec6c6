package handler

import (
	"net/http"

	"github.com/deppfellow/fyyur/internal/model"
	"github.com/deppfellow/fyyur/internal/render"
	"github.com/deppfellow/fyyur/internal/server"
	"github.com/deppfellow/fyyur/internal/service"
	"github.com/labstack/echo/v4"
)

type HomeHandler struct {
	Handler
	venues  *service.VenueService
	artists *service.ArtistService
}

func NewHomeHandler(s *server.Server, services *service.Services) *HomeHandler {
	return &HomeHandler{
		Handler: NewHandler(s),
		venues:  services.Venue,
		artists: services.Artist,
	}
}

type homePage struct {
	Venues  []*model.Venue
	Artists []*model.Artist
}

// Index shows the most recently listed venues and artists.
func (h *HomeHandler) Index(c echo.Context) error {
	ctx := c.Request().Context()

	venues, err := h.venues.Latest(ctx, homeLimit)
	if err != nil {
		return err
	}
	artists, err := h.artists.Latest(ctx, homeLimit)
	if err != nil {
		return err
	}

	return h.page(c, http.StatusOK, render.PageHome, render.Page{
		Title: "Home",
		Data:  homePage{Venues: venues, Artists: artists},
	})
}
