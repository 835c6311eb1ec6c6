package handler

import (
	"github.com/deppfellow/fyyur/internal/form"
	"github.com/deppfellow/fyyur/internal/model"
	"github.com/deppfellow/fyyur/internal/repository"
	"github.com/deppfellow/fyyur/internal/server"
	"github.com/deppfellow/fyyur/internal/service"
	"github.com/labstack/echo/v4"
)

// ListRequest is a page of a listing: ?page=2&page_size=20.
type ListRequest struct {
	Page     int `query:"page" validate:"omitempty,min=1"`
	PageSize int `query:"page_size" validate:"omitempty,min=1,max=100"`
}

func (r *ListRequest) Validate() error {
	return form.Struct(r)
}

type IDRequest struct {
	ID int64 `param:"id" validate:"required,min=1"`
}

func (r *IDRequest) Validate() error {
	return form.Struct(r)
}

type UpdateVenueRequest struct {
	ID int64 `param:"id" json:"-" validate:"required,min=1"`
	form.VenueForm
}

func (r *UpdateVenueRequest) Validate() error {
	if err := r.VenueForm.Validate(); err != nil {
		return err
	}
	return form.Struct(r)
}

type UpdateArtistRequest struct {
	ID int64 `param:"id" json:"-" validate:"required,min=1"`
	form.ArtistForm
}

func (r *UpdateArtistRequest) Validate() error {
	if err := r.ArtistForm.Validate(); err != nil {
		return err
	}
	return form.Struct(r)
}

// APIHandler serves /api/v1.
type APIHandler struct {
	Handler
	services *service.Services
}

func NewAPIHandler(s *server.Server, services *service.Services) *APIHandler {
	return &APIHandler{
		Handler:  NewHandler(s),
		services: services,
	}
}

// --- venues

func (h *APIHandler) ListVenues(c echo.Context, req *ListRequest) (*repository.Pagination[model.Venue], error) {
	return h.services.Venue.Page(c.Request().Context(), req.Page, req.PageSize)
}

func (h *APIHandler) GetVenue(c echo.Context, req *IDRequest) (*service.VenueDetail, error) {
	return h.services.Venue.Get(c.Request().Context(), req.ID)
}

func (h *APIHandler) CreateVenue(c echo.Context, req *form.VenueForm) (*model.Venue, error) {
	venue := req.ToModel()
	if err := h.services.Venue.Create(c.Request().Context(), venue); err != nil {
		return nil, err
	}
	return venue, nil
}

func (h *APIHandler) UpdateVenue(c echo.Context, req *UpdateVenueRequest) (*model.Venue, error) {
	ctx := c.Request().Context()
	if err := h.services.Venue.Update(ctx, req.ID, req.ToModel()); err != nil {
		return nil, err
	}
	return h.services.Venue.GetRaw(ctx, req.ID)
}

func (h *APIHandler) DeleteVenue(c echo.Context, req *IDRequest) error {
	return h.services.Venue.Delete(c.Request().Context(), req.ID)
}

// --- artists

func (h *APIHandler) ListArtists(c echo.Context, req *ListRequest) (*repository.Pagination[model.Artist], error) {
	return h.services.Artist.Page(c.Request().Context(), req.Page, req.PageSize)
}

func (h *APIHandler) GetArtist(c echo.Context, req *IDRequest) (*service.ArtistDetail, error) {
	return h.services.Artist.Get(c.Request().Context(), req.ID)
}

func (h *APIHandler) CreateArtist(c echo.Context, req *form.ArtistForm) (*model.Artist, error) {
	artist := req.ToModel()
	if err := h.services.Artist.Create(c.Request().Context(), artist); err != nil {
		return nil, err
	}
	return artist, nil
}

func (h *APIHandler) UpdateArtist(c echo.Context, req *UpdateArtistRequest) (*model.Artist, error) {
	ctx := c.Request().Context()
	if err := h.services.Artist.Update(ctx, req.ID, req.ToModel()); err != nil {
		return nil, err
	}
	return h.services.Artist.GetRaw(ctx, req.ID)
}

func (h *APIHandler) DeleteArtist(c echo.Context, req *IDRequest) error {
	return h.services.Artist.Delete(c.Request().Context(), req.ID)
}

// --- shows

func (h *APIHandler) ListShows(c echo.Context, req *ListRequest) (*repository.Pagination[model.Show], error) {
	return h.services.Show.Page(c.Request().Context(), req.Page, req.PageSize)
}

func (h *APIHandler) CreateShow(c echo.Context, req *form.ShowForm) (*model.Show, error) {
	show, err := req.ToModel()
	if err != nil {
		return nil, err
	}
	if err := h.services.Show.Create(c.Request().Context(), show); err != nil {
		return nil, err
	}
	return show, nil
}
