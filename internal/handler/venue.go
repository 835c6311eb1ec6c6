package handler

import (
	"fmt"
	"net/http"

	"github.com/deppfellow/fyyur/internal/form"
	"github.com/deppfellow/fyyur/internal/render"
	"github.com/deppfellow/fyyur/internal/server"
	"github.com/deppfellow/fyyur/internal/service"
	"github.com/deppfellow/fyyur/internal/validation"
	"github.com/labstack/echo/v4"
)

type VenueHandler struct {
	Handler
	venues *service.VenueService
}

func NewVenueHandler(s *server.Server, services *service.Services) *VenueHandler {
	return &VenueHandler{
		Handler: NewHandler(s),
		venues:  services.Venue,
	}
}

// List renders venues grouped by area.
func (h *VenueHandler) List(c echo.Context) error {
	areas, err := h.venues.ListAreas(c.Request().Context())
	if err != nil {
		return err
	}
	return h.page(c, http.StatusOK, render.PageVenues, render.Page{Title: "Venues", Data: areas})
}

func (h *VenueHandler) Search(c echo.Context) error {
	term := c.FormValue("search_term")

	results, err := h.venues.Search(c.Request().Context(), term)
	if err != nil {
		return err
	}
	return h.page(c, http.StatusOK, render.PageSearchVenues, render.Page{
		Title: "Venue search",
		Data:  searchPage{Term: term, Results: results},
	})
}

func (h *VenueHandler) Show(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	detail, err := h.venues.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return h.page(c, http.StatusOK, render.PageShowVenue, render.Page{Title: detail.Name, Data: detail})
}

func (h *VenueHandler) CreateForm(c echo.Context) error {
	return h.page(c, http.StatusOK, render.FormNewVenue, render.Page{Title: "New Venue", Form: &form.VenueForm{}})
}

func (h *VenueHandler) Create(c echo.Context) error {
	f := new(form.VenueForm)
	if err := validation.BindAndValidate(c, f); err != nil {
		return h.formError(c, render.FormNewVenue, f, nil, err)
	}

	if err := h.venues.Create(c.Request().Context(), f.ToModel()); err != nil {
		return h.failed(c, err, fmt.Sprintf("An error occurred. Venue %s could not be listed.", f.Name), "/")
	}
	return h.succeeded(c, fmt.Sprintf("Venue %s was successfully listed!", f.Name), "/")
}

func (h *VenueHandler) EditForm(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	venue, err := h.venues.GetRaw(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return h.page(c, http.StatusOK, render.FormEditVenue, render.Page{
		Title: "Edit Venue",
		Data:  editTarget{ID: venue.ID, Name: venue.Name},
		Form:  form.FromVenue(venue),
	})
}

func (h *VenueHandler) Edit(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	venue, err := h.venues.GetRaw(ctx, id)
	if err != nil {
		return err
	}

	to := fmt.Sprintf("/venues/%d", id)
	f := new(form.VenueForm)
	if err := validation.BindAndValidate(c, f); err != nil {
		return h.formError(c, render.FormEditVenue, f, editTarget{ID: id, Name: venue.Name}, err)
	}

	if err := h.venues.Update(ctx, id, f.ToModel()); err != nil {
		if isMissing(err) {
			return err
		}
		return h.failed(c, err, fmt.Sprintf("An error occurred. Venue %s could not be updated.", f.Name), to)
	}
	return h.succeeded(c, fmt.Sprintf("Venue %s was successfully updated!", f.Name), to)
}

// Delete serves JSON clients issuing DELETE /venues/:id.
func (h *VenueHandler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	if err := h.venues.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	h.server.Flash.Success(c, "Venue was successfully deleted.")
	return deleted(c)
}

// DeleteForm is the form-post fallback of Delete.
func (h *VenueHandler) DeleteForm(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	if err := h.venues.Delete(c.Request().Context(), id); err != nil {
		if isMissing(err) {
			return err
		}
		return h.failed(c, err, "An error occurred. Venue could not be deleted.", fmt.Sprintf("/venues/%d", id))
	}
	return h.succeeded(c, "Venue was successfully deleted.", "/")
}
