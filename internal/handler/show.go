package handler

import (
	"net/http"

	"github.com/deppfellow/fyyur/internal/errs"
	"github.com/deppfellow/fyyur/internal/form"
	"github.com/deppfellow/fyyur/internal/render"
	"github.com/deppfellow/fyyur/internal/server"
	"github.com/deppfellow/fyyur/internal/service"
	"github.com/deppfellow/fyyur/internal/validation"
	"github.com/labstack/echo/v4"
)

type ShowHandler struct {
	Handler
	shows *service.ShowService
}

func NewShowHandler(s *server.Server, services *service.Services) *ShowHandler {
	return &ShowHandler{
		Handler: NewHandler(s),
		shows:   services.Show,
	}
}

func (h *ShowHandler) List(c echo.Context) error {
	shows, err := h.shows.List(c.Request().Context())
	if err != nil {
		return err
	}
	return h.page(c, http.StatusOK, render.PageShows, render.Page{Title: "Shows", Data: shows})
}

func (h *ShowHandler) CreateForm(c echo.Context) error {
	return h.page(c, http.StatusOK, render.FormNewShow, render.Page{Title: "New Show", Form: &form.ShowForm{}})
}

// Create books a show. An unknown venue or artist re-renders the form.
func (h *ShowHandler) Create(c echo.Context) error {
	f := new(form.ShowForm)
	if err := validation.BindAndValidate(c, f); err != nil {
		return h.formError(c, render.FormNewShow, f, nil, err)
	}

	show, err := f.ToModel()
	if err != nil {
		return err
	}

	if err := h.shows.Create(c.Request().Context(), show); err != nil {
		if errs.IsStatus(err, http.StatusBadRequest) {
			return h.formError(c, render.FormNewShow, f, nil, err)
		}
		return h.failed(c, err, "An error occurred. Show could not be listed.", "/")
	}
	return h.succeeded(c, "Show was successfully listed!", "/")
}
