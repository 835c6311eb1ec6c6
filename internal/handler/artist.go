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

type ArtistHandler struct {
	Handler
	artists *service.ArtistService
}

func NewArtistHandler(s *server.Server, services *service.Services) *ArtistHandler {
	return &ArtistHandler{
		Handler: NewHandler(s),
		artists: services.Artist,
	}
}

func (h *ArtistHandler) List(c echo.Context) error {
	artists, err := h.artists.List(c.Request().Context())
	if err != nil {
		return err
	}
	return h.page(c, http.StatusOK, render.PageArtists, render.Page{Title: "Artists", Data: artists})
}

func (h *ArtistHandler) Search(c echo.Context) error {
	term := c.FormValue("search_term")

	results, err := h.artists.Search(c.Request().Context(), term)
	if err != nil {
		return err
	}
	return h.page(c, http.StatusOK, render.PageSearchArtists, render.Page{
		Title: "Artist search",
		Data:  searchPage{Term: term, Results: results},
	})
}

func (h *ArtistHandler) Show(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	detail, err := h.artists.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return h.page(c, http.StatusOK, render.PageShowArtist, render.Page{Title: detail.Name, Data: detail})
}

func (h *ArtistHandler) CreateForm(c echo.Context) error {
	return h.page(c, http.StatusOK, render.FormNewArtist, render.Page{Title: "New Artist", Form: &form.ArtistForm{}})
}

func (h *ArtistHandler) Create(c echo.Context) error {
	f := new(form.ArtistForm)
	if err := validation.BindAndValidate(c, f); err != nil {
		return h.formError(c, render.FormNewArtist, f, nil, err)
	}

	if err := h.artists.Create(c.Request().Context(), f.ToModel()); err != nil {
		return h.failed(c, err, fmt.Sprintf("An error occurred. Artist %s could not be listed.", f.Name), "/")
	}
	return h.succeeded(c, fmt.Sprintf("Artist %s was successfully listed!", f.Name), "/")
}

func (h *ArtistHandler) EditForm(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	artist, err := h.artists.GetRaw(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return h.page(c, http.StatusOK, render.FormEditArtist, render.Page{
		Title: "Edit Artist",
		Data:  editTarget{ID: artist.ID, Name: artist.Name},
		Form:  form.FromArtist(artist),
	})
}

func (h *ArtistHandler) Edit(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	artist, err := h.artists.GetRaw(ctx, id)
	if err != nil {
		return err
	}

	to := fmt.Sprintf("/artists/%d", id)
	f := new(form.ArtistForm)
	if err := validation.BindAndValidate(c, f); err != nil {
		return h.formError(c, render.FormEditArtist, f, editTarget{ID: id, Name: artist.Name}, err)
	}

	if err := h.artists.Update(ctx, id, f.ToModel()); err != nil {
		if isMissing(err) {
			return err
		}
		return h.failed(c, err, fmt.Sprintf("An error occurred. Artist %s could not be updated.", f.Name), to)
	}
	return h.succeeded(c, fmt.Sprintf("Artist %s was successfully updated!", f.Name), to)
}

// Delete serves JSON clients issuing DELETE /artists/:id.
func (h *ArtistHandler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	if err := h.artists.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	h.server.Flash.Success(c, "Artist was successfully deleted.")
	return deleted(c)
}

// DeleteForm is the form-post fallback of Delete.
func (h *ArtistHandler) DeleteForm(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	if err := h.artists.Delete(c.Request().Context(), id); err != nil {
		if isMissing(err) {
			return err
		}
		return h.failed(c, err, "An error occurred. Artist could not be deleted.", fmt.Sprintf("/artists/%d", id))
	}
	return h.succeeded(c, "Artist was successfully deleted.", "/")
}
