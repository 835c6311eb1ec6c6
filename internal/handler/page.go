package handler

import (
	"net/http"

	"github.com/deppfellow/fyyur/internal/errs"
	"github.com/deppfellow/fyyur/internal/lib/flash"
	"github.com/deppfellow/fyyur/internal/middleware"
	"github.com/deppfellow/fyyur/internal/render"
	"github.com/labstack/echo/v4"
)

const (
	homeLimit = 10

	msgFixErrors = "Please correct the errors below."
)

// searchPage is the data of the search result templates.
type searchPage struct {
	Term    string
	Results any
}

// editTarget identifies the record an edit form posts back to.
type editTarget struct {
	ID   int64
	Name string
}

// formError re-renders a form with its field errors when err is a 400, and
// passes every other error to the global error handler.
func (h Handler) formError(c echo.Context, name string, f any, data any, err error) error {
	httpErr, ok := errs.AsHTTPError(err)
	if !ok || httpErr.Status != http.StatusBadRequest {
		return err
	}

	p := render.Page{
		Data:   data,
		Form:   f,
		Errors: httpErr.FieldErrorMap(),
	}
	p.Flashes = append(h.server.Flash.Pop(c), flash.Message{
		Category: flash.CategoryError,
		Text:     formErrorText(httpErr),
	})
	return c.Render(http.StatusBadRequest, name, p)
}

// formErrorText prefers a message meant for users, such as a missing
// venue on a show, over the generic prompt.
func formErrorText(httpErr *errs.HTTPError) string {
	if httpErr.Override && httpErr.Message != "Validation failed" {
		return httpErr.Message
	}
	return msgFixErrors
}

// failed logs a write that could not complete, flashes text and redirects.
func (h Handler) failed(c echo.Context, err error, text, to string) error {
	middleware.GetLogger(c).Error().Err(err).Msg(text)
	h.server.Flash.Error(c, text)
	return c.Redirect(http.StatusSeeOther, to)
}

func (h Handler) succeeded(c echo.Context, text, to string) error {
	h.server.Flash.Success(c, text)
	return c.Redirect(http.StatusSeeOther, to)
}

// isMissing reports whether err is a 404 that should reach the error page.
func isMissing(err error) bool {
	return errs.IsStatus(err, http.StatusNotFound)
}
