package handler

import (
	"net/http"

	"github.com/deppfellow/fyyur/internal/errs"
	"github.com/deppfellow/fyyur/internal/lib/email"
	"github.com/deppfellow/fyyur/internal/server"
	"github.com/labstack/echo/v4"
)

// EmailPreviewHandler renders email templates with sample data. The router
// only mounts it in the local environment.
type EmailPreviewHandler struct {
	Handler
}

func NewEmailPreviewHandler(s *server.Server) *EmailPreviewHandler {
	return &EmailPreviewHandler{
		Handler: NewHandler(s),
	}
}

func (h *EmailPreviewHandler) Preview(c echo.Context) error {
	html, err := email.RenderPreview(email.Template(c.Param("template")))
	if err != nil {
		return errs.NewNotFoundError("Unknown email template", true, nil)
	}
	return c.HTML(http.StatusOK, html)
}
