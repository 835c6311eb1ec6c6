// Package render turns page data into HTML with html/template.
//
// Every page under templates/ is parsed together with the shared layouts
// into its own template set, so pages can each define "content" and
// "title" without clashing. Sprig supplies the general-purpose helpers.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/deppfellow/fyyur/internal/form"
	"github.com/deppfellow/fyyur/internal/lib/flash"
	"github.com/labstack/echo/v4"
)

//go:embed templates
var templateFS embed.FS

// Template names, relative to templates/ without the extension.
const (
	PageHome          = "pages/home"
	PageVenues        = "pages/venues"
	PageSearchVenues  = "pages/search_venues"
	PageShowVenue     = "pages/show_venue"
	PageArtists       = "pages/artists"
	PageSearchArtists = "pages/search_artists"
	PageShowArtist    = "pages/show_artist"
	PageShows         = "pages/shows"
	FormNewVenue      = "forms/new_venue"
	FormEditVenue     = "forms/edit_venue"
	FormNewArtist     = "forms/new_artist"
	FormEditArtist    = "forms/edit_artist"
	FormNewShow       = "forms/new_show"
	Error404          = "errors/404"
	Error500          = "errors/500"
)

// Page is the value every template receives.
type Page struct {
	Title   string
	Flashes []flash.Message
	Data    any

	// Form pages only.
	Form   any
	Errors map[string]string
}

// Datetime layouts for the datetime template function.
const (
	LayoutFull   = "Monday January, 2, 2006 at 3:04PM"
	LayoutMedium = "Mon 01, 02, 2006 3:04PM"
)

// FormatDatetime formats t with the named layout ("full" or "medium");
// any other name is used as a time layout itself.
func FormatDatetime(format string, t time.Time) string {
	switch format {
	case "full":
		format = LayoutFull
	case "medium", "":
		format = LayoutMedium
	}
	return t.Format(format)
}

// Funcs is sprig's function map plus the site helpers.
func Funcs() template.FuncMap {
	funcs := sprig.FuncMap()
	funcs["datetime"] = FormatDatetime
	funcs["states"] = func() []string { return form.StateChoices }
	funcs["genres"] = func() []string { return form.GenreChoices }
	return funcs
}

type Renderer struct {
	templates map[string]*template.Template
}

var _ echo.Renderer = (*Renderer)(nil)

// New parses every page template. It fails on the first template error.
func New() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template)}

	for _, dir := range []string{"pages", "forms", "errors"} {
		pages, err := fs.Glob(templateFS, path.Join("templates", dir, "*.html"))
		if err != nil {
			return nil, err
		}

		for _, page := range pages {
			tmpl, err := template.New("layout").
				Funcs(Funcs()).
				ParseFS(templateFS, "templates/layouts/*.html", page)
			if err != nil {
				return nil, fmt.Errorf("parsing %s: %w", page, err)
			}

			name := strings.TrimSuffix(strings.TrimPrefix(page, "templates/"), ".html")
			r.templates[name] = tmpl
		}
	}

	return r, nil
}

// Render implements echo.Renderer. The page is executed into a buffer so a
// template error never leaves a half-written response.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}

	_, err := buf.WriteTo(w)
	return err
}

// Has reports whether a template called name was loaded.
func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}
