package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/deppfellow/fyyur/internal/form"
	"github.com/deppfellow/fyyur/internal/lib/flash"
	"github.com/deppfellow/fyyur/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDatetime(t *testing.T) {
	ts := time.Date(2035, time.April, 1, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, "Sunday April, 1, 2035 at 8:00PM", FormatDatetime("full", ts))
	assert.Equal(t, "Sun 04, 01, 2035 8:00PM", FormatDatetime("medium", ts))
	assert.Equal(t, "Sun 04, 01, 2035 8:00PM", FormatDatetime("", ts))
	assert.Equal(t, "2035-04-01", FormatDatetime("2006-01-02", ts))
}

func TestNewLoadsEveryPage(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	for _, name := range []string{
		PageHome, PageVenues, PageSearchVenues, PageShowVenue,
		PageArtists, PageSearchArtists, PageShowArtist, PageShows,
		FormNewVenue, FormEditVenue, FormNewArtist, FormEditArtist, FormNewShow,
		Error404, Error500,
	} {
		assert.True(t, r.Has(name), name)
	}
}

func TestRenderVenueForm(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	page := Page{
		Title:   "New Venue",
		Flashes: []flash.Message{{Category: flash.CategoryError, Text: "Check the form"}},
		Form:    &form.VenueForm{Name: "Hop <Club>", State: "CA", Genres: []string{"Jazz"}},
		Errors:  map[string]string{"city": "is required"},
	}

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, FormNewVenue, page, nil))

	html := buf.String()
	assert.Contains(t, html, "Check the form")
	assert.Contains(t, html, `value="Hop &lt;Club&gt;"`)
	assert.Contains(t, html, `<option value="CA" selected>`)
	assert.Contains(t, html, `<option value="Jazz" selected>`)
	assert.Contains(t, html, "is required")
}

func TestRenderUnknownTemplate(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.Error(t, r.Render(&buf, "pages/missing", Page{}, nil))
	assert.Zero(t, buf.Len())
}

func TestRenderGenres(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	detail := struct {
		*model.Venue
		PastShows, UpcomingShows           []any
		PastShowsCount, UpcomingShowsCount int
	}{
		Venue: &model.Venue{ID: 7, Name: "The Musical Hop", Genres: model.Genres{"Jazz", "Swing"}},
	}

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, PageShowVenue, Page{Data: detail}, nil))
	assert.Contains(t, buf.String(), `<span class="genre">Swing</span>`)
	assert.Contains(t, buf.String(), `/venues/7/edit`)
}
