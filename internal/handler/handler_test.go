package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/fyyur/internal/errs"
	"github.com/deppfellow/fyyur/internal/handler"
	"github.com/deppfellow/fyyur/internal/lib/flash"
	"github.com/deppfellow/fyyur/internal/repository"
	"github.com/deppfellow/fyyur/internal/router"
	"github.com/deppfellow/fyyur/internal/seed"
	"github.com/deppfellow/fyyur/internal/server"
	"github.com/deppfellow/fyyur/internal/service"
	"github.com/deppfellow/fyyur/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type app struct {
	e        *echo.Echo
	srv      *server.Server
	services *service.Services
}

func newApp(t *testing.T) *app {
	t.Helper()

	srv := testutil.NewServer(t)
	repos := repository.NewRepositories(srv)

	f, err := seed.Parse(bytes.NewReader(seed.Default))
	require.NoError(t, err)
	_, err = seed.Load(context.Background(), srv.DB.DB, repos, f)
	require.NoError(t, err)

	services, err := service.NewService(srv, repos)
	require.NoError(t, err)
	services.SetClock(func() time.Time {
		return time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	})

	e, err := router.NewRouter(srv, handler.NewHandlers(srv, services))
	require.NoError(t, err)

	return &app{e: e, srv: srv, services: services}
}

func (a *app) do(req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func flashCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == flash.CookieName {
			return c
		}
	}
	t.Fatalf("response did not set the %s cookie", flash.CookieName)
	return nil
}

func (a *app) venueID(t *testing.T, name string) int64 {
	t.Helper()
	res, err := a.services.Venue.Search(context.Background(), name)
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
	return res.Data[0].ID
}

func (a *app) artistID(t *testing.T, name string) int64 {
	t.Helper()
	res, err := a.services.Artist.Search(context.Background(), name)
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
	return res.Data[0].ID
}

func TestCreateVenue_RedirectsWithFlash(t *testing.T) {
	a := newApp(t)

	rec := a.do(postForm("/venues/create", url.Values{
		"name":    {"Blue Room"},
		"city":    {"Austin"},
		"state":   {"TX"},
		"address": {"12 Sixth Street"},
		"phone":   {"512-555-0100"},
		"genres":  {"Jazz", "Blues"},
	}))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
	cookie := flashCookie(t, rec)

	home := a.do(httptest.NewRequest(http.MethodGet, "/", nil), cookie)
	require.Equal(t, http.StatusOK, home.Code)
	assert.Contains(t, home.Body.String(), "Venue Blue Room was successfully listed!")

	// Flashes are shown once.
	again := a.do(httptest.NewRequest(http.MethodGet, "/", nil), cookie)
	assert.NotContains(t, again.Body.String(), "successfully listed")

	res, err := a.services.Venue.Search(context.Background(), "blue room")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
}

func TestCreateVenue_InvalidFormRerenders(t *testing.T) {
	a := newApp(t)

	rec := a.do(postForm("/venues/create", url.Values{
		"name":  {"No Address Hall"},
		"city":  {"Austin"},
		"state": {"ZZ"},
	}))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Please correct the errors below.")
	assert.Contains(t, body, "No Address Hall")

	res, err := a.services.Venue.Search(context.Background(), "No Address")
	require.NoError(t, err)
	assert.Zero(t, res.Count)
}

func TestShowVenue(t *testing.T) {
	a := newApp(t)
	id := a.venueID(t, "The Musical Hop")

	rec := a.do(httptest.NewRequest(http.MethodGet, "/venues/"+strconv.FormatInt(id, 10), nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "The Musical Hop")
}

func TestShowVenue_MissingRendersNotFound(t *testing.T) {
	a := newApp(t)

	for _, path := range []string{"/venues/9999", "/venues/abc", "/no-such-page"} {
		rec := a.do(httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "404", path)
		assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMETextHTML, path)
	}
}

func TestSearchVenues(t *testing.T) {
	a := newApp(t)

	rec := a.do(postForm("/venues/search", url.Values{"search_term": {"hop"}}))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "The Musical Hop")
	assert.Contains(t, body, ": 1</h3>")
}

func TestSearchArtists(t *testing.T) {
	a := newApp(t)

	rec := a.do(postForm("/artists/search", url.Values{"search_term": {"band"}}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "The Wild Sax Band")
}

func TestDeleteVenue_JSON(t *testing.T) {
	a := newApp(t)
	id := a.venueID(t, "The Musical Hop")

	rec := a.do(httptest.NewRequest(http.MethodDelete, "/venues/"+strconv.FormatInt(id, 10), nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success": true, "redirect": "/"}`, rec.Body.String())

	gone := a.do(httptest.NewRequest(http.MethodGet, "/venues/"+strconv.FormatInt(id, 10), nil))
	assert.Equal(t, http.StatusNotFound, gone.Code)
}

func TestCreateShow_UnknownVenueRerenders(t *testing.T) {
	a := newApp(t)

	rec := a.do(postForm("/shows/create", url.Values{
		"artist_id":  {"1"},
		"venue_id":   {"9999"},
		"start_time": {"2035-04-01 20:00:00"},
	}))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "The referenced venue does not exist")
}

func TestListShows(t *testing.T) {
	a := newApp(t)

	rec := a.do(httptest.NewRequest(http.MethodGet, "/shows", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Guns N Petals")
}

func TestAPIListVenues(t *testing.T) {
	a := newApp(t)

	rec := a.do(httptest.NewRequest(http.MethodGet, "/api/v1/venues?page=1&page_size=2", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var page repository.Pagination[struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 3, page.Total)
	assert.Len(t, page.Items, 2)
}

func TestAPIGetVenue_NotFound(t *testing.T) {
	a := newApp(t)

	rec := a.do(httptest.NewRequest(http.MethodGet, "/api/v1/venues/9999", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var httpErr errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &httpErr))
	assert.Equal(t, "VENUE_NOT_FOUND", httpErr.Code)
}

func TestAPIListVenues_InvalidPageSize(t *testing.T) {
	a := newApp(t)

	rec := a.do(httptest.NewRequest(http.MethodGet, "/api/v1/venues?page_size=500", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var httpErr errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &httpErr))
	require.NotEmpty(t, httpErr.Errors)
	assert.Equal(t, "page_size", httpErr.Errors[0].Field)
}

func TestAPIWritesRequireAuth(t *testing.T) {
	a := newApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/venues", strings.NewReader(`{"name":"Nope"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := a.do(req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	res, err := a.services.Venue.Search(context.Background(), "Nope")
	require.NoError(t, err)
	assert.Zero(t, res.Count)
}

func TestHealth(t *testing.T) {
	a := newApp(t)

	rec := a.do(httptest.NewRequest(http.MethodGet, "/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status string `json:"status"`
		Checks map[string]struct {
			Status string `json:"status"`
		} `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "healthy", body.Checks["database"].Status)
}

func TestCreateVenue_WriteFailureFlashesError(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()

	_, err := a.srv.DB.DB.ExecContext(ctx, `CREATE TRIGGER reject_venue_insert BEFORE INSERT ON venues
		BEGIN SELECT RAISE(ABORT, 'venue writes disabled'); END`)
	require.NoError(t, err)

	rec := a.do(postForm("/venues/create", url.Values{
		"name":    {"Blue Room"},
		"city":    {"Austin"},
		"state":   {"TX"},
		"address": {"12 Sixth Street"},
	}))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	home := a.do(httptest.NewRequest(http.MethodGet, "/", nil), flashCookie(t, rec))
	require.Equal(t, http.StatusOK, home.Code)
	assert.Contains(t, home.Body.String(), "An error occurred. Venue Blue Room could not be listed.")

	res, err := a.services.Venue.Search(ctx, "Blue Room")
	require.NoError(t, err)
	assert.Zero(t, res.Count)
}

func TestListVenues_BrokenDatabaseRendersServerError(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()

	for _, table := range []string{"shows", "venues"} {
		_, err := a.srv.DB.DB.ExecContext(ctx, "DROP TABLE "+table)
		require.NoError(t, err)
	}

	rec := a.do(httptest.NewRequest(http.MethodGet, "/venues", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<h1>500</h1>")
	assert.NotContains(t, body, "no such table")
}

func TestEditVenue(t *testing.T) {
	a := newApp(t)
	id := a.venueID(t, "The Musical Hop")
	path := "/venues/" + strconv.FormatInt(id, 10)

	form := a.do(httptest.NewRequest(http.MethodGet, path+"/edit", nil))
	require.Equal(t, http.StatusOK, form.Code)
	assert.Contains(t, form.Body.String(), `value="The Musical Hop"`)

	rec := a.do(postForm(path+"/edit", url.Values{
		"name":    {"The Musical Hop"},
		"city":    {"Oakland"},
		"state":   {"CA"},
		"address": {"1015 Folsom Street"},
		"genres":  {"Jazz"},
	}))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, path, rec.Header().Get(echo.HeaderLocation))

	detail := a.do(httptest.NewRequest(http.MethodGet, path, nil), flashCookie(t, rec))
	require.Equal(t, http.StatusOK, detail.Code)
	assert.Contains(t, detail.Body.String(), "Venue The Musical Hop was successfully updated!")

	venue, err := a.services.Venue.GetRaw(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Oakland", venue.City)
	assert.False(t, venue.SeekingTalent)
}

func TestEditVenue_InvalidFormRerenders(t *testing.T) {
	a := newApp(t)
	id := a.venueID(t, "The Musical Hop")

	rec := a.do(postForm("/venues/"+strconv.FormatInt(id, 10)+"/edit", url.Values{
		"name":  {"The Musical Hop"},
		"city":  {"Oakland"},
		"state": {"ZZ"},
	}))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please correct the errors below.")

	venue, err := a.services.Venue.GetRaw(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "San Francisco", venue.City)
}

func TestEditUnknownRecordNotFound(t *testing.T) {
	a := newApp(t)

	for _, path := range []string{"/venues/9999/edit", "/artists/9999/edit"} {
		rec := a.do(httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, path)

		rec = a.do(postForm(path, url.Values{"name": {"Ghost"}, "city": {"Nowhere"}, "state": {"CA"}}))
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}

func TestEditArtist(t *testing.T) {
	a := newApp(t)
	id := a.artistID(t, "Matt Quevedo")
	path := "/artists/" + strconv.FormatInt(id, 10)

	form := a.do(httptest.NewRequest(http.MethodGet, path+"/edit", nil))
	require.Equal(t, http.StatusOK, form.Code)
	assert.Contains(t, form.Body.String(), `value="Matt Quevedo"`)

	rec := a.do(postForm(path+"/edit", url.Values{
		"name":          {"Matt Quevedo"},
		"city":          {"Brooklyn"},
		"state":         {"NY"},
		"seeking_venue": {"true"},
	}))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, path, rec.Header().Get(echo.HeaderLocation))

	detail := a.do(httptest.NewRequest(http.MethodGet, path, nil), flashCookie(t, rec))
	assert.Contains(t, detail.Body.String(), "Artist Matt Quevedo was successfully updated!")

	artist, err := a.services.Artist.GetRaw(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Brooklyn", artist.City)
	assert.True(t, artist.SeekingVenue)
}
