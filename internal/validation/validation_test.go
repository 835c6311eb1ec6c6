package validation_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/deppfellow/fyyur/internal/errs"
	"github.com/deppfellow/fyyur/internal/form"
	"github.com/deppfellow/fyyur/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formContext(values url.Values) echo.Context {
	req := httptest.NewRequest(http.MethodPost, "/venues/create", strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestBindAndValidateForm(t *testing.T) {
	values := url.Values{
		"name":           {"The Musical Hop"},
		"city":           {"San Francisco"},
		"state":          {"CA"},
		"address":        {"1015 Folsom Street"},
		"genres":         {"Jazz", "Folk"},
		"seeking_talent": {"true"},
	}

	var f form.VenueForm
	require.NoError(t, validation.BindAndValidate(formContext(values), &f))
	assert.Equal(t, []string{"Jazz", "Folk"}, f.Genres)
	assert.True(t, f.SeekingTalent)
}

func TestBindAndValidateFieldErrors(t *testing.T) {
	values := url.Values{
		"name":   {"No State"},
		"city":   {"Nowhere"},
		"state":  {"ZZ"},
		"genres": {"Polka"},
	}

	var f form.VenueForm
	err := validation.BindAndValidate(formContext(values), &f)

	httpErr, ok := errs.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.True(t, httpErr.Override)

	fields := httpErr.FieldErrorMap()
	assert.Equal(t, "must be a valid US state code", fields["state"])
	assert.Equal(t, "is required", fields["address"])
	assert.Equal(t, `"Polka" is not a known genre`, fields["genres"])
}

func TestBindErrorIsBadRequest(t *testing.T) {
	values := url.Values{"artist_id": {"abc"}, "venue_id": {"1"}, "start_time": {"2035-04-01 20:00:00"}}

	var f form.ShowForm
	err := validation.BindAndValidate(formContext(values), &f)
	assert.True(t, errs.IsStatus(err, http.StatusBadRequest))
}

func TestCustomValidationErrors(t *testing.T) {
	err := validation.Validate(customPayload{})

	httpErr, ok := errs.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, []errs.FieldError{{Field: "start_time", Error: "is in the past"}}, httpErr.Errors)
}

type customPayload struct{}

func (customPayload) Validate() error {
	return validation.CustomValidationErrors{{Field: "start_time", Message: "is in the past"}}
}
