package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	assert.Equal(t, "NOT_FOUND", NewNotFoundError("Venue not found", true, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, NewUnauthorizedError("nope", false).Status)
	assert.Equal(t, "TOO_MANY_REQUESTS", NewTooManyRequestsError().Code)

	code := "SHOW_NOT_FOUND"
	bad := NewBadRequestError("The referenced Venue does not exist", true, &code, nil, nil)
	assert.Equal(t, code, bad.Code)
	assert.Equal(t, http.StatusBadRequest, bad.Status)

	internal := NewInternalServerError()
	assert.Equal(t, "Internal Server Error", internal.Message)
	assert.False(t, internal.Override)
}

func TestAsHTTPError_Unwraps(t *testing.T) {
	base := NewNotFoundError("Artist not found", true, nil)
	wrapped := fmt.Errorf("loading artist: %w", base)

	got, ok := AsHTTPError(wrapped)
	require.True(t, ok)
	assert.Same(t, base, got)
	assert.True(t, IsStatus(wrapped, http.StatusNotFound))
	assert.False(t, IsStatus(errors.New("plain"), http.StatusNotFound))
}

func TestWithMessage_Copies(t *testing.T) {
	base := NewNotFoundError("Resource not found", false, nil)
	custom := base.WithMessage("Venue not found")

	assert.Equal(t, "Resource not found", base.Message)
	assert.Equal(t, "Venue not found", custom.Message)
	assert.Equal(t, base.Code, custom.Code)
}

func TestFieldErrorMap_FirstErrorWins(t *testing.T) {
	err := NewBadRequestError("Validation failed", true, nil, []FieldError{
		{Field: "name", Error: "is required"},
		{Field: "state", Error: "must be one of: AL AK"},
		{Field: "name", Error: "must not exceed 120 characters"},
	}, nil)

	assert.Equal(t, map[string]string{
		"name":  "is required",
		"state": "must be one of: AL AK",
	}, err.FieldErrorMap())
}
