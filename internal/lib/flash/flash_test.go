package flash

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_PopClears(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	require.NoError(t, store.Add(ctx, "a", Message{Category: CategorySuccess, Text: "one"}))
	require.NoError(t, store.Add(ctx, "a", Message{Category: CategoryError, Text: "two"}))

	msgs, err := store.Pop(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []Message{
		{Category: CategorySuccess, Text: "one"},
		{Category: CategoryError, Text: "two"},
	}, msgs)

	msgs, err = store.Pop(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestMemoryStore_Expires(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Add(ctx, "a", Message{Text: "stale"}))
	now = now.Add(2 * time.Minute)

	msgs, err := store.Pop(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestFlash_CookieRoundTrip(t *testing.T) {
	e := echo.New()
	logger := zerolog.Nop()
	f := New(NewMemoryStore(time.Minute), &logger)

	req := httptest.NewRequest(http.MethodPost, "/venues/create", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	f.Success(c, "Venue The Musical Hop was successfully listed!")
	f.Error(c, "second")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(cookies[0])
	c2 := e.NewContext(next, httptest.NewRecorder())

	msgs := f.Pop(c2)
	require.Len(t, msgs, 2)
	assert.Equal(t, "Venue The Musical Hop was successfully listed!", msgs[0].Text)
	assert.Equal(t, CategoryError, msgs[1].Category)

	assert.Empty(t, f.Pop(c2))
}

func TestFlash_PopWithoutCookie(t *testing.T) {
	e := echo.New()
	logger := zerolog.Nop()
	f := New(NewMemoryStore(time.Minute), &logger)

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Nil(t, f.Pop(c))
}
