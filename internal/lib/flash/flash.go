// Package flash implements one-shot messages shown on the next page render.
//
// A browser is identified by a random id in the fyyur_flash cookie; messages
// for that id live in a Store until the next page pops them.
package flash

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const CookieName = "fyyur_flash"

// Categories used by the templates to pick an alert style.
const (
	CategorySuccess = "success"
	CategoryError   = "danger"
	CategoryInfo    = "info"
)

type Message struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

// Store keeps pending messages per browser session id.
type Store interface {
	Add(ctx context.Context, sessionID string, msg Message) error
	// Pop returns and clears the pending messages, oldest first.
	Pop(ctx context.Context, sessionID string) ([]Message, error)
}

// Flash ties a Store to echo requests through the session cookie.
type Flash struct {
	store  Store
	logger *zerolog.Logger
}

func New(store Store, logger *zerolog.Logger) *Flash {
	return &Flash{store: store, logger: logger}
}

func (f *Flash) Success(c echo.Context, text string) {
	f.Add(c, CategorySuccess, text)
}

func (f *Flash) Error(c echo.Context, text string) {
	f.Add(c, CategoryError, text)
}

// Add queues a message for the current browser. Store failures are logged
// and swallowed; a lost flash must not fail the request that produced it.
func (f *Flash) Add(c echo.Context, category, text string) {
	sessionID := f.sessionID(c, true)
	err := f.store.Add(c.Request().Context(), sessionID, Message{Category: category, Text: text})
	if err != nil {
		f.logger.Warn().Err(err).Str("category", category).Msg("failed to store flash message")
	}
}

// Pop returns and clears the current browser's messages.
func (f *Flash) Pop(c echo.Context) []Message {
	sessionID := f.sessionID(c, false)
	if sessionID == "" {
		return nil
	}

	msgs, err := f.store.Pop(c.Request().Context(), sessionID)
	if err != nil {
		f.logger.Warn().Err(err).Msg("failed to read flash messages")
		return nil
	}
	return msgs
}

func (f *Flash) sessionID(c echo.Context, create bool) string {
	if cookie, err := c.Cookie(CookieName); err == nil {
		if _, err := uuid.Parse(cookie.Value); err == nil {
			return cookie.Value
		}
	}

	if !create {
		return ""
	}

	id := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	// Later Adds in the same request must reuse the id.
	c.Request().AddCookie(&http.Cookie{Name: CookieName, Value: id})
	return id
}
