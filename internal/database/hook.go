package database

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/uptrace/bun"
)

// slowQueryHook logs queries that take longer than threshold.
type slowQueryHook struct {
	threshold time.Duration
	logger    *zerolog.Logger
}

var _ bun.QueryHook = (*slowQueryHook)(nil)

func (h *slowQueryHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *slowQueryHook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	duration := time.Since(event.StartTime)
	if duration <= h.threshold {
		return
	}

	h.logger.Warn().
		Str("component", "database").
		Str("operation", event.Operation()).
		Dur("duration", duration).
		Dur("threshold", h.threshold).
		Str("query", event.Query).
		Err(event.Err).
		Msg("slow query")
}
