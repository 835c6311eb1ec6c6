// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives validated
// models from the handlers, applies the past/upcoming show rules, runs
// writes inside transactions and reports failures as errs.HTTPError where
// the caller can act on them.
package service

import (
	"context"
	"time"

	"github.com/deppfellow/fyyur/internal/lib/job"
	"github.com/deppfellow/fyyur/internal/middleware"
	"github.com/rs/zerolog"
)

// Clock returns the current time. Shows starting at or after Clock() are
// upcoming.
type Clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }

// notifyListing enqueues a listing notification. The write it follows has
// already committed, so failures are logged and not returned. The request
// logger is preferred so the warning carries the request id.
func notifyListing(ctx context.Context, logger *zerolog.Logger, jobs job.Enqueuer, p job.ListingCreatedPayload) {
	if jobs == nil {
		return
	}
	if err := jobs.EnqueueListingCreated(ctx, p); err != nil {
		middleware.LoggerFromContext(ctx, logger).Warn().
			Err(err).
			Str("kind", p.Kind).
			Int64("listing_id", p.ID).
			Msg("failed to enqueue listing notification")
	}
}
