package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/fyyur/internal/config"
	"github.com/deppfellow/fyyur/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// ListingMailer sends listing notifications; *email.Client implements it.
type ListingMailer interface {
	SendListingCreatedEmail(to, kind string, id int64, name, url string) error
}

type notifier struct {
	mailer ListingMailer
	to     string
}

// InitHandlers wires handler dependencies. Notifications are only sent
// when both the Resend key and a recipient are configured.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Integration.NotificationsEnabled() {
		logger.Info().Msg("listing notification emails disabled")
		return
	}
	j.SetMailer(email.NewClient(cfg, logger), cfg.Integration.NotificationEmail)
}

// SetMailer replaces the notification mailer and recipient.
func (j *JobService) SetMailer(mailer ListingMailer, to string) {
	j.notifier = &notifier{mailer: mailer, to: to}
}

func (j *JobService) handleListingCreatedTask(ctx context.Context, t *asynq.Task) error {
	var p ListingCreatedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// Malformed payloads will never succeed.
		return fmt.Errorf("failed to unmarshal listing payload: %v: %w", err, asynq.SkipRetry)
	}

	logger := j.logger.With().
		Str("type", TaskListingCreated).
		Str("kind", p.Kind).
		Int64("listing_id", p.ID).
		Logger()

	logger.Info().Str("name", p.Name).Msg("Processing listing task")

	if j.notifier == nil {
		logger.Debug().Msg("no notifier configured, skipping email")
		return nil
	}

	if err := j.notifier.mailer.SendListingCreatedEmail(j.notifier.to, p.Kind, p.ID, p.Name, p.URL()); err != nil {
		logger.Error().Err(err).Msg("Failed to send listing email")
		return err
	}

	logger.Info().Msg("Successfully sent listing email")
	return nil
}
