package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/starwars-api/internal/config"
	"github.com/deppfellow/starwars-api/internal/lib/email"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

type welcomeMailer interface {
	SendWelcomeEmail(to, username string) error
}

func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	j.mailer = email.NewClient(cfg, logger)
}

func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %w", err)
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("Processing welcome email task")

	if err := j.mailer.SendWelcomeEmail(p.To, p.Username); err != nil {
		j.logger.Error().
			Str("type", "welcome").
			Str("to", p.To).
			Err(err).
			Msg("Failed to send welcome email")
		// asynq retries failed tasks up to MaxRetry.
		return err
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("Successfully sent welcome email")

	return nil
}
