// Package job runs background tasks on asynq.
//
// The service is only created when Redis is reachable; callers treat a
// nil *JobService as "background jobs disabled".
package job

import (
	"context"
	"fmt"

	"github.com/deppfellow/starwars-api/internal/config"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

type JobService struct {
	Client *asynq.Client

	server *asynq.Server
	mailer welcomeMailer
	logger *zerolog.Logger
}

func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisAddr := cfg.Redis.Address

	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr: redisAddr,
	})

	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	return &JobService{
		Client: client,
		server: server,
		logger: logger,
	}
}

// Start runs the worker in the background. It does not block.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()

	mux.HandleFunc(TaskWelcome, j.handleWelcomeEmailTask)

	j.logger.Info().Msg("Starting background job server")

	if err := j.server.Start(mux); err != nil {
		return err
	}

	return nil
}

// EnqueueWelcomeEmail schedules the welcome email for a new user.
func (j *JobService) EnqueueWelcomeEmail(ctx context.Context, to, username string) error {
	task, err := NewWelcomeEmailTask(to, username)
	if err != nil {
		return fmt.Errorf("build welcome task: %w", err)
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueue welcome task: %w", err)
	}

	j.logger.Debug().Str("task_id", info.ID).Str("queue", info.Queue).Msg("welcome email enqueued")

	return nil
}

func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	j.Client.Close()
}
