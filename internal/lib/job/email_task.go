package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TaskWelcome = "email:welcome"
)

type WelcomeEmailPayload struct {
	To       string `json:"to"`
	Username string `json:"username"`
}

func NewWelcomeEmailTask(to, username string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{
		To:       to,
		Username: username,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
