package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	to, username string
	err          error
}

func (f *fakeMailer) SendWelcomeEmail(to, username string) error {
	f.to, f.username = to, username
	return f.err
}

func TestNewWelcomeEmailTask(t *testing.T) {
	task, err := NewWelcomeEmailTask("luke@rebellion.org", "luke")
	require.NoError(t, err)
	assert.Equal(t, TaskWelcome, task.Type())

	var p WelcomeEmailPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, WelcomeEmailPayload{To: "luke@rebellion.org", Username: "luke"}, p)
}

func TestHandleWelcomeEmailTask(t *testing.T) {
	logger := zerolog.Nop()
	mailer := &fakeMailer{}
	j := &JobService{mailer: mailer, logger: &logger}

	task, err := NewWelcomeEmailTask("leia@alderaan.gov", "leia")
	require.NoError(t, err)

	require.NoError(t, j.handleWelcomeEmailTask(context.Background(), task))
	assert.Equal(t, "leia@alderaan.gov", mailer.to)
	assert.Equal(t, "leia", mailer.username)
}

func TestHandleWelcomeEmailTask_Failures(t *testing.T) {
	logger := zerolog.Nop()

	j := &JobService{mailer: &fakeMailer{err: errors.New("smtp down")}, logger: &logger}
	task, err := NewWelcomeEmailTask("han@falcon.io", "han")
	require.NoError(t, err)
	assert.EqualError(t, j.handleWelcomeEmailTask(context.Background(), task), "smtp down")

	bad := asynq.NewTask(TaskWelcome, []byte("{"))
	assert.Error(t, j.handleWelcomeEmailTask(context.Background(), bad))
}
