package jobs

import (
	"context"
	"log/slog"
	"time"

	"routehub/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

const DefaultSweepSchedule = "0 * * * * *"

type secretsSweeper interface {
	Handle(ctx context.Context, command commands.SweepExpiredSecretsCommand) (int64, error)
}

// ExpiredSecretsSweepJob clears expired verification codes and reset tokens.
// Validity never depends on it; it keeps the users table tidy.
type ExpiredSecretsSweepJob struct {
	handler  secretsSweeper
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewExpiredSecretsSweepJob(
	handler secretsSweeper,
	schedule string,
	timeout time.Duration,
	logger *slog.Logger,
) *ExpiredSecretsSweepJob {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	return &ExpiredSecretsSweepJob{
		handler:  handler,
		schedule: schedule,
		timeout:  timeout,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "expired_secrets_sweep_job"),
	}
}

func (j *ExpiredSecretsSweepJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Expired secrets sweep job started", "schedule", j.schedule)
	return nil
}

func (j *ExpiredSecretsSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Expired secrets sweep job stopped")
}

func (j *ExpiredSecretsSweepJob) run() {
	ctx, cancel := withTimeout(j.timeout)
	defer cancel()

	cleared, err := j.handler.Handle(ctx, commands.NewSweepExpiredSecretsCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Expired secrets sweep failed", "error", err)
		return
	}
	if cleared > 0 {
		j.logger.InfoContext(ctx, "Expired secrets cleared", "users", cleared)
	}
}

func withTimeout(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), timeout)
}
