package jobs

import (
	"context"
	"log/slog"
	"time"

	"routehub/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

const (
	DefaultReminderSchedule = "0 */10 * * * *"
	DefaultReminderAge      = 10 * time.Minute
)

type routesReminder interface {
	Handle(ctx context.Context, command commands.RemindAvailableRoutesCommand) (int64, error)
}

// AvailableRoutesReminderJob pushes a reminder to a delivery agent while
// routes older than DefaultReminderAge are still unclaimed.
type AvailableRoutesReminderJob struct {
	handler  routesReminder
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewAvailableRoutesReminderJob(
	handler routesReminder,
	schedule string,
	timeout time.Duration,
	logger *slog.Logger,
) *AvailableRoutesReminderJob {
	if schedule == "" {
		schedule = DefaultReminderSchedule
	}
	return &AvailableRoutesReminderJob{
		handler:  handler,
		schedule: schedule,
		timeout:  timeout,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "available_routes_reminder_job"),
	}
}

func (j *AvailableRoutesReminderJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Available routes reminder job started", "schedule", j.schedule)
	return nil
}

func (j *AvailableRoutesReminderJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Available routes reminder job stopped")
}

func (j *AvailableRoutesReminderJob) run() {
	ctx, cancel := withTimeout(j.timeout)
	defer cancel()

	cmd, err := commands.NewRemindAvailableRoutesCommand(DefaultReminderAge)
	if err != nil {
		j.logger.ErrorContext(ctx, "Available routes reminder misconfigured", "error", err)
		return
	}

	waiting, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Available routes reminder failed", "error", err)
		return
	}
	if waiting > 0 {
		j.logger.InfoContext(ctx, "Reminded agents of waiting routes", "routes", waiting)
	}
}
