package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

type Schedules struct {
	Sweep    string
	Reminder string
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	sweepJob    *ExpiredSecretsSweepJob
	reminderJob *AvailableRoutesReminderJob
}

// NewJobManager wires both jobs. Each run is bounded by timeout.
func NewJobManager(
	sweepHandler secretsSweeper,
	reminderHandler routesReminder,
	schedules Schedules,
	timeout time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		sweepJob:    NewExpiredSecretsSweepJob(sweepHandler, schedules.Sweep, timeout, logger),
		reminderJob: NewAvailableRoutesReminderJob(reminderHandler, schedules.Reminder, timeout, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.sweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start expired secrets sweep job: %w", err)
	}

	if err := jm.reminderJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.sweepJob.Stop()
		return fmt.Errorf("failed to start available routes reminder job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running ones to finish.
func (jm *JobManager) StopAll() {
	jm.reminderJob.Stop()
	jm.sweepJob.Stop()
}
