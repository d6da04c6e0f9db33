// Package jobs provides scheduled background tasks for routehub.
//
// Jobs are cron schedules (github.com/robfig/cron/v3, with a seconds field)
// that run a command handler under a bounded context.
//
// # Available Jobs
//
//  1. ExpiredSecretsSweepJob - every minute by default, drops verification
//     codes and reset tokens that are past their expiry
//  2. AvailableRoutesReminderJob - every ten minutes by default, pushes a
//     reminder to the first delivery agent with a push address while routes
//     older than ten minutes are unclaimed
//
// # Usage
//
//	jobManager := jobs.NewJobManager(sweepHandler, reminderHandler, jobs.Schedules{}, 5*time.Second, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// Failures are logged and the next tick runs as usual. A job that fails to
// start stops the ones already started.
package jobs
