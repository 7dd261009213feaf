// Package jobs provides scheduled background tasks for the fulfillment service.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field and live outside the
// core: they only call command handlers.
//
// # Available Jobs
//
// NotificationRelayJob reads unpublished outbox events in batches, hands them
// to the notification dispatcher and marks the delivered ones as published.
// Runs are never overlapped.
//
// # Usage
//
//	relay := jobs.NewNotificationRelayJob(handler, "*/5 * * * * *", 100, jobMetrics, logger)
//	jobManager := jobs.NewJobManager(relay)
//
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and counted; the next run retries the same events.
// A job that fails to start stops every job started before it.
package jobs
