// Package jobs provides scheduled background tasks for the ordering service.
//
// Jobs are built on github.com/robfig/cron/v3 with second-level schedules.
//
// # Available Jobs
//
// PendingOrderExpiryJob cancels orders that are still PENDING and unpaid after
// a configurable TTL. Each run cancels at most one batch inside a single
// transaction; the next tick picks up whatever is left.
//
// # Usage
//
//	expiry := jobs.NewPendingOrderExpiryJob(handler, metrics, jobs.PendingOrderExpiryConfig{
//		Schedule: "0 * * * * *",
//		TTL:      30 * time.Minute,
//	}, logger)
//
//	jobManager := jobs.NewJobManager(expiry)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
