// Package jobs provides the background workers of the dispatch system.
//
// This package implements a cron-based sweep using github.com/robfig/cron/v3
// plus an in-process scoring queue.
//
// # Available Jobs
//
// 1. AssignmentSweepJob - Runs every second to allocate the oldest pending order to the best available courier
// 2. ScoringWorker - Drains scoring triggers and recomputes a courier's performance scores after deliveries and ratings
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// The worker doubles as the ports.ScoringQueue the handlers enqueue to
//	scoringWorker := jobs.NewScoringWorker(recomputeHandler, logger)
//	jobManager := jobs.NewJobManager(assignCourierHandler, scoringWorker, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The sweep uses the cron expression "* * * * * *" which means it runs every
// second, keeping allocation latency low without a push pipeline. The scoring
// worker is event driven: it sleeps until a trigger is enqueued.
//
// # Error Handling
//
// - The sweep ignores expected business errors (no pending orders, no eligible couriers, lost claim races)
// - The scoring worker logs failed passes; the next trigger for the same courier recomputes from scratch
// - Failed job starts will stop any already running jobs
package jobs
