package jobs

import (
	"fmt"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
)

// JobManager coordinates the background workers of the application.
// Provides a unified interface to start and stop all of them.
type JobManager struct {
	assignmentSweepJob *AssignmentSweepJob
	scoringWorker      *ScoringWorker
}

// NewJobManager creates a job manager with all required jobs.
// The scoring worker is passed in rather than built here because the
// composition root also hands it to the command handlers as their
// ports.ScoringQueue.
func NewJobManager(
	assignCourierHandler commands.AssignCourierCommandHandler,
	scoringWorker *ScoringWorker,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		assignmentSweepJob: NewAssignmentSweepJob(assignCourierHandler, logger),
		scoringWorker:      scoringWorker,
	}
}

// StartAll starts all background jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.scoringWorker.Start(); err != nil {
		return fmt.Errorf("failed to start scoring worker: %w", err)
	}

	if err := jm.assignmentSweepJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.scoringWorker.Stop()
		return fmt.Errorf("failed to start assignment sweep job: %w", err)
	}

	return nil
}

// StopAll stops all background jobs gracefully. The sweep stops first so no
// new scoring triggers are produced while the worker drains.
func (jm *JobManager) StopAll() {
	jm.assignmentSweepJob.Stop()
	jm.scoringWorker.Stop()
}
