package jobs

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// AssignmentSweepJob periodically drains the pending order pool: every tick
// it takes the oldest pending order and runs one allocation pass for it.
type AssignmentSweepJob struct {
	handler commands.AssignCourierCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewAssignmentSweepJob creates the sweep over the pending pool.
func NewAssignmentSweepJob(handler commands.AssignCourierCommandHandler, logger *slog.Logger) *AssignmentSweepJob {
	return &AssignmentSweepJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "assignment_sweep_job"),
	}
}

// Start schedules the sweep to run every second.
func (j *AssignmentSweepJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewAssignCourierCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// An empty pool, an empty candidate set and a lost claim
			// race are all expected outcomes of a sweep tick.
			if errors.Is(err, commands.ErrNoOrderFound) ||
				errors.Is(err, services.ErrNoCandidateCourier) ||
				errors.Is(err, ports.ErrStaleWrite) {
				return
			}
			j.logger.ErrorContext(ctx, "assignment sweep failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "assignment sweep started")
	return nil
}

// Stop stops the sweep. Already running ticks finish.
func (j *AssignmentSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "assignment sweep stopped")
}
