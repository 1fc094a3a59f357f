package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

// ErrScoringQueueFull is returned by Enqueue when the scoring buffer is at
// capacity. Callers treat it as a dropped trigger; the next delivery or
// rating for the same courier causes a full recompute anyway.
var ErrScoringQueueFull = errors.New("scoring queue is full")

// ErrScoringWorkerStopped is returned by Enqueue after Stop has been called.
var ErrScoringWorkerStopped = errors.New("scoring worker is stopped")

const scoringBufferSize = 256

// scoresRecomputer is what the worker drives for each dequeued trigger.
type scoresRecomputer interface {
	Handle(ctx context.Context, cmd commands.RecomputeCourierScoresCommand) error
}

type scoringTask struct {
	courierID kernel.UUID
	trigger   ports.ScoringTrigger
}

// ScoringWorker is the in-process implementation of ports.ScoringQueue: a
// buffered channel drained by a single goroutine that recomputes the
// courier's scores for every dequeued trigger.
type ScoringWorker struct {
	handler scoresRecomputer
	logger  *slog.Logger

	tasks chan scoringTask

	mu      sync.Mutex
	stopped bool
	wg      sync.WaitGroup
}

// NewScoringWorker creates a worker. Start must be called before triggers
// are processed; Enqueue before Start only buffers.
func NewScoringWorker(handler scoresRecomputer, logger *slog.Logger) *ScoringWorker {
	return &ScoringWorker{
		handler: handler,
		logger:  logger.With("component", "scoring_worker"),
		tasks:   make(chan scoringTask, scoringBufferSize),
	}
}

// Enqueue requests a scoring pass for the courier. It never blocks on the
// recomputation; when the buffer is full the trigger is rejected.
func (w *ScoringWorker) Enqueue(_ context.Context, courierID kernel.UUID, trigger ports.ScoringTrigger) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return ErrScoringWorkerStopped
	}

	select {
	case w.tasks <- scoringTask{courierID: courierID, trigger: trigger}:
		return nil
	default:
		return ErrScoringQueueFull
	}
}

// Start launches the draining goroutine.
func (w *ScoringWorker) Start() error {
	w.wg.Add(1)
	go w.run()
	w.logger.InfoContext(context.Background(), "scoring worker started")
	return nil
}

// Stop closes the queue, drains the remaining triggers and waits for the
// worker goroutine to exit.
func (w *ScoringWorker) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	close(w.tasks)
	w.mu.Unlock()

	w.wg.Wait()
	w.logger.InfoContext(context.Background(), "scoring worker stopped")
}

func (w *ScoringWorker) run() {
	defer w.wg.Done()

	for task := range w.tasks {
		w.process(task)
	}
}

func (w *ScoringWorker) process(task scoringTask) {
	ctx := context.Background()

	cmd, err := commands.NewRecomputeCourierScoresCommand(task.courierID)
	if err != nil {
		w.logger.ErrorContext(ctx, "invalid scoring trigger", "error", err)
		return
	}

	if err := w.handler.Handle(ctx, cmd); err != nil {
		w.logger.ErrorContext(ctx, "scoring pass failed",
			"courier_id", task.courierID.String(),
			"trigger", string(task.trigger),
			"error", err,
		)
	}
}
