package generator

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/jonesrussell/pagegen/internal/logger"
)

// Worker runs scheduled generation passes on a cron schedule. Passes are
// idempotent, so an overlapping or repeated run is harmless; a mutex still
// serializes them to avoid redundant catalog sweeps.
type Worker struct {
	generator *Generator
	schedule  string
	logger    logger.Logger

	cron    *cron.Cron
	runMu   sync.Mutex
	startMu sync.Mutex
	started bool
}

// NewWorker creates a scheduled worker. The schedule uses the standard
// five-field cron format, e.g. "0 3 * * *" for a nightly pass.
func NewWorker(gen *Generator, schedule string, log logger.Logger) *Worker {
	return &Worker{
		generator: gen,
		schedule:  schedule,
		logger:    log,
	}
}

// Start schedules passes until Stop is called or the context is cancelled
func (w *Worker) Start(ctx context.Context) error {
	w.startMu.Lock()
	defer w.startMu.Unlock()

	if w.started {
		return nil
	}

	c := cron.New()
	_, err := c.AddFunc(w.schedule, func() {
		w.runOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("invalid generation schedule %q: %w", w.schedule, err)
	}

	c.Start()
	w.cron = c
	w.started = true

	w.logger.Info("generation worker started",
		logger.String("schedule", w.schedule),
	)

	return nil
}

// Stop halts the schedule and waits for a running pass to finish
func (w *Worker) Stop() {
	w.startMu.Lock()
	defer w.startMu.Unlock()

	if !w.started {
		return
	}

	stopCtx := w.cron.Stop()
	<-stopCtx.Done()

	// Wait out any in-flight pass.
	w.runMu.Lock()
	w.runMu.Unlock() //nolint:staticcheck // empty critical section is the wait

	w.started = false
	w.logger.Info("generation worker stopped")
}

func (w *Worker) runOnce(ctx context.Context) {
	w.runMu.Lock()
	defer w.runMu.Unlock()

	if ctx.Err() != nil {
		return
	}

	if _, err := w.generator.Run(ctx); err != nil {
		w.logger.Error("scheduled generation pass failed", logger.Error(err))
	}
}
