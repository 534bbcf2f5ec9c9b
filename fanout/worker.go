package fanout

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/nekidaem/microblog/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Config tunes the fan-out worker pool.
type Config struct {
	Workers      int
	PollInterval time.Duration
	Visibility   time.Duration
}

func (c Config) withDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = 4
	}
	if c.PollInterval <= 0 {
		c.PollInterval = time.Second
	}
	if c.Visibility <= 0 {
		c.Visibility = 5 * time.Minute
	}
	return c
}

// Worker polls the durable task queue and applies the configured policy to
// each claimed task on a bounded pool of goroutines. Tasks that fail are
// released back to pending for the next poll; tasks whose post vanished are
// completed as benign no-ops inside the policy.
type Worker struct {
	logger zerolog.Logger
	store  Store
	policy Policy
	config Config

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	started bool
}

func New(store Store, policy Policy, config Config) *Worker {
	return &Worker{
		logger: log.With().Str("component", "fanout").Str("policy", policy.Name()).Logger(),
		store:  store,
		policy: policy,
		config: config.withDefaults(),
	}
}

// Start launches the poll loop. It is an error to start a running worker.
func (w *Worker) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return errors.New("fanout worker already started")
	}

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})
	w.started = true

	go w.loop(ctx)

	w.logger.Info().
		Int("workers", w.config.Workers).
		Dur("pollInterval", w.config.PollInterval).
		Msg("Fan-out worker started")

	return nil
}

// Stop cancels the loop and waits for in-flight tasks to finish.
func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.started {
		w.mu.Unlock()
		return
	}
	cancel := w.cancel
	done := w.done
	w.started = false
	w.mu.Unlock()

	cancel()
	<-done
	w.logger.Info().Msg("Fan-out worker stopped")
}

func (w *Worker) loop(ctx context.Context) {
	defer close(w.done)

	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

// drain claims and processes batches until the queue is empty or the
// context is cancelled.
func (w *Worker) drain(ctx context.Context) {
	for {
		tasks, err := w.store.ClaimTasks(ctx, w.config.Workers*4, w.config.Visibility)
		if err != nil {
			if ctx.Err() == nil {
				w.logger.Error().Err(err).Msg("Failed to claim tasks")
			}
			return
		}
		if len(tasks) == 0 {
			return
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(w.config.Workers)
		for _, task := range tasks {
			task := task
			g.Go(func() error {
				w.process(gctx, task)
				return nil
			})
		}
		g.Wait()

		if ctx.Err() != nil {
			return
		}
	}
}

func (w *Worker) process(ctx context.Context, task models.FeedTask) {
	if err := w.policy.Apply(ctx, w.store, task); err != nil {
		w.logger.Error().
			Err(err).
			Str("task", task.ID.String()).
			Str("kind", task.Kind).
			Int("attempts", task.Attempts).
			Msg("Fan-out task failed, releasing for retry")
		if err := w.store.ReleaseTask(ctx, task.ID); err != nil {
			w.logger.Error().Err(err).Str("task", task.ID.String()).Msg("Failed to release task")
		}
		return
	}

	if err := w.store.CompleteTask(ctx, task.ID); err != nil {
		w.logger.Error().Err(err).Str("task", task.ID.String()).Msg("Failed to complete task")
	}
}
