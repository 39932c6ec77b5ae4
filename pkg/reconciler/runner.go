package reconciler

import (
	"context"
	"time"

	"github.com/charmops/tempo-operator/pkg/events"
	"github.com/charmops/tempo-operator/pkg/log"
	"github.com/rs/zerolog"
)

// Source supplies fresh reconciliation inputs on demand. Implementations
// must re-read external state on every call; the runner never caches.
type Source interface {
	Load() (Inputs, error)
}

// Runner drives the controller from a trigger queue: external notifications
// and a periodic tick both funnel into the same single-consumer queue, so
// passes never overlap no matter how triggers race.
type Runner struct {
	controller *Controller
	source     Source
	queue      *events.Queue
	interval   time.Duration
	stopCh     chan struct{}
}

// NewRunner creates a runner ticking at the given interval
func NewRunner(controller *Controller, source Source, interval time.Duration) *Runner {
	return &Runner{
		controller: controller,
		source:     source,
		queue:      events.NewQueue(),
		interval:   interval,
		stopCh:     make(chan struct{}),
	}
}

// Queue exposes the trigger queue so hosts can publish change notifications
func (r *Runner) Queue() *events.Queue {
	return r.queue
}

// Start begins the tick producer and the reconcile consumer
func (r *Runner) Start(ctx context.Context) {
	go r.tick()
	go r.run(ctx)
}

// Stop stops the runner
func (r *Runner) Stop() {
	close(r.stopCh)
	r.queue.Stop()
}

func (r *Runner) tick() {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	// one immediate pass on startup
	r.queue.Publish(events.NewTrigger(events.TriggerTick))

	for {
		select {
		case <-ticker.C:
			r.queue.Publish(events.NewTrigger(events.TriggerTick))
		case <-r.stopCh:
			return
		}
	}
}

func (r *Runner) run(ctx context.Context) {
	logger := log.WithComponent("runner")

	for {
		trigger, ok := r.queue.Next()
		if !ok {
			return
		}

		inputs, err := r.source.Load()
		if err != nil {
			logger.Error().Err(err).Msg("failed to load reconciliation inputs")
			continue
		}

		outcome, err := r.controller.Pass(ctx, inputs)
		if err != nil {
			// fatal reconciliation errors (retry ceiling exhausted) are
			// surfaced loudly but the runner keeps serving later triggers:
			// the environment may heal
			logger.Error().
				Err(err).
				Str("trigger", string(trigger.Type)).
				Msg("reconciliation pass failed")
			continue
		}

		logger.Info().
			Str("trigger", string(trigger.Type)).
			Str("result", string(outcome.Result)).
			Int("active_receivers", len(outcome.Active)).
			Int("violations", len(outcome.Violations)).
			Msg("reconciliation pass complete")

		if outcome.Result == ResultRestarted {
			r.awaitReady(ctx, logger)
		}
	}
}

// awaitReady polls the readiness probe for a bounded window after a
// restart, purely for status accuracy. Not reaching readiness in the
// window is not an error; the next tick re-checks.
func (r *Runner) awaitReady(ctx context.Context, logger zerolog.Logger) {
	deadline := time.After(30 * time.Second)
	poll := time.NewTicker(2 * time.Second)
	defer poll.Stop()

	for {
		select {
		case <-poll.C:
			if r.controller.CheckReady(ctx) {
				logger.Info().Msg("workload is ready")
				return
			}
		case <-deadline:
			logger.Warn().Msg("workload restarted but not ready yet")
			return
		case <-r.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}
