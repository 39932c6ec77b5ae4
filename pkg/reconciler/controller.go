package reconciler

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/charmops/tempo-operator/pkg/health"
	"github.com/charmops/tempo-operator/pkg/log"
	"github.com/charmops/tempo-operator/pkg/metrics"
	"github.com/charmops/tempo-operator/pkg/storage"
	"github.com/charmops/tempo-operator/pkg/tempoconf"
	"github.com/charmops/tempo-operator/pkg/workload"
	"github.com/rs/zerolog"
)

// Result is the outcome of one reconcile call
type Result string

const (
	// ResultUnchanged: the new config matches what is durably applied,
	// nothing was touched.
	ResultUnchanged Result = "unchanged"

	// ResultDeferred: the workload is not connectable yet; retry on the
	// next trigger.
	ResultDeferred Result = "deferred"

	// ResultRestarted: the config was pushed and the workload restarted.
	ResultRestarted Result = "restarted"

	// ResultBlocked: deployment preconditions are unmet and the workload
	// is being held down.
	ResultBlocked Result = "blocked"

	// ResultFailed: the restart retry ceiling was exhausted. Always paired
	// with a non-nil error; unlike Deferred this is not an expected state.
	ResultFailed Result = "failed"
)

// Restart retry policy: delays grow 3s, 9s, 27s, then stay capped at 40s,
// for at most 20 attempts. Exhaustion is a fatal error, not a silent give-up.
const (
	maxRestartAttempts = 20
	backoffBase        = 3 * time.Second
	backoffFactor      = 3
	backoffCeiling     = 40 * time.Second
)

// Controller owns the workload's config file and process state. It is the
// only component with side effects; everything upstream of it is pure.
type Controller struct {
	workload  workload.Handle
	store     storage.Store
	readiness health.Checker
	probe     *health.Status
	probeCfg  health.Config
	logger    zerolog.Logger

	// sleep is swappable so tests can observe the backoff curve without
	// waiting it out
	sleep func(ctx context.Context, d time.Duration) error
}

// NewController creates a controller for the given workload. store may be
// nil, in which case no-op detection relies on the on-disk config alone.
func NewController(w workload.Handle, store storage.Store) *Controller {
	return &Controller{
		workload: w,
		store:    store,
		probeCfg: health.DefaultConfig(),
		logger:   log.WithComponent("reconciler"),
		sleep:    sleepContext,
	}
}

// WithReadiness arms the controller with a readiness checker, polled after
// restarts to tell "process started" from "actually serving"
func (c *Controller) WithReadiness(checker health.Checker) *Controller {
	c.readiness = checker
	return c
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Reconcile pushes newConfig to the workload and restarts it, unless the
// config is already durably applied. "Applied" means two things at once: the
// bytes on disk match, and the store holds a record of a restart onto those
// exact bytes. The second check catches a crash between push and restart,
// where the file looks right but the process never picked it up. It holds
// across operator restarts because the record lives in the store, not in
// memory.
func (c *Controller) Reconcile(ctx context.Context, newConfig []byte) (Result, error) {
	if !c.workload.CanConnect() {
		c.logger.Info().Msg("workload not connectable yet, deferring")
		return ResultDeferred, nil
	}

	current, err := c.workload.ReadConfig()
	if err != nil {
		return ResultDeferred, err
	}

	digest := sha256.Sum256(newConfig)
	hash := hex.EncodeToString(digest[:])

	onDisk := current != nil && tempoconf.Equal(newConfig, current)
	switch {
	case onDisk && c.durablyApplied(hash):
		if c.workload.IsActive() {
			return ResultUnchanged, nil
		}
		// config is in place but the process is down (first start, or a
		// stop that outlived its reason); bring it up without a re-push
		c.logger.Info().Msg("config unchanged but workload inactive, starting")
	case onDisk:
		// the file matches but nothing recorded a restart onto it, e.g.
		// a crash after WriteConfig; the bytes stay, the restart happens
		c.logger.Info().Msg("config on disk has no applied record, restarting onto it")
	default:
		if err := c.workload.WriteConfig(newConfig); err != nil {
			return ResultDeferred, err
		}
		c.logger.Info().
			Int("bytes", len(newConfig)).
			Msg("pushed new workload config")
	}

	if err := c.restartWithRetry(ctx); err != nil {
		return ResultFailed, err
	}

	if c.store != nil {
		applied := &storage.AppliedConfig{
			Hash:      hash,
			Config:    newConfig,
			AppliedAt: time.Now().UTC(),
		}
		if err := c.store.SaveApplied(applied); err != nil {
			// the config is live either way; the record is best effort
			c.logger.Warn().Err(err).Msg("failed to record applied config")
		}
	}

	c.armReadinessProbe()
	return ResultRestarted, nil
}

// durablyApplied reports whether the store confirms a restart onto the
// config with this digest. A missing or unreadable record counts as not
// applied, so the pass converges instead of trusting unverifiable state.
// Without a store the on-disk bytes are the only truth there is.
func (c *Controller) durablyApplied(hash string) bool {
	if c.store == nil {
		return true
	}
	applied, err := c.store.LastApplied()
	if err != nil {
		c.logger.Warn().Err(err).Msg("failed to read applied-config record")
		return false
	}
	return applied != nil && applied.Hash == hash
}

// EnsureStopped holds the workload down. Called while consistency
// violations exist, on every pass, so a workload started by hand or by a
// stale pass gets stopped again.
func (c *Controller) EnsureStopped(ctx context.Context) error {
	if !c.workload.CanConnect() {
		return nil
	}
	if !c.workload.IsActive() {
		return nil
	}
	c.logger.Warn().Msg("stopping workload while deployment is inconsistent")
	return c.workload.Stop(ctx)
}

// restartWithRetry performs a bounded-retry restart. Transient failures
// (typically a receiver port still held by the dying process) back off
// exponentially; exhausting the ceiling surfaces a fatal error the caller
// cannot ignore.
func (c *Controller) restartWithRetry(ctx context.Context) error {
	var lastErr error
	delay := backoffBase

	for attempt := 1; attempt <= maxRestartAttempts; attempt++ {
		metrics.WorkloadRestartAttempts.Inc()

		lastErr = c.workload.Restart(ctx)
		if lastErr == nil {
			metrics.WorkloadRestartsTotal.Inc()
			c.logger.Info().Int("attempt", attempt).Msg("workload restarted")
			return nil
		}

		c.logger.Warn().
			Err(lastErr).
			Int("attempt", attempt).
			Dur("backoff", delay).
			Msg("workload restart failed")

		if attempt == maxRestartAttempts {
			break
		}
		if err := c.sleep(ctx, delay); err != nil {
			return err
		}
		delay *= backoffFactor
		if delay > backoffCeiling {
			delay = backoffCeiling
		}
	}

	return fmt.Errorf("workload restart failed after %d attempts: %w", maxRestartAttempts, lastErr)
}

func (c *Controller) armReadinessProbe() {
	if c.readiness == nil {
		return
	}
	c.probe = health.NewStatus()
}

// CheckReady polls the readiness probe, when armed. Returns false until
// the workload's own health endpoint confirms it is serving.
func (c *Controller) CheckReady(ctx context.Context) bool {
	if c.readiness == nil || c.probe == nil {
		return false
	}

	result := c.readiness.Check(ctx)
	if !result.Healthy && c.probe.InStartPeriod(c.probeCfg) {
		// still inside the grace window; don't count it against the workload
		return false
	}
	c.probe.Update(result, c.probeCfg)

	if c.probe.Healthy && result.Healthy {
		metrics.WorkloadReady.Set(1)
		return true
	}
	metrics.WorkloadReady.Set(0)
	return false
}
