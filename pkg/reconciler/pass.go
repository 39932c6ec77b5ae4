package reconciler

import (
	"context"

	"github.com/charmops/tempo-operator/pkg/aggregator"
	"github.com/charmops/tempo-operator/pkg/coordinator"
	"github.com/charmops/tempo-operator/pkg/metrics"
	"github.com/charmops/tempo-operator/pkg/tempoconf"
	"github.com/charmops/tempo-operator/pkg/tracing"
	"github.com/charmops/tempo-operator/pkg/types"
	"go.opentelemetry.io/otel/attribute"
)

// Inputs is everything one reconciliation pass consumes, snapshotted fresh
// from external state. Nothing in here survives the pass.
type Inputs struct {
	Requests []types.RelationRequest
	Facts    types.DeploymentFacts
	S3       *types.S3Credentials
	TLS      *types.TLSMaterial
	Peers    []string

	// Hostname is the address clients are told to send spans to.
	Hostname string
}

// Outcome reports what one pass decided and did
type Outcome struct {
	Result     Result
	Active     types.ReceiverSet
	Violations []types.ConsistencyViolation
	Endpoints  []aggregator.Endpoint
}

// Pass runs one complete reconciliation: check deployment consistency,
// negotiate the active receiver set, generate the config, and converge the
// workload onto it. Config generation always completes and is diffed before
// any restart decision; there is no speculative restart path.
func (c *Controller) Pass(ctx context.Context, in Inputs) (Outcome, error) {
	ctx, span := tracing.Tracer().Start(ctx, "reconcile.pass")
	defer span.End()

	timer := metrics.NewTimer()
	defer func() {
		timer.ObserveDuration(metrics.ReconciliationDuration)
		metrics.ReconciliationCyclesTotal.Inc()
	}()

	outcome := Outcome{}

	// consistency gates everything: while the deployment is unsound the
	// workload is held down, re-checked on every single pass
	outcome.Violations = coordinator.Check(in.Facts)
	metrics.ConsistencyViolations.Set(float64(len(outcome.Violations)))
	if len(outcome.Violations) > 0 {
		c.logger.Warn().
			Int("violations", len(outcome.Violations)).
			Str("detail", types.ViolationText(outcome.Violations)).
			Msg("deployment inconsistent, holding workload down")
		outcome.Result = ResultBlocked
		metrics.ReconciliationResults.WithLabelValues(string(ResultBlocked)).Inc()
		return outcome, c.EnsureStopped(ctx)
	}

	legacyCount := 0
	for _, req := range in.Requests {
		if req.Legacy {
			legacyCount++
		}
	}
	metrics.LegacyRelations.Set(float64(legacyCount))

	outcome.Active = aggregator.Aggregate(in.Requests, tracing.SelfNeeds())
	metrics.ActiveReceivers.Set(float64(len(outcome.Active)))
	span.SetAttributes(attribute.Int("receivers.active", len(outcome.Active)))

	if len(outcome.Active) == 0 {
		// valid but degenerate: the workload will run without ingesting
		// anything
		c.logger.Warn().Msg("no receivers active: workload will be up but not ingesting")
	}

	doc := tempoconf.Generate(tempoconf.Params{
		Active: outcome.Active,
		S3:     in.S3,
		Peers:  in.Peers,
		TLS:    in.TLS,
	})
	rendered, err := tempoconf.Marshal(doc)
	if err != nil {
		return outcome, err
	}

	result, err := c.Reconcile(ctx, rendered)
	outcome.Result = result
	metrics.ReconciliationResults.WithLabelValues(string(result)).Inc()
	if err != nil {
		return outcome, err
	}

	outcome.Endpoints = aggregator.PublishEndpoints(outcome.Active, in.Hostname, in.TLS != nil)
	return outcome, nil
}
