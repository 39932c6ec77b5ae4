package reconciler

import (
	"context"
	"testing"

	"github.com/charmops/tempo-operator/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func soundFacts() types.DeploymentFacts {
	return types.DeploymentFacts{WorkerNode: true}
}

func TestPassBlockedStopsWorkload(t *testing.T) {
	w := newFakeWorkload()
	w.active = true

	c := NewController(w, &memStore{})
	outcome, err := c.Pass(context.Background(), Inputs{
		Facts: types.DeploymentFacts{}, // no workers anywhere
	})

	require.NoError(t, err)
	assert.Equal(t, ResultBlocked, outcome.Result)
	require.Len(t, outcome.Violations, 1)
	assert.Contains(t, string(outcome.Violations[0]), "worker")

	// blocked passes hold the workload down
	assert.False(t, w.active)
	assert.Equal(t, 1, w.stops)
	assert.Zero(t, w.writes)
}

func TestPassConvergesAndPublishes(t *testing.T) {
	w := newFakeWorkload()
	c := NewController(w, &memStore{})

	in := Inputs{
		Requests: []types.RelationRequest{
			{ID: "tracing:1", Receivers: []types.ReceiverProtocol{types.ReceiverZipkin}},
		},
		Facts:    soundFacts(),
		Hostname: "tempo-0.example",
	}

	outcome, err := c.Pass(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, ResultRestarted, outcome.Result)

	// requested receiver plus the operator's own otlp_grpc need
	assert.True(t, outcome.Active.Has(types.ReceiverZipkin))
	assert.True(t, outcome.Active.Has(types.ReceiverOTLPGRPC))

	require.NotEmpty(t, outcome.Endpoints)
	for _, ep := range outcome.Endpoints {
		assert.Contains(t, ep.URL, "tempo-0.example")
	}
}

func TestPassStableAcrossRepeats(t *testing.T) {
	w := newFakeWorkload()
	c := NewController(w, &memStore{})

	in := Inputs{
		Requests: []types.RelationRequest{
			{ID: "tracing:3", Legacy: true},
		},
		Facts:    soundFacts(),
		Hostname: "tempo-0.example",
	}

	first, err := c.Pass(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, ResultRestarted, first.Result)

	// same inputs again: the generated config is byte-identical, so the
	// workload must not be touched
	second, err := c.Pass(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, ResultUnchanged, second.Result)
	assert.Equal(t, 1, w.restarts)
	assert.Equal(t, first.Active.Sorted(), second.Active.Sorted())
}

func TestPassDeferredBeforeConnectable(t *testing.T) {
	w := newFakeWorkload()
	w.connectable = false

	c := NewController(w, &memStore{})
	outcome, err := c.Pass(context.Background(), Inputs{Facts: soundFacts()})

	require.NoError(t, err)
	assert.Equal(t, ResultDeferred, outcome.Result)
	assert.Empty(t, outcome.Violations)
}
