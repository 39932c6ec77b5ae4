package reconciler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/charmops/tempo-operator/pkg/events"
	"github.com/charmops/tempo-operator/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu     sync.Mutex
	inputs Inputs
	loads  int
}

func (f *fakeSource) Load() (Inputs, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	return f.inputs, nil
}

func (f *fakeSource) loadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loads
}

func TestRunnerReconcilesOnStartup(t *testing.T) {
	w := newFakeWorkload()
	c := NewController(w, &memStore{})
	source := &fakeSource{inputs: Inputs{Facts: soundFacts(), Hostname: "h"}}

	// interval long enough that only the startup tick fires during the test
	runner := NewRunner(c, source, time.Hour)
	runner.Start(context.Background())
	defer runner.Stop()

	require.Eventually(t, func() bool {
		return w.IsActive()
	}, 5*time.Second, 10*time.Millisecond, "startup tick should converge the workload")
	assert.GreaterOrEqual(t, source.loadCount(), 1)
}

func TestRunnerServesPublishedTriggers(t *testing.T) {
	w := newFakeWorkload()
	c := NewController(w, &memStore{})
	source := &fakeSource{inputs: Inputs{Facts: soundFacts(), Hostname: "h"}}

	runner := NewRunner(c, source, time.Hour)
	runner.Start(context.Background())
	defer runner.Stop()

	require.Eventually(t, func() bool { return w.IsActive() }, 5*time.Second, 10*time.Millisecond)
	baseline := source.loadCount()

	// an external change notification forces a fresh load and pass
	runner.Queue().Publish(events.NewTrigger(events.TriggerRelationChanged))
	require.Eventually(t, func() bool {
		return source.loadCount() > baseline
	}, 5*time.Second, 10*time.Millisecond, "published trigger should cause another pass")

	// same inputs, so the extra pass must not have restarted anything
	assert.Equal(t, 1, w.restartCount())
}

func TestRunnerStops(t *testing.T) {
	w := newFakeWorkload()
	c := NewController(w, &memStore{})
	source := &fakeSource{inputs: Inputs{Facts: types.DeploymentFacts{WorkerNode: true}}}

	runner := NewRunner(c, source, time.Hour)
	runner.Start(context.Background())
	runner.Stop()

	// publishing after stop must not panic or deadlock
	runner.Queue().Publish(events.NewTrigger(events.TriggerTick))
}
