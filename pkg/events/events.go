package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// TriggerType identifies what kind of external change fired a trigger
type TriggerType string

const (
	// TriggerRelationChanged fires when a tracing client's request data
	// changed (joined, departed, or updated its receivers).
	TriggerRelationChanged TriggerType = "relation.changed"

	// TriggerClusterChanged fires when worker claims or peer addresses
	// changed.
	TriggerClusterChanged TriggerType = "cluster.changed"

	// TriggerStorageChanged fires when object-store credentials appeared,
	// changed, or went away.
	TriggerStorageChanged TriggerType = "storage.changed"

	// TriggerTick is the periodic re-check that catches anything the other
	// triggers missed.
	TriggerTick TriggerType = "tick"
)

// Trigger is one request for a reconciliation pass. Triggers carry no
// payload: every pass recomputes all facts from current external state, so
// coalescing or dropping triggers is always safe.
type Trigger struct {
	ID        string
	Type      TriggerType
	Timestamp time.Time
}

// NewTrigger creates a trigger of the given type
func NewTrigger(t TriggerType) *Trigger {
	return &Trigger{
		ID:        uuid.New().String(),
		Type:      t,
		Timestamp: time.Now(),
	}
}

// Queue serializes reconciliation: many producers publish triggers, one
// consumer drains them. The buffer is small on purpose; a full buffer
// drops the trigger, which is harmless because a pending trigger already
// guarantees a pass over fresher state.
type Queue struct {
	mu     sync.Mutex
	ch     chan *Trigger
	stopCh chan struct{}
	closed bool
}

// NewQueue creates a trigger queue
func NewQueue() *Queue {
	return &Queue{
		ch:     make(chan *Trigger, 16),
		stopCh: make(chan struct{}),
	}
}

// Publish enqueues a trigger, dropping it if the queue is saturated
func (q *Queue) Publish(trigger *Trigger) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}

	select {
	case q.ch <- trigger:
	default:
		// a pass is already pending; this trigger is redundant
	}
}

// Next blocks until a trigger arrives or the queue stops. ok is false
// once the queue has stopped.
func (q *Queue) Next() (*Trigger, bool) {
	select {
	case trigger := <-q.ch:
		return trigger, true
	case <-q.stopCh:
		return nil, false
	}
}

// Stop shuts the queue down
func (q *Queue) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		q.closed = true
		close(q.stopCh)
	}
}
