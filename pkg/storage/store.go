package storage

import "time"

// AppliedConfig records one configuration that was durably pushed to the
// workload: the canonical bytes, their digest, and when the push happened.
type AppliedConfig struct {
	Hash      string    `json:"hash"`
	Config    []byte    `json:"config"`
	AppliedAt time.Time `json:"applied_at"`
}

// Store persists what the operator has actually applied, so that no-op
// detection compares against durable state instead of an in-memory guess,
// and survives operator restarts.
type Store interface {
	// SaveApplied records the config that was just pushed to the workload.
	SaveApplied(applied *AppliedConfig) error

	// LastApplied returns the most recently applied config, or nil when
	// nothing has been applied yet.
	LastApplied() (*AppliedConfig, error)

	// Utility
	Close() error
}
