package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoltStoreRoundTrip(t *testing.T) {
	store, err := NewBoltStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	// nothing applied yet
	last, err := store.LastApplied()
	require.NoError(t, err)
	assert.Nil(t, last)

	applied := &AppliedConfig{
		Hash:      "abc123",
		Config:    []byte("server:\n  http_listen_port: 3200\n"),
		AppliedAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, store.SaveApplied(applied))

	last, err = store.LastApplied()
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, applied.Hash, last.Hash)
	assert.Equal(t, applied.Config, last.Config)
	assert.True(t, applied.AppliedAt.Equal(last.AppliedAt))
}

func TestBoltStoreOverwrite(t *testing.T) {
	store, err := NewBoltStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.SaveApplied(&AppliedConfig{Hash: "first"}))
	require.NoError(t, store.SaveApplied(&AppliedConfig{Hash: "second"}))

	last, err := store.LastApplied()
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "second", last.Hash)
}
