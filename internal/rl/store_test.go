package rl

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_ModelRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	payload := []byte(`{"weights":[[1,2,3]]}`)
	require.NoError(t, s.SaveModel(ctx, "dqn", payload))

	got, err := s.LoadModel(ctx, "dqn")
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	// Saving again overwrites.
	updated := []byte(`{"weights":[[9]]}`)
	require.NoError(t, s.SaveModel(ctx, "dqn", updated))
	got, err = s.LoadModel(ctx, "dqn")
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestStore_LoadMissingModel(t *testing.T) {
	s := openTestStore(t)

	_, err := s.LoadModel(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrModelNotFound)
}

func TestStore_RecordEpisodes(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		require.NoError(t, s.RecordEpisode(ctx, EpisodeStats{
			GameID:  "game",
			Episode: i,
			Ticks:   100 + i,
			Winner:  0,
			Reward:  float32(i) * 1.5,
			Epsilon: 0.9,
		}))
	}

	n, err := s.EpisodeCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestStore_EmptyPathRejected(t *testing.T) {
	_, err := OpenStore("")
	assert.Error(t, err)
}
