package tokenstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	m := NewMemory()
	m.now = func() time.Time { return now }

	revoked, err := m.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, m.Revoke(ctx, "a", time.Minute))
	revoked, _ = m.IsRevoked(ctx, "a")
	assert.True(t, revoked)

	now = now.Add(2 * time.Minute)
	revoked, _ = m.IsRevoked(ctx, "a")
	assert.False(t, revoked, "expired tokens are forgotten")

	require.NoError(t, m.Revoke(ctx, "b", 0))
	revoked, _ = m.IsRevoked(ctx, "b")
	assert.False(t, revoked)
}

func TestNoop(t *testing.T) {
	s := NewNoop(nil)
	require.NoError(t, s.Revoke(context.Background(), "a", time.Hour))
	revoked, err := s.IsRevoked(context.Background(), "a")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestOpenRejectsBadURL(t *testing.T) {
	_, err := Open(context.Background(), "not-a-url")
	assert.Error(t, err)
}
