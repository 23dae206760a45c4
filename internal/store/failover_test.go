package store

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenStore fails every operation until fixed.
type brokenStore struct {
	inner  *MemoryStore
	broken bool
}

var errStoreDown = errors.New("store down")

func (b *brokenStore) Read(ctx context.Context, key string) ([]byte, error) {
	if b.broken {
		return nil, errStoreDown
	}
	return b.inner.Read(ctx, key)
}

func (b *brokenStore) Write(ctx context.Context, key string, value []byte) error {
	if b.broken {
		return errStoreDown
	}
	return b.inner.Write(ctx, key, value)
}

func (b *brokenStore) Delete(ctx context.Context, key string) error {
	if b.broken {
		return errStoreDown
	}
	return b.inner.Delete(ctx, key)
}

func newFailoverUnderTest() (*FailoverStore, *brokenStore, *MemoryStore) {
	logger := zerolog.New(os.Stdout)
	primary := &brokenStore{inner: NewMemoryStore()}
	fallback := NewMemoryStore()
	return NewFailoverStore(primary, fallback, &logger), primary, fallback
}

func TestFailoverUsesPrimaryWhenHealthy(t *testing.T) {
	s, primary, fallback := newFailoverUnderTest()
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, KeyBookings, []byte(`[]`)))

	got, err := primary.inner.Read(ctx, KeyBookings)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)

	_, err = fallback.Read(ctx, KeyBookings)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestFailoverMissingKeyIsNotAFailure(t *testing.T) {
	s, _, fallback := newFailoverUnderTest()
	ctx := context.Background()

	// The fallback has a value, but a clean primary miss must not trigger
	// failover and leak the fallback's state.
	require.NoError(t, fallback.Write(ctx, KeyBookings, []byte(`stale`)))

	_, err := s.Read(ctx, KeyBookings)
	assert.ErrorIs(t, err, ErrKeyNotFound)
	assert.False(t, s.isDown.Load())
}

func TestFailoverSwitchesToFallback(t *testing.T) {
	s, primary, fallback := newFailoverUnderTest()
	ctx := context.Background()

	primary.broken = true

	require.NoError(t, s.Write(ctx, KeyBookings, []byte(`[1]`)))
	assert.True(t, s.isDown.Load())

	got, err := fallback.Read(ctx, KeyBookings)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1]`), got)

	// Reads keep coming from the fallback while the primary is down
	got, err = s.Read(ctx, KeyBookings)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1]`), got)
}

func TestFailoverRecoversAfterCooldown(t *testing.T) {
	s, primary, _ := newFailoverUnderTest()
	ctx := context.Background()

	primary.broken = true
	require.NoError(t, s.Write(ctx, KeyBookings, []byte(`[1]`)))
	require.True(t, s.isDown.Load())

	primary.broken = false
	require.NoError(t, primary.inner.Write(ctx, KeyBookings, []byte(`[2]`)))

	// Pretend the cooldown elapsed
	s.lastCheck.Store(0)

	got, err := s.Read(ctx, KeyBookings)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[2]`), got)
	assert.False(t, s.isDown.Load())
}
