package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	defer client.Close()

	s := NewRedisStore(client, "medibook")
	ctx := context.Background()

	t.Run("ReadMissingKey", func(t *testing.T) {
		_, err := s.Read(ctx, KeyBookings)
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("WriteAndRead", func(t *testing.T) {
		require.NoError(t, s.Write(ctx, KeyBookings, []byte(`[{"id":7}]`)))

		got, err := s.Read(ctx, KeyBookings)
		require.NoError(t, err)
		assert.Equal(t, []byte(`[{"id":7}]`), got)
	})

	t.Run("KeysArePrefixed", func(t *testing.T) {
		require.NoError(t, s.Write(ctx, KeyUserData, []byte(`{}`)))
		assert.True(t, mr.Exists("medibook:userData"))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, s.Write(ctx, KeyAuthStatus, []byte(`{}`)))
		require.NoError(t, s.Delete(ctx, KeyAuthStatus))

		_, err := s.Read(ctx, KeyAuthStatus)
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("StoreFailure", func(t *testing.T) {
		mr.SetError("connection refused")
		defer mr.SetError("")

		_, err := s.Read(ctx, KeyBookings)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrKeyNotFound)
	})
}

func TestRedisStoreNilClient(t *testing.T) {
	s := NewRedisStore(nil, "")
	ctx := context.Background()

	_, err := s.Read(ctx, KeyBookings)
	assert.Error(t, err)
	assert.Error(t, s.Write(ctx, KeyBookings, nil))
	assert.Error(t, s.Delete(ctx, KeyBookings))
}
