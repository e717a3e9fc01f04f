package redisstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/confirmation"
	"github.com/edsoncmach/cartola-paranaense/internal/platform/resilience"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var storeNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func setupStore(t *testing.T) (*miniredis.Miniredis, *ConfirmationStore) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	store := NewConfirmationStore(rdb, "test", nil)
	store.now = func() time.Time { return storeNow }
	return mr, store
}

func pendingFixture(token string, ttl time.Duration) confirmation.Pending {
	return confirmation.Pending{
		Token:     token,
		UserID:    "user-1",
		TeamID:    "team-1",
		RoundID:   "r1",
		Kind:      confirmation.KindChangeScheme,
		Scheme:    "4-4-2",
		ExpiresAt: storeNow.Add(ttl),
	}
}

func TestConfirmationStore_SaveAndTakeOnce(t *testing.T) {
	mr, store := setupStore(t)
	ctx := context.Background()

	item := pendingFixture("tok-1", time.Minute)
	require.NoError(t, store.Save(ctx, item))

	assert.True(t, mr.Exists("test:token:tok-1"))
	assert.Equal(t, time.Minute+confirmation.Retention, mr.TTL("test:token:tok-1"))

	got, err := store.Take(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, item.UserID, got.UserID)
	assert.Equal(t, item.Kind, got.Kind)
	assert.Equal(t, item.Scheme, got.Scheme)
	assert.True(t, item.ExpiresAt.Equal(got.ExpiresAt))

	_, err = store.Take(ctx, "tok-1")
	assert.ErrorIs(t, err, confirmation.ErrNotFound)
	assert.False(t, mr.Exists("test:token:tok-1"))
}

func TestConfirmationStore_ExpiredTokenKeptForRetention(t *testing.T) {
	mr, store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, pendingFixture("tok-late", 30*time.Second)))
	mr.FastForward(31 * time.Second)

	got, err := store.Get(ctx, "tok-late")
	require.NoError(t, err)
	assert.True(t, got.Expired(storeNow.Add(31*time.Second)))

	mr.FastForward(confirmation.Retention)
	_, err = store.Take(ctx, "tok-late")
	assert.ErrorIs(t, err, confirmation.ErrNotFound)
}

func TestConfirmationStore_GetDoesNotConsume(t *testing.T) {
	_, store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, pendingFixture("tok-peek", time.Minute)))

	for range 2 {
		got, err := store.Get(ctx, "tok-peek")
		require.NoError(t, err)
		assert.Equal(t, "user-1", got.UserID)
	}
	_, err := store.Take(ctx, "tok-peek")
	require.NoError(t, err)

	_, err = store.Get(ctx, "tok-peek")
	assert.ErrorIs(t, err, confirmation.ErrNotFound)
}

func TestConfirmationStore_SaveRejectsExpired(t *testing.T) {
	_, store := setupStore(t)

	err := store.Save(context.Background(), pendingFixture("tok-old", -time.Second))
	assert.ErrorIs(t, err, errAlreadyExpired)
}

func TestConfirmationStore_DeleteExpired(t *testing.T) {
	mr, store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, pendingFixture("tok-a", time.Minute)))
	require.NoError(t, store.Save(ctx, pendingFixture("tok-b", 10*time.Minute)))

	removed, err := store.DeleteExpired(ctx, storeNow.Add(2*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.False(t, mr.Exists("test:token:tok-a"))
	assert.True(t, mr.Exists("test:token:tok-b"))

	removed, err = store.DeleteExpired(ctx, storeNow.Add(2*time.Minute))
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestConfirmationStore_BreakerOpensWhenRedisIsDown(t *testing.T) {
	mr, store := setupStore(t)
	store.breaker = resilience.NewBreaker(resilience.BreakerConfig{
		Enabled:          true,
		FailureThreshold: 1,
		OpenTimeout:      time.Minute,
	})
	mr.Close()

	ctx := context.Background()
	err := store.Save(ctx, pendingFixture("tok-down", time.Minute))
	require.Error(t, err)
	assert.False(t, errors.Is(err, resilience.ErrOpen))

	_, err = store.Take(ctx, "tok-down")
	assert.ErrorIs(t, err, resilience.ErrOpen)
}
