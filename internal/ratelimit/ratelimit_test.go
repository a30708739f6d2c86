package ratelimit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestLimiter_CeilingAndReset(t *testing.T) {
	clock := newFakeClock()
	l := New(NewMemoryStore(WithClock(clock.Now)), 5, 15*time.Minute)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		d, err := l.Allow(ctx, "203.0.113.7")
		require.NoError(t, err)
		assert.True(t, d.Allowed, "request %d should pass", i)
		assert.Equal(t, 5-i, d.Remaining)
		clock.Advance(time.Minute)
	}

	d, err := l.Allow(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)
	assert.Equal(t, 10*time.Minute, d.RetryAfter(clock.Now()))

	// Still inside the window that began with the first request.
	clock.Advance(9*time.Minute + 59*time.Second)
	d, err = l.Allow(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.False(t, d.Allowed)

	clock.Advance(time.Second)
	d, err = l.Allow(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 4, d.Remaining)
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	l := New(NewMemoryStore(), 1, time.Hour)
	ctx := context.Background()

	d, _ := l.Allow(ctx, "a")
	assert.True(t, d.Allowed)
	d, _ = l.Allow(ctx, "a")
	assert.False(t, d.Allowed)

	d, _ = l.Allow(ctx, "b")
	assert.True(t, d.Allowed)
}

type failingStore struct{}

func (failingStore) Hit(context.Context, string, time.Duration) (Window, error) {
	return Window{}, errors.New("connection refused")
}

func TestLimiter_FailsOpen(t *testing.T) {
	l := New(failingStore{}, 5, time.Minute)
	d, err := l.Allow(context.Background(), "a")
	assert.True(t, d.Allowed)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestDecision_RetryAfterRoundsUp(t *testing.T) {
	now := time.Now()
	d := Decision{ResetAt: now.Add(1500 * time.Millisecond)}
	assert.Equal(t, 2*time.Second, d.RetryAfter(now))
	assert.Equal(t, time.Duration(0), d.RetryAfter(now.Add(time.Hour)))
}

func TestMemoryStore_Sweep(t *testing.T) {
	clock := newFakeClock()
	s := NewMemoryStore(WithClock(clock.Now))
	ctx := context.Background()

	_, _ = s.Hit(ctx, "old", time.Minute)
	clock.Advance(30 * time.Second)
	_, _ = s.Hit(ctx, "new", time.Minute)
	assert.Equal(t, 2, s.Len())

	clock.Advance(30 * time.Second)
	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 1, s.Len())

	clock.Advance(30 * time.Second)
	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStore_Concurrent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Hit(ctx, "k", time.Hour)
		}()
	}
	wg.Wait()

	w, err := s.Hit(ctx, "k", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 51, w.Count)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(client)
	t.Cleanup(func() { _ = store.Close() })

	l := New(store, 5, 15*time.Minute)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		d, err := l.Allow(ctx, "198.51.100.1")
		require.NoError(t, err)
		assert.True(t, d.Allowed)
	}

	d, err := l.Allow(ctx, "198.51.100.1")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 15*time.Minute, mr.TTL(defaultRedisPrefix+"198.51.100.1"))

	mr.FastForward(15 * time.Minute)

	d, err = l.Allow(ctx, "198.51.100.1")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 4, d.Remaining)
}

func TestRedisStore_RestoresLostExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(client)

	require.NoError(t, mr.Set(defaultRedisPrefix+"k", "3"))

	w, err := store.Hit(context.Background(), "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 4, w.Count)
	assert.Equal(t, time.Minute, mr.TTL(defaultRedisPrefix+"k"))
}

func TestRedisStore_Unavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	store := NewRedisStore(client)
	mr.Close()

	l := New(store, 5, time.Minute)
	d, err := l.Allow(context.Background(), "k")
	assert.True(t, d.Allowed)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestNewRedisStoreFromURL(t *testing.T) {
	mr := miniredis.RunT(t)

	store, err := NewRedisStoreFromURL(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	assert.NoError(t, store.Close())

	_, err = NewRedisStoreFromURL(context.Background(), "://bad")
	assert.Error(t, err)
}
