package ratelimiter

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
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

func newTestMemoryLimiter(limit int, interval time.Duration) (*MemoryLimiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := NewMemoryLimiter(limit, interval)
	l.now = clock.Now
	return l, clock
}

// TestMemoryLimiter_AllowsUpToLimit は上限までは許可され、超過すると拒否されることを検証します。
func TestMemoryLimiter_AllowsUpToLimit(t *testing.T) {
	t.Parallel()

	l, _ := newTestMemoryLimiter(3, time.Minute)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		res, err := l.Allow(ctx, "ip:1.2.3.4")
		require.NoError(t, err)
		assert.True(t, res.Allowed, "hit %d should be allowed", i)
		assert.Equal(t, 3-i, res.Remaining)
		assert.Equal(t, 3, res.Limit)
	}

	res, err := l.Allow(ctx, "ip:1.2.3.4")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.Equal(t, time.Minute, res.ResetIn)
}

// TestMemoryLimiter_WindowResets はintervalを過ぎるとカウントがリセットされることを検証します。
func TestMemoryLimiter_WindowResets(t *testing.T) {
	t.Parallel()

	l, clock := newTestMemoryLimiter(1, time.Minute)
	ctx := context.Background()

	res, _ := l.Allow(ctx, "k")
	assert.True(t, res.Allowed)

	clock.Advance(30 * time.Second)
	res, _ = l.Allow(ctx, "k")
	assert.False(t, res.Allowed)
	assert.Equal(t, 30*time.Second, res.ResetIn)

	clock.Advance(30 * time.Second)
	res, _ = l.Allow(ctx, "k")
	assert.True(t, res.Allowed)
}

// TestMemoryLimiter_KeysAreIndependent はキーごとに独立してカウントされることを検証します。
func TestMemoryLimiter_KeysAreIndependent(t *testing.T) {
	t.Parallel()

	l, _ := newTestMemoryLimiter(1, time.Minute)
	ctx := context.Background()

	a, _ := l.Allow(ctx, "a")
	b, _ := l.Allow(ctx, "b")

	assert.True(t, a.Allowed)
	assert.True(t, b.Allowed)
}

// TestMemoryLimiter_SweepsExpiredWindows は期限切れのウィンドウが削除されることを検証します。
func TestMemoryLimiter_SweepsExpiredWindows(t *testing.T) {
	t.Parallel()

	l, clock := newTestMemoryLimiter(5, time.Minute)
	ctx := context.Background()

	_, _ = l.Allow(ctx, "old")
	clock.Advance(2 * time.Minute)
	_, _ = l.Allow(ctx, "new")

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.NotContains(t, l.windows, "old")
	assert.Contains(t, l.windows, "new")
}

// TestMemoryLimiter_Concurrent は並行呼び出しでも上限を超えて許可しないことを検証します。
func TestMemoryLimiter_Concurrent(t *testing.T) {
	t.Parallel()

	l, _ := newTestMemoryLimiter(10, time.Minute)
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, _ := l.Allow(ctx, "shared")
			if res.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, allowed)
}
