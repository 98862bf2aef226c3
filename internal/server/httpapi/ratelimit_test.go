package httpapi

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisRateLimiter_Allow(t *testing.T) {
	mr := miniredis.RunT(t)

	rl, err := NewRedisRateLimiter(mr.Addr(), "", 0, 2, discardLogger())
	require.NoError(t, err)
	t.Cleanup(rl.Close)

	ctx := context.Background()

	assert.True(t, rl.Allow(ctx, "192.0.2.1"))
	assert.True(t, rl.Allow(ctx, "192.0.2.1"))
	assert.False(t, rl.Allow(ctx, "192.0.2.1"), "third attempt within the window must be blocked")

	// other clients have their own window
	assert.True(t, rl.Allow(ctx, "192.0.2.2"))
}

func TestRedisRateLimiter_WindowResets(t *testing.T) {
	mr := miniredis.RunT(t)

	rl, err := NewRedisRateLimiter(mr.Addr(), "", 0, 1, discardLogger())
	require.NoError(t, err)
	t.Cleanup(rl.Close)

	ctx := context.Background()

	assert.True(t, rl.Allow(ctx, "192.0.2.1"))
	assert.False(t, rl.Allow(ctx, "192.0.2.1"))

	mr.FastForward(time.Minute + time.Second)

	assert.True(t, rl.Allow(ctx, "192.0.2.1"))
}

func TestRedisRateLimiter_ZeroLimitAllows(t *testing.T) {
	mr := miniredis.RunT(t)

	rl, err := NewRedisRateLimiter(mr.Addr(), "", 0, 0, discardLogger())
	require.NoError(t, err)
	t.Cleanup(rl.Close)

	assert.True(t, rl.Allow(context.Background(), "k"))
}

func TestNewRedisRateLimiter_Unreachable(t *testing.T) {
	_, err := NewRedisRateLimiter("127.0.0.1:1", "", 0, 5, discardLogger())
	assert.Error(t, err)
}

func TestNoopLimiter(t *testing.T) {
	var l NoopLimiter
	assert.True(t, l.Allow(context.Background(), "anything"))
	l.Close()
}
