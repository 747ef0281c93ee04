package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRateLimiterWindow(t *testing.T) {
	limiter := NewRateLimiter("test", 100*time.Millisecond, 2)

	require.True(t, limiter.Allow("10.0.0.1"))
	require.True(t, limiter.Allow("10.0.0.1"))
	require.False(t, limiter.Allow("10.0.0.1"))

	// A different IP has its own budget
	require.True(t, limiter.Allow("10.0.0.2"))

	time.Sleep(150 * time.Millisecond)
	require.True(t, limiter.Allow("10.0.0.1"), "requests outside the window no longer count")
}

func TestRateLimiterSweepsStaleIPs(t *testing.T) {
	limiter := NewRateLimiter("test", 100*time.Millisecond, 2)

	require.True(t, limiter.Allow("10.0.0.1"))
	require.Contains(t, limiter.requests, "10.0.0.1")

	time.Sleep(150 * time.Millisecond)

	// A request from any caller triggers the sweep; the one-shot IP must
	// not stay in the map forever
	require.True(t, limiter.Allow("10.0.0.2"))

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	require.NotContains(t, limiter.requests, "10.0.0.1")
	require.Contains(t, limiter.requests, "10.0.0.2")
}
