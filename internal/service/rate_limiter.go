package service

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/4bhisheksharma/book-swap3/internal/pkg/redis"
)

// RateLimiter enforces a per-IP sliding window. When Redis is configured it
// holds the counters there so the limit survives restarts and covers all
// replicas; otherwise it falls back to in-process tracking.
type RateLimiter struct {
	keyPrefix string
	window    time.Duration
	maxReqs   int

	mu        sync.Mutex
	requests  map[string][]time.Time
	lastSweep time.Time
}

// NewRateLimiter creates a rate limiter
func NewRateLimiter(keyPrefix string, window time.Duration, maxReqs int) *RateLimiter {
	return &RateLimiter{
		keyPrefix: keyPrefix,
		window:    window,
		maxReqs:   maxReqs,
		requests:  make(map[string][]time.Time),
		lastSweep: time.Now(),
	}
}

// Allow reports whether the IP is within its limit and records the request
func (r *RateLimiter) Allow(ip string) bool {
	if redis.GetClient() != nil {
		key := fmt.Sprintf("%s:%s", r.keyPrefix, ip)
		count, err := redis.CountInWindow(key, r.window)
		if err == nil {
			return count <= int64(r.maxReqs)
		}
		zap.L().Warn("Redis rate limit check failed, falling back to in-memory",
			zap.Error(err))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()

	// Periodically drop IPs whose requests have all aged out, so one-shot
	// callers don't accumulate in the map forever
	if now.Sub(r.lastSweep) >= r.window {
		for trackedIP, reqs := range r.requests {
			if valid := pruneOld(reqs, now, r.window); len(valid) == 0 {
				delete(r.requests, trackedIP)
			} else {
				r.requests[trackedIP] = valid
			}
		}
		r.lastSweep = now
	}

	if reqs, exists := r.requests[ip]; exists {
		r.requests[ip] = pruneOld(reqs, now, r.window)
	}

	if len(r.requests[ip]) >= r.maxReqs {
		return false
	}

	r.requests[ip] = append(r.requests[ip], now)
	return true
}

func pruneOld(reqs []time.Time, now time.Time, window time.Duration) []time.Time {
	var valid []time.Time
	for _, t := range reqs {
		if now.Sub(t) < window {
			valid = append(valid, t)
		}
	}
	return valid
}
