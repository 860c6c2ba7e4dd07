package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"fairshoppe/pkg/logger"
)

// Policy describes how often one user may perform one action.
type Policy struct {
	PerMinute int
	Burst     int
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter manages rate limiting for different users and actions
type RateLimiter struct {
	policies map[string]Policy
	buckets  map[string]*entry
	mutex    sync.Mutex
	idleTTL  time.Duration
	now      func() time.Time
}

// NewRateLimiter creates a new rate limiter. Actions without a policy are
// never limited.
func NewRateLimiter(policies map[string]Policy) *RateLimiter {
	return &RateLimiter{
		policies: policies,
		buckets:  make(map[string]*entry),
		idleTTL:  10 * time.Minute,
		now:      time.Now,
	}
}

// Allow checks if a user action is allowed. When it is not, the returned
// duration is how long the caller should wait before retrying.
func (rl *RateLimiter) Allow(userID, action string) (bool, time.Duration) {
	policy, ok := rl.policies[action]
	if !ok || policy.PerMinute <= 0 {
		return true, 0
	}

	now := rl.now()
	limiter := rl.limiterFor(userID+":"+action, policy, now)

	reservation := limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return false, time.Minute
	}

	delay := reservation.DelayFrom(now)
	if delay > 0 {
		reservation.CancelAt(now)
		logger.Debug("Rate limit hit for %s on %s, retry in %s", userID, action, delay)
		return false, delay
	}
	return true, 0
}

func (rl *RateLimiter) limiterFor(key string, policy Policy, now time.Time) *rate.Limiter {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	e, ok := rl.buckets[key]
	if !ok {
		burst := policy.Burst
		if burst <= 0 {
			burst = policy.PerMinute
		}
		e = &entry{
			limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(policy.PerMinute)), burst),
		}
		rl.buckets[key] = e
	}
	e.lastSeen = now
	return e.limiter
}

// Cleanup drops buckets that have been idle longer than the TTL.
func (rl *RateLimiter) Cleanup() int {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	cutoff := rl.now().Add(-rl.idleTTL)
	removed := 0
	for key, e := range rl.buckets {
		if e.lastSeen.Before(cutoff) {
			delete(rl.buckets, key)
			removed++
		}
	}
	return removed
}

// Start runs periodic cleanup until ctx is cancelled.
func (rl *RateLimiter) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(rl.idleTTL / 2)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if removed := rl.Cleanup(); removed > 0 {
					logger.Debug("Rate limiter dropped %d idle buckets", removed)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}
