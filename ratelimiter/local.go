package ratelimiter

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// RequestLimiter is an in-memory Limiter allowing a fixed number of requests
// per refill interval.
type RequestLimiter struct {
	bucket *bucket
}

// Ensure RequestLimiter implements Limiter.
var _ Limiter = (*RequestLimiter)(nil)

// New creates a limiter allowing requestsPerMinute requests each minute.
func New(requestsPerMinute int) *RequestLimiter {
	return NewWithInterval(requestsPerMinute, time.Minute)
}

// NewWithInterval creates a limiter allowing capacity requests per interval.
func NewWithInterval(capacity int, interval time.Duration) *RequestLimiter {
	return &RequestLimiter{
		bucket: newBucket(capacity, capacity, interval),
	}
}

// TryConsume atomically checks capacity and consumes n requests if available.
func (rl *RequestLimiter) TryConsume(n int) bool {
	return rl.bucket.consume(n)
}

// TimeUntilAvailable returns how long until n requests would be available.
func (rl *RequestLimiter) TimeUntilAvailable(n int) time.Duration {
	return rl.bucket.timeUntilAvailable(n)
}

// WaitAndConsume waits until n requests are available (up to maxWait), then
// consumes them. A maxWait of 0 means the wait is bounded by ctx alone.
func (rl *RequestLimiter) WaitAndConsume(ctx context.Context, n int, maxWait time.Duration) error {
	waitDuration := rl.TimeUntilAvailable(n)

	if waitDuration > 0 {
		if maxWait > 0 && waitDuration > maxWait {
			return fmt.Errorf("rate limit wait time %v exceeds max wait %v", waitDuration, maxWait)
		}

		timer := time.NewTimer(waitDuration)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	if !rl.TryConsume(n) {
		// Another caller consumed the refill between the wait and now.
		return fmt.Errorf("failed to acquire capacity after waiting")
	}
	return nil
}

// bucket implements a token bucket with proportional refill over the
// interval.
type bucket struct {
	mu             sync.Mutex
	capacity       int
	remaining      int
	refillInterval time.Duration
	lastRefill     time.Time
}

func newBucket(capacity, initial int, refillInterval time.Duration) *bucket {
	return &bucket{
		capacity:       capacity,
		remaining:      initial,
		refillInterval: refillInterval,
		lastRefill:     time.Now(),
	}
}

func (b *bucket) consume(n int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refillLocked(time.Now())
	if n <= b.remaining {
		b.remaining -= n
		return true
	}
	return false
}

func (b *bucket) timeUntilAvailable(n int) time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(b.lastRefill)

	effective := b.remaining
	if elapsed >= b.refillInterval {
		effective = b.capacity
	} else if elapsed > 0 {
		replenished := int(float64(b.capacity) * (float64(elapsed) / float64(b.refillInterval)))
		effective = min(b.capacity, b.remaining+replenished)
	}

	if n <= effective {
		return 0
	}

	needed := n - effective
	refillRate := float64(b.capacity) / float64(b.refillInterval)
	wait := time.Duration(float64(needed) / refillRate)

	// Small buffer so the refill has definitely landed by the time we retry.
	return wait + (wait / 10)
}

// refillLocked credits the bucket for elapsed time. Callers hold b.mu.
func (b *bucket) refillLocked(now time.Time) {
	elapsed := now.Sub(b.lastRefill)
	if elapsed >= b.refillInterval {
		b.remaining = b.capacity
		b.lastRefill = now
	} else if elapsed > 0 {
		replenished := int(float64(b.capacity) * (float64(elapsed) / float64(b.refillInterval)))
		if replenished > 0 {
			b.remaining = min(b.capacity, b.remaining+replenished)
			b.lastRefill = now
		}
	}
}
