// Package ratelimiter provides client-side request throttling for ComfyUI
// servers. Implementations can be local (in-memory) or distributed.
package ratelimiter

import (
	"context"
	"time"
)

// Limiter defines the interface for rate limiters.
type Limiter interface {
	// TryConsume atomically checks capacity and consumes n requests if
	// available. Returns true if the requests were consumed.
	TryConsume(n int) bool

	// TimeUntilAvailable returns how long until n requests would be
	// available (read-only).
	TimeUntilAvailable(n int) time.Duration

	// WaitAndConsume waits until n requests are available, then consumes
	// them. Returns an error if the context is cancelled or maxWait is
	// exceeded. A maxWait of 0 means no limit.
	WaitAndConsume(ctx context.Context, n int, maxWait time.Duration) error
}
