package ratelimiter

import (
	"fmt"
	"sync"
)

// Registry manages rate limiters for different server endpoints, so that
// several clients pointing at the same host share one limiter.
type Registry interface {
	Get(endpoint string) (Limiter, error)
	Set(endpoint string, limiter Limiter)
}

type mapRegistry struct {
	registry map[string]Limiter
	mu       sync.RWMutex
}

// NewRegistry creates a new in-memory limiter registry.
func NewRegistry() Registry {
	return &mapRegistry{
		registry: make(map[string]Limiter),
	}
}

func (r *mapRegistry) Get(endpoint string) (Limiter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	limiter, exists := r.registry[endpoint]
	if !exists {
		return nil, fmt.Errorf("rate limiter not found for endpoint: %s", endpoint)
	}
	return limiter, nil
}

func (r *mapRegistry) Set(endpoint string, limiter Limiter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.registry[endpoint] = limiter
}
