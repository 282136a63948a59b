package comfyapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/simonlaw0711/comfy-api-simplified/ratelimiter"
)

// Option configures the Client.
type Option func(*Client)

// WithAuth sets basic-auth credentials applied to every HTTP call and to the
// websocket handshake.
func WithAuth(username, password string) Option {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// WithHTTPClient overrides the HTTP client, e.g. to adjust timeouts in tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithDialer overrides the websocket dialer.
func WithDialer(d *websocket.Dialer) Option {
	return func(c *Client) {
		if d != nil {
			c.dialer = d
		}
	}
}

// WithLogger sets a structured logger for the client.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimiter sets a rate limiter gating every outbound HTTP call.
func WithRateLimiter(limiter ratelimiter.Limiter) Option {
	return func(c *Client) {
		c.limiter = limiter
	}
}

// WithStorage sets a storage backend for persisting collected artifacts.
func WithStorage(storage Storage) Option {
	return func(c *Client) {
		c.storage = storage
	}
}

// WithReadTimeout overrides the per-read deadline on the notification channel.
func WithReadTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.readTimeout = d
		}
	}
}
