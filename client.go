// Package comfyapi is a small client library for the ComfyUI server API.
//
// It submits prompt graphs for execution, waits for completion over the
// server's websocket notification channel, and retrieves the binary artifacts
// (images, gifs, videos) a finished prompt produced. Workflow graphs are
// treated as opaque documents; the workflow subpackage offers just enough
// structure to resolve node ids by title and tweak node inputs.
package comfyapi

import (
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/simonlaw0711/comfy-api-simplified/ratelimiter"
)

const (
	// DefaultBaseURL is the address of a locally running ComfyUI server.
	DefaultBaseURL = "http://127.0.0.1:8188"

	// DefaultReadTimeout is the application-level read deadline applied to
	// each websocket read while waiting for prompt completion. Generation
	// can legitimately be silent for minutes, so this is generous.
	DefaultReadTimeout = 300 * time.Second

	// DefaultHTTPTimeout bounds each plain HTTP call.
	DefaultHTTPTimeout = 60 * time.Second
)

// Client talks to a single ComfyUI server.
//
// A Client is safe for concurrent use; each call is self-contained and each
// completion wait owns its own websocket connection, scoped by a fresh
// correlation id.
type Client struct {
	baseURL *url.URL
	wsURL   *url.URL

	username string
	password string

	httpClient *http.Client
	dialer     *websocket.Dialer

	logger      *slog.Logger
	limiter     ratelimiter.Limiter
	storage     Storage
	readTimeout time.Duration

	mu sync.RWMutex
}

// New creates a Client for the server at rawURL. An empty rawURL falls back
// to DefaultBaseURL.
//
// Example:
//
//	api, err := comfyapi.New("https://comfy.example.com",
//	    comfyapi.WithAuth("user", "secret"),
//	    comfyapi.WithLogger(slog.Default()),
//	)
func New(rawURL string, opts ...Option) (*Client, error) {
	if rawURL == "" {
		rawURL = DefaultBaseURL
	}

	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, &ProtocolError{Message: "invalid base URL", Err: err}
	}

	c := &Client{
		baseURL:     base,
		wsURL:       channelURL(base),
		httpClient:  &http.Client{Timeout: DefaultHTTPTimeout},
		dialer:      websocket.DefaultDialer,
		logger:      slog.Default(),
		readTimeout: DefaultReadTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// channelURL derives the websocket endpoint from the HTTP base URL. The
// secure variant is used iff the base URL is https.
func channelURL(base *url.URL) *url.URL {
	ws := *base
	switch base.Scheme {
	case "https":
		ws.Scheme = "wss"
	default:
		ws.Scheme = "ws"
	}
	ws.Path = "/ws"
	ws.RawQuery = ""
	return &ws
}

// SetLogger sets a structured logger for the client.
func (c *Client) SetLogger(logger *slog.Logger) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger = logger
	return c
}

// SetRateLimiter sets a rate limiter gating every outbound HTTP call.
// Use this to share one limiter across clients pointing at the same server.
func (c *Client) SetRateLimiter(limiter ratelimiter.Limiter) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.limiter = limiter
	return c
}

// SetStorage sets a storage backend for persisting collected artifacts.
// Use SaveOutputs to write artifacts after collection.
func (c *Client) SetStorage(storage Storage) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.storage = storage
	return c
}

// SetReadTimeout overrides the per-read deadline on the notification channel.
func (c *Client) SetReadTimeout(d time.Duration) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.readTimeout = d
	return c
}

// Storage returns the configured storage backend, or nil if not set.
func (c *Client) Storage() Storage {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.storage
}

// BaseURL returns the server base URL the client was configured with.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}
