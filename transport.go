package comfyapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
)

// do applies credentials and the optional rate limiter, executes the request,
// and normalizes non-2xx statuses into TransportError. The caller owns the
// response body on success.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	c.mu.RLock()
	limiter := c.limiter
	c.mu.RUnlock()

	if limiter != nil {
		if err := limiter.WaitAndConsume(req.Context(), 1, 0); err != nil {
			c.logger.Warn("rate limit hit",
				"method", req.Method,
				"url", req.URL.String(),
				"error", err.Error(),
			)
			return nil, err
		}
	}

	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("response received",
		"method", req.Method,
		"url", req.URL.String(),
		"status", resp.StatusCode,
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &TransportError{
			Status: resp.StatusCode,
			Reason: http.StatusText(resp.StatusCode),
		}
	}

	return resp, nil
}

// getJSON issues an authenticated GET and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.endpoint(path, query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeJSONBody(resp, out)
}

// postJSON issues an authenticated POST with a JSON body and decodes the
// JSON response into out. out may be nil when the body is irrelevant.
func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &ProtocolError{Message: "encoding request body", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, nil), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	return decodeJSONBody(resp, out)
}

// getBytes issues an authenticated GET and returns the raw response body.
func (c *Client) getBytes(ctx context.Context, path string, query url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, query), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

// decodeJSONBody decodes a response body, wrapping decode failures.
func decodeJSONBody(resp *http.Response, out any) error {
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ProtocolError{Message: "decoding response body", Err: err}
	}
	return nil
}

// endpoint joins a path and query onto the base URL.
func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = path
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String()
}
