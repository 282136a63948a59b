package comfyapi

import (
	"context"
	"encoding/base64"
	"errors"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// QueuePromptAndWait submits a prompt and blocks until the server reports a
// terminal state for it, returning the prompt id. A fresh correlation id is
// generated per call so that concurrent waits never observe each other's
// events.
//
// An execution error reported for this prompt fails the wait with
// *ExecutionError. Silence on the channel is retried indefinitely; bound the
// wait with a context deadline, which surfaces as *WaitTimeoutError.
func (c *Client) QueuePromptAndWait(ctx context.Context, prompt Prompt) (string, error) {
	clientID := uuid.NewString()

	result, err := c.QueuePrompt(ctx, prompt, clientID)
	if err != nil {
		return "", err
	}

	return c.WaitForPrompt(ctx, result.PromptID, clientID)
}

// WaitForPrompt consumes the notification channel registered under clientID
// until promptID reaches a terminal state. Most callers want
// QueuePromptAndWait, which pairs the submission with its correlation id.
func (c *Client) WaitForPrompt(ctx context.Context, promptID, clientID string) (string, error) {
	start := time.Now()

	conn, err := c.dialChannel(ctx, clientID)
	if err != nil {
		return "", c.waitFailure(ctx, promptID, start, err)
	}
	defer func() { conn.Close() }()

	for {
		if ctx.Err() != nil {
			return "", c.waitFailure(ctx, promptID, start, ctx.Err())
		}

		conn.SetReadDeadline(time.Now().Add(c.readTimeout))
		msgType, raw, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return "", c.waitFailure(ctx, promptID, start, ctx.Err())
			}

			// A gorilla connection is permanently failed after any read
			// error, expired deadlines included, so a silent-but-healthy
			// server still costs us a redial. The correlation id keeps the
			// fresh connection scoped to the same submission.
			if isTimeout(err) {
				c.logger.Warn("channel read timed out, reconnecting",
					"prompt_id", promptID,
					"read_timeout", c.readTimeout.String(),
				)
			} else {
				c.logger.Warn("channel read failed, reconnecting",
					"prompt_id", promptID,
					"error", err.Error(),
				)
			}

			conn.Close()
			conn, err = c.dialChannel(ctx, clientID)
			if err != nil {
				return "", c.waitFailure(ctx, promptID, start, err)
			}
			continue
		}

		if msgType != websocket.TextMessage {
			// Binary preview frames share the socket; skip them.
			continue
		}

		ev, err := ParseEvent(raw)
		if err != nil {
			c.logger.Debug("skipping undecodable frame", "error", err.Error())
			continue
		}

		done, err := c.handleEvent(ctx, ev, promptID)
		if err != nil {
			return "", err
		}
		if done {
			c.logger.Info("prompt finished",
				"prompt_id", promptID,
				"elapsed", time.Since(start).String(),
			)
			return promptID, nil
		}
	}
}

// handleEvent classifies one channel event. It reports done=true when the
// event is terminal for promptID and returns an error only for a fatal
// execution failure scoped to promptID.
func (c *Client) handleEvent(ctx context.Context, ev *Event, promptID string) (done bool, err error) {
	switch ev.Type {
	case EventMonitor, EventProgress:
		return false, nil

	case EventExecutionError:
		d, err := ev.ExecutionErrorData()
		if err != nil {
			c.logger.Debug("ignoring malformed execution_error event", "error", err.Error())
			return false, nil
		}
		if d.PromptID != promptID {
			// Another submission sharing the server; not ours to fail on.
			return false, nil
		}
		return false, &ExecutionError{
			PromptID: d.PromptID,
			NodeID:   d.NodeID,
			NodeType: d.NodeType,
			Message:  d.ExceptionMessage,
		}

	case EventStatus:
		d, err := ev.StatusData()
		if err != nil {
			c.logger.Debug("ignoring malformed status event", "error", err.Error())
			return false, nil
		}
		if d.Status.ExecInfo.QueueRemaining != 0 {
			return false, nil
		}
		// The drained-queue counter is server-wide, not scoped to this
		// prompt. Confirm against history before trusting it, otherwise a
		// concurrent submission finishing first would resolve us early.
		if c.promptFinished(ctx, promptID) {
			return true, nil
		}
		c.logger.Debug("queue drained but prompt not in history, still waiting",
			"prompt_id", promptID,
		)
		return false, nil

	case EventExecuting:
		d, err := ev.ExecutingData()
		if err != nil {
			c.logger.Debug("ignoring malformed executing event", "error", err.Error())
			return false, nil
		}
		return d.Node == nil && d.PromptID == promptID, nil

	default:
		return false, nil
	}
}

// promptFinished reports whether promptID already has a history record. A
// failed lookup counts as not finished; the wait simply continues.
func (c *Client) promptFinished(ctx context.Context, promptID string) bool {
	history, err := c.GetHistory(ctx, promptID)
	if err != nil {
		c.logger.Debug("history check failed", "prompt_id", promptID, "error", err.Error())
		return false
	}
	_, ok := history[promptID]
	return ok
}

// dialChannel opens the notification channel scoped by clientID, retrying
// with exponential backoff until it connects or the context says stop. The
// client sends no protocol-level pings; liveness is handled by the read
// deadline in the wait loop.
func (c *Client) dialChannel(ctx context.Context, clientID string) (*websocket.Conn, error) {
	u := *c.wsURL
	u.RawQuery = url.Values{"clientId": {clientID}}.Encode()

	var header http.Header
	if c.username != "" {
		header = http.Header{}
		header.Set("Authorization", "Basic "+basicAuth(c.username, c.password))
	}

	c.logger.Info("connecting to notification channel", "url", u.String())

	var conn *websocket.Conn
	op := func() error {
		dialed, resp, err := c.dialer.DialContext(ctx, u.String(), header)
		if err != nil {
			if resp != nil {
				resp.Body.Close()
			}
			return err
		}
		conn = dialed
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 0 // the context bounds the retries
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}
	return conn, nil
}

// waitFailure distinguishes a context deadline from any other wait failure.
func (c *Client) waitFailure(ctx context.Context, promptID string, start time.Time, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return &WaitTimeoutError{
			PromptID: promptID,
			Elapsed:  time.Since(start),
			Err:      ctxErr,
		}
	}
	return err
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func basicAuth(username, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
}
