package comfyapi

import (
	"context"
)

// Prompt is an opaque ComfyUI workflow graph ready for submission. The
// server interprets the graph; this library only carries it.
type Prompt map[string]any

// QueueResult is the server's acknowledgement of a queued prompt.
type QueueResult struct {
	// PromptID is the server-assigned identifier for the queued prompt.
	PromptID string `json:"prompt_id"`

	// Number is the prompt's sequence number in the queue.
	Number int `json:"number"`

	// NodeErrors carries per-node validation problems, if any.
	NodeErrors map[string]any `json:"node_errors,omitempty"`
}

// QueuePrompt submits a prompt for execution and returns the server's
// acknowledgement. clientID, when non-empty, is attached to the request so
// that notification-channel events for this prompt reach the connection
// registered under the same id.
func (c *Client) QueuePrompt(ctx context.Context, prompt Prompt, clientID string) (*QueueResult, error) {
	if err := ValidatePrompt(prompt); err != nil {
		return nil, err
	}

	body := map[string]any{"prompt": prompt}
	if clientID != "" {
		body["client_id"] = clientID
	}

	c.logger.Info("posting prompt", "url", c.endpoint("/prompt", nil), "client_id", clientID)

	var result QueueResult
	if err := c.postJSON(ctx, "/prompt", body, &result); err != nil {
		return nil, err
	}

	if result.PromptID == "" {
		return nil, &ProtocolError{Field: "prompt_id", Message: "missing in /prompt response"}
	}

	c.logger.Debug("prompt queued", "prompt_id", result.PromptID, "number", result.Number)
	return &result, nil
}
