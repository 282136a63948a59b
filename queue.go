package comfyapi

import (
	"context"
	"encoding/json"
)

// QueueEntry is one element of the running or pending queue. The server
// encodes entries as tuples; the prompt id sits at index 1.
type QueueEntry struct {
	Number   int
	PromptID string
}

// UnmarshalJSON decodes the server's tuple representation. Only the first
// two positions are interpreted; the rest of the tuple (the prompt graph and
// execution metadata) is ignored.
func (q *QueueEntry) UnmarshalJSON(b []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(b, &tuple); err != nil {
		return err
	}
	if len(tuple) < 2 {
		return &ProtocolError{Field: "queue entry", Message: "tuple too short"}
	}

	var number float64
	if err := json.Unmarshal(tuple[0], &number); err == nil {
		q.Number = int(number)
	}

	if err := json.Unmarshal(tuple[1], &q.PromptID); err != nil {
		return &ProtocolError{Field: "queue entry", Message: "prompt id is not a string", Err: err}
	}
	return nil
}

// QueueState is the server's pending/running queue snapshot.
type QueueState struct {
	Running []QueueEntry `json:"queue_running"`
	Pending []QueueEntry `json:"queue_pending"`
}

// GetQueue retrieves the entire prompt queue.
func (c *Client) GetQueue(ctx context.Context) (*QueueState, error) {
	c.logger.Debug("getting queue", "url", c.endpoint("/queue", nil))

	var state QueueState
	if err := c.getJSON(ctx, "/queue", nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// QueuePosition returns how many prompts precede promptID: 0 means it is
// running, k means k pending prompts sit ahead of it. It fails with
// *NotInQueueError when the prompt is in neither sequence, which usually
// means it already completed.
func (c *Client) QueuePosition(ctx context.Context, promptID string) (int, error) {
	state, err := c.GetQueue(ctx)
	if err != nil {
		return 0, err
	}

	for _, entry := range state.Running {
		if entry.PromptID == promptID {
			return 0, nil
		}
	}

	for i, entry := range state.Pending {
		if entry.PromptID == promptID {
			return i + 1, nil
		}
	}

	return 0, &NotInQueueError{PromptID: promptID}
}
