package comfyapi

import (
	"context"
)

// Artifact identifies one binary output produced by a prompt. The triple is
// what the /view endpoint needs to serve the bytes.
type Artifact struct {
	Filename  string `json:"filename"`
	Subfolder string `json:"subfolder"`
	Type      string `json:"type"`
}

// NodeOutput holds the artifacts one output node produced. In practice
// exactly one of the three lists is populated.
type NodeOutput struct {
	Images []Artifact `json:"images,omitempty"`
	Gifs   []Artifact `json:"gifs,omitempty"`
	Videos []Artifact `json:"videos,omitempty"`
}

// Artifacts returns the populated artifact list, checking images, then gifs,
// then videos. The order is part of the API contract.
func (o NodeOutput) Artifacts() ([]Artifact, bool) {
	switch {
	case o.Images != nil:
		return o.Images, true
	case o.Gifs != nil:
		return o.Gifs, true
	case o.Videos != nil:
		return o.Videos, true
	default:
		return nil, false
	}
}

// HistoryEntry is the persisted record of an executed prompt.
type HistoryEntry struct {
	Outputs map[string]NodeOutput `json:"outputs"`
}

// History maps prompt ids to their execution records.
type History map[string]HistoryEntry

// GetHistory retrieves the execution history for a prompt. The server
// returns an empty object, not an error, for unknown prompt ids.
func (c *Client) GetHistory(ctx context.Context, promptID string) (History, error) {
	c.logger.Debug("getting history", "prompt_id", promptID)

	var history History
	if err := c.getJSON(ctx, "/history/"+promptID, nil, &history); err != nil {
		return nil, err
	}
	return history, nil
}
