package comfyapi

import (
	"context"
)

// CollectOutputs fetches the artifacts a completed prompt produced at the
// output node carrying outputTitle, keyed by filename. The title is resolved
// through nodes; collection then proceeds as in CollectNodeOutputs.
func (c *Client) CollectOutputs(ctx context.Context, promptID, outputTitle string, nodes NodeResolver) (map[string][]byte, error) {
	nodeID, err := nodes.NodeID(outputTitle)
	if err != nil {
		return nil, err
	}
	return c.CollectNodeOutputs(ctx, promptID, nodeID)
}

// CollectNodeOutputs fetches the artifacts recorded in history for promptID
// under the output node nodeID, keyed by filename. It fails with
// *NotFoundError when the prompt is absent from history, the record has no
// outputs, the node produced nothing, or the node's entry holds none of the
// recognized artifact lists.
func (c *Client) CollectNodeOutputs(ctx context.Context, promptID, nodeID string) (map[string][]byte, error) {
	history, err := c.GetHistory(ctx, promptID)
	if err != nil {
		return nil, err
	}

	entry, ok := history[promptID]
	if !ok {
		return nil, &NotFoundError{PromptID: promptID, Missing: "prompt"}
	}
	if len(entry.Outputs) == 0 {
		return nil, &NotFoundError{PromptID: promptID, Missing: "outputs"}
	}

	output, ok := entry.Outputs[nodeID]
	if !ok {
		return nil, &NotFoundError{PromptID: promptID, NodeID: nodeID, Missing: "node"}
	}

	artifacts, ok := output.Artifacts()
	if !ok {
		return nil, &NotFoundError{PromptID: promptID, NodeID: nodeID, Missing: "artifacts"}
	}

	c.logger.Info("collecting outputs",
		"prompt_id", promptID,
		"node_id", nodeID,
		"artifact_count", len(artifacts),
	)

	results := make(map[string][]byte, len(artifacts))
	for _, a := range artifacts {
		data, err := c.GetArtifact(ctx, a.Filename, a.Subfolder, a.Type)
		if err != nil {
			return nil, err
		}
		results[a.Filename] = data
	}
	return results, nil
}

// QueueAndWaitOutputs submits the workflow, blocks until it finishes, and
// returns the artifacts of the output node carrying outputTitle, keyed by
// filename. This is the whole pipeline behind one synchronous call.
func (c *Client) QueueAndWaitOutputs(ctx context.Context, src PromptSource, outputTitle string) (map[string][]byte, error) {
	// Resolve the title up front so a typo fails before anything is queued.
	nodeID, err := src.NodeID(outputTitle)
	if err != nil {
		return nil, err
	}

	promptID, err := c.QueuePromptAndWait(ctx, src.Prompt())
	if err != nil {
		return nil, err
	}

	return c.CollectNodeOutputs(ctx, promptID, nodeID)
}
