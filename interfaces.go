package comfyapi

// NodeResolver maps human-facing node titles to the server-side node ids
// used as output keys in history records. The workflow package provides the
// standard implementation.
type NodeResolver interface {
	// NodeID returns the id of the node carrying the given title.
	NodeID(title string) (string, error)
}

// PromptSource is a workflow ready for submission: it yields the prompt
// graph and resolves output-node titles.
type PromptSource interface {
	NodeResolver

	// Prompt returns the graph document to submit.
	Prompt() map[string]any
}
