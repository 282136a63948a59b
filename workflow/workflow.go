// Package workflow loads and manipulates ComfyUI prompt graphs in API
// format: a JSON object mapping node ids to nodes with a class_type, an
// inputs object, and a _meta.title label.
//
// The package deliberately stays shallow. It resolves node ids by title and
// tweaks node inputs; graph semantics belong to the server.
package workflow

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	comfyapi "github.com/simonlaw0711/comfy-api-simplified"
)

// ErrNodeNotFound is returned when no node carries the requested title.
var ErrNodeNotFound = errors.New("node not found in workflow")

// Workflow is a parsed ComfyUI prompt graph.
type Workflow struct {
	graph  map[string]any
	titles map[string]string // title -> node id
}

// Ensure Workflow can drive the client's submit-and-collect pipeline.
var _ comfyapi.PromptSource = (*Workflow)(nil)

// Parse builds a Workflow from API-format JSON.
func Parse(data []byte) (*Workflow, error) {
	var graph map[string]any
	if err := json.Unmarshal(data, &graph); err != nil {
		return nil, fmt.Errorf("parsing workflow: %w", err)
	}

	w := &Workflow{
		graph:  graph,
		titles: make(map[string]string),
	}

	// First title wins on collision, matching iteration order by sorted id
	// so repeated loads resolve identically.
	for _, id := range w.NodeIDs() {
		if title := nodeTitle(graph[id]); title != "" {
			if _, seen := w.titles[title]; !seen {
				w.titles[title] = id
			}
		}
	}
	return w, nil
}

// Load reads and parses a workflow file.
func Load(path string) (*Workflow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Prompt returns the graph document to submit.
func (w *Workflow) Prompt() map[string]any {
	return w.graph
}

// NodeID returns the id of the node carrying the given title.
func (w *Workflow) NodeID(title string) (string, error) {
	id, ok := w.titles[title]
	if !ok {
		return "", fmt.Errorf("%w: title %q", ErrNodeNotFound, title)
	}
	return id, nil
}

// NodeIDs returns all node ids in sorted order.
func (w *Workflow) NodeIDs() []string {
	ids := make([]string, 0, len(w.graph))
	for id := range w.graph {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SetInput sets an input value on the node carrying the given title.
func (w *Workflow) SetInput(title, key string, value any) error {
	id, err := w.NodeID(title)
	if err != nil {
		return err
	}

	node, ok := w.graph[id].(map[string]any)
	if !ok {
		return fmt.Errorf("node %s is not an object", id)
	}

	inputs, ok := node["inputs"].(map[string]any)
	if !ok {
		inputs = make(map[string]any)
		node["inputs"] = inputs
	}
	inputs[key] = value
	return nil
}

// Input returns an input value from the node carrying the given title.
func (w *Workflow) Input(title, key string) (any, error) {
	id, err := w.NodeID(title)
	if err != nil {
		return nil, err
	}

	node, ok := w.graph[id].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("node %s is not an object", id)
	}
	inputs, ok := node["inputs"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("node %s has no inputs", id)
	}

	value, ok := inputs[key]
	if !ok {
		return nil, fmt.Errorf("node %s has no input %q", id, key)
	}
	return value, nil
}

func nodeTitle(node any) string {
	obj, ok := node.(map[string]any)
	if !ok {
		return ""
	}
	meta, ok := obj["_meta"].(map[string]any)
	if !ok {
		return ""
	}
	title, _ := meta["title"].(string)
	return title
}
