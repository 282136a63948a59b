package comfyapi

import (
	"encoding/json"
)

// EventType tags a message received on the notification channel.
type EventType string

const (
	// EventStatus carries the global queue counter.
	EventStatus EventType = "status"

	// EventExecuting reports the node currently executing for a prompt. A
	// nil node means the server has finished every node for that prompt.
	EventExecuting EventType = "executing"

	// EventExecutionError reports a prompt that failed during execution.
	EventExecutionError EventType = "execution_error"

	// EventProgress reports sampler step progress. Informational only.
	EventProgress EventType = "progress"

	// EventMonitor is the telemetry heartbeat emitted by the crystools
	// extension. Always ignored.
	EventMonitor EventType = "crystools.monitor"
)

// Event is a single structured message from the notification channel.
type Event struct {
	Type EventType       `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ParseEvent decodes a text frame into an Event.
func ParseEvent(raw []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(raw, &ev); err != nil {
		return nil, &ProtocolError{Message: "decoding channel message", Err: err}
	}
	return &ev, nil
}

// StatusData is the payload of an EventStatus message.
type StatusData struct {
	Status struct {
		ExecInfo struct {
			QueueRemaining int `json:"queue_remaining"`
		} `json:"exec_info"`
	} `json:"status"`
	SID string `json:"sid,omitempty"`
}

// ExecutingData is the payload of an EventExecuting message.
type ExecutingData struct {
	// Node is the id of the node now executing; nil once the prompt is done.
	Node     *string `json:"node"`
	PromptID string  `json:"prompt_id"`
}

// ExecutionErrorData is the payload of an EventExecutionError message.
type ExecutionErrorData struct {
	PromptID         string `json:"prompt_id"`
	NodeID           string `json:"node_id"`
	NodeType         string `json:"node_type"`
	ExceptionMessage string `json:"exception_message"`
	ExceptionType    string `json:"exception_type"`
}

// StatusData decodes the event payload as a StatusData.
func (e *Event) StatusData() (*StatusData, error) {
	var d StatusData
	if err := json.Unmarshal(e.Data, &d); err != nil {
		return nil, &ProtocolError{Field: "data", Message: "decoding status event", Err: err}
	}
	return &d, nil
}

// ExecutingData decodes the event payload as an ExecutingData.
func (e *Event) ExecutingData() (*ExecutingData, error) {
	var d ExecutingData
	if err := json.Unmarshal(e.Data, &d); err != nil {
		return nil, &ProtocolError{Field: "data", Message: "decoding executing event", Err: err}
	}
	return &d, nil
}

// ExecutionErrorData decodes the event payload as an ExecutionErrorData.
func (e *Event) ExecutionErrorData() (*ExecutionErrorData, error) {
	var d ExecutionErrorData
	if err := json.Unmarshal(e.Data, &d); err != nil {
		return nil, &ProtocolError{Field: "data", Message: "decoding execution_error event", Err: err}
	}
	return &d, nil
}
