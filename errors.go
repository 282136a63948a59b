package comfyapi

import (
	"errors"
	"fmt"
	"time"
)

// TransportError is returned when the server answers an HTTP call with a
// non-success status. It is not retried automatically.
type TransportError struct {
	Status int
	Reason string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request failed with status code %d: %s", e.Status, e.Reason)
}

// IsTransportError checks if an error is a TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// ProtocolError is returned when a response parses but lacks an expected
// field, or cannot be decoded at all.
type ProtocolError struct {
	Field   string
	Message string
	Err     error // Underlying decode error, if any
}

func (e *ProtocolError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("protocol error: %s (field %q)", e.Message, e.Field)
	}
	return fmt.Sprintf("protocol error: %s", e.Message)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// IsProtocolError checks if an error is a ProtocolError.
func IsProtocolError(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe)
}

// ExecutionError is reported by the server over the notification channel when
// a prompt fails during execution. It is fatal for the wait.
type ExecutionError struct {
	PromptID string
	NodeID   string
	NodeType string
	Message  string
}

func (e *ExecutionError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("execution error for prompt %s: %s", e.PromptID, e.Message)
	}
	return fmt.Sprintf("execution error for prompt %s", e.PromptID)
}

// IsExecutionError checks if an error is an ExecutionError.
func IsExecutionError(err error) bool {
	var ee *ExecutionError
	return errors.As(err, &ee)
}

// NotFoundError is returned when a prompt, its outputs section, an output
// node, or any recognized artifact list is absent from history.
type NotFoundError struct {
	PromptID string
	NodeID   string
	Missing  string // "prompt", "outputs", "node" or "artifacts"
}

func (e *NotFoundError) Error() string {
	switch e.Missing {
	case "prompt":
		return fmt.Sprintf("prompt %s not found in history", e.PromptID)
	case "outputs":
		return fmt.Sprintf("no outputs found for prompt %s", e.PromptID)
	case "node":
		return fmt.Sprintf("output node %s not found in history for prompt %s", e.NodeID, e.PromptID)
	default:
		return fmt.Sprintf("no images, gifs, or videos found in output node %s for prompt %s", e.NodeID, e.PromptID)
	}
}

// IsNotFoundError checks if an error is a NotFoundError.
func IsNotFoundError(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// NotInQueueError is returned when a prompt appears in neither the running
// nor the pending queue sequence.
type NotInQueueError struct {
	PromptID string
}

func (e *NotInQueueError) Error() string {
	return fmt.Sprintf("prompt %s is not in the queue", e.PromptID)
}

// IsNotInQueueError checks if an error is a NotInQueueError.
func IsNotInQueueError(err error) bool {
	var nq *NotInQueueError
	return errors.As(err, &nq)
}

// WaitTimeoutError is returned when the caller's context expires before a
// terminal event arrives. Per-read timeouts on the notification channel are
// retried and never produce this error.
type WaitTimeoutError struct {
	PromptID string
	Elapsed  time.Duration
	Err      error
}

func (e *WaitTimeoutError) Error() string {
	return fmt.Sprintf("gave up waiting for prompt %s after %v", e.PromptID, e.Elapsed)
}

func (e *WaitTimeoutError) Unwrap() error {
	return e.Err
}

// IsWaitTimeoutError checks if an error is a WaitTimeoutError.
func IsWaitTimeoutError(err error) bool {
	var wt *WaitTimeoutError
	return errors.As(err, &wt)
}

// ErrStorageNotConfigured is returned when storage operations are attempted
// without a configured storage backend.
var ErrStorageNotConfigured = errors.New("storage not configured")
