package comfyapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEvent(t *testing.T) {
	ev, err := ParseEvent([]byte(`{"type":"executing","data":{"node":"3","prompt_id":"p1"}}`))
	require.NoError(t, err)
	assert.Equal(t, EventExecuting, ev.Type)

	d, err := ev.ExecutingData()
	require.NoError(t, err)
	require.NotNil(t, d.Node)
	assert.Equal(t, "3", *d.Node)
	assert.Equal(t, "p1", d.PromptID)
}

func TestParseEvent_NullNode(t *testing.T) {
	ev, err := ParseEvent([]byte(`{"type":"executing","data":{"node":null,"prompt_id":"p1"}}`))
	require.NoError(t, err)

	d, err := ev.ExecutingData()
	require.NoError(t, err)
	assert.Nil(t, d.Node)
}

func TestParseEvent_Malformed(t *testing.T) {
	_, err := ParseEvent([]byte(`not json`))
	require.Error(t, err)
	assert.True(t, IsProtocolError(err))
}

func TestEvent_StatusData(t *testing.T) {
	ev, err := ParseEvent([]byte(`{"type":"status","data":{"status":{"exec_info":{"queue_remaining":3}},"sid":"abc"}}`))
	require.NoError(t, err)

	d, err := ev.StatusData()
	require.NoError(t, err)
	assert.Equal(t, 3, d.Status.ExecInfo.QueueRemaining)
	assert.Equal(t, "abc", d.SID)
}

func TestEvent_ExecutionErrorData(t *testing.T) {
	ev, err := ParseEvent([]byte(`{"type":"execution_error","data":{"prompt_id":"p1","node_id":"4","node_type":"VAEDecode","exception_message":"oom","exception_type":"RuntimeError"}}`))
	require.NoError(t, err)

	d, err := ev.ExecutionErrorData()
	require.NoError(t, err)
	assert.Equal(t, "p1", d.PromptID)
	assert.Equal(t, "4", d.NodeID)
	assert.Equal(t, "VAEDecode", d.NodeType)
	assert.Equal(t, "oom", d.ExceptionMessage)
}
