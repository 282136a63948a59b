package comfyapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queueServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/queue", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGetQueue(t *testing.T) {
	srv := queueServer(t, `{
		"queue_running": [[0, "run-1", {"1": {}}, {}, ["9"]]],
		"queue_pending": [[1, "pend-1", {}, {}, []], [2, "pend-2", {}, {}, []]]
	}`)

	c := newTestClient(t, srv.URL)
	state, err := c.GetQueue(context.Background())
	require.NoError(t, err)

	require.Len(t, state.Running, 1)
	assert.Equal(t, "run-1", state.Running[0].PromptID)
	assert.Equal(t, 0, state.Running[0].Number)

	require.Len(t, state.Pending, 2)
	assert.Equal(t, "pend-1", state.Pending[0].PromptID)
	assert.Equal(t, 2, state.Pending[1].Number)
}

func TestQueuePosition_Running(t *testing.T) {
	srv := queueServer(t, `{
		"queue_running": [[0, "a"], [1, "b"]],
		"queue_pending": [[2, "c"]]
	}`)

	c := newTestClient(t, srv.URL)

	// Any slot in the running sequence means position 0.
	for _, id := range []string{"a", "b"} {
		pos, err := c.QueuePosition(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, 0, pos)
	}
}

func TestQueuePosition_Pending(t *testing.T) {
	srv := queueServer(t, `{
		"queue_running": [[0, "running"]],
		"queue_pending": [[1, "first"], [2, "second"], [3, "third"]]
	}`)

	c := newTestClient(t, srv.URL)

	tests := map[string]int{"first": 1, "second": 2, "third": 3}
	for id, want := range tests {
		pos, err := c.QueuePosition(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, want, pos, "prompt %s", id)
	}
}

func TestQueuePosition_NotInQueue(t *testing.T) {
	srv := queueServer(t, `{"queue_running": [], "queue_pending": []}`)

	c := newTestClient(t, srv.URL)
	_, err := c.QueuePosition(context.Background(), "gone")
	require.Error(t, err)
	require.True(t, IsNotInQueueError(err))

	var nq *NotInQueueError
	require.ErrorAs(t, err, &nq)
	assert.Equal(t, "gone", nq.PromptID)
}

func TestQueueEntry_UnmarshalShortTuple(t *testing.T) {
	srv := queueServer(t, `{"queue_running": [[0]], "queue_pending": []}`)

	c := newTestClient(t, srv.URL)
	_, err := c.GetQueue(context.Background())
	require.Error(t, err)
	assert.True(t, IsProtocolError(err))
}
