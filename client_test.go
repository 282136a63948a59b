package comfyapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonlaw0711/comfy-api-simplified/ratelimiter"
)

func TestNew_Defaults(t *testing.T) {
	c, err := New("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
	assert.Equal(t, DefaultReadTimeout, c.readTimeout)
}

func TestNew_ChannelURLScheme(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{"http://comfy.local:8188", "ws://comfy.local:8188/ws"},
		{"https://comfy.example.com", "wss://comfy.example.com/ws"},
	}

	for _, tt := range tests {
		c, err := New(tt.base)
		require.NoError(t, err)
		assert.Equal(t, tt.want, c.wsURL.String())
	}
}

func TestNew_InvalidURL(t *testing.T) {
	_, err := New("http://bad url with spaces")
	require.Error(t, err)
	assert.True(t, IsProtocolError(err))
}

func TestClient_Setters(t *testing.T) {
	c, err := New("")
	require.NoError(t, err)

	storage := NewDirStorage(t.TempDir())
	c.SetLogger(testLogger()).
		SetStorage(storage).
		SetReadTimeout(10 * time.Second)

	assert.Equal(t, storage, c.Storage())
	assert.Equal(t, 10*time.Second, c.readTimeout)
}

func TestClient_RateLimited(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"queue_running": [], "queue_pending": []}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, WithRateLimiter(ratelimiter.New(1)))

	_, err := c.GetQueue(context.Background())
	require.NoError(t, err)

	// The bucket is empty; the second call must block until refill, which a
	// short context turns into an error without hitting the server.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.GetQueue(ctx)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
