package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/master.m3u8" {
			http.NotFound(w, r)
			return
		}
		assert.Contains(t, r.Header.Get("User-Agent"), "flipplayer")
		_, _ = w.Write([]byte(masterPlaylist))
	}))
	defer server.Close()

	f := NewHTTPFetcher()

	body, err := f.Fetch(context.Background(), server.URL+"/master.m3u8")
	require.NoError(t, err)
	assert.Equal(t, masterPlaylist, string(body))

	_, err = f.Fetch(context.Background(), server.URL+"/missing.m3u8")
	assert.ErrorContains(t, err, "404")
}
