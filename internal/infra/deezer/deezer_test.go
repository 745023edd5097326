package infra_deezer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "abba", r.URL.Query().Get("q"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": [
				{
					"id": 880998,
					"title": "Dancing Queen",
					"link": "https://www.deezer.com/track/880998",
					"preview": "https://cdn.example.com/880998.mp3",
					"artist": {"name": "ABBA"},
					"album": {"cover": "https://cdn.example.com/cover.jpg"}
				}
			]
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	songs, err := client.Search(context.Background(), "abba")

	require.NoError(t, err)
	require.Len(t, songs, 1)
	assert.Equal(t, "Dancing Queen", songs[0].Title)
	assert.Equal(t, "ABBA", songs[0].Artist)
	assert.Equal(t, "880998", songs[0].ID)
	assert.Equal(t, "https://www.deezer.com/track/880998", songs[0].URI)
	assert.Equal(t, "https://cdn.example.com/880998.mp3", songs[0].Preview)
	assert.Equal(t, "https://cdn.example.com/cover.jpg", songs[0].Image)
}

func TestSearchEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	songs, err := NewClient(srv.URL).Search(context.Background(), "zzzz")

	require.NoError(t, err)
	assert.Empty(t, songs)
}

func TestSearchUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Search(context.Background(), "abba")

	assert.Error(t, err)
}
