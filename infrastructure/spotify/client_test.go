package spotify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newPlaybackServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClient(server.URL, server.Client())
	require.NoError(t, err)
	return client
}

func TestClient_CurrentlyPlaying_Decodes_Track(t *testing.T) {
	req := require.New(t)
	client := newPlaybackServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/me/player/currently-playing" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("unexpected authorization %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"is_playing": true,
			"progress_ms": 42000,
			"currently_playing_type": "track",
			"item": {
				"id": "track-1",
				"name": "Song",
				"duration_ms": 180000,
				"artists": [{"id": "a1", "name": "First"}, {"id": "a2", "name": "Second"}],
				"album": {"id": "al1", "name": "Record"}
			}
		}`))
	})

	playback, err := client.CurrentlyPlaying(context.Background(), "tok")
	req.NoError(err)
	req.NotNil(playback)
	req.True(playback.IsPlaying)
	req.EqualValues(42000, playback.ProgressMs)
	req.Equal("track-1", playback.Item.ID)
	req.Equal("First", playback.Item.PrimaryArtist())
	req.Equal("Record", playback.Item.Album.Name)
	req.Equal(180.0, playback.Item.Duration().Seconds())
	req.Equal("track", playback.Raw["currently_playing_type"])
}

func TestClient_CurrentlyPlaying_Nothing_Playing(t *testing.T) {
	for name, handler := range map[string]http.HandlerFunc{
		"no content": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		},
		"empty body": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		},
	} {
		t.Run(name, func(t *testing.T) {
			req := require.New(t)
			playback, err := newPlaybackServer(t, handler).CurrentlyPlaying(context.Background(), "tok")
			req.NoError(err)
			req.Nil(playback)
		})
	}
}

func TestClient_CurrentlyPlaying_Upstream_Error(t *testing.T) {
	t.Run("json body exposes the error member", func(t *testing.T) {
		req := require.New(t)
		client := newPlaybackServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"status":401,"message":"Invalid access token"}}`))
		})

		_, err := client.CurrentlyPlaying(context.Background(), "tok")
		var upstream *UpstreamError
		req.ErrorAs(err, &upstream)
		req.Equal(http.StatusUnauthorized, upstream.Status)
		req.Equal(map[string]any{"status": float64(401), "message": "Invalid access token"}, upstream.Detail)
	})

	t.Run("plain body is kept verbatim", func(t *testing.T) {
		req := require.New(t)
		client := newPlaybackServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream down"))
		})

		_, err := client.CurrentlyPlaying(context.Background(), "tok")
		var upstream *UpstreamError
		req.ErrorAs(err, &upstream)
		req.Equal(http.StatusBadGateway, upstream.Status)
		req.Equal("upstream down", upstream.Detail)
	})
}

func TestClient_CurrentlyPlaying_Malformed_Body(t *testing.T) {
	req := require.New(t)
	client := newPlaybackServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"is_playing":`))
	})

	_, err := client.CurrentlyPlaying(context.Background(), "tok")
	req.Error(err)
	var upstream *UpstreamError
	req.NotErrorAs(err, &upstream)
}
