package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultAPIURL       = "https://api.spotify.com"
	currentlyPlayingURL = "/v1/me/player/currently-playing"
	defaultUserAgent    = "squalo/1.0"
	maxBodyBytes        = 1 << 20
)

// PlaybackFetcher is implemented by *Client and replaced by fakes in tests.
type PlaybackFetcher interface {
	CurrentlyPlaying(ctx context.Context, accessToken string) (*Playback, error)
}

var _ PlaybackFetcher = (*Client)(nil)

type Artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Album struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Track struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	DurationMs int64    `json:"duration_ms"`
	Artists    []Artist `json:"artists"`
	Album      Album    `json:"album"`
}

func (t Track) Duration() time.Duration {
	return time.Duration(t.DurationMs) * time.Millisecond
}

// PrimaryArtist is the first credited artist, the one lyric providers index on.
func (t Track) PrimaryArtist() string {
	if len(t.Artists) == 0 {
		return ""
	}
	return t.Artists[0].Name
}

// Playback is the decoded currently-playing payload. Raw keeps every field
// Spotify sent so callers can pass it through untouched.
type Playback struct {
	IsPlaying  bool           `json:"is_playing"`
	ProgressMs int64          `json:"progress_ms"`
	Item       *Track         `json:"item"`
	Raw        map[string]any `json:"-"`
}

// UpstreamError is a non-2xx answer from the Web API.
// Detail is the "error" member of a JSON body, or the raw body otherwise.
type UpstreamError struct {
	Status int
	Body   string
	Detail any
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("spotify api returned status %d: %s", e.Status, e.Body)
}

type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

func NewClient(apiURL string, httpClient *http.Client) (*Client, error) {
	if strings.TrimSpace(apiURL) == "" {
		apiURL = DefaultAPIURL
	}
	base, err := url.Parse(strings.TrimSpace(apiURL))
	if err != nil {
		return nil, fmt.Errorf("parse spotify api url %q: %w", apiURL, err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: base, http: httpClient, userAgent: defaultUserAgent}, nil
}

// CurrentlyPlaying returns nil, nil when nothing is playing.
func (c *Client) CurrentlyPlaying(ctx context.Context, accessToken string) (*Playback, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: currentlyPlayingURL})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newUpstreamError(resp.StatusCode, body)
	}
	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	var playback Playback
	if err := json.Unmarshal(body, &playback); err != nil {
		return nil, fmt.Errorf("decode playback: %w", err)
	}
	if err := json.Unmarshal(body, &playback.Raw); err != nil {
		return nil, fmt.Errorf("decode playback: %w", err)
	}
	return &playback, nil
}

func newUpstreamError(status int, body []byte) *UpstreamError {
	upstream := &UpstreamError{Status: status, Body: string(body), Detail: string(body)}
	var decoded map[string]any
	if json.Unmarshal(body, &decoded) == nil {
		if detail, ok := decoded["error"]; ok && detail != nil {
			upstream.Detail = detail
		} else {
			upstream.Detail = decoded
		}
	}
	return upstream
}
