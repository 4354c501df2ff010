package lyrics

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	errs "github.com/spettacolo/squalo/errors"
)

const (
	DefaultBaseURL   = "https://lrclib.net"
	defaultUserAgent = "squalo/1.0 (+https://lrclib.net)"
)

// Query identifies a recording. LRCLIB matches on all four fields,
// with the duration tolerated within a couple of seconds.
type Query struct {
	TrackName  string
	ArtistName string
	AlbumName  string
	Duration   time.Duration
}

type record struct {
	ID           int64  `json:"id"`
	Instrumental bool   `json:"instrumental"`
	PlainLyrics  string `json:"plainLyrics"`
	SyncedLyrics string `json:"syncedLyrics"`
}

// Client calls the LRCLIB API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse lyrics api url %q: %w", baseURL, err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: base, http: httpClient, userAgent: defaultUserAgent}, nil
}

// Fetch returns the synced lines for a recording. Recordings without synced
// lyrics, and instrumentals, report errors.ErrLyricsNotFound.
func (c *Client) Fetch(ctx context.Context, q Query) ([]Line, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(q.TrackName) == "" || strings.TrimSpace(q.ArtistName) == "" {
		return nil, fmt.Errorf("%w: track and artist names are required", errs.ErrLyricsNotFound)
	}

	values := url.Values{}
	values.Set("track_name", q.TrackName)
	values.Set("artist_name", q.ArtistName)
	if q.AlbumName != "" {
		values.Set("album_name", q.AlbumName)
	}
	if q.Duration > 0 {
		values.Set("duration", strconv.Itoa(int(q.Duration.Round(time.Second).Seconds())))
	}
	rel := &url.URL{Path: "/api/get", RawQuery: values.Encode()}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL.ResolveReference(rel).String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errs.ErrLyricsNotFound
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("lyrics api %s returned status %d", rel.Path, resp.StatusCode)
	}

	var payload record
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if payload.Instrumental || strings.TrimSpace(payload.SyncedLyrics) == "" {
		return nil, errs.ErrLyricsNotFound
	}
	lines := ParseLRC(payload.SyncedLyrics)
	if len(lines) == 0 {
		return nil, errs.ErrLyricsNotFound
	}
	return lines, nil
}
