package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	errs "github.com/spettacolo/squalo/errors"
	"github.com/spettacolo/squalo/infrastructure/lyrics"
	"golang.org/x/sync/singleflight"
)

const (
	LyricsTTL         = 6 * time.Hour
	LyricsNegativeTTL = time.Hour
	LyricsMaxEntries  = 10_000
)

type LyricsFetcher interface {
	Fetch(ctx context.Context, q lyrics.Query) ([]lyrics.Line, error)
}

// CachedLyrics is a lookup outcome. An entry with no lines records that the
// provider has nothing for the track.
type CachedLyrics struct {
	Lines     []lyrics.Line
	FetchedAt time.Time
}

// LyricsCache memoizes lyric lookups by track id.
type LyricsCache struct {
	fetcher     LyricsFetcher
	log         *slog.Logger
	cache       *ristretto.Cache[string, CachedLyrics]
	group       singleflight.Group
	ttl         time.Duration
	negativeTTL time.Duration
	now         func() time.Time
}

func NewLyricsCache(fetcher LyricsFetcher, log *slog.Logger) (*LyricsCache, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, CachedLyrics]{
		NumCounters:        LyricsMaxEntries * 10,
		MaxCost:            LyricsMaxEntries,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create lyrics cache: %w", err)
	}
	return &LyricsCache{
		fetcher:     fetcher,
		log:         log,
		cache:       cache,
		ttl:         LyricsTTL,
		negativeTTL: LyricsNegativeTTL,
		now:         time.Now,
	}, nil
}

// Lookup returns the lines for a track, calling the provider at most once per
// track id while a cached outcome is fresh. Concurrent misses share one call.
func (c *LyricsCache) Lookup(ctx context.Context, trackID string, q lyrics.Query) ([]lyrics.Line, error) {
	if trackID == "" {
		return nil, errs.ErrLyricsNotFound
	}
	if entry, ok := c.cache.Get(trackID); ok {
		c.log.Debug("Lyrics cache hit", "track_id", trackID, "lines", len(entry.Lines))
		return linesOrNotFound(entry)
	}

	v, err, _ := c.group.Do(trackID, func() (any, error) {
		if entry, ok := c.cache.Get(trackID); ok {
			return entry, nil
		}
		lines, err := c.fetcher.Fetch(ctx, q)
		switch {
		case errors.Is(err, errs.ErrLyricsNotFound):
			entry := CachedLyrics{FetchedAt: c.now()}
			c.set(trackID, entry, c.negativeTTL)
			return entry, nil
		case err != nil:
			return nil, err
		}
		entry := CachedLyrics{Lines: lines, FetchedAt: c.now()}
		c.set(trackID, entry, c.ttl)
		return entry, nil
	})
	if err != nil {
		return nil, err
	}
	return linesOrNotFound(v.(CachedLyrics))
}

func (c *LyricsCache) set(trackID string, entry CachedLyrics, ttl time.Duration) {
	if !c.cache.SetWithTTL(trackID, entry, 1, ttl) {
		c.log.Debug("Lyrics cache dropped entry", "track_id", trackID)
		return
	}
	c.cache.Wait()
}

func (c *LyricsCache) Close() {
	c.cache.Close()
}

func linesOrNotFound(entry CachedLyrics) ([]lyrics.Line, error) {
	if len(entry.Lines) == 0 {
		return nil, errs.ErrLyricsNotFound
	}
	return entry.Lines, nil
}
