//go:generate go run go.uber.org/mock/mockgen -source=now_playing_service.go -destination=../mocks/mock_now_playing_service.go -package=mocks
package services

import (
	"context"
	"errors"
	"log/slog"

	errs "github.com/spettacolo/squalo/errors"
	"github.com/spettacolo/squalo/infrastructure/lyrics"
	"github.com/spettacolo/squalo/infrastructure/spotify"
)

type TokenProvider interface {
	GetToken(ctx context.Context) (spotify.Token, bool, error)
	ActiveFlow() spotify.Flow
	ForceRefresh(ctx context.Context) (spotify.RefreshResult, error)
}

type LyricsLookup interface {
	Lookup(ctx context.Context, trackID string, q lyrics.Query) ([]lyrics.Line, error)
}

type INowPlayingService interface {
	Current(ctx context.Context) (NowPlaying, error)
	Refresh(ctx context.Context) (spotify.RefreshResult, error)
	ActiveFlow() spotify.Flow
}

// NowPlaying is the normalized playback state. Playback is nil when nothing plays.
type NowPlaying struct {
	Playback *spotify.Playback
	Lyrics   []lyrics.Line
	Flow     spotify.Flow
}

func (n NowPlaying) Playing() bool {
	return n.Playback != nil && n.Playback.IsPlaying
}

type NowPlayingService struct {
	tokens   TokenProvider
	playback spotify.PlaybackFetcher
	lyrics   LyricsLookup
	log      *slog.Logger
}

// NewNowPlayingService builds the service. A nil lyrics lookup disables enrichment.
func NewNowPlayingService(
	tokens TokenProvider,
	playback spotify.PlaybackFetcher,
	lyrics LyricsLookup,
	log *slog.Logger,
) *NowPlayingService {
	return &NowPlayingService{tokens: tokens, playback: playback, lyrics: lyrics, log: log}
}

// Current fetches what the account is playing. Upstream rejections come back
// as *spotify.UpstreamError, and a missing token as errors.ErrNoAccessToken.
func (s *NowPlayingService) Current(ctx context.Context) (NowPlaying, error) {
	token, ok, err := s.tokens.GetToken(ctx)
	if err != nil {
		return NowPlaying{}, err
	}
	if !ok {
		return NowPlaying{}, errs.ErrNoAccessToken
	}
	if token.Cached {
		s.log.Debug("Using cached spotify token", "flow", "CACHED", "source", token.Flow)
	}

	playback, err := s.playback.CurrentlyPlaying(ctx, token.AccessToken)
	if err != nil {
		var upstream *spotify.UpstreamError
		if errors.As(err, &upstream) {
			s.log.Warn("Spotify rejected currently-playing request", "status", upstream.Status, "flow", token.Flow)
		}
		return NowPlaying{Flow: token.Flow}, err
	}

	result := NowPlaying{Playback: playback, Flow: token.Flow}
	if playback != nil && playback.Item != nil {
		result.Lyrics = s.lookupLyrics(ctx, *playback.Item)
	}
	return result, nil
}

// lookupLyrics never fails the caller; any error only gets logged.
func (s *NowPlayingService) lookupLyrics(ctx context.Context, track spotify.Track) []lyrics.Line {
	if s.lyrics == nil || track.ID == "" {
		return nil
	}
	lines, err := s.lyrics.Lookup(ctx, track.ID, lyrics.Query{
		TrackName:  track.Name,
		ArtistName: track.PrimaryArtist(),
		AlbumName:  track.Album.Name,
		Duration:   track.Duration(),
	})
	switch {
	case errors.Is(err, errs.ErrLyricsNotFound):
		s.log.Debug("No lyrics for track", "track_id", track.ID)
	case err != nil:
		s.log.Warn("Lyrics lookup failed", "track_id", track.ID, "error", err)
	}
	return lines
}

func (s *NowPlayingService) Refresh(ctx context.Context) (spotify.RefreshResult, error) {
	return s.tokens.ForceRefresh(ctx)
}

func (s *NowPlayingService) ActiveFlow() spotify.Flow {
	return s.tokens.ActiveFlow()
}
