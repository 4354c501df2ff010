package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	errs "github.com/spettacolo/squalo/errors"
	"github.com/spettacolo/squalo/infrastructure/spotify"
)

const (
	noTokenMessage = "No access token available (set SPOTIFY_ACCESS_TOKEN or SPOTIFY_CLIENT_ID/SPOTIFY_CLIENT_SECRET)"
	appScopedHint  = "the active token comes from the client credentials flow, which cannot read per-user playback; configure SPOTIFY_REFRESH_TOKEN"
)

type refreshResponse struct {
	OK                  bool         `json:"ok"`
	Flow                spotify.Flow `json:"flow"`
	ExpiresAt           time.Time    `json:"expires_at"`
	RefreshTokenRotated bool         `json:"refresh_token_rotated"`
	UsedRefreshToken    string       `json:"used_refresh_token"`
}

func (s *Server) handleCurrentlyPlaying(w http.ResponseWriter, r *http.Request) {
	current, err := s.nowPlaying.Current(r.Context())
	if err != nil {
		s.writeSpotifyError(w, current.Flow, err)
		return
	}
	if current.Playback == nil {
		writeJSON(w, http.StatusOK, map[string]any{"playing": false})
		return
	}

	body := make(map[string]any, len(current.Playback.Raw)+2)
	for k, v := range current.Playback.Raw {
		body[k] = v
	}
	body["playing"] = current.Playback.IsPlaying
	if len(current.Lyrics) > 0 {
		body["lyrics"] = current.Lyrics
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) writeSpotifyError(w http.ResponseWriter, flow spotify.Flow, err error) {
	var upstream *spotify.UpstreamError
	switch {
	case errors.Is(err, errs.ErrNoAccessToken):
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: noTokenMessage})
	case errors.As(err, &upstream):
		if flow == "" {
			flow = s.nowPlaying.ActiveFlow()
		}
		payload := map[string]any{"error": upstream.Detail, "status": upstream.Status}
		if !flow.UserScoped() {
			payload["hint"] = appScopedHint
		}
		if s.opts.SpotifyDebug {
			payload["_debug"] = map[string]any{"flow": flow}
		}
		writeJSON(w, upstream.Status, payload)
	default:
		s.log.Error("Currently playing lookup failed", "error", err)
		payload := map[string]any{"error": err.Error()}
		if s.opts.SpotifyDebug {
			payload["_raw"] = fmt.Sprintf("%#v", err)
		}
		writeJSON(w, http.StatusInternalServerError, payload)
	}
}

func (s *Server) handleRefreshToken(w http.ResponseWriter, r *http.Request) {
	result, err := s.nowPlaying.Refresh(r.Context())
	var exchangeErr *spotify.ExchangeError
	switch {
	case errors.As(err, &exchangeErr) && exchangeErr.Status != 0:
		s.log.Warn("Forced refresh rejected", "status", exchangeErr.Status)
		writeJSON(w, exchangeErr.Status, map[string]any{
			"error":  exchangeErr.Error(),
			"status": exchangeErr.Status,
		})
		return
	case err != nil:
		writeError(w, s.log, err)
		return
	}

	writeJSON(w, http.StatusOK, refreshResponse{
		OK:                  true,
		Flow:                result.Token.Flow,
		ExpiresAt:           result.Token.ExpiresAt.UTC(),
		RefreshTokenRotated: result.Rotated,
		UsedRefreshToken:    result.UsedRefreshToken,
	})
}
