package server

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/spettacolo/squalo/auth"
	"github.com/spettacolo/squalo/services"
)

//go:embed templates/index.html
var templatesFS embed.FS

type DiagnosticsChecker interface {
	Check(ctx context.Context) services.DiagnosticsReport
}

type Options struct {
	SiteTitle    string
	SpotifyDebug bool
	// Signer guards DELETE /shoutbox when set.
	Signer *auth.Signer
}

// Server exposes the site's HTTP surface. Handlers keep no state of their own.
type Server struct {
	shoutbox    services.IShoutboxService
	nowPlaying  services.INowPlayingService
	diagnostics DiagnosticsChecker
	opts        Options
	log         *slog.Logger
	page        *template.Template
}

func NewServer(
	log *slog.Logger,
	shoutbox services.IShoutboxService,
	nowPlaying services.INowPlayingService,
	diagnostics DiagnosticsChecker,
	opts Options,
) *Server {
	return &Server{
		shoutbox:    shoutbox,
		nowPlaying:  nowPlaying,
		diagnostics: diagnostics,
		opts:        opts,
		log:         log,
		page:        template.Must(template.ParseFS(templatesFS, "templates/index.html")),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("GET /shoutbox", s.handleListMessages)
	mux.HandleFunc("POST /shoutbox", s.handlePostMessage)
	mux.HandleFunc("DELETE /shoutbox", s.handleDeleteMessage)

	mux.HandleFunc("GET /spotify/current", s.handleCurrentlyPlaying)
	mux.HandleFunc("GET /spotify/refresh", s.handleRefreshToken)

	mux.HandleFunc("GET /dbtest", s.handleDBTest)

	return recoverer(s.log, requestLogger(s.log, mux))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
