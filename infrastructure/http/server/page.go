package server

import (
	"bytes"
	"net/http"
	"time"

	"github.com/samber/lo"
	"github.com/spettacolo/squalo/domain"
)

const pageShoutCount = 10

type PageData struct {
	Title    string
	Messages []domain.Message
	Year     int
}

// handlePage renders the landing page. A failing store only hides the shouts.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	data := PageData{Title: s.opts.SiteTitle, Year: time.Now().Year()}
	messages, err := s.shoutbox.List(r.Context())
	if err != nil {
		s.log.Warn("Rendering page without shouts", "error", err)
	}
	data.Messages = lo.Slice(messages, 0, pageShoutCount)

	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		s.log.Error("Page rendering failed", "error", err)
		http.Error(w, "page rendering failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
