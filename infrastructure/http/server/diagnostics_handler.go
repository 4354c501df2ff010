package server

import (
	"net/http"

	"github.com/spettacolo/squalo/domain"
	"github.com/spettacolo/squalo/services"
)

type dbTestSuccess struct {
	OK      bool             `json:"ok"`
	Sample  []domain.Message `json:"sample"`
	Backend string           `json:"backend"`
}

type dbTestFailure struct {
	OK      bool             `json:"ok"`
	Error   string           `json:"error"`
	Backend string           `json:"backend"`
	Conn    string           `json:"conn"`
	SSLInfo services.SSLInfo `json:"sslInfo"`
	Hint    string           `json:"hint,omitempty"`
	Stack   []string         `json:"stack,omitempty"`
}

func (s *Server) handleDBTest(w http.ResponseWriter, r *http.Request) {
	report := s.diagnostics.Check(r.Context())
	if report.OK {
		sample := report.Sample
		if sample == nil {
			sample = []domain.Message{}
		}
		writeJSON(w, http.StatusOK, dbTestSuccess{OK: true, Sample: sample, Backend: report.Backend})
		return
	}
	message := "unknown error"
	if report.Err != nil {
		message = report.Err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, dbTestFailure{
		Error:   message,
		Backend: report.Backend,
		Conn:    report.Conn,
		SSLInfo: report.SSLInfo,
		Hint:    report.Hint,
		Stack:   report.Chain,
	})
}
