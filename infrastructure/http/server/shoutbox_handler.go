package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spettacolo/squalo/auth"
	"github.com/spettacolo/squalo/domain"
	errs "github.com/spettacolo/squalo/errors"
)

const maxPostBodyBytes = 64 << 10

type postMessageBody struct {
	Text *string `json:"text"`
}

type deleteMessageResponse struct {
	Success bool `json:"success"`
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := s.shoutbox.List(r.Context())
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	writeJSON(w, http.StatusOK, messages)
}

func (s *Server) handlePostMessage(w http.ResponseWriter, r *http.Request) {
	var body postMessageBody
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPostBodyBytes)).Decode(&body); err != nil {
		writeError(w, s.log, fmt.Errorf("%w: %v", errs.ErrInvalidPayload, err))
		return
	}
	if body.Text == nil {
		writeError(w, s.log, fmt.Errorf("%w: text is required", errs.ErrInvalidPayload))
		return
	}

	message, err := s.shoutbox.Post(r.Context(), *body.Text)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, message)
}

// handleDeleteMessage checks the id before credentials, so a malformed
// request is a 400 whatever the caller's token.
func (s *Server) handleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, s.log, errs.ErrIDRequired)
		return
	}
	if s.opts.Signer != nil {
		claims, err := s.opts.Signer.Authorize(r, auth.RoleAdmin)
		if err != nil {
			s.log.Warn("Rejected shoutbox deletion", "id", id, "error", err)
			writeError(w, s.log, errs.ErrUnauthorized)
			return
		}
		s.log.Info("Admin deleting shoutbox message", "id", id, "subject", claims.Subject)
	}

	ok, err := s.shoutbox.Delete(r.Context(), id)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteMessageResponse{Success: ok})
}
