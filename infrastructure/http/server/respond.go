package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	errs "github.com/spettacolo/squalo/errors"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError answers with the status mapped from err and an {error} body.
func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	status := errs.MapToHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error("Request failed", "status", status, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
