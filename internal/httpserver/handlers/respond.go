package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/linktracker/linktracker/internal/domain"
	"github.com/linktracker/linktracker/internal/httpserver/deps"
	"github.com/linktracker/linktracker/internal/logger"
	"github.com/linktracker/linktracker/internal/sources/github"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy to HTTP statuses: validation
// failures are the client's fault (400), everything upstream is a 500
// with the message surfaced verbatim.
func writeError(w http.ResponseWriter, d deps.Deps, err error) {
	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: validation.Message})
		return
	}

	var apiErr *github.APIError
	if errors.As(err, &apiErr) {
		d.Logger.Error("upstream api error",
			logger.Int("status", apiErr.Status),
			logger.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	d.Logger.Error("request failed", logger.Error(err))
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
}
