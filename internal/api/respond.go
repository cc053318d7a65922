package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/ashtonrjacobs/Recipe-Finder/internal/logging"
)

// APIError is the body of every JSON error response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error     APIError `json:"error"`
	RequestID string   `json:"request_id,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("failed to write JSON response")
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Str("code", code).Msg("request failed")
	}
	respondJSON(w, status, errorResponse{
		Error:     APIError{Code: code, Message: message},
		RequestID: logging.RequestIDFromContext(r.Context()),
	})
}
