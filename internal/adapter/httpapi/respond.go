package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/tradedesk/tradedesk-backend/internal/domain"
)

// errorResponse is the JSON error envelope
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError converts domain errors to HTTP status codes
func writeError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}

	if errors.Is(err, domain.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}

	// Map common validation errors to 400
	msg := err.Error()
	if strings.Contains(msg, "must be") ||
		strings.Contains(msg, "is required") ||
		strings.Contains(msg, "invalid") ||
		strings.Contains(msg, "YYYY-MM-DD") ||
		strings.Contains(msg, "signal") ||
		strings.Contains(msg, "condition") ||
		strings.Contains(msg, "unsupported") {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
		return
	}

	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msg})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

// decodeJSON decodes a request body, rejecting unknown fields so typos
// in the SPA payload surface as 400s instead of zero values.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// pathID parses the {id} path segment as a UUID
func pathID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(r.PathValue("id"))
}
