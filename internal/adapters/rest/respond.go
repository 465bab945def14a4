package rest

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/ewilliams-labs/segue/internal/core/domain"
	"github.com/ewilliams-labs/segue/internal/core/ports"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already out; nothing left to do but note it.
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeErrorWithCode(w http.ResponseWriter, status int, msg, code string) {
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}

// writeServiceError maps orchestrator failures onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidTrack), errors.Is(err, domain.ErrEmptyBatch):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ports.ErrExtraction):
		writeErrorWithCode(w, http.StatusBadGateway, err.Error(), "EXTRACTION_FAILED")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func isJSONContentType(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}
