package rest

import (
	"encoding/json"
	"net/http"
)

type compatibilityRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Compatibility handles POST /compatibility
func (h *Handler) Compatibility(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req compatibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.From == "" || req.To == "" {
		writeError(w, http.StatusBadRequest, "from and to are required")
		return
	}

	report, err := h.svc.Compatibility(r.Context(), req.From, req.To)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
