package rest

import (
	"encoding/json"
	"net/http"

	"github.com/ewilliams-labs/segue/internal/adapters/export"
	"github.com/ewilliams-labs/segue/internal/core/services"
)

// PlanSet handles POST /sets/plan
func (h *Handler) PlanSet(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req services.PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Refs) == 0 {
		writeError(w, http.StatusBadRequest, "refs are required")
		return
	}

	plan, err := h.svc.PlanSet(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

type exportSetRequest struct {
	Name   string `json:"name"`
	Format string `json:"format"`
	services.PlanRequest
}

var exportContentTypes = map[string]string{
	export.FormatM3U:       "audio/x-mpegurl",
	export.FormatCSV:       "text/csv",
	export.FormatJSON:      "application/json",
	export.FormatRekordbox: "application/xml",
}

// ExportSet handles POST /sets/export
func (h *Handler) ExportSet(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req exportSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Refs) == 0 {
		writeError(w, http.StatusBadRequest, "refs are required")
		return
	}
	contentType, ok := exportContentTypes[req.Format]
	if !ok {
		writeError(w, http.StatusBadRequest, "format must be one of m3u, csv, json, rekordbox")
		return
	}
	if req.Name == "" {
		req.Name = "Segue Set"
	}

	plan, err := h.svc.PlanSet(r.Context(), req.PlanRequest)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if err := export.Write(w, req.Format, req.Name, plan.Tracks); err != nil {
		// Headers are already out; the body is simply truncated.
		return
	}
}
