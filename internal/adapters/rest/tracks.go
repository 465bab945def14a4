package rest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ewilliams-labs/segue/internal/adapters/export"
	"github.com/ewilliams-labs/segue/internal/worker"
)

type analyzeTracksRequest struct {
	Refs  []string `json:"refs"`
	Async bool     `json:"async"`
}

type analyzeQueuedResponse struct {
	Queued []string `json:"queued"`
}

// AnalyzeTracks handles POST /tracks/analyze
func (h *Handler) AnalyzeTracks(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req analyzeTracksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Refs) == 0 {
		writeError(w, http.StatusBadRequest, "refs are required")
		return
	}

	if req.Async {
		if h.pool == nil {
			writeError(w, http.StatusNotImplemented, "background analysis not configured")
			return
		}
		for _, ref := range req.Refs {
			h.pool.Submit(worker.Job{Ref: ref})
		}
		writeJSON(w, http.StatusAccepted, analyzeQueuedResponse{Queued: req.Refs})
		return
	}

	report, err := h.svc.AnalyzeBatch(r.Context(), req.Refs)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	// A batch with failures still succeeded as a batch; the report says
	// which tracks made it.
	status := http.StatusOK
	if len(report.Analyzed) == 0 {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, report)
}

// TrackCues handles GET /tracks/{ref}/cues
func (h *Handler) TrackCues(w http.ResponseWriter, r *http.Request) {
	ref := r.PathValue("ref")
	if ref == "" {
		writeError(w, http.StatusBadRequest, "track ref is required")
		return
	}

	sensitivity := 0.0
	if raw := r.URL.Query().Get("sensitivity"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 || parsed > 1 {
			writeError(w, http.StatusBadRequest, "sensitivity must be in [0,1]")
			return
		}
		sensitivity = parsed
	}

	cues, err := h.svc.TrackCues(r.Context(), ref, sensitivity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cues)
}

// TrackLoops handles GET /tracks/{ref}/loops
func (h *Handler) TrackLoops(w http.ResponseWriter, r *http.Request) {
	ref := r.PathValue("ref")
	if ref == "" {
		writeError(w, http.StatusBadRequest, "track ref is required")
		return
	}

	minDuration, ok := parseDurationParam(w, r, "min_duration", 4)
	if !ok {
		return
	}
	maxDuration, ok := parseDurationParam(w, r, "max_duration", 32)
	if !ok {
		return
	}
	if minDuration > maxDuration {
		writeError(w, http.StatusBadRequest, "min_duration must not exceed max_duration")
		return
	}

	loops, err := h.svc.TrackLoops(r.Context(), ref, minDuration, maxDuration)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loops)
}

// TrackZones handles GET /tracks/{ref}/zones
func (h *Handler) TrackZones(w http.ResponseWriter, r *http.Request) {
	ref := r.PathValue("ref")
	if ref == "" {
		writeError(w, http.StatusBadRequest, "track ref is required")
		return
	}

	zones, err := h.svc.TrackZones(r.Context(), ref)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, zones)
}

// TrackNotes handles GET /tracks/{ref}/notes
func (h *Handler) TrackNotes(w http.ResponseWriter, r *http.Request) {
	ref := r.PathValue("ref")
	if ref == "" {
		writeError(w, http.StatusBadRequest, "track ref is required")
		return
	}

	ctx := r.Context()
	track, err := h.svc.Track(ctx, ref)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	cues, err := h.svc.TrackCues(ctx, ref, 0)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	loops, err := h.svc.TrackLoops(ctx, ref, 4, 32)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	zones, err := h.svc.TrackZones(ctx, ref)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := export.WriteNotes(w, track, cues, loops, zones); err != nil {
		// Headers are already out; the body is simply truncated.
		return
	}
}

func parseDurationParam(w http.ResponseWriter, r *http.Request, name string, fallback float64) (float64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || parsed <= 0 {
		writeError(w, http.StatusBadRequest, name+" must be a positive number of seconds")
		return 0, false
	}
	return parsed, true
}
