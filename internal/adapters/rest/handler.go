// Package rest is the HTTP driving adapter. Handlers stay thin: decode,
// call the orchestrator, encode.
package rest

import (
	"net/http"

	"github.com/ewilliams-labs/segue/internal/core/services"
	"github.com/ewilliams-labs/segue/internal/worker"
)

// Handler manages the HTTP interface for our application.
type Handler struct {
	svc    *services.Orchestrator // Dependency on the Core Service
	pool   *worker.Pool           // Background analysis queue (may be nil)
	router *http.ServeMux         // Standard library router
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(svc *services.Orchestrator, pool *worker.Pool) *Handler {
	h := &Handler{
		svc:    svc,
		pool:   pool,
		router: http.NewServeMux(),
	}

	h.routes()

	return h
}

// ServeHTTP satisfies the http.Handler interface.
// It acts as a proxy, passing the request to our internal router.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// routes defines the mapping between URLs and methods.
func (h *Handler) routes() {
	// Health Check
	h.router.HandleFunc("GET /health", h.HealthCheck)
	// Track analysis and annotation
	h.router.HandleFunc("POST /tracks/analyze", h.AnalyzeTracks)
	h.router.HandleFunc("GET /tracks/{ref}/cues", h.TrackCues)
	h.router.HandleFunc("GET /tracks/{ref}/loops", h.TrackLoops)
	h.router.HandleFunc("GET /tracks/{ref}/zones", h.TrackZones)
	h.router.HandleFunc("GET /tracks/{ref}/notes", h.TrackNotes)
	// Pairwise compatibility
	h.router.HandleFunc("POST /compatibility", h.Compatibility)
	// Set planning and export
	h.router.HandleFunc("POST /sets/plan", h.PlanSet)
	h.router.HandleFunc("POST /sets/export", h.ExportSet)
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "Segue is live 🎧"})
}
