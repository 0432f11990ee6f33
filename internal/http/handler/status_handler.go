package handler

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/your-org/strategy-miner/internal/engine"
)

// StatusHandler serves the progress of the running evolution. It
// doubles as a stats sink so the engine feeds it directly.
type StatusHandler struct {
	mu      sync.RWMutex
	latest  *engine.GenerationStats
	history []engine.GenerationStats
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler() *StatusHandler {
	return &StatusHandler{}
}

// PublishGeneration implements engine.StatsSink.
func (h *StatusHandler) PublishGeneration(stats engine.GenerationStats) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = &stats
	h.history = append(h.history, stats)
}

// RegisterRoutes registers the status routes on a chi router.
func (h *StatusHandler) RegisterRoutes(r chi.Router) {
	r.Get("/status/latest", h.GetLatest)
	r.Get("/status/history", h.GetHistory)
}

// GetLatest returns the most recent generation summary.
func (h *StatusHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	latest := h.latest
	h.mu.RUnlock()

	if latest == nil {
		http.Error(w, "No generation completed yet", http.StatusNotFound)
		return
	}
	writeJSON(w, latest)
}

// GetHistory returns every completed generation of the current run.
func (h *StatusHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	history := make([]engine.GenerationStats, len(h.history))
	copy(history, h.history)
	h.mu.RUnlock()

	writeJSON(w, history)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response to JSON", http.StatusInternalServerError)
	}
}
