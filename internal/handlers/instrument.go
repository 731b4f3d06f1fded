package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/folioapp/folio/internal/models"
	"github.com/folioapp/folio/internal/repositories"
	"github.com/folioapp/folio/internal/services"
)

type InstrumentHandler struct {
	instruments repositories.InstrumentRepository
	cache       *services.SnapshotCache
}

func NewInstrumentHandler(instruments repositories.InstrumentRepository, cache *services.SnapshotCache) *InstrumentHandler {
	return &InstrumentHandler{instruments: instruments, cache: cache}
}

func (h *InstrumentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	instruments, err := h.instruments.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(instruments)
}

func (h *InstrumentHandler) HandleNew(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var instrument models.Instrument
	if err := json.NewDecoder(r.Body).Decode(&instrument); err != nil {
		http.Error(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := instrument.Validate(); err != nil {
		writeError(w, err)
		return
	}

	if err := h.instruments.Upsert(r.Context(), &instrument); err != nil {
		writeError(w, err)
		return
	}
	h.cache.Invalidate()

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(&instrument)
}
