package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/folioapp/folio/internal/config"
	"github.com/folioapp/folio/internal/services"
)

type MetaHandler struct {
	cfg       *config.Config
	valuation services.ValuationService
}

func NewMetaHandler(cfg *config.Config, valuation services.ValuationService) *MetaHandler {
	return &MetaHandler{cfg: cfg, valuation: valuation}
}

// HandleConfig serves the display settings the front end needs before it can
// render anything.
func (h *MetaHandler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{
		"base_currency": h.cfg.BaseCurrency,
		"locale":        h.cfg.Locale,
	})
}

// HandleLastData reports the freshest stored date per fed series so the
// front end can decide whether to trigger a refresh.
func (h *MetaHandler) HandleLastData(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	last, err := h.valuation.LastData(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(last)
}
