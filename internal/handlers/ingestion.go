package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/folioapp/folio/internal/services"
)

type IngestionHandler struct {
	marketData services.MarketDataService
}

func NewIngestionHandler(marketData services.MarketDataService) *IngestionHandler {
	return &IngestionHandler{marketData: marketData}
}

// HandleHistoricalUpdate triggers the price refresh. Individual feed
// failures are logged server-side and do not fail the trigger.
func (h *IngestionHandler) HandleHistoricalUpdate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := h.marketData.RefreshPrices(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

// HandleFxUpdate triggers the FX rate refresh.
func (h *IngestionHandler) HandleFxUpdate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := h.marketData.RefreshFX(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}
