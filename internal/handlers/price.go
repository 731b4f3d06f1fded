package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/folioapp/folio/internal/repositories"
)

type PriceHandler struct {
	history repositories.HistoryRepository
}

func NewPriceHandler(history repositories.HistoryRepository) *PriceHandler {
	return &PriceHandler{history: history}
}

// HandleGet serves the stored daily history for one ticker. Unknown tickers
// get an empty list, not an error.
func (h *PriceHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ticker := r.URL.Query().Get("filter")
	if ticker == "" {
		http.Error(w, "filter is required", http.StatusBadRequest)
		return
	}

	points, err := h.history.PricesByTicker(r.Context(), ticker)
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(points)
}
