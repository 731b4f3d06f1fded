package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/folioapp/folio/internal/models"
	"github.com/folioapp/folio/internal/services"
)

type ReportingHandler struct {
	valuation services.ValuationService
}

func NewReportingHandler(valuation services.ValuationService) *ReportingHandler {
	return &ReportingHandler{valuation: valuation}
}

func (h *ReportingHandler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rows, err := h.valuation.Overview(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(rows)
}

func (h *ReportingHandler) HandlePerformance(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	report, err := h.valuation.Performance(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(report)
}

// HandleDetail serves the time series behind the portfolio chart, optionally
// restricted to one ticker or one asset type.
func (h *ReportingHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	filter := models.ChartFilter{
		Ticker: r.URL.Query().Get("ticker"),
		Type:   r.URL.Query().Get("type"),
	}
	rows, err := h.valuation.Chart(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(rows)
}
