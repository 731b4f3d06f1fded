package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/folioapp/folio/internal/models"
	"github.com/folioapp/folio/internal/repositories"
	"github.com/folioapp/folio/internal/services"
)

// LedgerHandler serves the append/list endpoints for the event tables. All
// list endpoints accept an optional ?ticker= filter and return rows ascending
// by date; all write endpoints validate first, mutate second and drop the
// report cache last.
type LedgerHandler struct {
	ledger       repositories.LedgerRepository
	valuation    services.ValuationService
	cache        *services.SnapshotCache
	baseCurrency string
}

func NewLedgerHandler(ledger repositories.LedgerRepository, valuation services.ValuationService, cache *services.SnapshotCache, baseCurrency string) *LedgerHandler {
	return &LedgerHandler{ledger: ledger, valuation: valuation, cache: cache, baseCurrency: baseCurrency}
}

func (h *LedgerHandler) HandleTradeList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	trades, err := h.ledger.ListTrades(r.Context(), r.URL.Query().Get("ticker"))
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"base_currency": h.baseCurrency,
		"trades":        trades,
	})
}

func (h *LedgerHandler) HandleTradeNew(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var trade models.Trade
	if err := json.NewDecoder(r.Body).Decode(&trade); err != nil {
		http.Error(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := trade.Validate(); err != nil {
		writeError(w, err)
		return
	}

	if err := h.ledger.CreateTrade(r.Context(), &trade); err != nil {
		writeError(w, err)
		return
	}
	h.cache.Invalidate()

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(&trade)
}

func (h *LedgerHandler) HandleDepositList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	deposits, err := h.ledger.ListDeposits(r.Context(), r.URL.Query().Get("ticker"))
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(deposits)
}

func (h *LedgerHandler) HandleDepositNew(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var deposit models.Deposit
	if err := json.NewDecoder(r.Body).Decode(&deposit); err != nil {
		http.Error(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := deposit.Validate(); err != nil {
		writeError(w, err)
		return
	}

	if err := h.ledger.CreateDeposit(r.Context(), &deposit); err != nil {
		writeError(w, err)
		return
	}
	h.cache.Invalidate()

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(&deposit)
}

// HandleDividendList returns the dividend rows together with per-instrument
// totals in the dividend currency and the base currency.
func (h *LedgerHandler) HandleDividendList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	dividends, err := h.ledger.ListDividends(r.Context(), r.URL.Query().Get("ticker"))
	if err != nil {
		writeError(w, err)
		return
	}
	totals, err := h.valuation.DividendTotals(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"dividends": dividends,
		"totals":    totals,
	})
}

func (h *LedgerHandler) HandleDividendNew(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var dividend models.Dividend
	if err := json.NewDecoder(r.Body).Decode(&dividend); err != nil {
		http.Error(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := dividend.Validate(); err != nil {
		writeError(w, err)
		return
	}

	if err := h.ledger.CreateDividend(r.Context(), &dividend); err != nil {
		writeError(w, err)
		return
	}
	h.cache.Invalidate()

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(&dividend)
}

func (h *LedgerHandler) HandleStakingList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	events, err := h.ledger.ListStakingEvents(r.Context(), r.URL.Query().Get("ticker"))
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(events)
}

func (h *LedgerHandler) HandleStakingNew(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var event models.StakingEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := event.Validate(); err != nil {
		writeError(w, err)
		return
	}

	if err := h.ledger.CreateStakingEvent(r.Context(), &event); err != nil {
		writeError(w, err)
		return
	}
	h.cache.Invalidate()

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(&event)
}

func (h *LedgerHandler) HandleValueList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	values, err := h.ledger.ListManualValues(r.Context(), r.URL.Query().Get("ticker"))
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"base_currency": h.baseCurrency,
		"values":        values,
	})
}

func (h *LedgerHandler) HandleValueNew(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var value models.ManualValue
	if err := json.NewDecoder(r.Body).Decode(&value); err != nil {
		http.Error(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := value.Validate(); err != nil {
		writeError(w, err)
		return
	}

	if err := h.ledger.UpsertManualValue(r.Context(), &value); err != nil {
		writeError(w, err)
		return
	}
	h.cache.Invalidate()

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(&value)
}
