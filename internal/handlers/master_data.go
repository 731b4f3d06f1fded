package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/folioapp/folio/internal/models"
	"github.com/folioapp/folio/internal/repositories"
)

type MasterDataHandler struct {
	master       repositories.MasterDataRepository
	baseCurrency string
}

func NewMasterDataHandler(master repositories.MasterDataRepository, baseCurrency string) *MasterDataHandler {
	return &MasterDataHandler{master: master, baseCurrency: baseCurrency}
}

// HandleCurrencyList also reports the base currency so the front end can
// pin it first in pickers.
func (h *MasterDataHandler) HandleCurrencyList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	currencies, err := h.master.ListCurrencies(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	names := make([]string, 0, len(currencies))
	for _, currency := range currencies {
		names = append(names, currency.Name)
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"base_currency": h.baseCurrency,
		"currencies":    names,
	})
}

func (h *MasterDataHandler) HandleCurrencyNew(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var currency models.Currency
	if err := json.NewDecoder(r.Body).Decode(&currency); err != nil {
		http.Error(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := currency.Validate(); err != nil {
		writeError(w, err)
		return
	}

	if err := h.master.CreateCurrency(r.Context(), &currency); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(&currency)
}

func (h *MasterDataHandler) HandleTypeList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	types, err := h.master.ListAssetTypes(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	names := make([]string, 0, len(types))
	for _, assetType := range types {
		names = append(names, assetType.Name)
	}
	json.NewEncoder(w).Encode(names)
}

func (h *MasterDataHandler) HandleTypeNew(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var assetType models.AssetType
	if err := json.NewDecoder(r.Body).Decode(&assetType); err != nil {
		http.Error(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := assetType.Validate(); err != nil {
		writeError(w, err)
		return
	}

	if err := h.master.CreateAssetType(r.Context(), &assetType); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(&assetType)
}
