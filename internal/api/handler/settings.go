package handler

import (
	"encoding/json"
	"net/http"

	"github.com/secondbank/mobile-api/internal/transfer"
)

// SettingsHandler reads and writes the persisted app preferences.
type SettingsHandler struct {
	flow *transfer.Flow
}

func NewSettingsHandler(flow *transfer.Flow) *SettingsHandler {
	return &SettingsHandler{flow: flow}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, map[string]any{
		"dark":    h.flow.Dark(),
		"balance": h.flow.Balance().StringFixed(2),
	})
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Dark *bool `json:"dark"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, r, http.StatusBadRequest, "request/invalid-body", "Invalid request body")
		return
	}
	if req.Dark == nil {
		RespondError(w, r, http.StatusBadRequest, "settings/missing-field", "dark is required")
		return
	}

	h.flow.SetDark(*req.Dark)
	RespondJSON(w, http.StatusOK, map[string]any{"dark": h.flow.Dark()})
}
