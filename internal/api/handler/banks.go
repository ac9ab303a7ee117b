package handler

import (
	"net/http"

	"github.com/secondbank/mobile-api/internal/domain"
)

// BanksHandler serves the fixed bank directory.
type BanksHandler struct{}

func NewBanksHandler() *BanksHandler {
	return &BanksHandler{}
}

func (h *BanksHandler) List(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, map[string]any{"banks": domain.Banks})
}
