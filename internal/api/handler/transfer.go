package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/secondbank/mobile-api/internal/models"
	"github.com/secondbank/mobile-api/internal/transfer"
	"github.com/secondbank/mobile-api/internal/validation"
)

// TransferHandler exposes the transfer flow: recipient validation, the
// form → confirm → success journey and its snapshot.
type TransferHandler struct {
	flow      *transfer.Flow
	validator *validation.Service
}

func NewTransferHandler(flow *transfer.Flow, validator *validation.Service) *TransferHandler {
	return &TransferHandler{flow: flow, validator: validator}
}

// SetRecipient feeds the current (account number, bank code) pair into the
// validator and returns the resulting validation state. The client calls this
// on every keystroke; debouncing happens server side.
func (h *TransferHandler) SetRecipient(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AccountNumber string `json:"account_number"`
		BankCode      string `json:"bank_code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, r, http.StatusBadRequest, "request/invalid-body", "Invalid request body")
		return
	}

	state := h.validator.SetInput(req.AccountNumber, req.BankCode)
	RespondJSON(w, http.StatusOK, state)
}

// GetRecipient returns the current validation state; the client polls it
// while the busy indicator is showing.
func (h *TransferHandler) GetRecipient(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, h.validator.Snapshot())
}

// GetFlow returns the full flow snapshot.
func (h *TransferHandler) GetFlow(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, h.flow.Snapshot())
}

// Continue captures the completed form and advances to the confirm step.
func (h *TransferHandler) Continue(w http.ResponseWriter, r *http.Request) {
	var form models.TransferFormData
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		RespondError(w, r, http.StatusBadRequest, "request/invalid-body", "Invalid request body")
		return
	}

	if err := h.flow.Continue(form); err != nil {
		if errors.Is(err, models.ErrInvalidStep) {
			RespondError(w, r, http.StatusConflict, "transfer/invalid-step", err.Error())
			return
		}
		RespondError(w, r, http.StatusUnprocessableEntity, "transfer/invalid-form", err.Error())
		return
	}
	RespondJSON(w, http.StatusOK, h.flow.Snapshot())
}

// Confirm submits the pending transfer. An already-outstanding submission is
// acknowledged with 202 and no second gateway call; a gateway failure keeps
// the step at confirm so the user can retry or cancel.
func (h *TransferHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	_, err := h.flow.Confirm(r.Context())
	switch {
	case err == nil:
		RespondJSON(w, http.StatusOK, h.flow.Snapshot())
	case errors.Is(err, models.ErrTransferInFlight):
		RespondJSON(w, http.StatusAccepted, h.flow.Snapshot())
	case errors.Is(err, models.ErrInvalidStep):
		RespondError(w, r, http.StatusConflict, "transfer/invalid-step", err.Error())
	case errors.Is(err, models.ErrInsufficientFunds):
		RespondError(w, r, http.StatusUnprocessableEntity, "transfer/insufficient-funds", err.Error())
	default:
		RespondError(w, r, http.StatusBadGateway, "transfer/gateway-failure", err.Error())
	}
}

// Cancel returns from confirm to the form. While a submission is in flight
// the cancel is a no-op and the unchanged snapshot is returned.
func (h *TransferHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	err := h.flow.Cancel()
	switch {
	case err == nil:
		RespondJSON(w, http.StatusOK, h.flow.Snapshot())
	case errors.Is(err, models.ErrTransferInFlight):
		RespondJSON(w, http.StatusAccepted, h.flow.Snapshot())
	case errors.Is(err, models.ErrInvalidStep):
		RespondError(w, r, http.StatusConflict, "transfer/invalid-step", err.Error())
	default:
		RespondError(w, r, http.StatusInternalServerError, "transfer/cancel-failed", err.Error())
	}
}

// NewTransfer leaves the success screen and starts a fresh form.
func (h *TransferHandler) NewTransfer(w http.ResponseWriter, r *http.Request) {
	if err := h.flow.NewTransfer(); err != nil {
		RespondError(w, r, http.StatusConflict, "transfer/invalid-step", err.Error())
		return
	}
	h.validator.Reset()
	RespondJSON(w, http.StatusOK, h.flow.Snapshot())
}
