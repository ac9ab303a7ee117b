package transfer

import (
	"context"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/secondbank/mobile-api/internal/domain"
	"github.com/secondbank/mobile-api/internal/models"
	"github.com/secondbank/mobile-api/internal/prefs"
)

// SeedBalance is the balance a fresh install starts with.
var SeedBalance = decimal.RequireFromString("248300.00")

// Notifier receives a signal when a transfer completes, so the activity feed
// can record it. Nil is allowed.
type Notifier interface {
	TransferSucceeded(amount, recipient, reference string)
}

// Flow drives the linear transfer journey: form → confirm → success. It owns
// pendingData and the balance exclusively; the validator and submitter own
// only their own transient state and are queried, never mutated from outside.
type Flow struct {
	sub      *Submitter
	store    *prefs.Store
	notifier Notifier
	log      *zap.Logger

	mu         sync.Mutex
	step       string
	pending    *models.TransferFormData
	receipt    *models.TransferReceipt
	balance    decimal.Decimal
	dark       bool
	confirming bool
}

// Snapshot is the rendering layer's view of the flow.
type Snapshot struct {
	Step      string                   `json:"step"`
	Pending   *models.TransferFormData `json:"pending_data,omitempty"`
	Receipt   *models.TransferReceipt  `json:"receipt,omitempty"`
	Balance   string                   `json:"balance"`
	Dark      bool                     `json:"dark"`
	IsPending bool                     `json:"is_pending"`
	IsError   bool                     `json:"is_error"`
	Error     string                   `json:"error,omitempty"`
}

// NewFlow builds the machine, rehydrating the dark flag and balance from the
// preference store with safe defaults.
func NewFlow(sub *Submitter, store *prefs.Store, notifier Notifier, seed decimal.Decimal, log *zap.Logger) *Flow {
	if log == nil {
		log = zap.NewNop()
	}
	dark, balance := store.Load(false, seed)
	return &Flow{
		sub:      sub,
		store:    store,
		notifier: notifier,
		log:      log,
		step:     domain.StepForm,
		balance:  balance,
		dark:     dark,
	}
}

// Continue captures a completed form and advances form → confirm. The form
// is only accepted when every gate has passed: ten-digit account number, a
// bank from the known set, a positive amount, a narration within bounds and a
// resolved account name. The submitter is reset so a stale error from a
// previous attempt never leaks into the new confirmation.
func (f *Flow) Continue(form models.TransferFormData) error {
	if domain.NormalizeAccountNumber(form.AccountNumber) != form.AccountNumber ||
		len(form.AccountNumber) != domain.AccountNumberLength {
		return fmt.Errorf("account number must be exactly %d digits", domain.AccountNumberLength)
	}
	b, known := domain.BankByCode(form.BankCode)
	if !known {
		return fmt.Errorf("unknown bank code %q", form.BankCode)
	}
	amount, err := domain.ParsePositiveAmount(form.Amount)
	if err != nil {
		return err
	}
	if utf8.RuneCountInString(form.Narration) > domain.NarrationMaxLength {
		return fmt.Errorf("narration must be at most %d characters", domain.NarrationMaxLength)
	}
	if form.AccountName == "" {
		return fmt.Errorf("account name has not been validated")
	}

	form.BankName = b.Name
	form.Amount = domain.FormatAmount(amount)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != domain.StepForm {
		return models.ErrInvalidStep
	}
	f.pending = &form
	f.receipt = nil
	f.step = domain.StepConfirm
	f.sub.Reset()
	f.log.Debug("flow advanced to confirm", zap.String("recipient", form.AccountName))
	return nil
}

// Confirm submits the pending transfer. The balance guard runs immediately
// before the submitter is invoked; an amount above the balance issues no
// gateway call at all. A failed submission leaves the step at confirm with
// the error retained for display, and the user may retry or cancel.
//
// The confirming flag covers the whole window from releasing the mutex for
// the gateway call until the result has been applied. The submitter's guard
// alone is not enough: it drops the moment Submit returns, which is before
// this method reacquires the mutex, and a Cancel slipping into that gap would
// orphan a completed transfer.
func (f *Flow) Confirm(ctx context.Context) (*models.TransferReceipt, error) {
	f.mu.Lock()
	if f.step != domain.StepConfirm || f.pending == nil {
		f.mu.Unlock()
		return nil, models.ErrInvalidStep
	}
	if f.confirming {
		f.mu.Unlock()
		return nil, models.ErrTransferInFlight
	}
	pending := f.pending
	amount, err := domain.ParsePositiveAmount(pending.Amount)
	if err != nil {
		f.mu.Unlock()
		return nil, err
	}
	if amount.GreaterThan(f.balance) {
		f.mu.Unlock()
		return nil, models.ErrInsufficientFunds
	}
	req := models.TransferRequest{
		RecipientAccount: pending.AccountNumber,
		BankCode:         pending.BankCode,
		Amount:           amount,
		Narration:        pending.Narration,
	}
	f.confirming = true
	f.mu.Unlock()

	receipt, err := f.sub.Submit(ctx, req)

	var notify bool
	f.mu.Lock()
	f.confirming = false
	if err == nil && f.step == domain.StepConfirm && f.pending == pending {
		// The debit applies exactly once, and only if this submission still
		// belongs to the pending data the user confirmed.
		f.balance = f.balance.Sub(amount)
		f.receipt = receipt
		f.step = domain.StepSuccess
		f.store.Save(f.dark, f.balance)
		notify = true
		f.log.Info("transfer completed",
			zap.String("reference", receipt.Reference),
			zap.String("amount", pending.Amount),
			zap.String("balance", f.balance.StringFixed(2)),
		)
	}
	f.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if notify && f.notifier != nil {
		f.notifier.TransferSucceeded(pending.Amount, pending.AccountName, receipt.Reference)
	}
	return receipt, nil
}

// Cancel abandons the confirmation and returns to the form. It is refused
// while a submission is in flight: a request that may still complete must not
// be abandoned.
func (f *Flow) Cancel() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != domain.StepConfirm {
		return models.ErrInvalidStep
	}
	if f.confirming || f.sub.Pending() {
		return models.ErrTransferInFlight
	}
	f.step = domain.StepForm
	f.pending = nil
	f.receipt = nil
	f.sub.Reset()
	return nil
}

// NewTransfer leaves the success screen and starts over.
func (f *Flow) NewTransfer() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != domain.StepSuccess {
		return models.ErrInvalidStep
	}
	f.step = domain.StepForm
	f.pending = nil
	f.receipt = nil
	f.sub.Reset()
	return nil
}

// Snapshot reports the full flow state.
func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	snap := Snapshot{
		Step:      f.step,
		Pending:   f.pending,
		Receipt:   f.receipt,
		Balance:   f.balance.StringFixed(2),
		Dark:      f.dark,
		IsPending: f.confirming || f.sub.Pending(),
	}
	if err := f.sub.Err(); err != nil {
		snap.IsError = true
		snap.Error = err.Error()
	}
	return snap
}

// Balance returns the current balance.
func (f *Flow) Balance() decimal.Decimal {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.balance
}

// Dark returns the display-mode preference.
func (f *Flow) Dark() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dark
}

// SetDark updates and persists the display-mode preference.
func (f *Flow) SetDark(dark bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dark = dark
	f.store.Save(f.dark, f.balance)
}
