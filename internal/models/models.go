package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User is the authenticated demo customer.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Credentials is the login payload checked against the configured demo account.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TransferFormData is the completed recipient form. It is captured once, when
// every validation gate has passed, and is immutable afterwards.
type TransferFormData struct {
	AccountNumber string `json:"account_number"`
	BankCode      string `json:"bank_code"`
	BankName      string `json:"bank_name"`
	Amount        string `json:"amount"`
	Narration     string `json:"narration"`
	AccountName   string `json:"account_name"`
}

// TransferRequest is what the gateway collaborator receives.
type TransferRequest struct {
	RecipientAccount string          `json:"recipient_account"`
	BankCode         string          `json:"bank_code"`
	Amount           decimal.Decimal `json:"amount"`
	Narration        string          `json:"narration"`
}

// TransferReceipt is the gateway's terminal answer: one receipt or one error
// per request, never both.
type TransferReceipt struct {
	Status    string `json:"status"`
	Reference string `json:"reference"`
}

// ValidationStatus is the account validator's lifecycle position.
type ValidationStatus string

const (
	ValidationIdle       ValidationStatus = "idle"
	ValidationValidating ValidationStatus = "validating"
	ValidationSuccess    ValidationStatus = "success"
	ValidationError      ValidationStatus = "error"
)

// ValidationState is the derived snapshot the rendering layer consumes.
type ValidationState struct {
	Status       ValidationStatus `json:"status"`
	AccountName  string           `json:"account_name,omitempty"`
	IsValidating bool             `json:"is_validating"`
	IsSuccess    bool             `json:"is_success"`
	IsError      bool             `json:"is_error"`
	ErrorMessage string           `json:"error_message,omitempty"`
}

// Notification is one entry in the activity feed.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"` // "credit", "debit", "alert", "info"
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
