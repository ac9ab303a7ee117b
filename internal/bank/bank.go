// Package bank holds the external collaborator contracts the transfer core
// depends on, plus the mock implementations the demo runs against.
package bank

import (
	"context"

	"github.com/secondbank/mobile-api/internal/models"
)

// Directory resolves a recipient account to its display name.
type Directory interface {
	// ValidateAccount looks up the account name for a 10-digit account number
	// at the given bank. It fails with a descriptive error when the number is
	// not 10 digits, no bank is selected, or the lookup itself fails.
	ValidateAccount(ctx context.Context, accountNumber, bankCode string) (string, error)
}

// Gateway executes money transfers.
type Gateway interface {
	// Transfer sends the request and returns exactly one receipt or one error.
	Transfer(ctx context.Context, req models.TransferRequest) (*models.TransferReceipt, error)
}

// Authenticator checks login credentials.
type Authenticator interface {
	Login(ctx context.Context, creds models.Credentials) (*models.User, error)
}
