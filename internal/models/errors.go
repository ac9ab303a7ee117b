package models

import "errors"

var (
	// ErrInsufficientFunds blocks a confirmation whose amount exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrTransferInFlight is returned when a submission is already outstanding.
	// Callers treat it as a silent no-op, not a user-facing failure.
	ErrTransferInFlight = errors.New("transfer already in progress")

	// ErrInvalidStep signals a flow transition requested from the wrong step.
	ErrInvalidStep = errors.New("operation not allowed in current step")

	// ErrInvalidCredentials is the login mismatch error.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrNotificationNotFound is returned when marking an unknown notification.
	ErrNotificationNotFound = errors.New("notification not found")
)
