package domain

// Flow steps. The machine never leaves this set.
const (
	StepForm    = "form"
	StepConfirm = "confirm"
	StepSuccess = "success"
)

// Transfer statuses as reported by the gateway.
const (
	TransferStatusSuccess = "success"
)

// AccountNumberLength is the fixed length of a recipient account number.
const AccountNumberLength = 10

// NarrationMaxLength bounds the free-text narration field.
const NarrationMaxLength = 100
