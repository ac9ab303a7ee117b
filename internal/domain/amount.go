package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a user-entered amount string into a Decimal.
// Amounts go through shopspring/decimal end to end to avoid floating point errors.
func ParseAmount(s string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return decimal.Zero, fmt.Errorf("amount is required")
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

// ParsePositiveAmount additionally enforces amount > 0.
func ParsePositiveAmount(s string) (decimal.Decimal, error) {
	d, err := ParseAmount(s)
	if err != nil {
		return decimal.Zero, err
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("amount must be greater than zero")
	}
	return d, nil
}

// FormatAmount renders an amount with two decimal places for display and persistence.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// NormalizeAccountNumber filters the raw input to digits and truncates it to
// the fixed account number length. Applied before any other consideration.
func NormalizeAccountNumber(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r < '0' || r > '9' {
			continue
		}
		b.WriteRune(r)
		if b.Len() == AccountNumberLength {
			break
		}
	}
	return b.String()
}
