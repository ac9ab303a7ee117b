package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	d, err := ParseAmount(" 1250.50 ")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("1250.50")))

	_, err = ParseAmount("")
	assert.Error(t, err)

	_, err = ParseAmount("12x.00")
	assert.Error(t, err)
}

func TestParsePositiveAmount(t *testing.T) {
	_, err := ParsePositiveAmount("0")
	assert.Error(t, err)

	_, err = ParsePositiveAmount("-5.00")
	assert.Error(t, err)

	d, err := ParsePositiveAmount("0.01")
	require.NoError(t, err)
	assert.Equal(t, "0.01", FormatAmount(d))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "100.00", FormatAmount(decimal.RequireFromString("100")))
	assert.Equal(t, "99.90", FormatAmount(decimal.RequireFromString("99.9")))
}

func TestNormalizeAccountNumber(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"digits pass through", "1234567890", "1234567890"},
		{"non digits stripped", "12a3-45 67b890", "1234567890"},
		{"truncated to length", "123456789012345", "1234567890"},
		{"short input kept", "12345", "12345"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeAccountNumber(tc.in))
		})
	}
}

func TestBankByCode(t *testing.T) {
	b, ok := BankByCode("GTB")
	require.True(t, ok)
	assert.Equal(t, "GTBank", b.Name)

	_, ok = BankByCode("NOPE")
	assert.False(t, ok)
}
