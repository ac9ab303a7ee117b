package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "unit-test-secret-0123456789abcdef0123")
	t.Setenv("DEMO_PASSWORD", "correct-horse-battery")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 600*time.Millisecond, cfg.DebounceWindow)
	assert.Equal(t, 5*time.Minute, cfg.ValidationCacheTTL)
	assert.Equal(t, 1, cfg.LookupRetries)
	assert.Equal(t, "248300.00", cfg.SeedBalance.StringFixed(2))
	assert.Equal(t, "adwoa@secondbank.app", cfg.DemoUsername)
	assert.InDelta(t, 0.05, cfg.LookupFailureRate, 1e-9)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DEBOUNCE_WINDOW", "250ms")
	t.Setenv("SEED_BALANCE", "1000.50")
	t.Setenv("LOOKUP_FAILURE_RATE", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, 250*time.Millisecond, cfg.DebounceWindow)
	assert.Equal(t, "1000.50", cfg.SeedBalance.StringFixed(2))
	assert.Zero(t, cfg.LookupFailureRate)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"short jwt secret", "JWT_SECRET", "too-short"},
		{"failure rate above one", "TRANSFER_FAILURE_RATE", "1.5"},
		{"bad duration", "VALIDATION_CACHE_TTL", "soon"},
		{"bad balance", "SEED_BALANCE", "lots"},
		{"zero debounce", "DEBOUNCE_WINDOW", "0s"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadRequiresDemoPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret-0123456789abcdef0123")
	t.Setenv("DEMO_PASSWORD", "")

	_, err := Load()
	assert.Error(t, err)
}
