package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/secondbank/mobile-api/internal/bank"
	"github.com/secondbank/mobile-api/internal/cache"
	"github.com/secondbank/mobile-api/internal/models"
	"github.com/secondbank/mobile-api/internal/validation"
)

func TestJanitorSweepsExpiredEntries(t *testing.T) {
	c := cache.New[string](10 * time.Millisecond)
	c.Set("1234567890:GTB", "KWAME ASANTE")
	c.Set("1234567891:GTB", "AMA OWUSU")

	j := NewJanitor(c, nil, zap.NewNop()).WithInterval(10 * time.Millisecond)
	stop := j.Run(context.Background())
	defer stop()

	require.Eventually(t, func() bool {
		return c.Len() == 0
	}, time.Second, 5*time.Millisecond)
}

func TestJanitorResetsIdleValidator(t *testing.T) {
	c := cache.New[string](time.Minute)
	dir := bank.NewMockDirectory(0, 0, nil)
	v := validation.NewService(context.Background(), dir, c, 0, 0, zap.NewNop())

	v.SetInput("1234567890", "GTB")
	require.Eventually(t, func() bool {
		return v.Snapshot().Status == models.ValidationSuccess
	}, time.Second, 5*time.Millisecond)

	j := NewJanitor(c, v, zap.NewNop()).
		WithInterval(10 * time.Millisecond).
		WithIdleTTL(20 * time.Millisecond)
	stop := j.Run(context.Background())
	defer stop()

	require.Eventually(t, func() bool {
		return v.Snapshot().Status == models.ValidationIdle
	}, time.Second, 5*time.Millisecond)
}

func TestJanitorStopIsIdempotent(t *testing.T) {
	c := cache.New[string](time.Minute)
	j := NewJanitor(c, nil, zap.NewNop()).WithInterval(10 * time.Millisecond)

	stop := j.Run(context.Background())
	stop()
	assert.NotPanics(t, func() { stop() })
}
