package validation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secondbank/mobile-api/internal/cache"
	"github.com/secondbank/mobile-api/internal/models"
)

// stubDirectory counts lookups and answers from a script.
type stubDirectory struct {
	calls    atomic.Int64
	failures atomic.Int64 // fail this many calls before succeeding
	name     string
	delay    time.Duration
}

func (d *stubDirectory) ValidateAccount(ctx context.Context, accountNumber, bankCode string) (string, error) {
	d.calls.Add(1)
	if d.delay > 0 {
		select {
		case <-time.After(d.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if d.failures.Load() > 0 {
		d.failures.Add(-1)
		return "", errors.New("unable to reach bank — please retry")
	}
	if d.name != "" {
		return d.name, nil
	}
	return "KWAME ASANTE", nil
}

func newTestService(t *testing.T, dir *stubDirectory, window time.Duration) *Service {
	t.Helper()
	c := cache.New[string](5 * time.Minute)
	return NewService(context.Background(), dir, c, window, 1, nil)
}

func waitForSettled(t *testing.T, s *Service) models.ValidationState {
	t.Helper()
	var state models.ValidationState
	require.Eventually(t, func() bool {
		state = s.Snapshot()
		return state.Status != models.ValidationValidating
	}, 2*time.Second, 5*time.Millisecond)
	return state
}

func TestShortAccountNumberNeverLooksUp(t *testing.T) {
	dir := &stubDirectory{}
	s := newTestService(t, dir, 10*time.Millisecond)

	for _, input := range []string{"1", "12345", "123456789"} {
		state := s.SetInput(input, "GTB")
		assert.False(t, state.IsValidating)
	}

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int64(0), dir.calls.Load())
	assert.Equal(t, models.ValidationIdle, s.Snapshot().Status)
}

func TestNoBankSelectedNeverLooksUp(t *testing.T) {
	dir := &stubDirectory{}
	s := newTestService(t, dir, 10*time.Millisecond)

	s.SetInput("1234567890", "")
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int64(0), dir.calls.Load())
}

func TestNormalizationFiltersDigitsAndTruncates(t *testing.T) {
	dir := &stubDirectory{}
	s := newTestService(t, dir, 0)

	state := s.SetInput("12-34 56789laughing0xx99", "GTB")
	state = waitForSettled(t, s)
	require.True(t, state.IsSuccess)
	assert.Equal(t, int64(1), dir.calls.Load())
}

func TestDebounceHoldsWhileTyping(t *testing.T) {
	dir := &stubDirectory{}
	window := 80 * time.Millisecond
	s := newTestService(t, dir, window)

	number := "1234567890"
	for i := 1; i <= len(number); i++ {
		s.SetInput(number[:i], "GTB")
		time.Sleep(15 * time.Millisecond) // well inside the quiet period
	}

	// The full value is typed but not yet promoted: busy, no lookup.
	state := s.Snapshot()
	assert.True(t, state.IsValidating)
	assert.Equal(t, int64(0), dir.calls.Load())

	state = waitForSettled(t, s)
	assert.True(t, state.IsSuccess)
	assert.Equal(t, "KWAME ASANTE", state.AccountName)
	assert.Equal(t, int64(1), dir.calls.Load())
}

func TestLastDigitScenario(t *testing.T) {
	dir := &stubDirectory{}
	s := newTestService(t, dir, 0)

	s.SetInput("1234567890", "GTB")
	state := waitForSettled(t, s)
	require.True(t, state.IsSuccess)
	assert.Equal(t, "KWAME ASANTE", state.AccountName)
}

func TestCacheSuppressesRepeatLookup(t *testing.T) {
	dir := &stubDirectory{}
	s := newTestService(t, dir, 0)

	s.SetInput("1234567890", "GTB")
	waitForSettled(t, s)
	require.Equal(t, int64(1), dir.calls.Load())

	// Move away and come back to the same pair inside the TTL.
	s.SetInput("9876543210", "GTB")
	waitForSettled(t, s)
	s.SetInput("1234567890", "GTB")
	state := waitForSettled(t, s)

	assert.True(t, state.IsSuccess)
	assert.Equal(t, int64(2), dir.calls.Load(), "repeat pair must be served from cache")
}

func TestSingleAutomaticRetryThenError(t *testing.T) {
	dir := &stubDirectory{}
	dir.failures.Store(10) // every attempt fails
	s := newTestService(t, dir, 0)

	s.SetInput("1234567890", "GTB")
	state := waitForSettled(t, s)

	assert.True(t, state.IsError)
	assert.Contains(t, state.ErrorMessage, "unable to reach bank")
	assert.Equal(t, int64(2), dir.calls.Load(), "one attempt plus exactly one retry")
}

func TestRetryRecoversFromSingleFailure(t *testing.T) {
	dir := &stubDirectory{}
	dir.failures.Store(1)
	s := newTestService(t, dir, 0)

	s.SetInput("1234567890", "GTB")
	state := waitForSettled(t, s)

	assert.True(t, state.IsSuccess)
	assert.Equal(t, int64(2), dir.calls.Load())
}

func TestStaleLookupResultIsDiscarded(t *testing.T) {
	dir := &stubDirectory{delay: 60 * time.Millisecond}
	s := newTestService(t, dir, 0)

	s.SetInput("1234567890", "GTB")
	time.Sleep(10 * time.Millisecond) // lookup for the old pair is now in flight
	s.SetInput("9876543211", "GTB")

	state := waitForSettled(t, s)
	require.True(t, state.IsSuccess)

	// Let the stale result land; it must not overwrite the newer pair.
	time.Sleep(150 * time.Millisecond)
	state = s.Snapshot()
	assert.True(t, state.IsSuccess)
}

func TestChangingBankResetsState(t *testing.T) {
	dir := &stubDirectory{}
	s := newTestService(t, dir, 0)

	s.SetInput("1234567890", "GTB")
	state := waitForSettled(t, s)
	require.True(t, state.IsSuccess)

	state = s.SetInput("1234567890", "UBA")
	assert.False(t, state.IsSuccess, "state must reset for the new pair")
	state = waitForSettled(t, s)
	assert.True(t, state.IsSuccess)
	assert.Equal(t, int64(2), dir.calls.Load())
}

// pairDirectory answers with a name derived from the looked-up pair and
// records every pair it was asked for.
type pairDirectory struct {
	delay time.Duration

	mu    sync.Mutex
	pairs []string
}

func (d *pairDirectory) ValidateAccount(ctx context.Context, accountNumber, bankCode string) (string, error) {
	d.mu.Lock()
	d.pairs = append(d.pairs, accountNumber+":"+bankCode)
	d.mu.Unlock()
	if d.delay > 0 {
		select {
		case <-time.After(d.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "ACCT " + accountNumber + ":" + bankCode, nil
}

func (d *pairDirectory) lookedUp() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.pairs))
	copy(out, d.pairs)
	return out
}

func TestBankChangeDuringDebounceKeepsNewerResult(t *testing.T) {
	dir := &pairDirectory{delay: 80 * time.Millisecond}
	c := cache.New[string](5 * time.Minute)
	s := NewService(context.Background(), dir, c, 30*time.Millisecond, 1, nil)

	// Promote the first pair and let its slow lookup get in flight.
	s.SetInput("1111111111", "GTB")
	require.Eventually(t, func() bool {
		return len(dir.lookedUp()) == 1
	}, time.Second, 5*time.Millisecond)

	// Type a new number, then switch banks while it still awaits promotion.
	s.SetInput("2222222222", "GTB")
	s.SetInput("2222222222", "UBA")

	state := waitForSettled(t, s)
	require.True(t, state.IsSuccess)
	assert.Equal(t, "ACCT 2222222222:UBA", state.AccountName)

	// The abandoned number must never be looked up against the new bank, and
	// the first pair's late result must not overwrite the current one.
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, "ACCT 2222222222:UBA", s.Snapshot().AccountName)
	assert.NotContains(t, dir.lookedUp(), "1111111111:UBA")
}

func TestUnknownBankCodeNotEligible(t *testing.T) {
	dir := &stubDirectory{}
	s := newTestService(t, dir, 0)

	s.SetInput("1234567890", "NOPE")
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int64(0), dir.calls.Load())
	assert.Equal(t, models.ValidationIdle, s.Snapshot().Status)
}

func TestResetIfIdle(t *testing.T) {
	dir := &stubDirectory{}
	s := newTestService(t, dir, 0)

	s.SetInput("1234567890", "GTB")
	waitForSettled(t, s)

	assert.False(t, s.ResetIfIdle(time.Hour))
	require.Eventually(t, func() bool {
		return s.ResetIfIdle(time.Millisecond)
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, models.ValidationIdle, s.Snapshot().Status)
}

func TestRepeatedIdenticalInputIsStable(t *testing.T) {
	dir := &stubDirectory{}
	s := newTestService(t, dir, 0)

	s.SetInput("1234567890", "GTB")
	state := waitForSettled(t, s)
	require.True(t, state.IsSuccess)

	for i := 0; i < 5; i++ {
		state = s.SetInput("1234567890", "GTB")
	}
	assert.True(t, state.IsSuccess)
	assert.Equal(t, int64(1), dir.calls.Load())
}

func TestEveryPairGetsItsOwnLookup(t *testing.T) {
	dir := &stubDirectory{}
	s := newTestService(t, dir, 0)

	for i := 0; i < 5; i++ {
		s.SetInput(fmt.Sprintf("123456789%d", i), "GTB")
		waitForSettled(t, s)
	}
	assert.Equal(t, int64(5), dir.calls.Load())
}
