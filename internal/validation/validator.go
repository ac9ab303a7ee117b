// Package validation implements the account validator: debounced promotion of
// raw keystrokes, a TTL-cached asynchronous name lookup keyed by
// (account number, bank code), one automatic retry, and stale-result discard.
package validation

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/secondbank/mobile-api/internal/bank"
	"github.com/secondbank/mobile-api/internal/cache"
	"github.com/secondbank/mobile-api/internal/domain"
	"github.com/secondbank/mobile-api/internal/models"
	"github.com/secondbank/mobile-api/internal/observability"
)

// DefaultDebounceWindow is the quiet period between the last keystroke and
// the lookup.
const DefaultDebounceWindow = 600 * time.Millisecond

// DefaultCacheTTL is how long a resolved (account, bank) pair stays fresh.
const DefaultCacheTTL = 5 * time.Minute

// DefaultRetries is the number of automatic retries after a failed lookup.
const DefaultRetries = 1

// Service owns the validation state for one recipient-entry session.
// All exported methods are safe for concurrent use.
type Service struct {
	dir     bank.Directory
	cache   *cache.TTL[string]
	window  time.Duration
	retries int
	log     *zap.Logger
	ctx     context.Context

	mu          sync.Mutex
	raw         string // normalized current input
	bankCode    string
	debounced   string // last promoted account number
	timer       *time.Timer
	gen         uint64 // bumped on every input change; tags in-flight lookups
	inFlight    bool
	accountName string
	errMsg      string
	lastTouched time.Time
}

// NewService creates a validator. ctx bounds the lifetime of lookups it
// issues; cache may be shared with the janitor worker.
func NewService(ctx context.Context, dir bank.Directory, c *cache.TTL[string], window time.Duration, retries int, log *zap.Logger) *Service {
	if window < 0 {
		window = DefaultDebounceWindow
	}
	if retries < 0 {
		retries = DefaultRetries
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		dir:         dir,
		cache:       c,
		window:      window,
		retries:     retries,
		log:         log,
		ctx:         ctx,
		lastTouched: time.Now(),
	}
}

// SetInput feeds the current form values into the validator and returns the
// resulting state. The account number is filtered to digits and truncated to
// ten characters before anything else happens. Changing either input resets
// the state for the new pair; a superseded lookup's result is discarded when
// it eventually lands.
func (s *Service) SetInput(accountNumber, bankCode string) models.ValidationState {
	number := domain.NormalizeAccountNumber(accountNumber)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastTouched = time.Now()

	if number == s.raw && bankCode == s.bankCode {
		return s.snapshotLocked()
	}

	numberChanged := number != s.raw
	s.raw = number
	s.bankCode = bankCode
	s.gen++
	s.inFlight = false
	s.accountName = ""
	s.errMsg = ""

	switch {
	case numberChanged && number != s.debounced:
		// Restart the quiet period for the new candidate.
		s.restartTimerLocked()
	case numberChanged:
		// Typed back to the already promoted value; no debounce needed.
		s.evaluateLocked()
	case s.raw != s.debounced:
		// Bank changed while a newer number is still waiting out its quiet
		// period. The promoted number is already abandoned, so looking it up
		// against the new bank would be wasted work; the pending promotion
		// keeps its own clock running and evaluates both values together.
		s.restartTimerLocked()
	default:
		// Bank change takes effect immediately against the promoted number.
		s.evaluateLocked()
	}

	return s.snapshotLocked()
}

// Snapshot returns the current derived state.
func (s *Service) Snapshot() models.ValidationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Reset returns the validator to idle, dropping any pending promotion and
// orphaning any in-flight lookup.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

// ResetIfIdle resets the session when it has seen no input for at least ttl.
// Reports whether a reset happened.
func (s *Service) ResetIfIdle(ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if time.Since(s.lastTouched) < ttl {
		return false
	}
	if s.raw == "" && s.bankCode == "" {
		return false
	}
	s.resetLocked()
	return true
}

func (s *Service) resetLocked() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.raw = ""
	s.bankCode = ""
	s.debounced = ""
	s.inFlight = false
	s.accountName = ""
	s.errMsg = ""
}

func (s *Service) restartTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
	}
	if s.window == 0 {
		s.debounced = s.raw
		s.evaluateLocked()
		return
	}
	gen := s.gen
	s.timer = time.AfterFunc(s.window, func() { s.promote(gen) })
}

// promote moves the raw value into the debounced slot once it has been stable
// for the full window. A generation mismatch means newer input arrived and
// this promotion is dead.
func (s *Service) promote(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.debounced = s.raw
	s.log.Debug("account number promoted", zap.String("account", s.debounced))
	s.evaluateLocked()
}

// evaluateLocked issues a lookup when the debounced pair is eligible:
// exactly ten digits and a bank from the known set.
func (s *Service) evaluateLocked() {
	if len(s.debounced) != domain.AccountNumberLength {
		return
	}
	if _, known := domain.BankByCode(s.bankCode); !known {
		return
	}

	key := s.debounced + ":" + s.bankCode
	if name, ok := s.cache.Get(key); ok {
		observability.IncrementCacheEvent("hit")
		s.accountName = name
		return
	}
	observability.IncrementCacheEvent("miss")

	s.inFlight = true
	go s.lookup(s.gen, key, s.debounced, s.bankCode)
}

// lookup performs the network call with the configured number of automatic
// retries, then applies the result only if the pair is still current.
func (s *Service) lookup(gen uint64, key, number, bankCode string) {
	var (
		name string
		err  error
	)
	for attempt := 0; attempt <= s.retries; attempt++ {
		name, err = s.dir.ValidateAccount(s.ctx, number, bankCode)
		if err == nil {
			break
		}
	}

	if err == nil {
		// Cache unconditionally: a repeat of this pair within the TTL must
		// not re-issue the lookup, even if this session has moved on.
		s.cache.Set(key, name)
		observability.IncrementLookup("success")
	} else {
		observability.IncrementLookup("error")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// A result only applies if it is for the pair the session currently shows.
	// The generation check catches superseded input; the key check catches any
	// lookup that raced a pair change the generation did not observe.
	if gen != s.gen || key != s.debounced+":"+s.bankCode {
		observability.IncrementCacheEvent("stale_discard")
		s.log.Debug("stale lookup discarded", zap.String("account", number), zap.String("bank", bankCode))
		return
	}

	s.inFlight = false
	if err != nil {
		s.errMsg = err.Error()
		s.log.Debug("account lookup failed", zap.String("account", number), zap.Error(err))
		return
	}
	s.accountName = name
}

func (s *Service) snapshotLocked() models.ValidationState {
	pendingDebounce := s.raw != s.debounced && len(s.raw) == domain.AccountNumberLength

	var status models.ValidationStatus
	switch {
	case s.errMsg != "":
		status = models.ValidationError
	case s.accountName != "":
		status = models.ValidationSuccess
	case s.inFlight || pendingDebounce:
		status = models.ValidationValidating
	default:
		status = models.ValidationIdle
	}

	return models.ValidationState{
		Status:       status,
		AccountName:  s.accountName,
		IsValidating: status == models.ValidationValidating,
		IsSuccess:    status == models.ValidationSuccess,
		IsError:      status == models.ValidationError,
		ErrorMessage: s.errMsg,
	}
}
