package bank

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/secondbank/mobile-api/internal/domain"
	"github.com/secondbank/mobile-api/internal/models"
)

// failureSimulator fakes intermittent network trouble. The rate is a
// constructor parameter rather than a hard-coded roll so tests can pin it to
// 0 or 1 for deterministic behavior.
type failureSimulator struct {
	rate float64
	mu   sync.Mutex
	rnd  *rand.Rand
}

func newFailureSimulator(rate float64, rnd *rand.Rand) failureSimulator {
	return failureSimulator{rate: rate, rnd: rnd}
}

func (f *failureSimulator) fails() bool {
	if f.rate <= 0 {
		return false
	}
	if f.rate >= 1 {
		return true
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rnd != nil {
		return f.rnd.Float64() < f.rate
	}
	return rand.Float64() < f.rate
}

// simulateLatency sleeps for the configured delay, honoring cancellation.
// A zero delay skips the timer entirely.
func simulateLatency(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// MockDirectory simulates the account-name lookup service. Lookups take
// Latency and fail at FailureRate in addition to the input checks.
type MockDirectory struct {
	Latency time.Duration
	sim     failureSimulator
}

// NewMockDirectory creates a directory mock. rnd may be nil to use the
// process-wide source.
func NewMockDirectory(failureRate float64, latency time.Duration, rnd *rand.Rand) *MockDirectory {
	return &MockDirectory{
		Latency: latency,
		sim:     newFailureSimulator(failureRate, rnd),
	}
}

func (d *MockDirectory) ValidateAccount(ctx context.Context, accountNumber, bankCode string) (string, error) {
	if err := simulateLatency(ctx, d.Latency); err != nil {
		return "", fmt.Errorf("account lookup canceled: %w", err)
	}

	if len(accountNumber) != domain.AccountNumberLength {
		return "", fmt.Errorf("account number must be exactly %d digits", domain.AccountNumberLength)
	}
	if bankCode == "" {
		return "", fmt.Errorf("please select a bank")
	}
	if d.sim.fails() {
		return "", fmt.Errorf("unable to reach bank — please retry")
	}

	last := int(accountNumber[domain.AccountNumberLength-1] - '0')
	return domain.MockRecipientNames[last%len(domain.MockRecipientNames)], nil
}

// MockGateway simulates the transfer service.
type MockGateway struct {
	Latency time.Duration
	sim     failureSimulator
	now     func() time.Time
}

func NewMockGateway(failureRate float64, latency time.Duration, rnd *rand.Rand) *MockGateway {
	return &MockGateway{
		Latency: latency,
		sim:     newFailureSimulator(failureRate, rnd),
		now:     time.Now,
	}
}

func (g *MockGateway) Transfer(ctx context.Context, req models.TransferRequest) (*models.TransferReceipt, error) {
	if err := simulateLatency(ctx, g.Latency); err != nil {
		return nil, fmt.Errorf("transfer canceled: %w", err)
	}

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("amount must be greater than zero")
	}
	if g.sim.fails() {
		return nil, fmt.Errorf("transaction failed. Please try again")
	}

	return &models.TransferReceipt{
		Status:    domain.TransferStatusSuccess,
		Reference: g.reference(),
	}, nil
}

// reference builds an opaque unique id: "TXN" plus the last seven digits of
// the unix millisecond clock.
func (g *MockGateway) reference() string {
	ms := fmt.Sprintf("%d", g.now().UnixMilli())
	return "TXN" + ms[len(ms)-7:]
}

// MockAuthenticator checks credentials against the single configured demo
// account. The password is compared against a bcrypt hash.
type MockAuthenticator struct {
	Latency      time.Duration
	username     string
	passwordHash string
	user         models.User
	sim          failureSimulator
}

func NewMockAuthenticator(username, passwordHash string, user models.User, failureRate float64, latency time.Duration, rnd *rand.Rand) *MockAuthenticator {
	return &MockAuthenticator{
		Latency:      latency,
		username:     username,
		passwordHash: passwordHash,
		user:         user,
		sim:          newFailureSimulator(failureRate, rnd),
	}
}

func (a *MockAuthenticator) Login(ctx context.Context, creds models.Credentials) (*models.User, error) {
	if err := simulateLatency(ctx, a.Latency); err != nil {
		return nil, fmt.Errorf("login canceled: %w", err)
	}

	if a.sim.fails() {
		return nil, fmt.Errorf("network error — please try again")
	}

	if creds.Username != a.username {
		return nil, models.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.passwordHash), []byte(creds.Password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	u := a.user
	u.Email = creds.Username
	return &u, nil
}
