package transfer

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/secondbank/mobile-api/internal/bank"
	"github.com/secondbank/mobile-api/internal/models"
	"github.com/secondbank/mobile-api/internal/observability"
)

// Submitter wraps the transfer gateway with an in-flight guard so at most one
// transfer is ever outstanding per instance. The guard is an atomic try-lock
// checked synchronously, independent of any other state: callers that find it
// held no-op instead of queueing.
type Submitter struct {
	gw  bank.Gateway
	log *zap.Logger

	inFlight atomic.Bool

	mu      sync.Mutex
	receipt *models.TransferReceipt
	err     error
}

func NewSubmitter(gw bank.Gateway, log *zap.Logger) *Submitter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Submitter{gw: gw, log: log}
}

// Submit issues the transfer. If one is already outstanding it returns
// models.ErrTransferInFlight without touching the gateway. The guard is
// released on success and on failure alike, so a failed attempt can be
// retried.
func (s *Submitter) Submit(ctx context.Context, req models.TransferRequest) (*models.TransferReceipt, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		observability.IncrementGuardRejection()
		s.log.Debug("submission dropped by in-flight guard")
		return nil, models.ErrTransferInFlight
	}
	defer s.inFlight.Store(false)

	receipt, err := s.gw.Transfer(ctx, req)

	s.mu.Lock()
	if err != nil {
		s.receipt = nil
		s.err = err
	} else {
		s.receipt = receipt
		s.err = nil
	}
	s.mu.Unlock()

	if err != nil {
		observability.IncrementTransfer("error")
		s.log.Warn("transfer failed", zap.Error(err))
		return nil, err
	}
	observability.IncrementTransfer("success")
	s.log.Info("transfer succeeded", zap.String("reference", receipt.Reference))
	return receipt, nil
}

// Pending reports whether a submission is outstanding.
func (s *Submitter) Pending() bool {
	return s.inFlight.Load()
}

// Receipt returns the retained result of the last successful submission.
func (s *Submitter) Receipt() *models.TransferReceipt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.receipt
}

// Err returns the retained error of the last failed submission.
func (s *Submitter) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Reset clears the retained success/error state. It deliberately leaves the
// in-flight guard alone; reset is only meaningful between flow steps.
func (s *Submitter) Reset() {
	s.mu.Lock()
	s.receipt = nil
	s.err = nil
	s.mu.Unlock()
}
