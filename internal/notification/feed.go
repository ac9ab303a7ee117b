// Package notification keeps the in-memory activity feed the demo shows on
// the notifications tab. It starts from a canned set of entries and grows as
// transfers complete.
package notification

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/secondbank/mobile-api/internal/models"
)

const (
	TypeCredit = "credit"
	TypeDebit  = "debit"
	TypeAlert  = "alert"
	TypeInfo   = "info"
)

// Feed is a newest-first notification list.
type Feed struct {
	mu    sync.Mutex
	items []models.Notification
}

// NewFeed returns a feed pre-populated with the demo entries.
func NewFeed() *Feed {
	now := time.Now()
	seed := []struct {
		title, message, kind string
		age                  time.Duration
		read                 bool
	}{
		{"Transfer Successful", "You sent ₵50,000 to Kwame Asante. Ref: TXN829282", TypeDebit, 2 * time.Minute, false},
		{"Credit Alert", "Your account has been credited with ₵200,000.", TypeCredit, time.Hour, false},
		{"Login Detected", "New login from Chrome on macOS at 10:32 AM.", TypeAlert, 3 * time.Hour, true},
		{"Statement Ready", "Your January 2026 account statement is available.", TypeInfo, 24 * time.Hour, true},
		{"Transfer Successful", "You sent ₵10,500 to Emeka Okafor. Ref: TXN712344", TypeDebit, 48 * time.Hour, true},
		{"Low Balance Alert", "Your account balance is below ₵5,000.", TypeAlert, 72 * time.Hour, true},
	}

	f := &Feed{}
	for _, s := range seed {
		f.items = append(f.items, models.Notification{
			ID:        uuid.New(),
			Title:     s.title,
			Message:   s.message,
			Type:      s.kind,
			Read:      s.read,
			CreatedAt: now.Add(-s.age),
		})
	}
	return f
}

// List returns the notifications newest first.
func (f *Feed) List() []models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Notification, len(f.items))
	copy(out, f.items)
	return out
}

// MarkRead flags one notification as read.
func (f *Feed) MarkRead(id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Read = true
			return nil
		}
	}
	return models.ErrNotificationNotFound
}

// Unread counts notifications not yet read.
func (f *Feed) Unread() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, item := range f.items {
		if !item.Read {
			n++
		}
	}
	return n
}

// TransferSucceeded prepends a debit entry for a completed transfer. It
// satisfies the flow machine's Notifier contract.
func (f *Feed) TransferSucceeded(amount, recipient, reference string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item := models.Notification{
		ID:        uuid.New(),
		Title:     "Transfer Successful",
		Message:   "You sent ₵" + amount + " to " + recipient + ". Ref: " + reference,
		Type:      TypeDebit,
		CreatedAt: time.Now(),
	}
	f.items = append([]models.Notification{item}, f.items...)
}
