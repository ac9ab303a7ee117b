// Package prefs persists the two local preferences the app keeps across
// restarts: the dark-mode flag and the account balance. Values are
// string-encoded in a JSON file written atomically (tmp file + rename).
// Storage failures are swallowed; callers always get usable defaults.
package prefs

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type fileState struct {
	Dark    string `json:"dark"`
	Balance string `json:"balance"`
}

// Store is the durable local key-value store. A Store with an empty path is
// valid and silently skips persistence.
type Store struct {
	path string
	log  *zap.Logger
}

func New(path string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{path: path, log: log}
}

// Load reads the persisted preferences. Missing file, unreadable file or bad
// values all degrade to the provided defaults.
func (s *Store) Load(defaultDark bool, defaultBalance decimal.Decimal) (bool, decimal.Decimal) {
	dark, balance := defaultDark, defaultBalance
	if s.path == "" {
		return dark, balance
	}

	f, err := os.Open(s.path)
	if err != nil {
		s.log.Debug("prefs load skipped", zap.Error(err))
		return dark, balance
	}
	defer f.Close()

	var state fileState
	if err := json.NewDecoder(f).Decode(&state); err != nil {
		s.log.Debug("prefs decode failed", zap.Error(err))
		return dark, balance
	}

	if state.Dark != "" {
		if v, err := strconv.ParseBool(state.Dark); err == nil {
			dark = v
		}
	}
	if state.Balance != "" {
		if v, err := decimal.NewFromString(state.Balance); err == nil {
			balance = v
		}
	}
	return dark, balance
}

// Save writes both preferences. Errors are logged at debug and dropped.
func (s *Store) Save(dark bool, balance decimal.Decimal) {
	if s.path == "" {
		return
	}

	state := fileState{
		Dark:    strconv.FormatBool(dark),
		Balance: balance.StringFixed(2),
	}

	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		s.log.Debug("prefs save skipped", zap.Error(err))
		return
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(state); err != nil {
		f.Close()
		s.log.Debug("prefs encode failed", zap.Error(err))
		return
	}
	if err := f.Close(); err != nil {
		s.log.Debug("prefs close failed", zap.Error(err))
		return
	}

	if err := os.Rename(tmp, s.path); err != nil {
		s.log.Debug("prefs rename failed", zap.Error(err))
	}
}
