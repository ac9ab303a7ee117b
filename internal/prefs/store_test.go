package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var seed = decimal.RequireFromString("248300.00")

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s := New(path, nil)

	s.Save(true, decimal.RequireFromString("1234.56"))

	dark, balance := New(path, nil).Load(false, seed)
	assert.True(t, dark)
	assert.Equal(t, "1234.56", balance.StringFixed(2))
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "absent.json"), nil)

	dark, balance := s.Load(false, seed)
	assert.False(t, dark)
	assert.True(t, balance.Equal(seed))
}

func TestLoadCorruptFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	dark, balance := New(path, nil).Load(false, seed)
	assert.False(t, dark)
	assert.True(t, balance.Equal(seed))
}

func TestLoadBadValuesFallBackPerField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte(`{"dark":"maybe","balance":"100.00"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	dark, balance := New(path, nil).Load(false, seed)
	assert.False(t, dark, "unparseable flag keeps default")
	assert.Equal(t, "100.00", balance.StringFixed(2))
}

func TestEmptyPathIsNoOp(t *testing.T) {
	s := New("", nil)
	s.Save(true, seed)

	dark, balance := s.Load(false, seed)
	assert.False(t, dark)
	assert.True(t, balance.Equal(seed))
}

func TestSaveFailureIsSwallowed(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "no", "such", "dir", "state.json"), nil)
	// Must not panic or surface the error.
	s.Save(true, seed)
}
