// ABOUTME: Unit tests for the Charm-backed blob store.
// ABOUTME: Covers error mapping that does not need a live Charm account.
package charm

import (
	"errors"
	"testing"

	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/lift/internal/storage"
)

func TestGetErrorMapsMissingKey(t *testing.T) {
	err := getError(storage.KeyHistory, badger.ErrKeyNotFound)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected storage.ErrNotFound, got %v", err)
	}
}

func TestGetErrorKeepsOtherErrors(t *testing.T) {
	boom := errors.New("disk on fire")
	err := getError(storage.KeySettings, boom)
	if errors.Is(err, storage.ErrNotFound) {
		t.Error("unexpected ErrNotFound mapping")
	}
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped error, got %v", err)
	}
}
