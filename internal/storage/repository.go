// ABOUTME: BlobStore interface for the persistent key-value collaborator.
// ABOUTME: Defines the four collection keys and typed Load/Save helpers.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// ErrNotFound is returned by GetBlob when a key has never been written.
var ErrNotFound = errors.New("not found")

// Collection keys. Each key holds one JSON document.
const (
	KeySettings  = "user_settings"
	KeyExercises = "exercises"
	KeyTemplates = "workout_templates"
	KeyHistory   = "workout_history"
)

// AllKeys lists every collection key in load order.
var AllKeys = []string{KeySettings, KeyExercises, KeyTemplates, KeyHistory}

// BlobStore stores opaque JSON blobs by key.
// SetBlob must be durable when it returns.
type BlobStore interface {
	GetBlob(key string) ([]byte, error)
	SetBlob(key string, data []byte) error
	Close() error
}

// Load decodes the blob stored under key into a T.
// A missing key yields def. A read or parse failure is logged and also
// yields def; it is never returned to the caller.
func Load[T any](s BlobStore, key string, def T, logger *log.Logger) T {
	if logger == nil {
		logger = log.Default()
	}

	data, err := s.GetBlob(key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Warn("read failed, using default", "key", key, "err", err)
		}
		return def
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		logger.Warn("parse failed, using default", "key", key, "err", err)
		return def
	}
	return v
}

// Save encodes v as JSON and writes it under key.
func Save(s BlobStore, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.SetBlob(key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
