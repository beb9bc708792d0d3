// ABOUTME: Data migration between lift storage backends.
// ABOUTME: Copies each collection blob verbatim from source to destination.

package storage

import (
	"errors"
	"fmt"
	"os"
)

// MigrateSummary reports which collection keys were copied.
type MigrateSummary struct {
	Copied  []string
	Missing []string
}

// MigrateData copies every collection blob from src to dst.
// Keys absent from src are reported as missing and left untouched in dst.
// Blobs are copied byte for byte, so unparsable data stays unparsable.
func MigrateData(src, dst BlobStore) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	for _, key := range AllKeys {
		data, err := src.GetBlob(key)
		if errors.Is(err, ErrNotFound) {
			summary.Missing = append(summary.Missing, key)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read source %s: %w", key, err)
		}

		if err := dst.SetBlob(key, data); err != nil {
			return nil, fmt.Errorf("write destination %s: %w", key, err)
		}
		summary.Copied = append(summary.Copied, key)
	}

	return summary, nil
}

// HasData reports whether any collection key is present in s.
func HasData(s BlobStore) (bool, error) {
	for _, key := range AllKeys {
		_, err := s.GetBlob(key)
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return false, fmt.Errorf("read %s: %w", key, err)
		}
	}
	return false, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
