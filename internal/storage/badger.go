// ABOUTME: Badger-backed BlobStore for a local embedded key-value directory.
// ABOUTME: Writes are synced before SetBlob returns.
package storage

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/dgraph-io/badger/v3"
)

// BadgerStore stores blobs in a Badger database directory.
type BadgerStore struct {
	db  *badger.DB
	dir string
}

var _ BlobStore = (*BadgerStore)(nil)

// OpenBadger opens or creates a Badger database in dir.
// Badger's own logging is routed to logger at the matching levels; a nil
// logger silences it.
func OpenBadger(dir string, logger *log.Logger) (*BadgerStore, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	opts := badger.DefaultOptions(dir).WithSyncWrites(true)
	if logger != nil {
		opts = opts.WithLogger(badgerLogger{logger.WithPrefix("badger")})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerStore{db: db, dir: dir}, nil
}

// Close closes the database.
func (b *BadgerStore) Close() error {
	return b.db.Close()
}

// GetBlob returns the blob stored under key.
func (b *BadgerStore) GetBlob(key string) ([]byte, error) {
	var data []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("get %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return data, nil
}

// SetBlob writes the blob stored under key.
func (b *BadgerStore) SetBlob(key string, data []byte) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// badgerLogger adapts a charm logger to badger.Logger.
type badgerLogger struct {
	l *log.Logger
}

func (b badgerLogger) Errorf(format string, args ...interface{})   { b.l.Errorf(format, args...) }
func (b badgerLogger) Warningf(format string, args ...interface{}) { b.l.Warnf(format, args...) }
func (b badgerLogger) Infof(format string, args ...interface{})    { b.l.Debugf(format, args...) }
func (b badgerLogger) Debugf(format string, args ...interface{})   { b.l.Debugf(format, args...) }
