// ABOUTME: Charm KV client wrapper implementing the lift BlobStore.
// ABOUTME: Provides thread-safe initialization and automatic cloud sync.
package charm

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/lift/internal/storage"
)

const (
	dbName    = "lift"
	charmHost = "charm.2389.dev"
)

// ErrReadOnly is returned by writes while another process holds the lock.
var ErrReadOnly = errors.New("cannot write: database is locked by another process (MCP server?)")

var (
	globalClient *Client
	clientOnce   sync.Once
	clientErr    error
)

// Client stores lift collections in Charm KV.
type Client struct {
	kv       *kv.KV
	autoSync bool
	mu       sync.RWMutex
}

var _ storage.BlobStore = (*Client)(nil)

// InitClient initializes the global Charm client.
// Thread-safe; can be called multiple times.
func InitClient() (*Client, error) {
	clientOnce.Do(func() {
		// Set server before opening KV
		if os.Getenv("CHARM_HOST") == "" {
			if err := os.Setenv("CHARM_HOST", charmHost); err != nil {
				clientErr = err
				return
			}
		}

		db, err := kv.OpenWithDefaultsFallback(dbName)
		if err != nil {
			clientErr = err
			return
		}

		globalClient = &Client{
			kv:       db,
			autoSync: true,
		}

		// Pull remote data on startup (skip in read-only mode)
		if !db.IsReadOnly() {
			_ = db.Sync()
		}
	})

	return globalClient, clientErr
}

// Close closes the KV database connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kv != nil {
		return c.kv.Close()
	}
	return nil
}

// IsReadOnly returns true if the database is open in read-only mode.
// This happens when another process (like an MCP server) holds the lock.
func (c *Client) IsReadOnly() bool {
	return c.kv.IsReadOnly()
}

// Sync synchronizes local state with Charm Cloud.
func (c *Client) Sync() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.kv.IsReadOnly() {
		return nil
	}
	return c.kv.Sync()
}

// syncIfEnabled calls Sync if autoSync is enabled.
func (c *Client) syncIfEnabled() {
	if c.autoSync && !c.kv.IsReadOnly() {
		_ = c.kv.Sync()
	}
}

// SetAutoSync enables or disables automatic sync after writes.
func (c *Client) SetAutoSync(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoSync = enabled
}

// ID returns the Charm user ID for the current account.
func (c *Client) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("create charm client: %w", err)
	}
	return cc.ID()
}

// Reset wipes local data and rebuilds from Charm Cloud.
func (c *Client) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Reset()
}

// GetBlob returns the blob stored under key.
func (c *Client) GetBlob(key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := c.kv.Get([]byte(key))
	if err != nil {
		return nil, getError(key, err)
	}
	return data, nil
}

// SetBlob stores a blob and syncs it to the cloud.
func (c *Client) SetBlob(key string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv.IsReadOnly() {
		return ErrReadOnly
	}

	if err := c.kv.Set([]byte(key), data); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	c.syncIfEnabled()
	return nil
}

// Keys lists the stored keys.
func (c *Client) Keys() ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	raw, err := c.kv.Keys()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(raw))
	for _, k := range raw {
		keys = append(keys, string(k))
	}
	return keys, nil
}

// getError maps Badger's missing-key error onto storage.ErrNotFound.
func getError(key string, err error) error {
	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("get %s: %w", key, storage.ErrNotFound)
	}
	return fmt.Errorf("get %s: %w", key, err)
}
