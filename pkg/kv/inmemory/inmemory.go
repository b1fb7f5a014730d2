// Package inmemory provides a map-backed kv.Driver.
package inmemory

import (
	"context"
	"encoding/json"
	"sync"
)

// Driver implements kv.Driver using an in-memory map.
type Driver struct {
	// mu is a read write sync mutex for locking the entries map
	mu sync.RWMutex

	entries map[string]json.RawMessage
}

// NewDriver creates a new in-memory kv driver.
func NewDriver() *Driver {
	return &Driver{
		entries: make(map[string]json.RawMessage),
	}
}

// Get returns copies of the requested entries, or all entries when no keys
// are given.
func (d *Driver) Get(_ context.Context, keys ...string) (map[string]json.RawMessage, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	result := make(map[string]json.RawMessage)

	if len(keys) == 0 {
		for k, v := range d.entries {
			result[k] = clone(v)
		}
		return result, nil
	}

	for _, k := range keys {
		if v, ok := d.entries[k]; ok {
			result[k] = clone(v)
		}
	}

	return result, nil
}

// Set stores copies of the given entries.
func (d *Driver) Set(_ context.Context, items map[string]json.RawMessage) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for k, v := range items {
		d.entries[k] = clone(v)
	}

	return nil
}

// Count returns the number of stored entries.
func (d *Driver) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}

// Close is a no-op for the in-memory driver.
func (d *Driver) Close() error {
	return nil
}

func clone(v json.RawMessage) json.RawMessage {
	if v == nil {
		return nil
	}
	c := make(json.RawMessage, len(v))
	copy(c, v)
	return c
}
