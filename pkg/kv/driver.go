// Package kv defines the flat key-value persistence service that holds the
// usage table and any other small documents marksort needs to keep.
package kv

import (
	"context"
	"encoding/json"
)

// Driver persists a flat mapping of string keys to JSON documents.
type Driver interface {
	// Get returns the stored values for the requested keys. Keys that are not
	// stored are omitted from the result. Calling Get with no keys returns
	// every stored entry.
	Get(ctx context.Context, keys ...string) (map[string]json.RawMessage, error)

	// Set stores every entry in items, overwriting existing values.
	Set(ctx context.Context, items map[string]json.RawMessage) error

	// Close releases any resources held by the driver.
	Close() error
}

// GetOne fetches a single key and decodes it into v. It returns a
// NotFoundError when the key is not stored.
func GetOne(ctx context.Context, d Driver, key string, v any) error {
	items, err := d.Get(ctx, key)
	if err != nil {
		return err
	}

	raw, ok := items[key]
	if !ok {
		return NotFoundError{Key: key}
	}

	return json.Unmarshal(raw, v)
}

// SetOne encodes v and stores it under key.
func SetOne(ctx context.Context, d Driver, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return d.Set(ctx, map[string]json.RawMessage{key: raw})
}
