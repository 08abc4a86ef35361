package store

import (
	"context"
	"time"
)

// Store is the persistence boundary shared by every service: plain string
// keys with optional expiry, plus string hashes for credential bundles.
// Hash fields carry no TTL of their own.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent
	// or expired.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set writes key=value. A ttl of zero means no expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// HGetAll returns all fields of a hash. An absent hash yields an
	// empty map, not an error.
	HGetAll(ctx context.Context, key string) (map[string]string, error)

	// HSet writes the given fields into a hash, creating it if needed.
	// Fields not mentioned are left untouched.
	HSet(ctx context.Context, key string, fields map[string]string) error
}
