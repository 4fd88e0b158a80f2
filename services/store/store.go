// Package store holds the per-user tracking state of the growth loop: daily invite counters,
// cooldown clocks, milestone markers and reward balances.
//
// Every key carries an optional TTL so entries expire by themselves instead of growing for
// the lifetime of the process. The in-memory implementation serves the demo and tests; the
// redis implementation is shared between instances and keeps increments atomic.
package store

import (
	"context"
	"errors"
	"strings"
	"time"
)

var ErrNotConfigured = errors.New("tracking store not configured")

type Store interface {
	// Get returns the value stored at key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value at key. A zero ttl keeps the key until Reset.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// SetIfAbsent stores value only when key does not exist and reports whether it did.
	SetIfAbsent(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	// IncrementBy adds delta to the integer at key. ttl is applied when the key is created.
	IncrementBy(ctx context.Context, key string, delta int64, ttl time.Duration) (int64, error)
	// IncrementIfBelow adds one to the integer at key only while it is below limit. It returns
	// the value after the call and whether the increment happened. ttl is applied on creation.
	IncrementIfBelow(ctx context.Context, key string, limit int64, ttl time.Duration) (int64, bool, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Reset drops every key owned by the store.
	Reset(ctx context.Context) error
}

// Key joins parts with ':' so user ids, days and loop types never collide.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}
