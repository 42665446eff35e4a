// Package cache stores parsed resumes keyed by content hash.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache is a JSON value store with per-entry TTL.
// GetJSON reports false with a nil error on a miss.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Close() error
}

// DefaultTTL is used when a caller passes a non-positive TTL.
const DefaultTTL = 24 * time.Hour

// Key derives a stable cache key from a namespace and content parts.
func Key(namespace string, parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return strings.TrimSuffix(namespace, ":") + ":" + hex.EncodeToString(h.Sum(nil))
}

// Nop is a Cache that stores nothing.
type Nop struct{}

func (Nop) GetJSON(context.Context, string, any) (bool, error)        { return false, nil }
func (Nop) SetJSON(context.Context, string, any, time.Duration) error { return nil }
func (Nop) Close() error                                              { return nil }
