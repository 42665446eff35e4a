package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/juju/clock"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is an in-process Cache. Values are stored as JSON so callers get
// independent copies on every read.
type Memory struct {
	clock clock.Clock

	mu      sync.Mutex
	entries map[string]memoryEntry
}

// NewMemory creates an empty in-memory cache. A nil clock uses the wall clock.
func NewMemory(clk clock.Clock) *Memory {
	if clk == nil {
		clk = clock.WallClock
	}
	return &Memory{clock: clk, entries: make(map[string]memoryEntry)}
}

func (m *Memory) GetJSON(_ context.Context, key string, out any) (bool, error) {
	m.mu.Lock()
	entry, ok := m.entries[key]
	if ok && !m.clock.Now().Before(entry.expiresAt) {
		delete(m.entries, key)
		ok = false
	}
	m.mu.Unlock()

	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(entry.value, out); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Memory) SetJSON(_ context.Context, key string, value any, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.entries[key] = memoryEntry{value: b, expiresAt: m.clock.Now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, including expired ones not yet evicted.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Memory) Close() error { return nil }
