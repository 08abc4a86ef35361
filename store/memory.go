package store

import (
	"context"
	"sync"
	"time"
)

const memorySweepInterval = 5 * time.Minute

type memoryEntry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

// Memory is an in-process Store used when no redis address is configured,
// and in tests. State does not survive a restart.
type Memory struct {
	mu     sync.RWMutex
	values map[string]memoryEntry
	hashes map[string]map[string]string

	// now is swappable so expiry behavior is testable without sleeping.
	now func() time.Time
}

func NewMemory() *Memory {
	m := &Memory{
		values: make(map[string]memoryEntry),
		hashes: make(map[string]map[string]string),
		now:    time.Now,
	}
	go m.sweepLoop()
	return m
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	entry, ok := m.values[key]
	m.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if !entry.expiresAt.IsZero() && m.now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.values, key)
		m.mu.Unlock()
		return "", false, nil
	}
	return entry.value, true, nil
}

func (m *Memory) Set(_ context.Context, key, value string, ttl time.Duration) error {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}
	m.mu.Lock()
	m.values[key] = entry
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.values, key)
	delete(m.hashes, key)
	m.mu.Unlock()
	return nil
}

func (m *Memory) HGetAll(_ context.Context, key string) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.hashes[key]))
	for k, v := range m.hashes[key] {
		out[k] = v
	}
	return out, nil
}

func (m *Memory) HSet(_ context.Context, key string, fields map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	hash, ok := m.hashes[key]
	if !ok {
		hash = make(map[string]string, len(fields))
		m.hashes[key] = hash
	}
	for k, v := range fields {
		hash[k] = v
	}
	return nil
}

// sweepLoop periodically drops expired keys so long-running processes do
// not accumulate dead session entries.
func (m *Memory) sweepLoop() {
	ticker := time.NewTicker(memorySweepInterval)
	defer ticker.Stop()
	for range ticker.C {
		m.sweep()
	}
}

func (m *Memory) sweep() {
	now := m.now()
	m.mu.Lock()
	for key, entry := range m.values {
		if !entry.expiresAt.IsZero() && now.After(entry.expiresAt) {
			delete(m.values, key)
		}
	}
	m.mu.Unlock()
}

var _ Store = (*Memory)(nil)
