package session

import (
	"context"
	"sync"
	"time"

	"podcastpulse/logger"
	"podcastpulse/viewer"
)

type memoryEntry struct {
	state   viewer.State
	expires time.Time
}

// MemoryStore is a mutex-guarded in-process Store
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	fresh   func() viewer.State
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore creates an empty store whose sessions expire after ttl of inactivity
func NewMemoryStore(ttl time.Duration, fresh func() viewer.State) *MemoryStore {
	if fresh == nil {
		fresh = func() viewer.State { return viewer.New() }
	}
	return &MemoryStore{
		ttl:     ttl,
		fresh:   fresh,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Load returns the session's state and extends its lifetime
func (m *MemoryStore) Load(_ context.Context, id string) (viewer.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.current(id)
	m.entries[id] = memoryEntry{state: st, expires: m.now().Add(m.ttl)}
	return st, nil
}

// Update applies fn under the store lock
func (m *MemoryStore) Update(_ context.Context, id string, fn func(viewer.State) viewer.State) (viewer.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	next := fn(m.current(id))
	m.entries[id] = memoryEntry{state: next, expires: m.now().Add(m.ttl)}
	return next, nil
}

// Delete drops the session
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

// Sweep removes expired sessions and returns how many were removed
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	removed := 0
	for id, e := range m.entries {
		if now.After(e.expires) {
			delete(m.entries, id)
			removed++
		}
	}
	return removed
}

// Janitor sweeps expired sessions every interval until ctx is cancelled
func (m *MemoryStore) Janitor(ctx context.Context, every time.Duration) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				logger.Log.Debugf("swept %d expired sessions", n)
			}
		}
	}
}

// Len returns the number of live entries, expired or not
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Close is a no-op
func (m *MemoryStore) Close() error { return nil }

// current returns the live state for id (must hold lock)
func (m *MemoryStore) current(id string) viewer.State {
	e, ok := m.entries[id]
	if !ok || m.now().After(e.expires) {
		return m.fresh()
	}
	return e.state
}
