package session

import (
	"context"
	"sync"
)

// MemoryStore is the in-process Store. State lives for the process lifetime;
// there is no expiry, matching the single-instance deployment this backend
// targets.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*memoryEntry
}

type memoryEntry struct {
	mu      sync.Mutex
	session *Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*memoryEntry)}
}

func (m *MemoryStore) entry(id string) *memoryEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok {
		e = &memoryEntry{session: New(id)}
		m.sessions[id] = e
	}
	return e
}

// Get returns a snapshot of the session for id, creating it if unseen.
func (m *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	e := m.entry(id)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.clone(), nil
}

// Update applies fn to the session for id under its lock. Concurrent updates
// for the same id are serialized; updates for different ids proceed
// independently.
func (m *MemoryStore) Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error) {
	e := m.entry(id)
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := fn(e.session); err != nil {
		return nil, err
	}
	return e.session.clone(), nil
}

// Len reports the number of sessions held.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
