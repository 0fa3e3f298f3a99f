package orchestrator

import (
	"sync"
	"time"
)

const contextExpiration = 30 * time.Minute

type contextEntry struct {
	data      map[string]string
	timestamp time.Time
}

// ContextManager keeps short-lived per-user conversation context supplied
// by the transports (e.g. the active channel thread or campaign).
type ContextManager struct {
	mu       sync.Mutex
	contexts map[string]contextEntry
}

func NewContextManager() *ContextManager {
	return &ContextManager{contexts: make(map[string]contextEntry)}
}

func (m *ContextManager) Set(userID string, data map[string]string) {
	stored := make(map[string]string, len(data))
	for k, v := range data {
		stored[k] = v
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.contexts[userID] = contextEntry{data: stored, timestamp: time.Now()}
}

// Get returns a copy of the stored context, or nil when absent or
// expired. Callers get their own map; stored state is never shared.
func (m *ContextManager) Get(userID string) map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.contexts[userID]
	if !ok {
		return nil
	}
	if time.Since(entry.timestamp) > contextExpiration {
		delete(m.contexts, userID)
		return nil
	}

	out := make(map[string]string, len(entry.data))
	for k, v := range entry.data {
		out[k] = v
	}
	return out
}

// Update merges new keys into the existing context and refreshes its expiry.
func (m *ContextManager) Update(userID string, update map[string]string) {
	merged := make(map[string]string, len(update))
	for k, v := range m.Get(userID) {
		merged[k] = v
	}
	for k, v := range update {
		merged[k] = v
	}
	m.Set(userID, merged)
}

func (m *ContextManager) Clear(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.contexts, userID)
}
