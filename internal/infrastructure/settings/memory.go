package settings

import "sync"

// MemoryStore is a NameStore that forgets everything when the process exits.
type MemoryStore struct {
	name string
	mu   sync.RWMutex
}

func NewMemoryStore(initial string) *MemoryStore {
	return &MemoryStore{name: initial}
}

func (m *MemoryStore) LoadUsername() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.name, m.name != ""
}

func (m *MemoryStore) SaveUsername(name string) error {
	m.mu.Lock()
	m.name = name
	m.mu.Unlock()
	return nil
}
