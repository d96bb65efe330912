// internal/storage/memory.go
package storage

import "sync"

// MemoryBackend keeps values in a map. Used by tests and as a scratch store
// when no data dir is configured.
type MemoryBackend struct {
	mtx    sync.RWMutex
	values map[string][]byte
	*notifier
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		values:   make(map[string][]byte),
		notifier: newNotifier(),
	}
}

func (m *MemoryBackend) Get(key string) ([]byte, bool) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	raw, ok := m.values[key]
	if !ok {
		return nil, false
	}
	cp := make([]byte, len(raw))
	copy(cp, raw)
	return cp, true
}

func (m *MemoryBackend) Set(key string, value []byte) error {
	m.mtx.Lock()
	cp := make([]byte, len(value))
	copy(cp, value)
	m.values[key] = cp
	m.mtx.Unlock()

	m.notify(key)
	return nil
}

func (m *MemoryBackend) Delete(key string) error {
	m.mtx.Lock()
	delete(m.values, key)
	m.mtx.Unlock()

	m.notify(key)
	return nil
}

func (m *MemoryBackend) Subscribe(key string) (<-chan struct{}, func()) {
	return m.subscribe(key)
}
