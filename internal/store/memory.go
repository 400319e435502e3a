package store

import (
	"context"
	"sync"
)

// MemoryBackend keeps profiles in process memory. Used by tests and the
// terminal client when no database is configured.
type MemoryBackend struct {
	mu       sync.Mutex
	profiles map[string]map[string]string
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{profiles: make(map[string]map[string]string)}
}

// ForProfile returns the namespace of profileID.
func (b *MemoryBackend) ForProfile(profileID string) KV {
	return &memoryKV{backend: b, profileID: profileID}
}

type memoryKV struct {
	backend   *MemoryBackend
	profileID string
}

func (m *memoryKV) GetAll(_ context.Context) (map[string]string, error) {
	m.backend.mu.Lock()
	defer m.backend.mu.Unlock()

	out := make(map[string]string, len(m.backend.profiles[m.profileID]))
	for k, v := range m.backend.profiles[m.profileID] {
		out[k] = v
	}
	return out, nil
}

func (m *memoryKV) SetAll(_ context.Context, values map[string]string) error {
	m.backend.mu.Lock()
	defer m.backend.mu.Unlock()

	p, ok := m.backend.profiles[m.profileID]
	if !ok {
		p = make(map[string]string, len(values))
		m.backend.profiles[m.profileID] = p
	}
	for k, v := range values {
		p[k] = v
	}
	return nil
}
