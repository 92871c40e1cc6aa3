package storage

import (
	"context"
	"slices"
	"sync"
)

// MemoryStorage keeps items in process memory. Nothing survives a restart.
type MemoryStorage struct {
	mu      sync.RWMutex
	items   map[string][]byte
	failErr error
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string][]byte)}
}

func (m *MemoryStorage) GetItem(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.items[key]
	if !ok {
		return nil, ErrItemNotFound
	}
	return slices.Clone(value), nil
}

func (m *MemoryStorage) SetItem(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failErr != nil {
		return m.failErr
	}
	m.items[key] = slices.Clone(value)
	return nil
}

func (m *MemoryStorage) Close() error {
	return nil
}

// FailWrites makes every following SetItem return err. Passing nil restores
// normal behaviour. Useful for exercising persistence failures in tests.
func (m *MemoryStorage) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
}
