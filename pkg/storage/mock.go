package storage

import (
	"bytes"
	"context"
	"sync"
)

// MockBackend is an in-memory Backend used for tests and MAFIOS_STORAGE=memory.
type MockBackend struct {
	mu        sync.RWMutex
	data      map[string][]byte
	writes    int
	pingError error
	setError  error
}

// Ensure MockBackend implements Backend interface
var _ Backend = (*MockBackend)(nil)

// NewMockBackend creates a new empty mock backend
func NewMockBackend() *MockBackend {
	return &MockBackend{
		data: make(map[string][]byte),
	}
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockBackend) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// SetWriteError configures the mock to fail every Set with the given error
func (m *MockBackend) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setError = err
}

// Writes returns how many successful Set calls were made
func (m *MockBackend) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}

func (m *MockBackend) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockBackend) Close() error {
	return nil
}

func (m *MockBackend) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return bytes.Clone(v), nil
}

func (m *MockBackend) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = bytes.Clone(value)
	m.writes++
	return nil
}

func (m *MockBackend) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
