package store

import (
	"context"
	"sync"
)

// Memory is an in-process KV backend. It is the default for tests and
// keeps no state across restarts.
type Memory struct {
	mu      sync.RWMutex
	records map[string]map[string][]byte
	values  map[string][]byte
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{
		records: make(map[string]map[string][]byte),
		values:  make(map[string][]byte),
	}
}

func (m *Memory) GetRecord(_ context.Context, collection, id string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.records[collection][id]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), b...), true, nil
}

func (m *Memory) PutRecord(_ context.Context, collection, id string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.records[collection] == nil {
		m.records[collection] = make(map[string][]byte)
	}
	m.records[collection][id] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) DeleteRecord(_ context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records[collection], id)
	return nil
}

func (m *Memory) GetAll(_ context.Context, collection string) (map[string][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string][]byte, len(m.records[collection]))
	for id, b := range m.records[collection] {
		out[id] = append([]byte(nil), b...)
	}
	return out, nil
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), b...), true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
