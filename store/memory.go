package store

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
)

// Memory keeps collections in process memory.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]json.RawMessage
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]json.RawMessage)}
}

// Load implements Store.
func (m *Memory) Load(_ context.Context, collection string) ([]json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records, ok := m.data[collection]
	if !ok {
		return nil, ErrCollectionMissing
	}
	out := make([]json.RawMessage, len(records))
	copy(out, records)
	return out, nil
}

// Save implements Store.
func (m *Memory) Save(_ context.Context, collection string, records []json.RawMessage) error {
	cp := make([]json.RawMessage, len(records))
	for i, r := range records {
		cp[i] = append(json.RawMessage(nil), r...)
	}

	m.mu.Lock()
	m.data[collection] = cp
	m.mu.Unlock()
	return nil
}

// Names implements Lister.
func (m *Memory) Names(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.data))
	for name := range m.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Seed stores records, marshalled to JSON, under collection.
func Seed[T any](ctx context.Context, s Store, collection string, records ...T) error {
	raw, err := encode(collection, records)
	if err != nil {
		return err
	}
	return s.Save(ctx, collection, raw)
}
