// Package memory provides an in-memory GraphStore, suitable for tests and
// single-process use.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/smallnest/policygraph/store"
)

// MemoryGraphStore implements store.GraphStore with a mutex-guarded map.
type MemoryGraphStore struct {
	mu      sync.RWMutex
	records map[string]*store.Record
}

// NewMemoryGraphStore creates an empty in-memory store.
func NewMemoryGraphStore() *MemoryGraphStore {
	return &MemoryGraphStore{
		records: make(map[string]*store.Record),
	}
}

// Save stores a record, replacing any record with the same ID.
func (s *MemoryGraphStore) Save(ctx context.Context, record *store.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.ID] = record
	return nil
}

// Load retrieves a record by ID.
func (s *MemoryGraphStore) Load(ctx context.Context, id string) (*store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return nil, fmt.Errorf("record not found: %s", id)
	}
	return record, nil
}

// List returns all records stored under a name, in unspecified order.
func (s *MemoryGraphStore) List(ctx context.Context, name string) ([]*store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*store.Record
	for _, record := range s.records {
		if record.Name == name {
			out = append(out, record)
		}
	}
	return out, nil
}

// Delete removes a record.
func (s *MemoryGraphStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}

// Clear removes all records stored under a name.
func (s *MemoryGraphStore) Clear(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, record := range s.records {
		if record.Name == name {
			delete(s.records, id)
		}
	}
	return nil
}
