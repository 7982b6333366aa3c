package store

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore keeps records in process memory. Intended for development
// and tests; everything is lost on exit.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
	order   []string // insertion order, oldest first
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*Record)}
}

// Put stores a copy of rec, replacing any record with the same id.
func (s *MemoryStore) Put(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *packRecord(rec)
	cp.Blob = slices.Clone(cp.Blob)
	if _, exists := s.records[cp.ID]; !exists {
		s.order = append(s.order, cp.ID)
	}
	s.records[cp.ID] = &cp
	return nil
}

// Get retrieves a record by id.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	out, err := unpackRecord(rec)
	if err != nil {
		return nil, err
	}
	cp := *out
	cp.Blob = slices.Clone(cp.Blob)
	return &cp, nil
}

// List returns records newest first.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.order)
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]*Record, 0, n)
	for i := len(s.order) - 1; i >= 0 && len(out) < n; i-- {
		rec, err := unpackRecord(s.records[s.order[i]])
		if err != nil {
			return nil, err
		}
		cp := *rec
		cp.Blob = slices.Clone(cp.Blob)
		out = append(out, &cp)
	}
	return out, nil
}

// Delete removes a record by id.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return ErrNotFound
	}
	delete(s.records, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	return nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

var _ Store = (*MemoryStore)(nil)
