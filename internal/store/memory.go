package store

import (
	"context"
	"sort"
	"sync"

	"github.com/mkalev/modelvet/internal/feedback"
)

// InMemoryStore keeps records in a map. Used in tests and local setups
// without Postgres.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string]*feedback.Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		records: make(map[string]*feedback.Record),
	}
}

func (s *InMemoryStore) Save(ctx context.Context, record *feedback.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[record.ID] = record
	return nil
}

func (s *InMemoryStore) Get(ctx context.Context, recordID string) (*feedback.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[recordID]
	if !ok {
		return nil, ErrNotFound
	}
	return record, nil
}

func (s *InMemoryStore) List(ctx context.Context, offset, limit int) ([]*feedback.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*feedback.Record, 0, len(s.records))
	for _, record := range s.records {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})

	if offset >= len(records) {
		return nil, nil
	}
	records = records[offset:]
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	return records, nil
}

func (s *InMemoryStore) Close() error {
	return nil
}
