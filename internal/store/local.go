package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mkalev/modelvet/internal/feedback"
)

// LocalStore persists each feedback record as one JSON file under a
// directory.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create feedback directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) path(recordID string) string {
	return filepath.Join(s.dir, recordID+".json")
}

func (s *LocalStore) Save(ctx context.Context, record *feedback.Record) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	if err := os.WriteFile(s.path(record.ID), data, 0o644); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

func (s *LocalStore) Get(ctx context.Context, recordID string) (*feedback.Record, error) {
	data, err := os.ReadFile(s.path(recordID))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read record: %w", err)
	}

	record := new(feedback.Record)
	if err := json.Unmarshal(data, record); err != nil {
		return nil, fmt.Errorf("failed to decode record %s: %w", recordID, err)
	}
	return record, nil
}

func (s *LocalStore) List(ctx context.Context, offset, limit int) ([]*feedback.Record, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(ids)

	if offset >= len(ids) {
		return nil, nil
	}
	ids = ids[offset:]
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}

	records := make([]*feedback.Record, 0, len(ids))
	for _, id := range ids {
		record, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *LocalStore) Close() error {
	return nil
}
