package store

import (
	"context"
	"errors"

	"github.com/mkalev/modelvet/internal/feedback"
)

var ErrNotFound = errors.New("record not found")

// Store is a persistence sink for finished feedback records.
type Store interface {
	Save(ctx context.Context, record *feedback.Record) error
	Get(ctx context.Context, recordID string) (*feedback.Record, error)
	List(ctx context.Context, offset, limit int) ([]*feedback.Record, error)
	Close() error
}
