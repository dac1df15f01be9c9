package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mkalev/modelvet/internal/feedback"
	"github.com/uptrace/bun"
)

type RecordDB struct {
	bun.BaseModel `bun:"table:feedback_records,alias:fr"`

	ID           string          `bun:"id,pk" json:"id"`
	FeedbackType string          `bun:"feedback_type,notnull" json:"feedback_type"`
	Metadata     json.RawMessage `bun:"metadata,type:jsonb" json:"metadata"`
	CreatedAt    time.Time       `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

func (r *RecordDB) ToRecord() (*feedback.Record, error) {
	meta, err := feedback.UnmarshalMetadata(feedback.Type(r.FeedbackType), r.Metadata)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", r.ID, err)
	}
	return &feedback.Record{
		ID:        r.ID,
		Type:      feedback.Type(r.FeedbackType),
		CreatedAt: r.CreatedAt,
		Metadata:  meta,
	}, nil
}

func RecordFromDomain(record *feedback.Record) (*RecordDB, error) {
	meta, err := json.Marshal(record.Metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to encode metadata: %w", err)
	}
	return &RecordDB{
		ID:           record.ID,
		FeedbackType: string(record.Type),
		Metadata:     meta,
		CreatedAt:    record.CreatedAt,
	}, nil
}
