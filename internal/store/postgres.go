package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mkalev/modelvet/internal/feedback"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

type PostgresStore struct {
	db *bun.DB
}

func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(connectionString)))

	db := bun.NewDB(sqldb, pgdialect.New())

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)

	store := &PostgresStore{db: db}

	ctx := context.Background()
	if err := store.InitializeDatabase(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

func (s *PostgresStore) InitializeDatabase(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*RecordDB)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create feedback_records table: %w", err)
	}

	_, err = s.db.NewCreateIndex().
		Model((*RecordDB)(nil)).
		Index("idx_feedback_records_type").
		Column("feedback_type").
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create feedback_type index: %w", err)
	}

	_, err = s.db.NewCreateIndex().
		Model((*RecordDB)(nil)).
		Index("idx_feedback_records_created_at").
		Column("created_at").
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create created_at index: %w", err)
	}

	return nil
}

func (s *PostgresStore) Save(ctx context.Context, record *feedback.Record) error {
	recordDB, err := RecordFromDomain(record)
	if err != nil {
		return err
	}

	_, err = s.db.NewInsert().Model(recordDB).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, recordID string) (*feedback.Record, error) {
	recordDB := new(RecordDB)
	err := s.db.NewSelect().
		Model(recordDB).
		Where("id = ?", recordID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return recordDB.ToRecord()
}

func (s *PostgresStore) List(ctx context.Context, offset, limit int) ([]*feedback.Record, error) {
	var recordsDB []*RecordDB
	query := s.db.NewSelect().
		Model(&recordsDB).
		Order("created_at ASC")
	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	records := make([]*feedback.Record, 0, len(recordsDB))
	for _, recordDB := range recordsDB {
		record, err := recordDB.ToRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
