package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"IntraPull/internal/domain/models"
)

// ClickHouseBarStore persists cleaned bars to a ClickHouse table.
type ClickHouseBarStore struct {
	db    *sql.DB
	table string
}

// NewClickHouseBarStore creates a bar store writing to the given table.
func NewClickHouseBarStore(db *sql.DB, table string) *ClickHouseBarStore {
	return &ClickHouseBarStore{db: db, table: table}
}

// Schema returns the idempotent DDL for the bar table.
func (s *ClickHouseBarStore) Schema(database string) []string {
	return []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			symbol String,
			t DateTime64(3),
			o Float64,
			h Float64,
			l Float64,
			c Float64,
			v Int64
		) ENGINE = MergeTree ORDER BY (symbol, t)`, s.table),
	}
}

// StoreBatch inserts cleaned bars in a single prepared batch.
func (s *ClickHouseBarStore) StoreBatch(ctx context.Context, symbol string, bars []models.Bar) error {
	if len(bars) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		fmt.Sprintf("INSERT INTO %s (symbol, t, o, h, l, c, v) VALUES (?, ?, ?, ?, ?, ?, ?)", s.table))
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.ExecContext(ctx, symbol, time.UnixMilli(b.Timestamp), b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert bar: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

// Health pings the database.
func (s *ClickHouseBarStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the connection pool. The store is the pool's only consumer
// here, so it owns the shutdown.
func (s *ClickHouseBarStore) Close() error {
	return s.db.Close()
}
