package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"orcamento/go_backend/internal/domain/quote"
)

const DefaultSequenceName = "quote_number"

const createTable = `CREATE TABLE IF NOT EXISTS quote_sequences (
	name  VARCHAR(64) NOT NULL PRIMARY KEY,
	value BIGINT UNSIGNED NOT NULL
)`

// QuoteSequence keeps one counter row per name. LAST_INSERT_ID(expr)
// makes the incremented value come back with the UPDATE itself.
type QuoteSequence struct {
	db   *sql.DB
	name string
}

var _ quote.Sequence = (*QuoteSequence)(nil)

func NewQuoteSequence(ctx context.Context, db *sql.DB, name string) (*QuoteSequence, error) {
	if name == "" {
		name = DefaultSequenceName
	}
	if _, err := db.ExecContext(ctx, createTable); err != nil {
		return nil, fmt.Errorf("create quote_sequences: %w", err)
	}
	if _, err := db.ExecContext(ctx, "INSERT IGNORE INTO quote_sequences (name, value) VALUES (?, 0)", name); err != nil {
		return nil, fmt.Errorf("seed sequence %s: %w", name, err)
	}
	return &QuoteSequence{db: db, name: name}, nil
}

func (s *QuoteSequence) Next(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE quote_sequences SET value = LAST_INSERT_ID(value + 1) WHERE name = ?", s.name)
	if err != nil {
		return 0, fmt.Errorf("advance sequence %s: %w", s.name, err)
	}
	n, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("advance sequence %s: %w", s.name, err)
	}
	if n == 0 {
		return 0, fmt.Errorf("advance sequence %s: %w", s.name, sql.ErrNoRows)
	}
	return n, nil
}
