package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"orcamento/go_backend/internal/domain/quote"
)

const DefaultSequenceName = "quote_number_seq"

// QuoteSequence draws quote counters from a Postgres sequence, so every
// instance sharing the database gets distinct numbers.
type QuoteSequence struct {
	db   *DB
	name string
}

var _ quote.Sequence = (*QuoteSequence)(nil)

// NewQuoteSequence creates the sequence if it does not exist yet.
func NewQuoteSequence(ctx context.Context, db *DB, name string) (*QuoteSequence, error) {
	if name == "" {
		name = DefaultSequenceName
	}
	ident := pgx.Identifier{name}.Sanitize()
	if _, err := db.Pool.Exec(ctx, "CREATE SEQUENCE IF NOT EXISTS "+ident+" START WITH 1 INCREMENT BY 1"); err != nil {
		return nil, fmt.Errorf("create sequence %s: %w", name, err)
	}
	return &QuoteSequence{db: db, name: ident}, nil
}

func (s *QuoteSequence) Next(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.Pool.QueryRow(ctx, "SELECT nextval($1::regclass)", s.name).Scan(&n); err != nil {
		return 0, fmt.Errorf("nextval %s: %w", s.name, err)
	}
	return n, nil
}
