package mysql

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteSequence_Next(t *testing.T) {
	dsn := os.Getenv("TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("skipping: TEST_MYSQL_DSN not set")
	}
	ctx := context.Background()
	db, err := New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	name := "quote_number_test"
	seq, err := NewQuoteSequence(ctx, db, name)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "UPDATE quote_sequences SET value = 0 WHERE name = ?", name)
	require.NoError(t, err)

	var got []int64
	for range 3 {
		n, err := seq.Next(ctx)
		require.NoError(t, err)
		got = append(got, n)
	}
	assert.Equal(t, []int64{1, 2, 3}, got)
}

func TestQuoteSequence_MissingRow(t *testing.T) {
	dsn := os.Getenv("TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("skipping: TEST_MYSQL_DSN not set")
	}
	ctx := context.Background()
	db, err := New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	seq, err := NewQuoteSequence(ctx, db, "quote_number_gone")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "DELETE FROM quote_sequences WHERE name = ?", "quote_number_gone")
	require.NoError(t, err)

	_, err = seq.Next(ctx)
	require.Error(t, err)
}
