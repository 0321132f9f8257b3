package redis

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteSequence_Next(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("skipping: TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	conf := Conf{Addr: addr, Key: "quote:number:seq:test"}

	seq, err := NewQuoteSequence(ctx, conf)
	require.NoError(t, err)
	t.Cleanup(func() { seq.Close() })
	require.NoError(t, seq.internal.Del(ctx, conf.Key).Err())

	other, err := NewQuoteSequence(ctx, conf)
	require.NoError(t, err)
	t.Cleanup(func() { other.Close() })

	var got []int64
	for _, s := range []*QuoteSequence{seq, other, seq} {
		n, err := s.Next(ctx)
		require.NoError(t, err)
		got = append(got, n)
	}
	assert.Equal(t, []int64{1, 2, 3}, got)
}

func TestNewQuoteSequence_Unreachable(t *testing.T) {
	_, err := NewQuoteSequence(context.Background(), Conf{Addr: "127.0.0.1:1"})
	require.Error(t, err)
}
