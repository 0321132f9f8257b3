package redis

import (
	"context"
	"fmt"

	lowimpl "github.com/redis/go-redis/v9"

	"orcamento/go_backend/internal/domain/quote"
)

const DefaultKey = "quote:number:seq"

type Conf struct {
	Addr string
	PW   string
	DB   int
	Key  string
}

// QuoteSequence draws quote counters with INCR on a single key.
type QuoteSequence struct {
	key      string
	internal *lowimpl.Client
}

var _ quote.Sequence = (*QuoteSequence)(nil)

func NewQuoteSequence(ctx context.Context, conf Conf) (*QuoteSequence, error) {
	if conf.Key == "" {
		conf.Key = DefaultKey
	}
	c := lowimpl.NewClient(&lowimpl.Options{
		Addr:     conf.Addr,
		Password: conf.PW,
		DB:       conf.DB,
	})
	if err := c.Ping(ctx).Err(); err != nil {
		c.Close()
		return nil, fmt.Errorf("redis %s: %w", conf.Addr, err)
	}
	return &QuoteSequence{key: conf.Key, internal: c}, nil
}

func (s *QuoteSequence) Next(ctx context.Context) (int64, error) {
	n, err := s.internal.Incr(ctx, s.key).Result()
	if err != nil {
		return 0, fmt.Errorf("incr %s: %w", s.key, err)
	}
	return n, nil
}

func (s *QuoteSequence) Close() error {
	return s.internal.Close()
}
