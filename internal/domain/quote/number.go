package quote

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

// Number is a quote identifier of the form PREFIX-YYYYMMDD-NNN.
type Number string

func (n Number) String() string { return string(n) }

// Sequence hands out counter values. Implementations backed by a shared
// store keep numbers unique across processes.
type Sequence interface {
	Next(ctx context.Context) (int64, error)
}

// MemorySequence is a process-wide counter starting at 1. It resets when
// the process restarts.
type MemorySequence struct {
	n atomic.Int64
}

func (s *MemorySequence) Next(context.Context) (int64, error) {
	return s.n.Add(1), nil
}

type Numberer struct {
	Prefix string
	Seq    Sequence
	Clock  func() time.Time
}

func NewNumberer(prefix string, seq Sequence) *Numberer {
	if seq == nil {
		seq = &MemorySequence{}
	}
	return &Numberer{Prefix: prefix, Seq: seq, Clock: time.Now}
}

// Next draws one counter value and stamps it with the clock's date.
// Counters above 999 are not capped; the suffix simply grows.
func (g *Numberer) Next(ctx context.Context) (Number, error) {
	n, err := g.Seq.Next(ctx)
	if err != nil {
		return "", fmt.Errorf("quote number: %w", err)
	}
	now := time.Now
	if g.Clock != nil {
		now = g.Clock
	}
	return FormatNumber(g.Prefix, now(), n), nil
}

func FormatNumber(prefix string, day time.Time, n int64) Number {
	return Number(fmt.Sprintf("%s-%s-%03d", prefix, day.Format("20060102"), n))
}
