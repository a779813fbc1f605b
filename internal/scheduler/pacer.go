package scheduler

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces consecutive symbol iterations so the run stays under
// external rate limits. It replaces ad hoc sleeps with a token-interval
// limiter that tests can swap for a no-op.
type Pacer interface {
	Wait(ctx context.Context) error
}

// IntervalPacer releases one token per interval. The first Wait proceeds
// immediately; later calls block until the interval has elapsed.
type IntervalPacer struct {
	limiter *rate.Limiter
}

func NewIntervalPacer(interval time.Duration) *IntervalPacer {
	if interval <= 0 {
		return &IntervalPacer{}
	}
	return &IntervalPacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

func (p *IntervalPacer) Wait(ctx context.Context) error {
	if p == nil || p.limiter == nil {
		return ctx.Err()
	}
	return p.limiter.Wait(ctx)
}

// NopPacer never delays; used in tests and single-symbol runs.
type NopPacer struct{}

func (NopPacer) Wait(ctx context.Context) error { return ctx.Err() }
