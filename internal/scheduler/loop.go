package scheduler

import (
	"context"
	"time"

	"sift/internal/logger"
)

// Loop repeats a sweep task on a fixed interval. Interval<=0 means run
// the task exactly once and return (one-shot mode).
type Loop struct {
	Interval time.Duration

	nowFn func() time.Time
}

func NewLoop(interval time.Duration) *Loop {
	return &Loop{Interval: interval, nowFn: time.Now}
}

// Start runs the task immediately, then once per interval until ctx is
// cancelled. Task errors are logged, never fatal: the next tick still runs.
func (l *Loop) Start(ctx context.Context, task func(context.Context) error) {
	if l == nil || task == nil {
		return
	}
	if l.nowFn == nil {
		l.nowFn = time.Now
	}

	runTask := func() {
		started := l.nowFn()
		if err := task(ctx); err != nil {
			logger.Errorf("loop: sweep failed after %s: %v", time.Since(started).Truncate(time.Second), err)
			return
		}
		logger.Infof("loop: sweep completed in %s", time.Since(started).Truncate(time.Second))
	}

	runTask()
	if l.Interval <= 0 {
		logger.Infof("loop: one-shot mode, exiting after first sweep")
		return
	}

	ticker := time.NewTicker(l.Interval)
	defer ticker.Stop()
	logger.Infof("loop: started interval=%s", l.Interval)
	for {
		select {
		case <-ctx.Done():
			logger.Infof("loop: ctx done, exit")
			return
		case <-ticker.C:
			runTask()
		}
	}
}
