package pipeline

import (
	"context"
	"fmt"
	"time"

	"sift/internal/gateway/notifier"
	"sift/internal/insight"
	"sift/internal/logger"
	"sift/internal/market"
	"sift/internal/scheduler"
	"sift/internal/store"
	"sift/internal/universe"

	"github.com/google/uuid"
)

// FeatureCollector is what the driver needs from the metric aggregator.
type FeatureCollector interface {
	Collect(ctx context.Context, symbol, date string) market.Snapshot
}

// Outcome labels how one symbol's pass through the pipeline ended.
type Outcome int

const (
	OutcomeFailed Outcome = iota
	OutcomeSkipped
	OutcomeIncomplete
	OutcomeSaved
	OutcomeNotified
)

// Summary tallies one sweep. Notified counts delivered alerts only; a
// threshold-crossing insight whose dispatch failed still counts as Saved.
type Summary struct {
	RunID      string
	Date       string
	Universe   int
	Batch      int
	Skipped    int
	Incomplete int
	Failed     int
	Saved      int
	Notified   int
}

// RunnerParams wires the driver's collaborators.
type RunnerParams struct {
	Universe  universe.SymbolProvider
	Sampler   Sampler
	Collector FeatureCollector
	Generator insight.Generator
	Policy    AlertPolicy
	Store     store.InsightStore
	// Notifier may be nil; alerts are then logged only.
	Notifier notifier.TextNotifier
	Pacer    scheduler.Pacer
	// Now is injectable for deterministic day keys in tests.
	Now func() time.Time
}

// Runner drives the per-symbol pipeline sequentially over a sweep:
// gate check, aggregate, generate, score, persist, optionally notify,
// then pace before the next symbol. One symbol's failure never aborts
// the rest; only universe resolution is fatal.
type Runner struct {
	universe  universe.SymbolProvider
	sampler   Sampler
	collector FeatureCollector
	generator insight.Generator
	policy    AlertPolicy
	store     store.InsightStore
	notifier  notifier.TextNotifier
	pacer     scheduler.Pacer
	now       func() time.Time
}

func NewRunner(p RunnerParams) (*Runner, error) {
	if p.Universe == nil {
		return nil, fmt.Errorf("runner requires a universe provider")
	}
	if p.Collector == nil {
		return nil, fmt.Errorf("runner requires a feature collector")
	}
	if p.Generator == nil {
		return nil, fmt.Errorf("runner requires an insight generator")
	}
	if p.Store == nil {
		return nil, fmt.Errorf("runner requires an insight store")
	}
	if p.Sampler == nil {
		p.Sampler = FullSweep{}
	}
	if p.Pacer == nil {
		p.Pacer = scheduler.NopPacer{}
	}
	if p.Policy.Threshold <= 0 {
		p.Policy = NewAlertPolicy(0)
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	return &Runner{
		universe:  p.Universe,
		sampler:   p.Sampler,
		collector: p.Collector,
		generator: p.Generator,
		policy:    p.Policy,
		store:     p.Store,
		notifier:  p.Notifier,
		pacer:     p.Pacer,
		now:       p.Now,
	}, nil
}

// DayKey truncates t to the UTC calendar day used as the idempotency key.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// RunOnce executes one sweep. The returned error is non-nil only for
// fatal conditions: universe resolution failure or context cancellation.
func (r *Runner) RunOnce(ctx context.Context) (Summary, error) {
	summary := Summary{
		RunID: uuid.NewString(),
		Date:  DayKey(r.now()),
	}
	symbols, err := r.universe.List(ctx)
	if err != nil {
		return summary, fmt.Errorf("resolving universe via %s: %w", r.universe.Name(), err)
	}
	summary.Universe = len(symbols)

	batch := r.sampler.Sample(symbols)
	summary.Batch = len(batch)
	logger.Infof("run %s: date=%s universe=%d mode=%s batch=%d threshold=%d",
		summary.RunID, summary.Date, summary.Universe, r.sampler.Name(), summary.Batch, r.policy.Threshold)

	for _, symbol := range batch {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		switch r.processSymbol(ctx, symbol, summary.Date) {
		case OutcomeSkipped:
			summary.Skipped++
			// gate skip issues no remote calls, no pacing needed
			continue
		case OutcomeIncomplete:
			summary.Incomplete++
		case OutcomeFailed:
			summary.Failed++
		case OutcomeSaved:
			summary.Saved++
		case OutcomeNotified:
			summary.Saved++
			summary.Notified++
		}
		if err := r.pacer.Wait(ctx); err != nil {
			return summary, err
		}
	}

	logger.Infof("run %s: done saved=%d notified=%d skipped=%d incomplete=%d failed=%d",
		summary.RunID, summary.Saved, summary.Notified, summary.Skipped, summary.Incomplete, summary.Failed)
	return summary, nil
}

func (r *Runner) processSymbol(ctx context.Context, symbol, date string) Outcome {
	exists, err := r.store.HasInsight(ctx, symbol, date)
	if err != nil {
		logger.Errorf("%s: gate check failed: %v", symbol, err)
		return OutcomeFailed
	}
	if exists {
		logger.Debugf("%s: already analyzed for %s, skipping", symbol, date)
		return OutcomeSkipped
	}

	snap := r.collector.Collect(ctx, symbol, date)
	if !snap.Complete() {
		logger.Warnf("%s: incomplete data (%s), skipping", symbol, snap.MissingSummary())
		return OutcomeIncomplete
	}

	res, err := r.generator.Generate(ctx, snap)
	if err != nil {
		logger.Errorf("%s: insight generation failed: %v", symbol, err)
		return OutcomeFailed
	}
	if res.RawScore != res.Score {
		logger.Warnf("%s: confidence %d%% out of range, clamped to %d%%", symbol, res.RawScore, res.Score)
	}
	logger.Infof("%s: insight [%d%%]", symbol, res.Score)

	metrics, err := snap.MetricsJSON()
	if err != nil {
		logger.Warnf("%s: metrics serialization failed: %v", symbol, err)
		metrics = nil
	}
	rec := store.InsightRecord{
		Symbol:    symbol,
		Date:      date,
		Score:     res.Score,
		Insight:   res.Text,
		Metrics:   metrics,
		CreatedAt: r.now().UTC(),
	}
	if err := r.store.InsertInsight(ctx, rec); err != nil {
		logger.Errorf("%s: persisting insight failed: %v", symbol, err)
		return OutcomeFailed
	}

	if !r.policy.ShouldNotify(res.Score) {
		return OutcomeSaved
	}
	if r.notifier == nil {
		logger.Infof("%s: alert threshold reached (%d%%), notifier disabled", symbol, res.Score)
		return OutcomeSaved
	}
	msg := notifier.AlertMessage{
		Symbol:    symbol,
		Score:     res.Score,
		Insight:   res.Text,
		Timestamp: r.now(),
	}
	if err := r.notifier.SendText(ctx, msg.RenderMarkdown()); err != nil {
		// record is already persisted; a lost notification is not a failed symbol
		logger.Warnf("%s: alert dispatch failed: %v", symbol, err)
		return OutcomeSaved
	}
	return OutcomeNotified
}
