package market

import (
	"context"
	"fmt"
	"strings"

	"sift/internal/logger"
)

// Source abstracts the futures market-data endpoints the feature service
// needs. Each method is one independent remote call.
type Source interface {
	FundingRate(ctx context.Context, symbol string) (float64, error)
	OpenInterest(ctx context.Context, symbol string) (float64, error)
	GlobalLongShortRatio(ctx context.Context, symbol, period string) (float64, error)
	TakerBuySellRatio(ctx context.Context, symbol, period string) (float64, error)
	OrderBook(ctx context.Context, symbol string, depth int) (bids, asks []BookLevel, err error)
	RecentTrades(ctx context.Context, symbol string, limit int) ([]Trade, error)
}

// FeatureServiceConfig tunes the per-symbol fetch windows.
type FeatureServiceConfig struct {
	RatioPeriod string
	TradeLimit  int
	DepthLimit  int
}

func (c *FeatureServiceConfig) withDefaults() FeatureServiceConfig {
	out := *c
	out.RatioPeriod = strings.ToLower(strings.TrimSpace(out.RatioPeriod))
	if out.RatioPeriod == "" {
		out.RatioPeriod = "1h"
	}
	if out.TradeLimit <= 0 {
		out.TradeLimit = 1000
	}
	if out.DepthLimit <= 0 {
		out.DepthLimit = DefaultDepthLimit
	}
	return out
}

// FeatureService gathers the full feature set for one symbol. Sub-fetches
// run sequentially and never retry; a failed or empty result leaves the
// corresponding availability flag unset and is recorded in Snapshot.Errors.
type FeatureService struct {
	source Source
	cfg    FeatureServiceConfig
}

func NewFeatureService(source Source, cfg FeatureServiceConfig) (*FeatureService, error) {
	if source == nil {
		return nil, fmt.Errorf("feature service requires a market source")
	}
	return &FeatureService{source: source, cfg: cfg.withDefaults()}, nil
}

// Collect builds the snapshot for symbol on the given UTC day.
func (s *FeatureService) Collect(ctx context.Context, symbol, date string) Snapshot {
	snap := Snapshot{Symbol: symbol, Date: date}
	var errs strings.Builder

	if rate, err := s.source.FundingRate(ctx, symbol); err != nil {
		errs.WriteString(fmt.Sprintf("funding rate: %v; ", err))
	} else {
		snap.FundingRate = rate
		snap.HasFunding = true
	}

	if oi, err := s.source.OpenInterest(ctx, symbol); err != nil {
		errs.WriteString(fmt.Sprintf("open interest: %v; ", err))
	} else {
		snap.OpenInterest = oi
		snap.HasOpenInterest = true
	}

	if ratio, err := s.source.GlobalLongShortRatio(ctx, symbol, s.cfg.RatioPeriod); err != nil {
		errs.WriteString(fmt.Sprintf("long/short ratio: %v; ", err))
	} else {
		snap.LongShortRatio = ratio
		snap.HasLongShort = true
	}

	if ratio, err := s.source.TakerBuySellRatio(ctx, symbol, s.cfg.RatioPeriod); err != nil {
		errs.WriteString(fmt.Sprintf("taker ratio: %v; ", err))
	} else {
		snap.TakerRatio = ratio
		snap.HasTakerRatio = true
	}

	if bids, asks, err := s.source.OrderBook(ctx, symbol, s.cfg.DepthLimit); err != nil {
		errs.WriteString(fmt.Sprintf("order book: %v; ", err))
	} else if len(bids) == 0 && len(asks) == 0 {
		errs.WriteString("order book: empty snapshot; ")
	} else {
		snap.Book = ComputeImbalance(bids, asks, s.cfg.DepthLimit)
		snap.HasBook = true
	}

	if trades, err := s.source.RecentTrades(ctx, symbol, s.cfg.TradeLimit); err != nil {
		errs.WriteString(fmt.Sprintf("recent trades: %v; ", err))
	} else if len(trades) == 0 {
		errs.WriteString("recent trades: no data; ")
	} else {
		snap.CVD = ComputeCVD(trades)
		snap.HasCVD = true
	}

	snap.Errors = strings.TrimSuffix(errs.String(), "; ")
	if snap.Errors != "" {
		logger.Warnf("features: %s partial data: %s", symbol, snap.Errors)
	}
	return snap
}
