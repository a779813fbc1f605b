package binance

import (
	"context"
	"fmt"
	"strings"
)

// FundingRate returns the latest funding rate (e.g. 0.0001 for 0.01%).
func (s *Source) FundingRate(ctx context.Context, symbol string) (float64, error) {
	if s == nil || s.client == nil {
		return 0, fmt.Errorf("binance source not initialized")
	}
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return 0, fmt.Errorf("symbol is required")
	}
	res, err := s.client.NewPremiumIndexService().Symbol(symbol).Do(ctx)
	if err != nil {
		return 0, err
	}
	for _, entry := range res {
		if entry == nil {
			continue
		}
		if strings.EqualFold(entry.Symbol, symbol) {
			return parseFloat(entry.LastFundingRate), nil
		}
	}
	if len(res) > 0 && res[0] != nil {
		return parseFloat(res[0].LastFundingRate), nil
	}
	return 0, fmt.Errorf("funding rate not available for %s", symbol)
}

// OpenInterest returns the current open interest in contracts.
func (s *Source) OpenInterest(ctx context.Context, symbol string) (float64, error) {
	if s == nil || s.client == nil {
		return 0, fmt.Errorf("binance source not initialized")
	}
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return 0, fmt.Errorf("symbol is required")
	}
	res, err := s.client.NewGetOpenInterestService().Symbol(symbol).Do(ctx)
	if err != nil {
		return 0, err
	}
	if res == nil {
		return 0, fmt.Errorf("open interest not available for %s", symbol)
	}
	return parseFloat(res.OpenInterest), nil
}

// GlobalLongShortRatio returns the latest global long/short account ratio
// for the given lookback period.
func (s *Source) GlobalLongShortRatio(ctx context.Context, symbol, period string) (float64, error) {
	if s == nil || s.client == nil {
		return 0, fmt.Errorf("binance source not initialized")
	}
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	period = strings.ToLower(strings.TrimSpace(period))
	if symbol == "" || period == "" {
		return 0, fmt.Errorf("symbol and period are required")
	}
	raw, err := s.client.NewLongShortRatioService().
		Symbol(symbol).
		Period(period).
		Limit(1).
		Do(ctx)
	if err != nil {
		return 0, err
	}
	for i := len(raw) - 1; i >= 0; i-- {
		if raw[i] == nil {
			continue
		}
		return parseFloat(raw[i].LongShortRatio), nil
	}
	return 0, fmt.Errorf("long/short ratio not available for %s", symbol)
}

// TakerBuySellRatio returns the latest taker buy/sell volume ratio for the
// given lookback period.
func (s *Source) TakerBuySellRatio(ctx context.Context, symbol, period string) (float64, error) {
	if s == nil || s.client == nil {
		return 0, fmt.Errorf("binance source not initialized")
	}
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	period = strings.ToLower(strings.TrimSpace(period))
	if symbol == "" || period == "" {
		return 0, fmt.Errorf("symbol and period are required")
	}
	raw, err := s.client.NewTakerLongShortRatioService().
		Symbol(symbol).
		Period(period).
		Limit(1).
		Do(ctx)
	if err != nil {
		return 0, err
	}
	for i := len(raw) - 1; i >= 0; i-- {
		if raw[i] == nil {
			continue
		}
		return parseFloat(raw[i].BuySellRatio), nil
	}
	return 0, fmt.Errorf("taker buy/sell ratio not available for %s", symbol)
}
