package market

import "github.com/shopspring/decimal"

const (
	CVDHiddenBuying  = "Showing hidden buying"
	CVDHiddenSelling = "Showing hidden selling"
	CVDNeutral       = "Neutral CVD"
)

// CVDMetrics summarizes cumulative volume delta over a trade window.
type CVDMetrics struct {
	Delta      decimal.Decimal
	BuyVolume  decimal.Decimal
	SellVolume decimal.Decimal
	Summary    string
}

// ComputeCVD accumulates signed taker volume: +qty for taker buys
// (buyer is not the maker), -qty for taker sells. The sum is order
// independent, so callers may pass trades in any order.
func ComputeCVD(trades []Trade) CVDMetrics {
	delta := decimal.Zero
	buy := decimal.Zero
	sell := decimal.Zero
	for _, t := range trades {
		if t.BuyerMaker {
			delta = delta.Sub(t.Quantity)
			sell = sell.Add(t.Quantity)
		} else {
			delta = delta.Add(t.Quantity)
			buy = buy.Add(t.Quantity)
		}
	}
	summary := CVDNeutral
	switch delta.Sign() {
	case 1:
		summary = CVDHiddenBuying
	case -1:
		summary = CVDHiddenSelling
	}
	return CVDMetrics{
		Delta:      delta,
		BuyVolume:  buy,
		SellVolume: sell,
		Summary:    summary,
	}
}
