package market

import "github.com/shopspring/decimal"

// DefaultDepthLimit bounds the top-of-book window used for imbalance.
const DefaultDepthLimit = 100

const (
	ImbalanceBuyWall  = "Strong Buy Wall"
	ImbalanceSellWall = "Strong Sell Wall"
	ImbalanceBalanced = "Balanced"
)

// ImbalanceMetrics summarizes resting bid/ask volume within a bounded depth.
type ImbalanceMetrics struct {
	BidVolume decimal.Decimal
	AskVolume decimal.Decimal
	Imbalance decimal.Decimal
	Summary   string
}

// ComputeImbalance sums quantities on each side of the book and reports
// bid volume minus ask volume. Levels beyond depth are ignored; a missing
// side contributes zero volume. depth<=0 falls back to DefaultDepthLimit.
func ComputeImbalance(bids, asks []BookLevel, depth int) ImbalanceMetrics {
	if depth <= 0 {
		depth = DefaultDepthLimit
	}
	bidVol := sideVolume(bids, depth)
	askVol := sideVolume(asks, depth)
	imbalance := bidVol.Sub(askVol)
	summary := ImbalanceBalanced
	switch imbalance.Sign() {
	case 1:
		summary = ImbalanceBuyWall
	case -1:
		summary = ImbalanceSellWall
	}
	return ImbalanceMetrics{
		BidVolume: bidVol,
		AskVolume: askVol,
		Imbalance: imbalance,
		Summary:   summary,
	}
}

func sideVolume(levels []BookLevel, depth int) decimal.Decimal {
	if len(levels) > depth {
		levels = levels[:depth]
	}
	total := decimal.Zero
	for _, lvl := range levels {
		total = total.Add(lvl.Quantity)
	}
	return total
}
