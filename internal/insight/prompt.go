package insight

import (
	"fmt"
	"strings"

	"sift/internal/market"
)

const unavailable = "unavailable"

// BuildPrompt renders the fixed-structure analysis prompt from a metric
// snapshot. Missing features are rendered as "unavailable" rather than
// omitted so the model sees a stable shape.
func BuildPrompt(snap market.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Symbol: %s\n", strings.ToUpper(strings.TrimSpace(snap.Symbol)))
	fmt.Fprintf(&b, "Funding Rate: %s\n", floatField(snap.FundingRate, snap.HasFunding, "%.6f"))
	fmt.Fprintf(&b, "Open Interest: %s\n", floatField(snap.OpenInterest, snap.HasOpenInterest, "%.2f"))
	fmt.Fprintf(&b, "Long/Short Ratio: %s\n", floatField(snap.LongShortRatio, snap.HasLongShort, "%.2f"))
	fmt.Fprintf(&b, "Taker Buy/Sell Ratio: %s\n", floatField(snap.TakerRatio, snap.HasTakerRatio, "%.2f"))
	if snap.HasBook {
		fmt.Fprintf(&b, "Order Book Imbalance: %s (%s)\n", snap.Book.Imbalance.StringFixed(2), snap.Book.Summary)
	} else {
		fmt.Fprintf(&b, "Order Book Imbalance: %s\n", unavailable)
	}
	if snap.HasCVD {
		fmt.Fprintf(&b, "CVD: %s (%s)\n", snap.CVD.Delta.StringFixed(2), snap.CVD.Summary)
	} else {
		fmt.Fprintf(&b, "CVD: %s\n", unavailable)
	}
	b.WriteString(`
As an institutional trader, provide a professional-grade insight with:
- Market Bias (bullish or bearish)
- Confidence Score (0-100%)
- Risk Level (Low/Medium/High)
- Recommended Action (Long / Short / Avoid)
Justify briefly.`)
	return b.String()
}

func floatField(v float64, ok bool, format string) string {
	if !ok {
		return unavailable
	}
	return fmt.Sprintf(format, v)
}
