package market

import "strings"

// Snapshot is the full feature set for one symbol at one sampling instant.
// Each feature carries an availability flag so a failed or empty sub-fetch
// degrades to "unavailable" instead of aborting the symbol.
type Snapshot struct {
	Symbol string
	Date   string

	FundingRate float64
	HasFunding  bool

	OpenInterest    float64
	HasOpenInterest bool

	LongShortRatio float64
	HasLongShort   bool

	TakerRatio    float64
	HasTakerRatio bool

	Book    ImbalanceMetrics
	HasBook bool

	CVD    CVDMetrics
	HasCVD bool

	// Errors aggregates sub-fetch failures for logging.
	Errors string
}

// Complete reports whether every feature was resolved.
func (s Snapshot) Complete() bool {
	return s.HasFunding && s.HasOpenInterest && s.HasLongShort &&
		s.HasTakerRatio && s.HasBook && s.HasCVD
}

// Missing lists the unavailable feature names.
func (s Snapshot) Missing() []string {
	var out []string
	if !s.HasFunding {
		out = append(out, "funding_rate")
	}
	if !s.HasOpenInterest {
		out = append(out, "open_interest")
	}
	if !s.HasLongShort {
		out = append(out, "long_short_ratio")
	}
	if !s.HasTakerRatio {
		out = append(out, "taker_buy_sell_ratio")
	}
	if !s.HasBook {
		out = append(out, "order_book_imbalance")
	}
	if !s.HasCVD {
		out = append(out, "cvd")
	}
	return out
}

// MissingSummary renders Missing() for log lines.
func (s Snapshot) MissingSummary() string {
	return strings.Join(s.Missing(), ", ")
}
