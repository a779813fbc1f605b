package market

import "encoding/json"

// MetricsJSON serializes the available features for persistence alongside
// the insight record. Unavailable features are omitted.
func (s Snapshot) MetricsJSON() ([]byte, error) {
	out := make(map[string]any, 6)
	if s.HasFunding {
		out["funding_rate"] = s.FundingRate
	}
	if s.HasOpenInterest {
		out["open_interest"] = s.OpenInterest
	}
	if s.HasLongShort {
		out["long_short_ratio"] = s.LongShortRatio
	}
	if s.HasTakerRatio {
		out["taker_buy_sell_ratio"] = s.TakerRatio
	}
	if s.HasBook {
		out["order_book_imbalance"] = map[string]any{
			"bid_volume": s.Book.BidVolume,
			"ask_volume": s.Book.AskVolume,
			"imbalance":  s.Book.Imbalance,
			"summary":    s.Book.Summary,
		}
	}
	if s.HasCVD {
		out["cvd"] = map[string]any{
			"delta":       s.CVD.Delta,
			"buy_volume":  s.CVD.BuyVolume,
			"sell_volume": s.CVD.SellVolume,
			"summary":     s.CVD.Summary,
		}
	}
	return json.Marshal(out)
}
