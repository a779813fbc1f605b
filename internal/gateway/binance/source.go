package binance

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"sift/internal/market"
	"sift/internal/universe"

	"github.com/adshao/go-binance/v2/futures"
	"github.com/shopspring/decimal"
)

// Source implements market.Source on top of the go-binance futures client.
type Source struct {
	cfg    Config
	client *futures.Client
}

func New(cfg Config) (*Source, error) {
	final := cfg.withDefaults()
	client := futures.NewClient("", "")
	client.BaseURL = strings.TrimSpace(final.RESTBaseURL)
	httpClient := &http.Client{Timeout: final.HTTPTimeout}
	if final.ProxyEnabled && final.RESTProxyURL != "" {
		proxyURL, err := url.Parse(final.RESTProxyURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REST proxy url: %w", err)
		}
		baseTransport, ok := http.DefaultTransport.(*http.Transport)
		if !ok || baseTransport == nil {
			return nil, fmt.Errorf("http DefaultTransport is not *http.Transport")
		}
		transport := baseTransport.Clone()
		transport.Proxy = http.ProxyURL(proxyURL)
		httpClient.Transport = transport
	}
	client.HTTPClient = httpClient
	return &Source{cfg: final, client: client}, nil
}

var _ market.Source = (*Source)(nil)

// PerpetualSymbols lists actively trading perpetual contracts quoted in the
// given settlement asset.
func (s *Source) PerpetualSymbols(ctx context.Context, quote string) ([]string, error) {
	if s == nil || s.client == nil {
		return nil, fmt.Errorf("binance source not initialized")
	}
	quote = strings.ToUpper(strings.TrimSpace(quote))
	if quote == "" {
		quote = "USDT"
	}
	info, err := s.client.NewExchangeInfoService().Do(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(info.Symbols))
	for _, sym := range info.Symbols {
		if sym.ContractType != "PERPETUAL" {
			continue
		}
		if !strings.EqualFold(sym.QuoteAsset, quote) {
			continue
		}
		if sym.Status != "TRADING" {
			continue
		}
		out = append(out, sym.Symbol)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no %s perpetual symbols returned", quote)
	}
	return out, nil
}

func (s *Source) RecentTrades(ctx context.Context, symbol string, limit int) ([]market.Trade, error) {
	if s == nil || s.client == nil {
		return nil, fmt.Errorf("binance source not initialized")
	}
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if limit <= 0 {
		limit = 500
	}
	if limit > 1000 {
		limit = 1000
	}
	raw, err := s.client.NewRecentTradesService().Symbol(symbol).Limit(limit).Do(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]market.Trade, 0, len(raw))
	for _, t := range raw {
		if t == nil {
			continue
		}
		qty, err := decimal.NewFromString(strings.TrimSpace(t.Quantity))
		if err != nil {
			continue
		}
		price, _ := decimal.NewFromString(strings.TrimSpace(t.Price))
		out = append(out, market.Trade{
			Price:      price,
			Quantity:   qty,
			BuyerMaker: t.IsBuyerMaker,
			Time:       t.Time,
		})
	}
	return out, nil
}

func (s *Source) OrderBook(ctx context.Context, symbol string, depth int) ([]market.BookLevel, []market.BookLevel, error) {
	if s == nil || s.client == nil {
		return nil, nil, fmt.Errorf("binance source not initialized")
	}
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, nil, fmt.Errorf("symbol is required")
	}
	res, err := s.client.NewDepthService().Symbol(symbol).Limit(allowedDepth(depth)).Do(ctx)
	if err != nil {
		return nil, nil, err
	}
	bids := make([]market.BookLevel, 0, len(res.Bids))
	for _, lvl := range res.Bids {
		if b, ok := toBookLevel(lvl.Price, lvl.Quantity); ok {
			bids = append(bids, b)
		}
	}
	asks := make([]market.BookLevel, 0, len(res.Asks))
	for _, lvl := range res.Asks {
		if a, ok := toBookLevel(lvl.Price, lvl.Quantity); ok {
			asks = append(asks, a)
		}
	}
	return bids, asks, nil
}

// allowedDepth snaps to the depth limits the futures endpoint accepts.
func allowedDepth(depth int) int {
	steps := []int{5, 10, 20, 50, 100, 500, 1000}
	if depth <= 0 {
		return 100
	}
	for _, step := range steps {
		if depth <= step {
			return step
		}
	}
	return 1000
}

func toBookLevel(price, qty string) (market.BookLevel, bool) {
	q, err := decimal.NewFromString(strings.TrimSpace(qty))
	if err != nil {
		return market.BookLevel{}, false
	}
	p, _ := decimal.NewFromString(strings.TrimSpace(price))
	return market.BookLevel{Price: p, Quantity: q}, true
}

func parseFloat(v string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(v), 64)
	return f
}

// UniverseProvider adapts Source to the instrument-directory contract.
type UniverseProvider struct {
	source *Source
	quote  string
}

func NewUniverseProvider(source *Source, quote string) *UniverseProvider {
	return &UniverseProvider{source: source, quote: quote}
}

func (p *UniverseProvider) Name() string { return "binance" }

func (p *UniverseProvider) List(ctx context.Context) ([]string, error) {
	return p.source.PerpetualSymbols(ctx, p.quote)
}

var _ universe.SymbolProvider = (*UniverseProvider)(nil)
