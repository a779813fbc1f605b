package universe

import (
	"context"
	"errors"
	"strings"
)

// SymbolProvider resolves the tradable instrument universe for a run.
type SymbolProvider interface {
	List(ctx context.Context) ([]string, error)
	Name() string
}

// NormalizeSymbols dedupes, uppercases and enforces the quote-asset suffix.
func NormalizeSymbols(symbols []string, quote string) ([]string, error) {
	if len(symbols) == 0 {
		return nil, errors.New("symbol list is empty")
	}
	quote = strings.ToUpper(strings.TrimSpace(quote))
	if quote == "" {
		quote = "USDT"
	}
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if !strings.HasSuffix(s, quote) {
			s += quote
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, errors.New("symbol list is empty after normalization")
	}
	return out, nil
}

// StaticProvider serves a fixed symbol list from config.
type StaticProvider struct {
	symbols []string
	quote   string
}

func NewStaticProvider(symbols []string, quote string) *StaticProvider {
	return &StaticProvider{symbols: symbols, quote: quote}
}

func (p *StaticProvider) Name() string { return "static" }

func (p *StaticProvider) List(_ context.Context) ([]string, error) {
	return NormalizeSymbols(p.symbols, p.quote)
}
