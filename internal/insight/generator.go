package insight

import (
	"context"
	"fmt"

	"sift/internal/gateway/provider"
	"sift/internal/market"
)

// Result carries the generated insight text and its confidence score.
// RawScore preserves the unclamped regex extraction; Score is bounded
// to [0, 100].
type Result struct {
	Text     string
	Score    int
	RawScore int
}

// Generator turns a metric snapshot into a scored natural-language insight.
type Generator interface {
	Generate(ctx context.Context, snap market.Snapshot) (Result, error)
}

// ModelGenerator renders the prompt, calls the text-completion provider
// and mines the confidence score out of the free-text response.
type ModelGenerator struct {
	provider provider.ModelProvider
}

func NewModelGenerator(p provider.ModelProvider) (*ModelGenerator, error) {
	if p == nil {
		return nil, fmt.Errorf("insight generator requires a model provider")
	}
	return &ModelGenerator{provider: p}, nil
}

// Generate returns an error only when the completion call itself fails;
// an unparseable response is not an error and scores 0.
func (g *ModelGenerator) Generate(ctx context.Context, snap market.Snapshot) (Result, error) {
	prompt := BuildPrompt(snap)
	text, err := g.provider.Complete(ctx, prompt)
	if err != nil {
		return Result{}, fmt.Errorf("completion call for %s: %w", snap.Symbol, err)
	}
	raw := ExtractScore(text)
	return Result{
		Text:     text,
		RawScore: raw,
		Score:    ClampScore(raw),
	}, nil
}

var _ Generator = (*ModelGenerator)(nil)
