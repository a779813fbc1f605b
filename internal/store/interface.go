package store

import (
	"context"
	"encoding/json"
	"time"
)

// InsightRecord is the persisted unit of pipeline output. At most one
// record exists per (symbol, date); the pipeline's gate check enforces
// this before any work is done for a symbol.
type InsightRecord struct {
	Symbol    string          `json:"symbol"`
	Date      string          `json:"date"`
	Score     int             `json:"score"`
	Insight   string          `json:"insight"`
	Metrics   json.RawMessage `json:"metrics,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// InsightStore is the durable store contract the pipeline depends on.
type InsightStore interface {
	// HasInsight is the idempotency gate: true when a record already
	// exists for (symbol, UTC day).
	HasInsight(ctx context.Context, symbol, date string) (bool, error)
	InsertInsight(ctx context.Context, rec InsightRecord) error
	// ListInsights returns the records for one day with score >= minScore,
	// highest score first.
	ListInsights(ctx context.Context, date string, minScore int) ([]InsightRecord, error)
	Close() error
}
