package app

import (
	"context"
	"testing"
	"time"

	"sift/internal/config"
	"sift/internal/insight"
	"sift/internal/market"
	"sift/internal/pipeline"
	"sift/internal/scheduler"
	"sift/internal/store"
	sifthttp "sift/internal/transport/http"
	"sift/internal/universe"

	"github.com/stretchr/testify/require"
)

type stubStore struct{}

func (stubStore) HasInsight(ctx context.Context, symbol, date string) (bool, error) {
	return false, nil
}

func (stubStore) InsertInsight(ctx context.Context, rec store.InsightRecord) error { return nil }

func (stubStore) ListInsights(ctx context.Context, date string, minScore int) ([]store.InsightRecord, error) {
	return nil, nil
}

func (stubStore) Close() error { return nil }

type stubCollector struct{}

// incomplete snapshot: the sweep skips the symbol without remote calls
func (stubCollector) Collect(ctx context.Context, symbol, date string) market.Snapshot {
	return market.Snapshot{Symbol: symbol, Date: date}
}

type stubGenerator struct{}

func (stubGenerator) Generate(ctx context.Context, snap market.Snapshot) (insight.Result, error) {
	return insight.Result{}, nil
}

func newStubApp(t *testing.T, interval time.Duration, withHTTP bool) *App {
	t.Helper()
	st := stubStore{}
	runner, err := pipeline.NewRunner(pipeline.RunnerParams{
		Universe:  universe.NewStaticProvider([]string{"BTCUSDT"}, "USDT"),
		Collector: stubCollector{},
		Generator: stubGenerator{},
		Store:     st,
	})
	require.NoError(t, err)

	a := &App{
		cfg:    &config.Config{},
		runner: runner,
		loop:   scheduler.NewLoop(interval),
		store:  st,
	}
	if withHTTP {
		srv, err := sifthttp.NewServer(sifthttp.Config{Addr: "127.0.0.1:0", Store: st})
		require.NoError(t, err)
		a.http = srv
	}
	return a
}

func TestRunOneShotExitsWithHTTPEnabled(t *testing.T) {
	a := newStubApp(t, 0, true)

	done := make(chan error, 1)
	go func() { done <- a.Run(context.Background()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("one-shot run did not exit while the dashboard server was enabled")
	}
}

func TestRunIntervalModeStopsOnCancel(t *testing.T) {
	a := newStubApp(t, time.Hour, true)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("run did not stop after context cancellation")
	}
}
