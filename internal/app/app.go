package app

import (
	"context"
	"fmt"
	"time"

	"sift/internal/config"
	"sift/internal/gateway/binance"
	"sift/internal/gateway/notifier"
	"sift/internal/gateway/provider"
	"sift/internal/insight"
	"sift/internal/logger"
	"sift/internal/market"
	"sift/internal/pipeline"
	"sift/internal/scheduler"
	"sift/internal/store"
	"sift/internal/store/gormstore"
	sifthttp "sift/internal/transport/http"
	"sift/internal/universe"

	"golang.org/x/sync/errgroup"
)

// App wires configuration into the running pieces: the sweep loop and,
// when enabled, the dashboard API.
type App struct {
	cfg    *config.Config
	runner *pipeline.Runner
	loop   *scheduler.Loop
	http   *sifthttp.Server
	store  store.InsightStore
}

func NewApp(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}

	insightStore, err := gormstore.NewGormStore(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("opening insight store: %w", err)
	}

	source, err := binance.New(binance.Config{
		RESTBaseURL:  cfg.Binance.RESTBaseURL,
		HTTPTimeout:  time.Duration(cfg.Binance.TimeoutSeconds) * time.Second,
		ProxyEnabled: cfg.Binance.ProxyEnabled,
		RESTProxyURL: cfg.Binance.RESTProxyURL,
	})
	if err != nil {
		insightStore.Close()
		return nil, fmt.Errorf("building market source: %w", err)
	}

	var symbols universe.SymbolProvider
	if len(cfg.Universe.Symbols) > 0 {
		symbols = universe.NewStaticProvider(cfg.Universe.Symbols, cfg.Universe.QuoteAsset)
	} else {
		symbols = binance.NewUniverseProvider(source, cfg.Universe.QuoteAsset)
	}

	features, err := market.NewFeatureService(source, market.FeatureServiceConfig{
		RatioPeriod: cfg.Pipeline.RatioPeriod,
		TradeLimit:  cfg.Pipeline.TradeLimit,
		DepthLimit:  cfg.Pipeline.DepthLimit,
	})
	if err != nil {
		insightStore.Close()
		return nil, err
	}

	generator, err := insight.NewModelGenerator(&provider.ChatClient{
		BaseURL:    cfg.AI.APIURL,
		APIKey:     cfg.AI.APIKey,
		Model:      cfg.AI.Model,
		Timeout:    time.Duration(cfg.AI.TimeoutSeconds) * time.Second,
		MaxRetries: cfg.AI.MaxRetries,
	})
	if err != nil {
		insightStore.Close()
		return nil, err
	}

	var alerts notifier.TextNotifier
	if cfg.Notify.Telegram.Enabled {
		alerts = notifier.NewTelegram(cfg.Notify.Telegram.BotToken, cfg.Notify.Telegram.ChatID)
	}

	var sampler pipeline.Sampler
	if cfg.Pipeline.Mode == "batch" {
		sampler = pipeline.NewRandomBatch(cfg.Pipeline.BatchSize, cfg.Pipeline.Seed)
	} else {
		sampler = pipeline.FullSweep{}
	}

	runner, err := pipeline.NewRunner(pipeline.RunnerParams{
		Universe:  symbols,
		Sampler:   sampler,
		Collector: features,
		Generator: generator,
		Policy:    pipeline.NewAlertPolicy(cfg.Pipeline.AlertThreshold),
		Store:     insightStore,
		Notifier:  alerts,
		Pacer:     scheduler.NewIntervalPacer(time.Duration(cfg.Pipeline.PaceSeconds) * time.Second),
	})
	if err != nil {
		insightStore.Close()
		return nil, err
	}

	a := &App{
		cfg:    cfg,
		runner: runner,
		loop:   scheduler.NewLoop(time.Duration(cfg.Pipeline.IntervalSeconds) * time.Second),
		store:  insightStore,
	}
	if cfg.App.HTTPEnabled {
		srv, err := sifthttp.NewServer(sifthttp.Config{
			Addr:      cfg.App.HTTPAddr,
			Store:     insightStore,
			Threshold: cfg.Pipeline.AlertThreshold,
		})
		if err != nil {
			insightStore.Close()
			return nil, err
		}
		a.http = srv
	}
	return a, nil
}

// Run blocks until ctx is cancelled, the one-shot sweep finishes, or a
// fatal error surfaces (universe resolution, HTTP listener).
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.runner == nil {
		return fmt.Errorf("app not initialized")
	}
	defer a.store.Close()

	logger.Infof("sift starting env=%s mode=%s interval=%ds alert_threshold=%d",
		a.cfg.App.Env, a.cfg.Pipeline.Mode, a.cfg.Pipeline.IntervalSeconds, a.cfg.Pipeline.AlertThreshold)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	group, runCtx := errgroup.WithContext(runCtx)

	if a.http != nil {
		group.Go(func() error {
			if err := a.http.Start(runCtx); err != nil {
				return fmt.Errorf("http server error: %w", err)
			}
			return nil
		})
	}

	group.Go(func() error {
		// when the loop finishes (one-shot mode), bring the HTTP
		// server down with it so Run returns
		defer cancel()
		var fatal error
		a.loop.Start(runCtx, func(ctx context.Context) error {
			_, err := a.runner.RunOnce(ctx)
			if err != nil && a.loop.Interval <= 0 {
				// one-shot runs surface fatal sweep errors to the caller
				fatal = err
			}
			return err
		})
		return fatal
	})

	return group.Wait()
}
