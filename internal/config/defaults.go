package config

const (
	defaultAppEnv        = "dev"
	defaultAppLogLevel   = "info"
	defaultAppHTTPAddr   = ":8880"
	defaultBinanceREST   = "https://fapi.binance.com"
	defaultBinanceTO     = 15
	defaultQuoteAsset    = "USDT"
	defaultAIAPIURL      = "https://openrouter.ai/api/v1"
	defaultAIModel       = "deepseek/deepseek-chat"
	defaultAITimeout     = 60
	defaultAIMaxRetries  = 2
	defaultStorePath     = "data/insights.db"
	defaultPipelineMode  = "full"
	defaultBatchSize     = 10
	defaultPaceSeconds   = 2
	defaultAlertScore    = 85
	defaultRatioPeriod   = "1h"
	defaultTradeLimit    = 1000
	defaultDepthLimit    = 100
)

func (c *Config) applyDefaults() {
	c.App.applyDefaults()
	c.Binance.applyDefaults()
	c.Universe.applyDefaults()
	c.AI.applyDefaults()
	c.Store.applyDefaults()
	c.Pipeline.applyDefaults()
}

func (a *AppConfig) applyDefaults() {
	if a.Env == "" {
		a.Env = defaultAppEnv
	}
	if a.LogLevel == "" {
		a.LogLevel = defaultAppLogLevel
	}
	if a.HTTPAddr == "" {
		a.HTTPAddr = defaultAppHTTPAddr
	}
}

func (b *BinanceConfig) applyDefaults() {
	if b.RESTBaseURL == "" {
		b.RESTBaseURL = defaultBinanceREST
	}
	if b.TimeoutSeconds <= 0 {
		b.TimeoutSeconds = defaultBinanceTO
	}
}

func (u *UniverseConfig) applyDefaults() {
	if u.QuoteAsset == "" {
		u.QuoteAsset = defaultQuoteAsset
	}
}

func (a *AIConfig) applyDefaults() {
	if a.APIURL == "" {
		a.APIURL = defaultAIAPIURL
	}
	if a.Model == "" {
		a.Model = defaultAIModel
	}
	if a.TimeoutSeconds <= 0 {
		a.TimeoutSeconds = defaultAITimeout
	}
	if a.MaxRetries < 0 {
		a.MaxRetries = defaultAIMaxRetries
	}
}

func (s *StoreConfig) applyDefaults() {
	if s.Path == "" {
		s.Path = defaultStorePath
	}
}

func (p *PipelineConfig) applyDefaults() {
	if p.Mode == "" {
		p.Mode = defaultPipelineMode
	}
	if p.BatchSize <= 0 {
		p.BatchSize = defaultBatchSize
	}
	if p.PaceSeconds <= 0 {
		p.PaceSeconds = defaultPaceSeconds
	}
	if p.AlertThreshold <= 0 {
		p.AlertThreshold = defaultAlertScore
	}
	if p.RatioPeriod == "" {
		p.RatioPeriod = defaultRatioPeriod
	}
	if p.TradeLimit <= 0 {
		p.TradeLimit = defaultTradeLimit
	}
	if p.DepthLimit <= 0 {
		p.DepthLimit = defaultDepthLimit
	}
}
