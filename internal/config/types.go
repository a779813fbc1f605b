package config

// Config is the top-level configuration carrier.
type Config struct {
	App      AppConfig      `toml:"app"`
	Binance  BinanceConfig  `toml:"binance"`
	Universe UniverseConfig `toml:"universe"`
	AI       AIConfig       `toml:"ai"`
	Notify   NotifyConfig   `toml:"notify"`
	Store    StoreConfig    `toml:"store"`
	Pipeline PipelineConfig `toml:"pipeline"`
}

type AppConfig struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`
	LogPath  string `toml:"log_path"`
	HTTPAddr string `toml:"http_addr"`
	// HTTPEnabled toggles the read-only dashboard API.
	HTTPEnabled bool `toml:"http_enabled"`
}

type BinanceConfig struct {
	RESTBaseURL    string `toml:"rest_base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	ProxyEnabled   bool   `toml:"proxy_enabled"`
	RESTProxyURL   string `toml:"rest_proxy_url"`
}

type UniverseConfig struct {
	// QuoteAsset filters the perpetual universe, e.g. "USDT".
	QuoteAsset string `toml:"quote_asset"`
	// Symbols, when non-empty, replaces exchange enumeration with a
	// fixed list.
	Symbols []string `toml:"symbols"`
}

type AIConfig struct {
	APIURL         string `toml:"api_url"`
	APIKey         string `toml:"api_key"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	MaxRetries     int    `toml:"max_retries"`
}

type NotifyConfig struct {
	Telegram TelegramConfig `toml:"telegram"`
}

type TelegramConfig struct {
	Enabled  bool   `toml:"enabled"`
	BotToken string `toml:"bot_token"`
	ChatID   string `toml:"chat_id"`
}

type StoreConfig struct {
	Path string `toml:"path"`
}

type PipelineConfig struct {
	// Mode is "full" (whole universe per sweep) or "batch" (random
	// contiguous window of BatchSize symbols).
	Mode      string `toml:"mode"`
	BatchSize int    `toml:"batch_size"`
	// Seed pins batch sampling for reproducible runs; 0 means time-seeded.
	Seed int64 `toml:"seed"`
	// IntervalSeconds between sweeps; 0 runs a single sweep and exits.
	IntervalSeconds int `toml:"interval_seconds"`
	// PaceSeconds between symbols inside a sweep.
	PaceSeconds    int    `toml:"pace_seconds"`
	AlertThreshold int    `toml:"alert_threshold"`
	RatioPeriod    string `toml:"ratio_period"`
	TradeLimit     int    `toml:"trade_limit"`
	DepthLimit     int    `toml:"depth_limit"`
}
