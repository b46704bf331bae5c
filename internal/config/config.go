package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultSymbols is the universe used when neither the file nor the
// environment names one.
var DefaultSymbols = []string{"BTC", "ETH", "SOL", "DOT", "INJ", "STRK", "ARB", "POL", "SUI", "RENDER"}

// Config holds all application configuration.
type Config struct {
	Symbols    []string `yaml:"symbols"`
	QuoteAsset string   `yaml:"quote_asset"`
	Fiat       string   `yaml:"fiat"`
	Endpoints  struct {
		BinanceSpot    string `yaml:"binance_spot"`
		BinanceFutures string `yaml:"binance_futures"`
		Coinbase       string `yaml:"coinbase"`
		OKX            string `yaml:"okx"`
	} `yaml:"endpoints"`
	HTTP struct {
		Proxy     string        `yaml:"proxy"`
		Timeout   time.Duration `yaml:"timeout"`
		UserAgent string        `yaml:"user_agent"`
	} `yaml:"http"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
		MaxAge int    `yaml:"max_age"`
	} `yaml:"log"`
	Schedule struct {
		Cron string `yaml:"cron"`
	} `yaml:"schedule"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error: defaults cover every field.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("COINPULSE_SYMBOLS"); v != "" {
		cfg.Symbols = SplitSymbols(v)
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.HTTP.Proxy = v
	}
	if v := os.Getenv("COINPULSE_HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parse COINPULSE_HTTP_TIMEOUT: %w", err)
		}
		cfg.HTTP.Timeout = d
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("COINPULSE_CRON"); v != "" {
		cfg.Schedule.Cron = v
	}

	cfg.applyDefaults()
	cfg.Symbols = NormalizeSymbols(cfg.Symbols)
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if len(c.Symbols) == 0 {
		c.Symbols = append([]string(nil), DefaultSymbols...)
	}
	if c.QuoteAsset == "" {
		c.QuoteAsset = "USDT"
	}
	if c.Fiat == "" {
		c.Fiat = "USD"
	}
	if c.Endpoints.BinanceSpot == "" {
		c.Endpoints.BinanceSpot = "https://api.binance.com"
	}
	if c.Endpoints.BinanceFutures == "" {
		c.Endpoints.BinanceFutures = "https://fapi.binance.com"
	}
	if c.Endpoints.Coinbase == "" {
		c.Endpoints.Coinbase = "https://api.coinbase.com"
	}
	if c.Endpoints.OKX == "" {
		c.Endpoints.OKX = "https://www.okx.com"
	}
	if c.HTTP.UserAgent == "" {
		c.HTTP.UserAgent = "CoinPulse/1.0"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stderr"
	}
}

// SplitSymbols parses a comma separated symbol list.
func SplitSymbols(s string) []string {
	return NormalizeSymbols(strings.Split(s, ","))
}

// NormalizeSymbols trims and upper-cases symbols, dropping blanks and
// duplicates while keeping first-seen order.
func NormalizeSymbols(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if len(c.Symbols) == 0 {
		return fmt.Errorf("symbols must not be empty")
	}
	endpoints := map[string]string{
		"endpoints.binance_spot":    c.Endpoints.BinanceSpot,
		"endpoints.binance_futures": c.Endpoints.BinanceFutures,
		"endpoints.coinbase":        c.Endpoints.Coinbase,
		"endpoints.okx":             c.Endpoints.OKX,
	}
	for name, raw := range endpoints {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", name, raw)
		}
	}
	if c.HTTP.Timeout < 0 {
		return fmt.Errorf("http.timeout must not be negative")
	}
	return nil
}
