package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"stockfetch/pkg/confkit"
)

// Config carries the runtime settings for the fetcher CLI and the client
// defaults the library is built with.
type Config struct {
	Client   ClientConfig   `yaml:"client"`
	Pricing  PricingConfig  `yaml:"pricing"`
	Calendar CalendarConfig `yaml:"calendar"`
	Archive  ArchiveConfig  `yaml:"archive"`
	LogLevel string         `yaml:"log_level"`
}

// ClientConfig configures the NSE HTTP client.
type ClientConfig struct {
	BaseURL     string `yaml:"base_url"`
	HomeURL     string `yaml:"home_url"`
	ArchivesURL string `yaml:"archives_url"`
	IndicesURL  string `yaml:"indices_url"`

	TimeoutRaw string        `yaml:"timeout"`
	Timeout    time.Duration `yaml:"-"`
	MaxRetries int           `yaml:"max_retries"`
}

// PricingConfig carries Black-Scholes defaults.
type PricingConfig struct {
	RiskFreeRate       float64 `yaml:"risk_free_rate"`
	TradingDaysPerYear int     `yaml:"trading_days_per_year"`
}

// CalendarConfig selects the market segment for trading day arithmetic.
type CalendarConfig struct {
	Segment string `yaml:"segment"`
}

// ArchiveConfig controls where fetched history is written.
type ArchiveConfig struct {
	Format string `yaml:"format"`
	Dir    string `yaml:"dir"`
}

// LoadConfig reads configuration from disk.
func LoadConfig(path string) (*Config, error) {
	confkit.LoadDotenvOnce()
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()
	return LoadConfigFromReader(file)
}

// MustLoad reads configuration from the default project location and panics
// on error.
func MustLoad() *Config {
	path := confkit.MustProjectPath("etc/stockfetch.yaml")
	cfg, err := LoadConfig(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadConfigFromReader constructs a Config from an io.Reader.
func LoadConfigFromReader(r io.Reader) (*Config, error) {
	confkit.LoadDotenvOnce()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.normalise(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalise() error {
	c.Client.BaseURL = strings.TrimSpace(os.ExpandEnv(c.Client.BaseURL))
	c.Client.HomeURL = strings.TrimSpace(os.ExpandEnv(c.Client.HomeURL))
	c.Client.ArchivesURL = strings.TrimSpace(os.ExpandEnv(c.Client.ArchivesURL))
	c.Client.IndicesURL = strings.TrimSpace(os.ExpandEnv(c.Client.IndicesURL))
	c.Archive.Format = strings.TrimSpace(os.ExpandEnv(c.Archive.Format))
	c.Archive.Dir = strings.TrimSpace(os.ExpandEnv(c.Archive.Dir))
	c.Calendar.Segment = strings.TrimSpace(os.ExpandEnv(c.Calendar.Segment))
	c.LogLevel = strings.TrimSpace(os.ExpandEnv(c.LogLevel))

	if raw := strings.TrimSpace(os.ExpandEnv(c.Client.TimeoutRaw)); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("config: parse client timeout %q: %w", raw, err)
		}
		c.Client.Timeout = d
	}

	if c.Calendar.Segment == "" {
		c.Calendar.Segment = "FO"
	}
	if c.Archive.Format == "" {
		c.Archive.Format = "csv"
	}
	if c.Archive.Dir == "" {
		c.Archive.Dir = "data"
	}
	if c.Pricing.RiskFreeRate == 0 {
		c.Pricing.RiskFreeRate = 0.10
	}
	if c.Pricing.TradingDaysPerYear == 0 {
		c.Pricing.TradingDaysPerYear = 365
	}
	return nil
}

// Validate rejects settings the client cannot run with.
func (c *Config) Validate() error {
	if c.Client.MaxRetries < 0 {
		return errors.New("config: client.max_retries must not be negative")
	}
	if c.Client.Timeout < 0 {
		return errors.New("config: client.timeout must not be negative")
	}
	if c.Pricing.RiskFreeRate < 0 {
		return errors.New("config: pricing.risk_free_rate must not be negative")
	}
	if c.Pricing.TradingDaysPerYear <= 0 {
		return errors.New("config: pricing.trading_days_per_year must be positive")
	}
	switch strings.ToLower(c.Archive.Format) {
	case "csv", "json", "parquet":
	default:
		return fmt.Errorf("config: archive.format %q, must be csv, json or parquet", c.Archive.Format)
	}
	return nil
}
