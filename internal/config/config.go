package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Data     DataConfig
	Database DatabaseConfig
	Catalog  CatalogConfig
	Market   MarketConfig
	Server   ServerConfig
	UI       UIConfig
}

// DataConfig holds where exports are written.
type DataConfig struct {
	Dir string
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// CatalogConfig points at an optional TOML indicator catalog. Empty means
// the built-in set.
type CatalogConfig struct {
	Path string
}

// MarketConfig selects the price source.
type MarketConfig struct {
	Provider     string
	SheetURL     string        `mapstructure:"sheet_url"`
	YahooBaseURL string        `mapstructure:"yahoo_base_url"`
	AlpacaKey    string        `mapstructure:"alpaca_key"`
	AlpacaSecret string        `mapstructure:"alpaca_secret"`
	Timeout      time.Duration
	Concurrency  int
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Theme       string
	PreviewRows int `mapstructure:"preview_rows"`
	ChartPoints int `mapstructure:"chart_points"`
}

func home() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return os.Getenv("HOME")
}

// Dir is the directory holding config.toml.
func Dir() string {
	return filepath.Join(home(), ".config", "tickerdeck")
}

// Load reads configuration from a .env file, the config file and env. Env
// var overrides use prefix TICKERDECK_.
func Load() (Config, error) {
	// .env in the working directory, then the config dir; existing env wins.
	for _, p := range []string{".env", filepath.Join(Dir(), ".env")} {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", p, err)
		}
	}

	v := viper.New()
	share := filepath.Join(home(), ".local", "share", "tickerdeck")

	// default values
	v.SetDefault("data.dir", filepath.Join(share, "data"))
	v.SetDefault("database.path", filepath.Join(share, "tickerdeck.db"))
	v.SetDefault("catalog.path", "")
	v.SetDefault("market.provider", "yahoo")
	v.SetDefault("market.sheet_url", "")
	v.SetDefault("market.yahoo_base_url", "")
	v.SetDefault("market.alpaca_key", "")
	v.SetDefault("market.alpaca_secret", "")
	v.SetDefault("market.timeout", 15*time.Second)
	v.SetDefault("market.concurrency", 4)
	v.SetDefault("server.addr", "127.0.0.1:5002")
	v.SetDefault("ui.theme", "dark")
	v.SetDefault("ui.preview_rows", 5)
	v.SetDefault("ui.chart_points", 1000)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("TICKERDECK_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(Dir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TICKERDECK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.normalize()
	return c, nil
}

func (c *Config) normalize() {
	c.Market.Provider = strings.ToLower(strings.TrimSpace(c.Market.Provider))
	if c.Market.Concurrency < 1 {
		c.Market.Concurrency = 1
	}
	if c.Market.Timeout <= 0 {
		c.Market.Timeout = 15 * time.Second
	}
	switch strings.ToLower(strings.TrimSpace(c.UI.Theme)) {
	case "light":
		c.UI.Theme = "light"
	default:
		c.UI.Theme = "dark"
	}
	if c.UI.PreviewRows < 1 {
		c.UI.PreviewRows = 5
	}
	if c.UI.ChartPoints < 10 {
		c.UI.ChartPoints = 1000
	}
}
