package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all process-wide settings. Values are read once at startup;
// the valuation engine itself never consults the environment.
type Config struct {
	BaseCurrency string `env:"BASE_CURRENCY" envDefault:"CZK"`
	Locale       string `env:"LOCALE" envDefault:"cs-CZ"`
	DBPath       string `env:"DB_PATH" envDefault:"portfolio.db"`
	ServerPort   string `env:"SERVER_PORT" envDefault:"8000"`
	LogEnv       string `env:"LOG_ENV"`
	Feeds        Feeds
}

// Feeds configures the external price/FX feed clients.
type Feeds struct {
	Debug      bool          `env:"API_DEBUG" envDefault:"false"`
	Timeout    time.Duration `env:"API_TIMEOUT" envDefault:"30s"`
	YahooURL   string        `env:"YAHOO_API_URL" envDefault:"https://query1.finance.yahoo.com"`
	RetryCount int           `env:"API_RETRY_COUNT" envDefault:"2"`
}

// Load reads configuration from the environment, loading a .env file first if
// one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
