package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// PathEnv names the environment variable holding an optional YAML config file path
const PathEnv = "CONVERTER_CONFIG_PATH"

const (
	ProviderStub   = "stub"
	ProviderRemote = "remote"
)

type Config struct {
	Env     string  `yaml:"env" env:"CONVERTER_ENV" env-default:"development"`
	Server  Server  `yaml:"server"`
	Log     Log     `yaml:"log"`
	Rates   Rates   `yaml:"rates"`
	Session Session `yaml:"session"`
}

type Server struct {
	Addr string `yaml:"addr" env:"CONVERTER_ADDR" env-default:":8080"`
	// RateLimit per client IP on /api routes, in limiter format ("600-M")
	RateLimit string `yaml:"rate_limit" env:"CONVERTER_RATE_LIMIT" env-default:"600-M"`
}

type Log struct {
	Level string `yaml:"level" env:"CONVERTER_LOG_LEVEL" env-default:"info"`
}

type Rates struct {
	Provider string        `yaml:"provider" env:"CONVERTER_RATES_PROVIDER" env-default:"stub"`
	BaseURL  string        `yaml:"base_url" env:"CONVERTER_RATES_BASE_URL"`
	Latency  time.Duration `yaml:"latency" env:"CONVERTER_RATES_LATENCY" env-default:"1s"`
	Spread   float64       `yaml:"spread" env:"CONVERTER_RATES_SPREAD" env-default:"0.04"`
}

type Session struct {
	RefreshSeconds int           `yaml:"refresh_seconds" env:"CONVERTER_REFRESH_SECONDS" env-default:"60"`
	Tick           time.Duration `yaml:"tick" env:"CONVERTER_TICK" env-default:"1s"`
}

// Load reads configuration from a .env file if present, then from the YAML file named by
// CONVERTER_CONFIG_PATH if set, with environment variables taking precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}

	var cfg Config
	if path := os.Getenv(PathEnv); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("reading config file [%v]: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Rates.Provider {
	case ProviderStub, ProviderRemote:
	default:
		return fmt.Errorf("unknown rates provider %q", c.Rates.Provider)
	}
	if c.Rates.Spread < 0 || c.Rates.Spread >= 1 {
		return fmt.Errorf("spread %v out of range [0, 1)", c.Rates.Spread)
	}
	if c.Session.RefreshSeconds < 0 {
		return fmt.Errorf("refresh seconds must not be negative")
	}
	if c.Session.Tick <= 0 {
		return fmt.Errorf("tick must be positive")
	}
	return nil
}
