package config

import (
	"os"
	"time"
)

// EnvPrefix is the prefix of every environment variable the console reads.
const EnvPrefix = "GOPHADMIN"

// Config holds runtime settings for the admin console.
//
// Fields:
//   - BaseURL: root of the admin REST API, e.g. http://127.0.0.1:8080.
//   - RequestTimeout: ceiling for a single API call.
//   - DatabasePath: sqlite file holding the persisted session slots.
//   - ProfilePath: optional API path returning the current user; used to
//     resolve the identity behind a restored token.
type Config struct {
	BaseURL        string        `envconfig:"BASE_URL"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT"`
	DatabasePath   string        `envconfig:"DATABASE_PATH"`
	ProfilePath    string        `envconfig:"PROFILE_PATH"`
	LogBackend     string        `envconfig:"LOG_BACKEND"`
	LogLevel       string        `envconfig:"LOG_LEVEL"`
	AppName        string        `envconfig:"APP_NAME"`
	AppVersion     string        `envconfig:"APP_VERSION"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 15 * time.Second
	c.DatabasePath = "console.db"
	c.LogBackend = "slog"
	c.LogLevel = "info"
	c.AppName = "gophadmin"
	c.AppVersion = "1.0.0"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:], ".env")
}

func load(args []string, envFiles ...string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, envFiles...); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
