package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophadmin/internal/flagx"
	"github.com/dmitrijs2005/gophadmin/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// RequestTimeout relies on timex.Duration so it can be written either as a
// string like "15s" or as integer nanoseconds.
type JsonConfig struct {
	BaseURL        string         `json:"base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	DatabasePath   string         `json:"database_path"`
	ProfilePath    string         `json:"profile_path"`
	LogBackend     string         `json:"log_backend"`
	LogLevel       string         `json:"log_level"`
	AppName        string         `json:"app_name"`
	AppVersion     string         `json:"app_version"`
}

// parseJson overlays cfg with the non-empty values of the JSON file named by
// -c or -config. Without either flag nothing is loaded.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	overlay(&cfg.BaseURL, jc.BaseURL)
	overlay(&cfg.DatabasePath, jc.DatabasePath)
	overlay(&cfg.ProfilePath, jc.ProfilePath)
	overlay(&cfg.LogBackend, jc.LogBackend)
	overlay(&cfg.LogLevel, jc.LogLevel)
	overlay(&cfg.AppName, jc.AppName)
	overlay(&cfg.AppVersion, jc.AppVersion)
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	return nil
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
