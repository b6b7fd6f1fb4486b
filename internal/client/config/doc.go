// Package config loads runtime configuration for the admin console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. A .env file in the working directory and GOPHADMIN_* variables.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the admin API
//	-t int      request timeout (seconds)
//	-d string   session database path
//
// # JSON schema
//
//	{
//	  "base_url": "http://127.0.0.1:8080",
//	  "request_timeout": "15s",
//	  "database_path": "console.db",
//	  "profile_path": "/userusers/me",
//	  "log_backend": "zap",
//	  "log_level": "debug",
//	  "app_name": "gophadmin",
//	  "app_version": "1.0.0"
//	}
//
// # Environment
//
//	GOPHADMIN_BASE_URL, GOPHADMIN_REQUEST_TIMEOUT (e.g. "20s"),
//	GOPHADMIN_DATABASE_PATH, GOPHADMIN_PROFILE_PATH, GOPHADMIN_LOG_BACKEND,
//	GOPHADMIN_LOG_LEVEL, GOPHADMIN_APP_NAME, GOPHADMIN_APP_VERSION
package config
