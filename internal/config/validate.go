package config

import (
	"errors"
	"fmt"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Worker and attempt bounds. The upper worker bound keeps a typo like
// workers = 400 from opening hundreds of concurrent downloads.
const (
	minWorkers     = 1
	maxWorkers     = 64
	minAttempts    = 1
	maxAttempts    = 10
	minTimeoutSecs = 1
)

// Validate checks all configuration values and returns every violation
// found, keyed by config file path, so users fix all issues in one pass.
func Validate(cfg *Config) error {
	err := validation.Errors{
		"api.base_url":     validation.Validate(cfg.API.BaseURL, validation.Required, validation.By(httpURL)),
		"api.identity_url": validation.Validate(cfg.API.IdentityURL, validation.Required, validation.By(httpURL)),
		"mirror.workers": validation.Validate(cfg.Mirror.Workers,
			validation.Required, validation.Min(minWorkers), validation.Max(maxWorkers)),
		"mirror.max_attempts": validation.Validate(cfg.Mirror.MaxAttempts,
			validation.Required, validation.Min(minAttempts), validation.Max(maxAttempts)),
		"logging.log_level": validation.Validate(cfg.Logging.LogLevel,
			validation.Required, validation.In("debug", "info", "warn", "error")),
		"logging.log_format": validation.Validate(cfg.Logging.LogFormat,
			validation.Required, validation.In("auto", "text", "json")),
		"network.token_timeout": validation.Validate(cfg.Network.TokenTimeoutSeconds,
			validation.Required, validation.Min(minTimeoutSecs)),
		"network.api_timeout": validation.Validate(cfg.Network.APITimeoutSeconds,
			validation.Required, validation.Min(minTimeoutSecs)),
		"network.download_timeout": validation.Validate(cfg.Network.DownloadTimeoutSeconds,
			validation.Required, validation.Min(minTimeoutSecs)),
	}.Filter()
	if err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// httpURL accepts absolute http(s) URLs only.
func httpURL(value any) error {
	s, _ := value.(string)

	u, err := url.Parse(s)
	if err != nil {
		return errors.New("must be a valid URL")
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("must be an http or https URL")
	}

	if u.Host == "" {
		return errors.New("must include a host")
	}

	return nil
}
