package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, DefaultIdentityURL, cfg.API.IdentityURL)
	assert.True(t, cfg.API.OrgID.IsZero())

	assert.Empty(t, cfg.Mirror.Dest, "destination has no default; it must be chosen")
	assert.Equal(t, 4, cfg.Mirror.Workers)
	assert.Equal(t, 3, cfg.Mirror.MaxAttempts)

	assert.Equal(t, "info", cfg.Logging.LogLevel)
	assert.Equal(t, "auto", cfg.Logging.LogFormat)
	assert.Empty(t, cfg.Logging.LogFile)

	assert.Equal(t, 30, cfg.Network.TokenTimeoutSeconds)
	assert.Equal(t, 60, cfg.Network.APITimeoutSeconds)
	assert.Equal(t, 120, cfg.Network.DownloadTimeoutSeconds)
}
