package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadEnvOverrides(t *testing.T) {
	t.Setenv(EnvConfig, "/custom/config.toml")
	t.Setenv(EnvDest, "/custom/mirror")
	t.Setenv(EnvLogLevel, "debug")

	env := ReadEnvOverrides()
	assert.Equal(t, "/custom/config.toml", env.ConfigPath)
	assert.Equal(t, "/custom/mirror", env.Dest)
	assert.Equal(t, "debug", env.LogLevel)
}

func TestReadEnvOverrides_Unset(t *testing.T) {
	t.Setenv(EnvConfig, "")
	t.Setenv(EnvDest, "")
	t.Setenv(EnvLogLevel, "")

	env := ReadEnvOverrides()
	assert.Empty(t, env.ConfigPath)
	assert.Empty(t, env.Dest)
	assert.Empty(t, env.LogLevel)
}
