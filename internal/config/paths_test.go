package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigDir_XDGOverride(t *testing.T) {
	if runtime.GOOS != platformLinux {
		t.Skip("XDG paths are Linux-only")
	}

	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	assert.Equal(t, filepath.Join("/xdg/config", appName), DefaultConfigDir())
}

func TestDefaultConfigDir_LinuxFallback(t *testing.T) {
	if runtime.GOOS != platformLinux {
		t.Skip("XDG paths are Linux-only")
	}

	t.Setenv("XDG_CONFIG_HOME", "")

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", appName), DefaultConfigDir())
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	require.NotEmpty(t, path)
	assert.True(t, strings.HasSuffix(path, filepath.Join(appName, configFileName)), path)
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "mirror"), expandTilde("~/mirror"))
	assert.Equal(t, "/abs/path", expandTilde("/abs/path"))
	assert.Equal(t, "relative", expandTilde("relative"))
	assert.Equal(t, "~user/x", expandTilde("~user/x"), "only ~/ is expanded")
}
