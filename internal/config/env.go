package config

import "os"

// Environment variable names for overrides.
const (
	EnvConfig   = "FVMIRROR_CONFIG"
	EnvDest     = "FVMIRROR_DEST"
	EnvLogLevel = "FVMIRROR_LOG_LEVEL"
)

// EnvOverrides holds values derived from environment variables.
// They sit between the config file and CLI flags in the override chain.
type EnvOverrides struct {
	ConfigPath string // FVMIRROR_CONFIG: override config file path
	Dest       string // FVMIRROR_DEST: mirror destination override
	LogLevel   string // FVMIRROR_LOG_LEVEL: log level override
}

// ReadEnvOverrides reads environment variables and returns any overrides
// found. This does not modify the Config; Resolve applies them.
func ReadEnvOverrides() EnvOverrides {
	return EnvOverrides{
		ConfigPath: os.Getenv(EnvConfig),
		Dest:       os.Getenv(EnvDest),
		LogLevel:   os.Getenv(EnvLogLevel),
	}
}
