package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Load reads and parses a TOML config file, validates it, and returns the
// resulting Config. Unknown keys are fatal errors: silently ignoring a
// typo in a config file leads to hard-to-debug behavior.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := checkUnknownKeys(&md); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault reads a TOML config file if it exists, otherwise returns a
// Config populated with all default values. This supports the zero-config
// first run: only the destination and credentials are strictly needed.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}

	return Load(path)
}

// Resolve loads configuration and applies the override chain:
// defaults -> config file -> environment variables -> CLI flags.
// CLI flags always win, matching user expectations for one-off overrides
// without editing the config file.
func Resolve(env EnvOverrides, cli CLIOverrides) (*Config, error) {
	// 1. Resolve config path: CLI > env > default.
	cfgPath := DefaultConfigPath()
	if env.ConfigPath != "" {
		cfgPath = env.ConfigPath
	}

	if cli.ConfigPath != "" {
		cfgPath = cli.ConfigPath
	}

	// 2. Load the config file, or defaults if none exists.
	cfg, err := LoadOrDefault(cfgPath)
	if err != nil {
		return nil, err
	}

	// 3. Environment overrides.
	if env.Dest != "" {
		cfg.Mirror.Dest = env.Dest
	}

	if env.LogLevel != "" {
		cfg.Logging.LogLevel = env.LogLevel
	}

	// 4. CLI overrides. Pointer fields: nil means not specified.
	if cli.Dest != nil {
		cfg.Mirror.Dest = *cli.Dest
	}

	if cli.Workers != nil {
		cfg.Mirror.Workers = *cli.Workers
	}

	if cli.MaxAttempts != nil {
		cfg.Mirror.MaxAttempts = *cli.MaxAttempts
	}

	if cli.LogLevel != nil {
		cfg.Logging.LogLevel = *cli.LogLevel
	}

	if cli.LogFormat != nil {
		cfg.Logging.LogFormat = *cli.LogFormat
	}

	if cli.LogFile != nil {
		cfg.Logging.LogFile = *cli.LogFile
	}

	// 5. Expand and validate the final result.
	cfg.Mirror.Dest = expandTilde(cfg.Mirror.Dest)

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// checkUnknownKeys inspects TOML metadata for undecoded keys and reports
// every one of them.
func checkUnknownKeys(md *toml.MetaData) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}

	var errs []error

	for _, key := range undecoded {
		errs = append(errs, fmt.Errorf("unknown config key %q", key.String()))
	}

	return errors.Join(errs...)
}
