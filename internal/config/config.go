// Package config loads and validates fvmirror configuration. Settings
// resolve through a four-layer chain: built-in defaults, then the TOML
// config file, then environment variables, then CLI flags. Credentials are
// deliberately excluded from this chain; they come only from the
// environment (see credentials.go) so they never land in a config file.
package config

import "github.com/fvtools/fvmirror/internal/fvid"

// Config is the full configuration tree as decoded from TOML.
type Config struct {
	API     APIConfig     `toml:"api"`
	Mirror  MirrorConfig  `toml:"mirror"`
	Logging LoggingConfig `toml:"logging"`
	Network NetworkConfig `toml:"network"`
}

// APIConfig addresses the Filevine deployment.
type APIConfig struct {
	// BaseURL is the API gateway root, e.g.
	// "https://api.filevineapp.com/fv-app/v2".
	BaseURL string `toml:"base_url"`

	// IdentityURL is the token exchange host.
	IdentityURL string `toml:"identity_url"`

	// OrgID selects an organization when the user belongs to several.
	// Zero picks the first org the server reports.
	OrgID fvid.ID `toml:"org_id"`
}

// MirrorConfig controls the download engine.
type MirrorConfig struct {
	// Dest is the local directory that receives the mirrored tree.
	Dest string `toml:"dest"`

	// Workers bounds concurrent document downloads.
	Workers int `toml:"workers"`

	// MaxAttempts is the per-document try budget, first attempt included.
	MaxAttempts int `toml:"max_attempts"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	LogLevel  string `toml:"log_level"`  // debug, info, warn, error
	LogFormat string `toml:"log_format"` // auto, text, json
	LogFile   string `toml:"log_file"`   // empty logs to stderr only
}

// NetworkConfig holds per-call HTTP timeouts in seconds.
type NetworkConfig struct {
	TokenTimeoutSeconds    int `toml:"token_timeout"`
	APITimeoutSeconds      int `toml:"api_timeout"`
	DownloadTimeoutSeconds int `toml:"download_timeout"`
}

// CLIOverrides holds flag values to layer on top of the file and
// environment. Pointer fields distinguish "not set" from zero values.
type CLIOverrides struct {
	ConfigPath string

	Dest        *string
	Workers     *int
	MaxAttempts *int
	LogLevel    *string
	LogFormat   *string
	LogFile     *string
}
