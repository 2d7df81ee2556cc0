package config

// Default endpoint and engine settings.
const (
	DefaultBaseURL     = "https://api.filevineapp.com/fv-app/v2"
	DefaultIdentityURL = "https://identity.filevine.com"

	defaultWorkers     = 4
	defaultMaxAttempts = 3

	defaultLogLevel  = "info"
	defaultLogFormat = "auto"

	defaultTokenTimeoutSeconds    = 30
	defaultAPITimeoutSeconds      = 60
	defaultDownloadTimeoutSeconds = 120
)

// DefaultConfig returns a Config with every default populated. TOML
// decoding overlays file values on top of this, so absent keys keep their
// defaults.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:     DefaultBaseURL,
			IdentityURL: DefaultIdentityURL,
		},
		Mirror: MirrorConfig{
			Workers:     defaultWorkers,
			MaxAttempts: defaultMaxAttempts,
		},
		Logging: LoggingConfig{
			LogLevel:  defaultLogLevel,
			LogFormat: defaultLogFormat,
		},
		Network: NetworkConfig{
			TokenTimeoutSeconds:    defaultTokenTimeoutSeconds,
			APITimeoutSeconds:      defaultAPITimeoutSeconds,
			DownloadTimeoutSeconds: defaultDownloadTimeoutSeconds,
		},
	}
}
