package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Credential environment variables. These are the only way secrets enter
// the process: never from the TOML config file, so a shared or committed
// config cannot leak them. `fvmirror init` writes a .env file holding
// these same names.
const (
	EnvPAT          = "FILEVINE_PAT"
	EnvClientID     = "FILEVINE_CLIENT_ID"
	EnvClientSecret = "FILEVINE_CLIENT_SECRET"
)

// Credentials holds the Filevine API secrets. Values are never logged and
// have no TOML tags, so they cannot be serialized into a config file by
// mistake.
type Credentials struct {
	PAT          string
	ClientID     string
	ClientSecret string
}

// CredentialsFromEnv reads the credential variables. All three are
// required; the error lists every missing one so a user fixes them in a
// single pass.
func CredentialsFromEnv() (Credentials, error) {
	creds := Credentials{
		PAT:          os.Getenv(EnvPAT),
		ClientID:     os.Getenv(EnvClientID),
		ClientSecret: os.Getenv(EnvClientSecret),
	}

	var missing []string

	if creds.PAT == "" {
		missing = append(missing, EnvPAT)
	}

	if creds.ClientID == "" {
		missing = append(missing, EnvClientID)
	}

	if creds.ClientSecret == "" {
		missing = append(missing, EnvClientSecret)
	}

	if len(missing) > 0 {
		return Credentials{}, fmt.Errorf(
			"missing credentials: set %s in the environment or a .env file (run `fvmirror init`): %w",
			strings.Join(missing, ", "), ErrMissingCredentials)
	}

	return creds, nil
}

// ErrMissingCredentials marks a missing-credentials failure, for callers
// that want to print setup guidance.
var ErrMissingCredentials = errors.New("credentials not configured")
