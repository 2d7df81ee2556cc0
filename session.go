package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/fvtools/fvmirror/internal/config"
	"github.com/fvtools/fvmirror/internal/filevine"
)

// newAPISession builds an authenticated Filevine client: it reads
// credentials from the environment, exchanges the personal access token,
// discovers the user and org context, and returns a client ready for API
// calls. Used by every subcommand that talks to Filevine.
func newAPISession(ctx context.Context, logger *slog.Logger) (*filevine.Client, error) {
	cfg := resolvedCfg

	creds, err := config.CredentialsFromEnv()
	if err != nil {
		return nil, err
	}

	tokenClient := &http.Client{
		Timeout: time.Duration(cfg.Network.TokenTimeoutSeconds) * time.Second,
	}

	src := filevine.NewPATTokenSource(ctx, filevine.PATConfig{
		IdentityURL:  cfg.API.IdentityURL,
		PAT:          creds.PAT,
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
	}, tokenClient, logger)

	// ReuseTokenSource caches the exchanged token until expiry, so the
	// whole run normally performs a single token exchange.
	token := oauth2.ReuseTokenSource(nil, src)

	session, err := filevine.FetchSession(ctx, cfg.API.BaseURL, token, cfg.API.OrgID, tokenClient, logger)
	if err != nil {
		return nil, fmt.Errorf("establishing session: %w", err)
	}

	client := filevine.NewClient(cfg.API.BaseURL, token, session, logger)
	client.SetTimeouts(
		time.Duration(cfg.Network.APITimeoutSeconds)*time.Second,
		time.Duration(cfg.Network.DownloadTimeoutSeconds)*time.Second,
	)

	return client, nil
}
