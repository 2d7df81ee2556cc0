package filevine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/fvtools/fvmirror/internal/fvid"
)

// grantPersonalAccessToken is the custom grant type the Filevine identity
// server uses for PAT exchange.
const grantPersonalAccessToken = "personal_access_token"

// defaultScope covers API gateway access plus the tenant/org discovery the
// session lookup needs.
const defaultScope = "fv.api.gateway.access tenant filevine.v2.api.* openid email fv.auth.tenant.read"

// ErrNoAccessToken is returned when the identity server responds 200 but
// the body carries no access_token.
var ErrNoAccessToken = errors.New("filevine: access_token missing from token response")

// ErrNoOrgs is returned when the user/orgs lookup yields no organization id.
var ErrNoOrgs = errors.New("filevine: no organizations in user/orgs response")

// PATConfig holds the inputs for exchanging a personal access token for a
// bearer token.
type PATConfig struct {
	IdentityURL  string // e.g. "https://identity.filevine.com"
	PAT          string
	ClientID     string
	ClientSecret string
	Scope        string // empty uses the default scope set
}

// NewPATTokenSource returns an oauth2.TokenSource that exchanges the
// personal access token for a bearer token on each Token() call. Wrap it in
// oauth2.ReuseTokenSource so the exchange runs once per run and repeats only
// after expiry.
//
// ctx is bound to every exchange request and must outlive the TokenSource.
func NewPATTokenSource(ctx context.Context, cfg PATConfig, httpClient *http.Client, logger *slog.Logger) oauth2.TokenSource {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &patTokenSource{ctx: ctx, cfg: cfg, httpClient: httpClient, logger: logger}
}

type patTokenSource struct {
	ctx        context.Context
	cfg        PATConfig
	httpClient *http.Client
	logger     *slog.Logger
}

// tokenResponse mirrors the identity server's token endpoint JSON.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (s *patTokenSource) Token() (*oauth2.Token, error) {
	form := url.Values{
		"token":         []string{s.cfg.PAT},
		"grant_type":    []string{grantPersonalAccessToken},
		"scope":         []string{s.scope()},
		"client_id":     []string{s.cfg.ClientID},
		"client_secret": []string{s.cfg.ClientSecret},
	}

	endpoint := strings.TrimRight(s.cfg.IdentityURL, "/") + "/connect/token"

	req, err := http.NewRequestWithContext(s.ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("filevine: creating token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("filevine: exchanging personal access token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, responseError(resp, "/connect/token")
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("filevine: decoding token response: %w", err)
	}

	if tr.AccessToken == "" {
		return nil, ErrNoAccessToken
	}

	tok := &oauth2.Token{
		AccessToken: tr.AccessToken,
		TokenType:   tr.TokenType,
	}

	if tr.ExpiresIn > 0 {
		tok.Expiry = time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	}

	s.logger.Info("exchanged personal access token",
		slog.Time("expiry", tok.Expiry),
	)

	return tok, nil
}

func (s *patTokenSource) scope() string {
	if s.cfg.Scope != "" {
		return s.cfg.Scope
	}

	return defaultScope
}

// Org is one organization membership returned by the user/orgs lookup.
type Org struct {
	ID   fvid.ID
	Name string
}

// Session carries the identity every API request must declare: the acting
// user and the organization the project belongs to.
type Session struct {
	UserID fvid.ID
	OrgID  fvid.ID
	Email  string
	Orgs   []Org
}

// userOrgsResponse mirrors the GetUserOrgsWithToken JSON. The id fields are
// wrapper objects; older deployments also return bare top-level ids, kept
// here as fallbacks.
type userOrgsResponse struct {
	User struct {
		UserID fvid.ID `json:"userId"`
		Email  string  `json:"email"`
	} `json:"user"`
	Orgs []struct {
		OrgID fvid.ID `json:"orgId"`
		Name  string  `json:"name"`
	} `json:"orgs"`
	UserID fvid.ID `json:"userId"`
	OrgID  fvid.ID `json:"orgId"`
}

// FetchSession resolves the user and organization identity used in request
// headers. orgID selects a specific organization; zero picks the first one
// the server returns. Failures here are fatal setup errors since no API
// call can proceed without the session headers.
func FetchSession(
	ctx context.Context,
	baseURL string,
	token oauth2.TokenSource,
	orgID fvid.ID,
	httpClient *http.Client,
	logger *slog.Logger,
) (Session, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	if logger == nil {
		logger = slog.Default()
	}

	endpoint := strings.TrimRight(baseURL, "/") + "/utils/GetUserOrgsWithToken"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, http.NoBody)
	if err != nil {
		return Session{}, fmt.Errorf("filevine: creating user/orgs request: %w", err)
	}

	tok, err := token.Token()
	if err != nil {
		return Session{}, fmt.Errorf("filevine: obtaining token: %w", err)
	}

	tok.SetAuthHeader(req)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := httpClient.Do(req)
	if err != nil {
		return Session{}, fmt.Errorf("filevine: fetching user/orgs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return Session{}, responseError(resp, "/utils/GetUserOrgsWithToken")
	}

	var ur userOrgsResponse
	if err := json.NewDecoder(resp.Body).Decode(&ur); err != nil {
		return Session{}, fmt.Errorf("filevine: decoding user/orgs response: %w", err)
	}

	session, err := ur.toSession(orgID)
	if err != nil {
		return Session{}, err
	}

	logger.Info("resolved session",
		slog.String("user_id", session.UserID.String()),
		slog.String("org_id", session.OrgID.String()),
		slog.Int("org_count", len(session.Orgs)),
	)

	return session, nil
}

// toSession normalizes the wire response, applying the nested-then-top-level
// fallback order the API has historically required.
func (ur *userOrgsResponse) toSession(orgID fvid.ID) (Session, error) {
	userID := ur.User.UserID
	if userID.IsZero() {
		userID = ur.UserID
	}

	if userID.IsZero() {
		return Session{}, errors.New("filevine: unable to parse userId from user/orgs response")
	}

	orgs := make([]Org, 0, len(ur.Orgs))
	for _, o := range ur.Orgs {
		orgs = append(orgs, Org{ID: o.OrgID, Name: o.Name})
	}

	resolved, err := resolveOrg(orgs, ur.OrgID, orgID)
	if err != nil {
		return Session{}, err
	}

	return Session{
		UserID: userID,
		OrgID:  resolved,
		Email:  ur.User.Email,
		Orgs:   orgs,
	}, nil
}

// resolveOrg picks the organization for the session. A configured org must
// be one the user actually belongs to; with no preference, the first org
// wins, falling back to the top-level id only when the response carries no
// org list at all. An org entry without a parseable id is a response defect
// and fails the session rather than silently sending org 0 in every header.
func resolveOrg(orgs []Org, topLevel, preferred fvid.ID) (fvid.ID, error) {
	if !preferred.IsZero() {
		for _, o := range orgs {
			if o.ID == preferred {
				return preferred, nil
			}
		}

		// No org list to check against; trust the configured id.
		if len(orgs) == 0 {
			return preferred, nil
		}

		return 0, fmt.Errorf("filevine: org %s not among the user's organizations", preferred)
	}

	if len(orgs) > 0 {
		if orgs[0].ID.IsZero() {
			return 0, errors.New("filevine: unable to parse orgId from user/orgs response")
		}

		return orgs[0].ID, nil
	}

	if !topLevel.IsZero() {
		return topLevel, nil
	}

	return 0, ErrNoOrgs
}
