package filevine

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/fvtools/fvmirror/internal/fvid"
)

// Default per-call timeouts. API calls return small JSON payloads; content
// downloads stream whole documents, so their budget is the largest.
const (
	defaultAPITimeout     = 60 * time.Second
	defaultContentTimeout = 120 * time.Second
	userAgent             = "fvmirror/0.1"
)

// Session request headers. Every API call must identify the organization
// and user it acts for, alongside the bearer token.
const (
	headerOrgID  = "x-fv-orgid"
	headerUserID = "x-fv-userid"
)

// maxErrorBody caps how much of an error response body is kept for messages.
const maxErrorBody = 4096

// Client is an HTTP client for the Filevine v2 API. It attaches the bearer
// token and session headers to every request and classifies error responses.
// Requests are executed exactly once. The mirror engine owns retries.
type Client struct {
	baseURL string
	token   oauth2.TokenSource
	session Session
	logger  *slog.Logger

	// api serves metadata calls; content streams signed-URL downloads.
	api     *http.Client
	content *http.Client
}

// NewClient creates a Filevine API client. baseURL is typically
// "https://api.filevineapp.com/fv-app/v2".
func NewClient(baseURL string, token oauth2.TokenSource, session Session, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		session: session,
		logger:  logger,
		api:     &http.Client{Timeout: defaultAPITimeout},
		content: &http.Client{Timeout: defaultContentTimeout},
	}
}

// SetTimeouts overrides the per-call HTTP timeouts. Zero values keep the
// current settings.
func (c *Client) SetTimeouts(api, content time.Duration) {
	if api > 0 {
		c.api.Timeout = api
	}

	if content > 0 {
		c.content.Timeout = content
	}
}

// Session returns the org/user identity the client sends with each request.
func (c *Client) Session() Session {
	return c.session
}

// get executes a single authenticated GET against the API and decodes the
// 2xx JSON response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return fmt.Errorf("filevine: creating request: %w", err)
	}

	if err := c.setHeaders(req); err != nil {
		return err
	}

	resp, err := c.api.Do(req)
	if err != nil {
		return fmt.Errorf("filevine: GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return responseError(resp, path)
	}

	c.logger.Debug("request succeeded",
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
	)

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("filevine: decoding %s response: %w", path, err)
	}

	return nil
}

// setHeaders attaches the bearer token and session identity headers.
func (c *Client) setHeaders(req *http.Request) error {
	tok, err := c.token.Token()
	if err != nil {
		return fmt.Errorf("filevine: obtaining token: %w", err)
	}

	tok.SetAuthHeader(req)
	req.Header.Set(headerOrgID, c.session.OrgID.String())
	req.Header.Set(headerUserID, c.session.UserID.String())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	return nil
}

// DownloadContent issues a plain GET against a signed locator URL and
// returns the response body for streaming, along with the reported content
// length (-1 if unknown). Signed URLs embed their own authorization, so no
// session headers are attached, and the URL itself is never logged.
// The caller must close the returned body.
func (c *Client) DownloadContent(ctx context.Context, signedURL string) (io.ReadCloser, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, signedURL, http.NoBody)
	if err != nil {
		return nil, 0, fmt.Errorf("filevine: creating download request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := c.content.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("filevine: fetching content: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		defer resp.Body.Close()
		return nil, 0, responseError(resp, "content")
	}

	return resp.Body, resp.ContentLength, nil
}

// responseError reads the error body and wraps it with the classified
// sentinel. The body is capped so a huge error page cannot balloon memory.
func responseError(resp *http.Response, endpoint string) error {
	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if readErr != nil {
		body = []byte("(failed to read response body)")
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Endpoint:   endpoint,
		Message:    strings.TrimSpace(string(body)),
		Err:        classifyStatus(resp.StatusCode),
	}
}

// projectQuery builds the projectId query parameter shared by the listing
// endpoints.
func projectQuery(projectID fvid.ID) url.Values {
	return url.Values{"projectId": []string{projectID.String()}}
}
