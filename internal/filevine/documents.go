package filevine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fvtools/fvmirror/internal/fvid"
)

// ErrNoLocatorURL is returned when the locator endpoint answers 200 but the
// body carries no download URL.
var ErrNoLocatorURL = errors.New("filevine: locator response has no url")

// ListDocuments returns every document record in the project. Records whose
// folder no longer exists still appear here; path resolution is the
// caller's concern.
func (c *Client) ListDocuments(ctx context.Context, projectID fvid.ID) ([]Document, error) {
	c.logger.Info("listing documents", slog.String("project_id", projectID.String()))

	var resp listResponse[documentResponse]
	if err := c.get(ctx, "/Documents", projectQuery(projectID), &resp); err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	docs := make([]Document, 0, len(resp.Items))
	for _, item := range resp.Items {
		docs = append(docs, item.toDocument())
	}

	c.logger.Info("listed documents",
		slog.String("project_id", projectID.String()),
		slog.Int("count", len(docs)),
	)

	return docs, nil
}

// GetDocumentLocator fetches the short-lived signed URL for a document's
// content. The URL embeds its own authorization; do not log it.
func (c *Client) GetDocumentLocator(ctx context.Context, docID fvid.ID) (Locator, error) {
	var resp locatorResponse
	if err := c.get(ctx, fmt.Sprintf("/Documents/%s/locator", docID), nil, &resp); err != nil {
		return Locator{}, fmt.Errorf("fetching locator: %w", err)
	}

	if resp.URL == "" {
		return Locator{}, ErrNoLocatorURL
	}

	return Locator{URL: resp.URL}, nil
}
