package filevine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fvtools/fvmirror/internal/fvid"
)

// ListFolders returns the full folder listing for a project in one call.
// Archived folders are excluded; the gateway paginates nothing here, so the
// response is the complete set.
func (c *Client) ListFolders(ctx context.Context, projectID fvid.ID) ([]Folder, error) {
	c.logger.Info("listing folders", slog.String("project_id", projectID.String()))

	query := projectQuery(projectID)
	query.Set("includeArchivedFolders", "false")

	var resp listResponse[folderResponse]
	if err := c.get(ctx, "/Folders/list", query, &resp); err != nil {
		return nil, fmt.Errorf("listing folders: %w", err)
	}

	folders := make([]Folder, 0, len(resp.Items))
	for _, item := range resp.Items {
		folders = append(folders, item.toFolder())
	}

	c.logger.Info("listed folders",
		slog.String("project_id", projectID.String()),
		slog.Int("count", len(folders)),
	)

	return folders, nil
}
