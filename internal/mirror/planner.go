package mirror

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// dirPerms is the mode for every directory the mirror creates.
const dirPerms = 0o755

// Planner materializes the folder skeleton under the mirror root before any
// download starts. It creates every indexed folder, including empty ones,
// so the local tree mirrors the project structure rather than just the
// documents. Directory creation runs in dry-run mode too; only downloads
// are gated.
type Planner struct {
	BaseDir string
	Logger  *slog.Logger
}

// NewPlanner creates a planner rooted at baseDir.
func NewPlanner(baseDir string, logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.Default()
	}

	return &Planner{BaseDir: baseDir, Logger: logger}
}

// EnsureBase creates the mirror root. Failure here is fatal: nothing can
// be mirrored without it.
func (p *Planner) EnsureBase() error {
	if err := os.MkdirAll(p.BaseDir, dirPerms); err != nil {
		return fmt.Errorf("creating mirror root: %w", err)
	}

	return nil
}

// EnsureFolders creates a directory for every folder in the index.
// MkdirAll makes the operation idempotent, so re-running against an
// existing mirror is a no-op. Individual failures do not stop the pass;
// they are joined and returned at the end so one bad folder cannot block
// the rest of the skeleton.
func (p *Planner) EnsureFolders(ctx context.Context, idx Index) error {
	var errs []error

	created := 0

	for id := range idx {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)

			break
		}

		if idx.Truncated(id) {
			p.Logger.Warn("mirror: folder chain broken, mirroring from break point",
				"folder_id", id.String(),
			)
		}

		dir := filepath.Join(p.BaseDir, idx.RelPath(id))
		if err := os.MkdirAll(dir, dirPerms); err != nil {
			errs = append(errs, fmt.Errorf("creating folder %s: %w", id, err))

			continue
		}

		created++
	}

	p.Logger.Info("mirror: folder skeleton ready",
		"folders", created,
		"errors", len(errs),
	)

	return errors.Join(errs...)
}
