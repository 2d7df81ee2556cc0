package mirror

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fvtools/fvmirror/internal/filevine"
	"github.com/fvtools/fvmirror/internal/fvid"
)

// DocumentFetcher is the slice of the API client the downloader needs:
// locator lookup and content streaming. *filevine.Client satisfies it.
type DocumentFetcher interface {
	GetDocumentLocator(ctx context.Context, docID fvid.ID) (filevine.Locator, error)
	DownloadContent(ctx context.Context, signedURL string) (io.ReadCloser, int64, error)
}

// Downloader mirrors single documents to disk. Each Process call resolves
// the destination, applies the dry-run gate, and runs the fetch with the
// configured retry policy. Downloaders carry no per-document state, so one
// instance serves all workers.
type Downloader struct {
	Index   Index
	BaseDir string
	Fetcher DocumentFetcher
	Retry   RetryPolicy
	DryRun  bool
	Logger  *slog.Logger

	// sleep is called to wait between retries. Defaults to timeSleep.
	sleep sleepFunc
}

// NewDownloader creates a downloader over the given folder index.
func NewDownloader(
	idx Index,
	baseDir string,
	fetcher DocumentFetcher,
	retry RetryPolicy,
	dryRun bool,
	logger *slog.Logger,
) *Downloader {
	if logger == nil {
		logger = slog.Default()
	}

	return &Downloader{
		Index:   idx,
		BaseDir: baseDir,
		Fetcher: fetcher,
		Retry:   retry,
		DryRun:  dryRun,
		Logger:  logger,
		sleep:   timeSleep,
	}
}

// Process mirrors one document and returns its outcome. Failures are
// contained in the outcome, never returned: one document must not abort
// the rest of the run.
//
// The dry-run gate sits before any network or filesystem mutation, so the
// plan and execute paths are identical up to that point.
func (d *Downloader) Process(ctx context.Context, doc filevine.Document) Outcome {
	dest := filepath.Join(d.BaseDir, d.Index.RelPath(doc.FolderID), SafeName(doc.Filename))

	// A zero folder id is a root-level document; only a nonzero id with no
	// index entry is an anomaly worth flagging.
	if _, known := d.Index[doc.FolderID]; !known && !doc.FolderID.IsZero() {
		d.Logger.Warn("mirror: document folder not in index, mirroring to root",
			"document_id", doc.ID.String(),
			"folder_id", doc.FolderID.String(),
		)
	}

	if d.DryRun {
		d.Logger.Info("mirror: dry-run, would download",
			"document_id", doc.ID.String(),
			"path", dest,
		)

		return Outcome{DocumentID: doc.ID, Path: dest, Status: StatusSkipped}
	}

	var (
		attempts int
		lastErr  error
	)

	for attempt := 1; attempt <= d.Retry.MaxAttempts; attempt++ {
		attempts = attempt

		written, err := d.fetchOnce(ctx, doc, dest)
		if err == nil {
			d.Logger.Info("mirror: downloaded",
				"document_id", doc.ID.String(),
				"path", dest,
				"bytes", written,
				"attempts", attempt,
			)

			return Outcome{
				DocumentID: doc.ID,
				Path:       dest,
				Status:     StatusSuccess,
				Attempts:   attempt,
				Bytes:      written,
			}
		}

		lastErr = err

		if !filevine.IsRetryable(err) {
			d.Logger.Warn("mirror: permanent error, not retrying",
				"document_id", doc.ID.String(),
				"error", err,
			)

			break
		}

		if attempt < d.Retry.MaxAttempts {
			backoff := d.Retry.Backoff(attempt)
			d.Logger.Warn("mirror: download failed, retrying",
				"document_id", doc.ID.String(),
				"attempt", attempt,
				"max_attempts", d.Retry.MaxAttempts,
				"backoff", backoff,
				"error", err,
			)

			if sleepErr := d.sleep(ctx, backoff); sleepErr != nil {
				break
			}
		}
	}

	d.Logger.Error("mirror: download failed",
		"document_id", doc.ID.String(),
		"path", dest,
		"attempts", attempts,
		"error", lastErr,
	)

	return Outcome{DocumentID: doc.ID, Path: dest, Status: StatusFailed, Attempts: attempts, Err: lastErr}
}

// fetchOnce performs a single end-to-end attempt: parent directory,
// locator, content stream, file write. It returns the bytes written. The
// parent mkdir repeats per attempt because a failed attempt may follow an
// external cleanup.
func (d *Downloader) fetchOnce(ctx context.Context, doc filevine.Document, dest string) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(dest), dirPerms); err != nil {
		return 0, fmt.Errorf("creating parent directory: %w", err)
	}

	locator, err := d.Fetcher.GetDocumentLocator(ctx, doc.ID)
	if err != nil {
		return 0, err
	}

	body, _, err := d.Fetcher.DownloadContent(ctx, locator.URL)
	if err != nil {
		return 0, err
	}
	defer body.Close()

	f, err := os.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("creating file: %w", err)
	}

	written, err := io.Copy(f, body)
	if err != nil {
		f.Close()

		return written, fmt.Errorf("writing file: %w", err)
	}

	if err := f.Close(); err != nil {
		return written, fmt.Errorf("closing file: %w", err)
	}

	return written, nil
}
