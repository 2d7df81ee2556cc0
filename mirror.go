package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fvtools/fvmirror/internal/fvid"
	"github.com/fvtools/fvmirror/internal/mirror"
)

// errDocumentsFailed signals that some documents could not be downloaded.
// The per-document report has already been printed, so main exits 1
// without the generic error banner.
var errDocumentsFailed = errors.New("some documents failed to download")

func newMirrorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mirror <project-id>",
		Short: "Download a project's documents into a local folder tree",
		Long: "Mirror downloads every document in a Filevine project into the destination\n" +
			"directory, recreating the project's folder structure on disk. Existing\n" +
			"files are overwritten; a second run refreshes the mirror in place.",
		Args: cobra.ExactArgs(1),
		RunE: runMirror,
	}

	cmd.Flags().StringP("dest", "d", "", "destination directory for the mirror")
	cmd.Flags().Int("workers", 0, "number of concurrent downloads")
	cmd.Flags().Int("max-attempts", 0, "download attempts per document")
	cmd.Flags().Bool("dry-run", false, "create the folder tree but skip downloads")

	return cmd
}

func runMirror(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := buildLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	projectID, err := fvid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid project id %q: %w", args[0], err)
	}

	cfg := resolvedCfg

	dest := cfg.Mirror.Dest
	if dest == "" {
		return errors.New("no destination directory: set --dest, FVMIRROR_DEST, or mirror.dest in the config file")
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")

	ctx := shutdownContext(cmd.Context(), logger)

	client, err := newAPISession(ctx, logger)
	if err != nil {
		return err
	}

	statusf("Mirroring project %s to %s\n", projectID, dest)

	folders, err := client.ListFolders(ctx, projectID)
	if err != nil {
		return err
	}

	idx := mirror.BuildIndex(folders)

	docs, err := client.ListDocuments(ctx, projectID)
	if err != nil {
		return err
	}

	statusf("Found %d folders and %d documents\n", len(folders), len(docs))

	planner := mirror.NewPlanner(dest, logger)
	if err := planner.EnsureBase(); err != nil {
		return err
	}

	release, err := acquireDestLock(dest)
	if err != nil {
		return err
	}
	defer release()

	// Folder creation failures are not fatal: affected documents fail
	// individually when their parent directory cannot be created.
	if err := planner.EnsureFolders(ctx, idx); err != nil {
		logger.Warn("mirror: folder skeleton incomplete", "error", err)
	}

	policy := mirror.RetryPolicy{
		MaxAttempts: cfg.Mirror.MaxAttempts,
		Backoff:     mirror.ExponentialBackoff,
	}

	dl := mirror.NewDownloader(idx, dest, client, policy, dryRun, logger)
	pool := mirror.NewPool(cfg.Mirror.Workers, logger)

	report := pool.Run(ctx, docs, dl.Process)

	if flagJSON {
		if err := printMirrorJSON(projectID, dest, dryRun, report); err != nil {
			return err
		}
	} else {
		printMirrorSummary(report, dryRun)
	}

	if report.Failed() > 0 {
		return errDocumentsFailed
	}

	return nil
}

func printMirrorSummary(report mirror.Report, dryRun bool) {
	if dryRun {
		statusf("Dry run: %d documents would be downloaded\n", report.Skipped())
	} else {
		statusf("Downloaded %d of %d documents (%s)\n",
			report.Succeeded(), len(report.Outcomes), formatSize(report.BytesDownloaded()))
	}

	failures := report.Failures()
	if len(failures) == 0 {
		return
	}

	fmt.Printf("\n%d documents failed:\n\n", len(failures))

	rows := make([][]string, 0, len(failures))
	for _, f := range failures {
		rows = append(rows, []string{
			f.DocumentID.String(),
			f.Path,
			strconv.Itoa(f.Attempts),
			f.Err.Error(),
		})
	}

	printTable(os.Stdout, []string{"DOCUMENT", "PATH", "ATTEMPTS", "ERROR"}, rows)
}

type mirrorResultDoc struct {
	DocumentID fvid.ID `json:"document_id"`
	Path       string  `json:"path"`
	Status     string  `json:"status"`
	Attempts   int     `json:"attempts"`
	Bytes      int64   `json:"bytes,omitempty"`
	Error      string  `json:"error,omitempty"`
}

type mirrorResult struct {
	ProjectID fvid.ID           `json:"project_id"`
	Dest      string            `json:"dest"`
	DryRun    bool              `json:"dry_run,omitempty"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Skipped   int               `json:"skipped"`
	Bytes     int64             `json:"bytes_downloaded"`
	Documents []mirrorResultDoc `json:"documents"`
}

func printMirrorJSON(projectID fvid.ID, dest string, dryRun bool, report mirror.Report) error {
	result := mirrorResult{
		ProjectID: projectID,
		Dest:      dest,
		DryRun:    dryRun,
		Succeeded: report.Succeeded(),
		Failed:    report.Failed(),
		Skipped:   report.Skipped(),
		Bytes:     report.BytesDownloaded(),
		Documents: make([]mirrorResultDoc, 0, len(report.Outcomes)),
	}

	for _, o := range report.Outcomes {
		doc := mirrorResultDoc{
			DocumentID: o.DocumentID,
			Path:       o.Path,
			Status:     string(o.Status),
			Attempts:   o.Attempts,
			Bytes:      o.Bytes,
		}
		if o.Err != nil {
			doc.Error = o.Err.Error()
		}

		result.Documents = append(result.Documents, doc)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(result)
}
