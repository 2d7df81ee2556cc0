package mirror

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/fvtools/fvmirror/internal/filevine"
)

// DefaultWorkers is the worker count when no configuration is provided.
const DefaultWorkers = 4

// Pool dispatches document processing across a bounded set of workers.
type Pool struct {
	Workers int
	Logger  *slog.Logger
}

// NewPool creates a pool with the given worker count. Zero or negative
// falls back to DefaultWorkers.
func NewPool(workers int, logger *slog.Logger) *Pool {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Pool{Workers: workers, Logger: logger}
}

// Run processes every document through the bounded pool and blocks until
// all of them have an outcome. Each document is dispatched exactly once;
// retries happen inside process, not by re-dispatch. Failures are carried
// in outcomes, so one bad document never cancels the others.
func (p *Pool) Run(
	ctx context.Context,
	docs []filevine.Document,
	process func(context.Context, filevine.Document) Outcome,
) Report {
	p.Logger.Info("mirror: starting downloads",
		"count", len(docs),
		"workers", p.Workers,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.Workers)

	var mu sync.Mutex

	report := Report{Outcomes: make([]Outcome, 0, len(docs))}

	for _, doc := range docs {
		doc := doc
		g.Go(func() error {
			outcome := process(gctx, doc)

			mu.Lock()
			report.Outcomes = append(report.Outcomes, outcome)
			mu.Unlock()

			return nil
		})
	}

	// Workers never return errors; Wait only fences completion.
	_ = g.Wait()

	p.Logger.Info("mirror: downloads finished",
		"succeeded", report.Succeeded(),
		"failed", report.Failed(),
		"skipped", report.Skipped(),
	)

	return report
}
