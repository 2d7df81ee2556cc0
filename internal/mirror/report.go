package mirror

import "github.com/fvtools/fvmirror/internal/fvid"

// Status is the terminal state of one document's mirror attempt.
type Status string

const (
	// StatusSuccess means the document was downloaded and written to disk.
	StatusSuccess Status = "success"

	// StatusFailed means every attempt failed; Err holds the last error.
	StatusFailed Status = "failed"

	// StatusSkipped means dry-run mode suppressed the download.
	StatusSkipped Status = "skipped"
)

// Outcome records what happened to a single document. Exactly one Outcome
// exists per input document regardless of how the run went.
type Outcome struct {
	DocumentID fvid.ID
	Path       string
	Status     Status
	Attempts   int
	Bytes      int64
	Err        error
}

// Report aggregates the outcomes of a mirror run.
type Report struct {
	Outcomes []Outcome
}

// Succeeded returns the number of documents downloaded to disk.
func (r *Report) Succeeded() int {
	return r.count(StatusSuccess)
}

// Failed returns the number of documents that exhausted their attempts.
func (r *Report) Failed() int {
	return r.count(StatusFailed)
}

// Skipped returns the number of documents suppressed by dry-run mode.
func (r *Report) Skipped() int {
	return r.count(StatusSkipped)
}

func (r *Report) count(s Status) int {
	n := 0

	for _, o := range r.Outcomes {
		if o.Status == s {
			n++
		}
	}

	return n
}

// BytesDownloaded returns the total bytes written across all successes.
func (r *Report) BytesDownloaded() int64 {
	var total int64

	for _, o := range r.Outcomes {
		total += o.Bytes
	}

	return total
}

// Failures returns the failed outcomes, for error listings after the run.
func (r *Report) Failures() []Outcome {
	var failed []Outcome

	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			failed = append(failed, o)
		}
	}

	return failed
}
