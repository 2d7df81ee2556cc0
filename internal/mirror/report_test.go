package mirror

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportCounts(t *testing.T) {
	report := Report{Outcomes: []Outcome{
		{DocumentID: 1, Status: StatusSuccess, Attempts: 1, Bytes: 100},
		{DocumentID: 2, Status: StatusSuccess, Attempts: 2, Bytes: 250},
		{DocumentID: 3, Status: StatusFailed, Attempts: 3, Err: assert.AnError},
		{DocumentID: 4, Status: StatusSkipped},
	}}

	assert.Equal(t, 2, report.Succeeded())
	assert.Equal(t, 1, report.Failed())
	assert.Equal(t, 1, report.Skipped())
	assert.Equal(t, int64(350), report.BytesDownloaded())
}

func TestReportFailures(t *testing.T) {
	report := Report{Outcomes: []Outcome{
		{DocumentID: 1, Status: StatusSuccess},
		{DocumentID: 3, Status: StatusFailed, Err: assert.AnError},
	}}

	failures := report.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, int64(3), failures[0].DocumentID.Int64())

	empty := Report{}
	assert.Empty(t, empty.Failures())
}
