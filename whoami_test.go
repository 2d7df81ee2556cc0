package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fvtools/fvmirror/internal/filevine"
)

func sampleSession() filevine.Session {
	return filevine.Session{
		UserID: 101,
		OrgID:  7002,
		Email:  "attorney@example.com",
		Orgs: []filevine.Org{
			{ID: 7001, Name: "First Law"},
			{ID: 7002, Name: "Second Law"},
		},
	}
}

func TestPrintWhoamiText(t *testing.T) {
	output := captureStdout(t, func() {
		printWhoamiText(sampleSession())
	})

	assert.Contains(t, output, "User:  101")
	assert.Contains(t, output, "Email: attorney@example.com")
	assert.Contains(t, output, "Org:   7002")
	assert.Contains(t, output, "First Law")
	assert.Contains(t, output, "Second Law")

	// The active org row carries the marker.
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, "Second Law") {
			assert.True(t, strings.HasPrefix(line, "*"), "active org row should be marked: %q", line)
		}

		if strings.Contains(line, "First Law") {
			assert.False(t, strings.HasPrefix(line, "*"), "inactive org row should not be marked: %q", line)
		}
	}
}

func TestPrintWhoamiText_NoOrgList(t *testing.T) {
	session := filevine.Session{UserID: 101, OrgID: 7002}

	output := captureStdout(t, func() {
		printWhoamiText(session)
	})

	assert.Contains(t, output, "User:  101")
	assert.NotContains(t, output, "Organizations")
}

func TestPrintWhoamiJSON(t *testing.T) {
	stdout := captureStdout(t, func() {
		require.NoError(t, printWhoamiJSON(sampleSession()))
	})

	var result whoamiOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))

	assert.Equal(t, sampleSession().UserID, result.UserID)
	assert.Equal(t, sampleSession().OrgID, result.OrgID)
	require.Len(t, result.Orgs, 2)
	assert.False(t, result.Orgs[0].Active)
	assert.True(t, result.Orgs[1].Active)
}
