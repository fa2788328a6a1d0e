package main

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/issueview/internal/types"
)

func TestParseUserID(t *testing.T) {
	id, err := parseUserID("42")
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	_, err = parseUserID("abc")
	assert.ErrorContains(t, err, "invalid user id")

	_, err = parseUserID("-3")
	assert.ErrorContains(t, err, "cannot be negative")
}

func TestLoadRuntimeConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("ISSUEVIEW_SOURCES_FILE", "/env/sources.yaml")
	t.Setenv("ISSUEVIEW_DATA_FILE", "/env/data.yaml")
	t.Setenv("ISSUEVIEW_LOG_LEVEL", "warn")

	origSources, origLevel := sourcesPath, logLevel
	defer func() { sourcesPath, logLevel = origSources, origLevel }()
	sourcesPath = "/flag/sources.yaml"
	logLevel = "debug"

	cfg, err := loadRuntimeConfig()
	require.NoError(t, err)
	assert.Equal(t, "/flag/sources.yaml", cfg.SourcesFile)
	assert.Equal(t, "/env/data.yaml", cfg.DataFile)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRuntimeConfigRejectsBadLevel(t *testing.T) {
	orig := logLevel
	defer func() { logLevel = orig }()
	logLevel = "loud"

	_, err := loadRuntimeConfig()
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestWriteIssues(t *testing.T) {
	color.NoColor = true

	src := &types.Source{ID: "malware", Type: types.SourceTypeIssueOnly, Profile: types.ProfileAll}
	group := &types.SourcesGroup{ID: "device", Sources: []*types.Source{src}}
	info := types.NewIssueInfo(types.Issue{
		ID:       "app",
		Title:    "Harmful app",
		Summary:  "Remove the app",
		Severity: types.SeverityCriticalWarning,
	}, src, group, 0)

	var buf bytes.Buffer
	writeIssues(&buf, 0, []*types.IssueInfo{info})
	assert.Equal(t,
		"\nActive issues for user 0 (1)\n\n  [critical_warning] malware/app@0  Harmful app\n      Remove the app\n\n",
		buf.String())

	buf.Reset()
	writeIssues(&buf, 3, nil)
	assert.Contains(t, buf.String(), "No active issues")
}
