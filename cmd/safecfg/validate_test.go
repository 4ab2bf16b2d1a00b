package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safecfg-dev/safecfg/internal/output"
	"github.com/safecfg-dev/safecfg/internal/rules"
)

const testDocument = `
version: "1.0.0"
groups:
  - id: privacy
    title: 101
    summary: 102
    statelessIcon: privacy
    sources:
      - id: permission-usage
        type: static
        title: 201
        summary: 202
`

func writeDocument(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestValidateDocument_Clean(t *testing.T) {
	res := validateDocument(writeDocument(t, testDocument), nil)

	assert.Equal(t, 1, res.Groups)
	assert.Empty(t, res.Findings)
}

func TestValidateDocument_Findings(t *testing.T) {
	doc := `
version: "1.0.0"
groups:
  - id: broken
    title: 101
    summary: 102
`
	res := validateDocument(writeDocument(t, doc), nil)

	require.Len(t, res.Findings, 1)
	assert.Equal(t, "broken", res.Findings[0].GroupID)
	assert.Equal(t, output.KindStructure, res.Findings[0].Kind)
	assert.Equal(t, output.SeverityError, res.Findings[0].Severity)
}

func TestValidateDocument_Unreadable(t *testing.T) {
	res := validateDocument(filepath.Join(t.TempDir(), "missing.yaml"), nil)

	require.Len(t, res.Findings, 1)
	assert.Equal(t, output.SeverityError, res.Findings[0].Severity)
	assert.Zero(t, res.Groups)
}

func TestValidateDocument_Rules(t *testing.T) {
	compiled, err := rules.Compile([]string{`IconType == "none"`, `SourceCount >= 1`})
	require.NoError(t, err)

	res := validateDocument(writeDocument(t, testDocument), compiled)

	// The privacy group breaks the first rule only.
	require.Len(t, res.Findings, 1)
	assert.Equal(t, "privacy", res.Findings[0].GroupID)
	assert.Equal(t, output.KindRule, res.Findings[0].Kind)
	assert.Equal(t, output.SeverityWarning, res.Findings[0].Severity)
	assert.Contains(t, res.Findings[0].Message, `IconType == "none"`)
}

func TestNewFormatter(t *testing.T) {
	var buf bytes.Buffer
	for _, format := range []string{"table", "json", "yaml", "sarif"} {
		f, err := newFormatter(&buf, format)
		require.NoError(t, err, format)
		assert.NotNil(t, f, format)
	}

	_, err := newFormatter(&buf, "junit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestRenderScaffold(t *testing.T) {
	data, err := renderScaffold(initOptions{
		GroupID:    "privacy",
		Title:      "101",
		Summary:    "102",
		IconType:   "privacy",
		SourceID:   "permission-usage",
		SourceType: "dynamic",
		Package:    "com.example.permissions",
	})
	require.NoError(t, err)
	assert.Contains(t, string(data), "id: privacy")
	assert.Contains(t, string(data), "package: com.example.permissions")

	// Wizard output that would not load is rejected.
	_, err = renderScaffold(initOptions{
		GroupID:    "privacy",
		Title:      "0",
		Summary:    "102",
		SourceID:   "s",
		SourceType: "static",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generated document is invalid")
}
