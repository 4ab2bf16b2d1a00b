package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safecfg-dev/safecfg/internal/config"
)

func testReport() *Report {
	r := NewReport("1.2.3")
	r.AddDocument(DocumentResult{
		Path:   "safety_sources.yaml",
		Groups: 2,
		Findings: []Finding{
			{GroupID: "privacy", Field: "title", Kind: KindField, Severity: SeverityError, Message: "required attribute title missing"},
			{GroupID: "device", Kind: KindRule, Severity: SeverityWarning, Message: `group "device" breaks rule "SourceCount <= 1"`},
		},
	})
	r.Finish()
	return r
}

func TestReport_Summary(t *testing.T) {
	r := testReport()

	assert.Equal(t, 1, r.Summary.Documents)
	assert.Equal(t, 2, r.Summary.Groups)
	assert.Equal(t, 1, r.Summary.Errors)
	assert.Equal(t, 1, r.Summary.Warnings)
	assert.True(t, r.HasErrors())
	assert.NotEmpty(t, r.RunID)

	clean := NewReport("1.2.3")
	clean.AddDocument(DocumentResult{Path: "ok.yaml", Groups: 1})
	clean.Finish()
	assert.False(t, clean.HasErrors())
}

func TestFindingFromIssue(t *testing.T) {
	// Field failures carry the field name.
	_, err := config.NewGroupBuilder().SetTitleRef(1).SetSummaryRef(2).Build()
	require.Error(t, err)
	f := FindingFromIssue(config.Issue{GroupID: "g", Err: err})
	assert.Equal(t, KindField, f.Kind)
	assert.Equal(t, "id", f.Field)
	assert.Equal(t, SeverityError, f.Severity)
	assert.Equal(t, "g", f.GroupID)

	// Structural failures have no field.
	_, err = config.NewGroupBuilder().SetID("g").SetTitleRef(1).SetSummaryRef(2).Build()
	require.Error(t, err)
	f = FindingFromIssue(config.Issue{GroupID: "g", Err: err})
	assert.Equal(t, KindStructure, f.Kind)
	assert.Empty(t, f.Field)
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(&buf, true).Format(testReport()))

	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "1.2.3", decoded.ToolVersion)
	require.Len(t, decoded.Documents, 1)
	assert.Len(t, decoded.Documents[0].Findings, 2)
	assert.Equal(t, 1, decoded.Summary.Errors)
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLFormatter(&buf).Format(testReport()))

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "1.2.3", decoded["tool_version"])
	assert.Contains(t, buf.String(), "safety_sources.yaml")
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(&buf).Format(testReport()))

	out := buf.String()
	assert.Contains(t, out, "safecfg 1.2.3")
	assert.Contains(t, out, "safety_sources.yaml")
	assert.Contains(t, out, "[ERROR] group privacy, field title")
	assert.Contains(t, out, "[WARNING] group device")
	assert.Contains(t, out, "Errors: 1  Warnings: 1")
}
