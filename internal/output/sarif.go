package output

import (
	"fmt"
	"io"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"
)

// SARIFFormatter formats a report as SARIF 2.1.0 JSON. Finding kinds map to
// SARIF rules, findings to results located in the offending document.
type SARIFFormatter struct {
	writer io.Writer
}

// NewSARIFFormatter creates a new SARIF formatter.
func NewSARIFFormatter(w io.Writer) *SARIFFormatter {
	return &SARIFFormatter{writer: w}
}

// Format writes the report as SARIF 2.1.0 JSON.
func (f *SARIFFormatter) Format(report *Report) error {
	sr := sarif.NewReport()

	run := sarif.NewRunWithInformationURI("safecfg", "https://github.com/safecfg-dev/safecfg")
	run.Tool.Driver.Version = &report.ToolVersion

	addRules(run)
	for _, doc := range report.Documents {
		for _, finding := range doc.Findings {
			run.AddResult(mapFinding(doc.Path, finding))
		}
	}

	props := sarif.NewPropertyBag()
	props.Add("run_id", report.RunID)
	props.Add("documents", report.Summary.Documents)
	props.Add("groups", report.Summary.Groups)
	run.WithProperties(props)

	sr.AddRun(run)

	if err := sr.Write(f.writer); err != nil {
		return fmt.Errorf("failed to write SARIF output: %w", err)
	}
	_, err := f.writer.Write([]byte("\n"))
	return err
}

// addRules declares one SARIF rule per finding kind.
func addRules(run *sarif.Run) {
	for _, kind := range []struct {
		id, desc string
	}{
		{KindField, "A single field failed a presence, emptiness, or range check"},
		{KindStructure, "A structural composition rule was violated"},
		{KindRule, "A group broke a user-supplied policy rule"},
	} {
		desc := kind.desc
		rule := sarif.NewReportingDescriptor().WithID(kind.id)
		rule.WithShortDescription(&sarif.MultiformatMessageString{Text: &desc})
		run.Tool.Driver.AddRule(rule)
	}
}

// mapFinding converts one finding to a SARIF result.
func mapFinding(path string, finding Finding) *sarif.Result {
	result := sarif.NewRuleResult(finding.Kind)
	result.Level = string(finding.Severity)
	result.Kind = "fail"
	result.Message = sarif.NewTextMessage(finding.Message)

	pLoc := sarif.NewPhysicalLocation().
		WithArtifactLocation(sarif.NewArtifactLocation().WithURI(path))
	result.Locations = []*sarif.Location{
		sarif.NewLocation().WithPhysicalLocation(pLoc),
	}

	props := sarif.NewPropertyBag()
	if finding.GroupID != "" {
		props.Add("group_id", finding.GroupID)
	}
	if finding.Field != "" {
		props.Add("field", finding.Field)
	}
	result.WithProperties(props)

	return result
}
