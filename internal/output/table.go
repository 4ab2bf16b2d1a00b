package output

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// TableFormatter formats a report as a human-readable table.
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// Format writes the report as a table.
func (f *TableFormatter) Format(report *Report) error {
	fmt.Fprintf(f.writer, "Run: %s (safecfg %s)\n", report.RunID, report.ToolVersion)
	fmt.Fprintf(f.writer, "Started: %s\n", report.StartTime.Format(time.RFC3339))
	fmt.Fprintf(f.writer, "Duration: %s\n", report.Duration.Round(time.Millisecond))
	fmt.Fprintln(f.writer)

	for _, doc := range report.Documents {
		f.formatDocument(doc)
	}

	f.formatSummary(report.Summary)
	return nil
}

func (f *TableFormatter) formatDocument(doc DocumentResult) {
	status := "✓"
	if len(doc.Findings) > 0 {
		status = "✗"
	}
	fmt.Fprintf(f.writer, "%s %s (%d groups)\n", status, doc.Path, doc.Groups)

	for _, finding := range doc.Findings {
		target := "document"
		if finding.GroupID != "" {
			target = "group " + finding.GroupID
		}
		if finding.Field != "" {
			target += ", field " + finding.Field
		}
		fmt.Fprintf(f.writer, "  [%s] %s: %s\n", strings.ToUpper(string(finding.Severity)), target, finding.Message)
	}
	fmt.Fprintln(f.writer)
}

func (f *TableFormatter) formatSummary(s Summary) {
	fmt.Fprintln(f.writer, strings.Repeat("─", 60))
	fmt.Fprintf(f.writer, "Documents: %d  Groups: %d  Errors: %d  Warnings: %d\n",
		s.Documents, s.Groups, s.Errors, s.Warnings)
}
