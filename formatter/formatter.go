// Package formatter renders check reports as human-readable text.
package formatter

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gnoverse/teq/check"
)

var (
	equalStyle    = color.New(color.FgGreen)
	unequalStyle  = color.New(color.FgYellow)
	mismatchStyle = color.New(color.FgRed, color.Bold)
	skippedStyle  = color.New(color.FgWhite)
	docStyle      = color.New(color.FgCyan, color.Bold)
	summaryStyle  = color.New(color.FgHiBlue, color.Bold)
)

// Format renders a single report: a header naming the document, one line
// per query, and a closing summary line.
func Format(report *check.Report) string {
	var builder strings.Builder
	builder.WriteString(docStyle.Sprintf("%s", report.Name))
	builder.WriteString(fmt.Sprintf(" (%s)\n", report.Document))
	for _, result := range report.Results {
		builder.WriteString(formatResult(result))
	}
	builder.WriteString(summaryStyle.Sprintf("%d queries, %d mismatches\n", len(report.Results), report.Mismatches))
	return builder.String()
}

// FormatAll renders reports in order, separated by blank lines.
func FormatAll(reports []*check.Report) string {
	parts := make([]string, 0, len(reports))
	for _, report := range reports {
		parts = append(parts, Format(report))
	}
	return strings.Join(parts, "\n")
}

func formatResult(result check.Result) string {
	query := fmt.Sprintf("%s = %s", result.Left, result.Right)
	switch {
	case result.Skipped:
		return skippedStyle.Sprintf("  skipped  %s\n", query)
	case result.Mismatch:
		return mismatchStyle.Sprintf("  FAIL     %s: got %v, want %v\n", query, result.Equal, *result.Want)
	case result.Equal:
		return equalStyle.Sprintf("  equal    %s\n", query)
	default:
		return unequalStyle.Sprintf("  unequal  %s\n", query)
	}
}
