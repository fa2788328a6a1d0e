package repl

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/steveyegge/issueview/internal/types"
)

// SeverityColor returns the print function used for a severity.
func SeverityColor(s types.Severity) func(a ...interface{}) string {
	switch {
	case s >= types.SeverityCriticalWarning:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	case s >= types.SeverityRecommendation:
		return color.New(color.FgYellow).SprintFunc()
	case s >= types.SeverityInformation:
		return color.New(color.FgCyan).SprintFunc()
	default:
		return fmt.Sprint
	}
}

// FormatIssue renders one issue as a single line.
func FormatIssue(info *types.IssueInfo) string {
	sev := info.Severity()
	line := fmt.Sprintf("[%s] %s  %s", SeverityColor(sev)(sev.String()), info.Key(), info.Issue().Title)
	if id := info.DeduplicationID(); id != "" {
		line += fmt.Sprintf(" (dedup %s)", id)
	}
	return line
}
