package collisions

import (
	"fmt"
	"strings"

	"github.com/boergens/check-svg-collisions/model"
)

// Report is the outcome of checking one drawing: a whole SVG file, or a
// single TikZ figure within a LaTeX file. Issues fail the run, warnings
// and notices inform it, and Err records a file that could not be read
// at all.
type Report struct {
	File   string
	Figure string // TikZ figure label; empty for SVG reports
	Line   int    // source line of the figure; 0 for whole-file reports

	Texts    int
	Shapes   int
	Segments int

	Issues   []model.Issue
	Warnings []model.Issue
	Notices  []string

	Err error
}

// Subject names the report in output: the file for SVG, the figure
// label with its source line for TikZ.
func (r Report) Subject() string {
	if r.Figure != "" {
		return fmt.Sprintf("%s (line %d)", r.Figure, r.Line)
	}
	return r.File
}

// Status summarizes the report the way the per-file output header shows
// it.
func (r Report) Status() string {
	if r.Err != nil {
		return "ERROR"
	}
	var status string
	switch {
	case len(r.Issues) > 0:
		status = fmt.Sprintf("ISSUES (%d)", len(r.Issues))
	case len(r.Warnings) > 0:
		status = fmt.Sprintf("WARNINGS (%d)", len(r.Warnings))
	default:
		status = "OK"
	}
	if n := r.missingIDs(); n > 0 {
		status += fmt.Sprintf(" [MISSING IDs: %d]", n)
	}
	return status
}

// missingIDs counts the notices that report elements without an id.
func (r Report) missingIDs() int {
	n := 0
	for _, notice := range r.Notices {
		if strings.Contains(notice, "has no id") {
			n++
		}
	}
	return n
}

// FormatReport renders one report as its human-readable block: a header
// line with optional element counts, then one line per issue, warning
// and notice.
func FormatReport(r Report, verbose bool) string {
	var sb strings.Builder

	if r.Err != nil {
		fmt.Fprintf(&sb, "\n%s: ERROR\n  %v\n", r.Subject(), r.Err)
		return sb.String()
	}

	counts := ""
	if verbose {
		counts = fmt.Sprintf(" %dt/%ds/%dl", r.Texts, r.Shapes, r.Segments)
	}
	fmt.Fprintf(&sb, "\n%s%s: %s\n", r.Subject(), counts, r.Status())

	for _, issue := range r.Issues {
		fmt.Fprintf(&sb, "  - %s: %s\n", strings.ToUpper(string(issue.Kind)), issueSubjects(issue))
	}
	for _, warn := range r.Warnings {
		fmt.Fprintf(&sb, "  - WARNING %s: %s\n", warn.Kind, issueSubjects(warn))
	}
	for _, notice := range r.Notices {
		sb.WriteString(notice)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// issueSubjects renders the participant pair. An issue without a second
// subject shows its detail there instead ("shaft / 15px < 20px").
func issueSubjects(issue model.Issue) string {
	b := issue.SubjectB
	if b == "" {
		b = issue.Detail
	} else if issue.Detail != "" {
		b += " (" + issue.Detail + ")"
	}
	if b == "" {
		return issue.SubjectA
	}
	return issue.SubjectA + " / " + b
}

// Summary renders the closing result line over a batch of reports.
func Summary(reports []Report) string {
	issues, warnings, missing, errs := 0, 0, 0, 0
	for _, r := range reports {
		issues += len(r.Issues)
		warnings += len(r.Warnings)
		missing += r.missingIDs()
		if r.Err != nil {
			errs++
		}
	}

	if issues == 0 && warnings == 0 && missing == 0 && errs == 0 {
		return "Result: No issues detected"
	}
	var parts []string
	if issues > 0 {
		parts = append(parts, fmt.Sprintf("%d issue(s)", issues))
	}
	if warnings > 0 {
		parts = append(parts, fmt.Sprintf("%d warning(s)", warnings))
	}
	if missing > 0 {
		parts = append(parts, fmt.Sprintf("%d missing ID(s)", missing))
	}
	if errs > 0 {
		parts = append(parts, fmt.Sprintf("%d file error(s)", errs))
	}
	return "Result: " + strings.Join(parts, ", ")
}

// ExitCode implements the process exit contract: 1 when any report
// carries issues, 0 otherwise. Warnings, notices and file errors do not
// affect it.
func ExitCode(reports []Report) int {
	for _, r := range reports {
		if len(r.Issues) > 0 {
			return 1
		}
	}
	return 0
}
