// Package render produces output from a fully assembled analysis report:
// machine-readable JSON, Markdown for PR comments, and the colored
// human-readable terminal form.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/dshills/featurecheck/internal/schema"
)

// JSON produces a pretty-printed JSON representation of the report.
// The output round-trips through json.Unmarshal back to an equal Report.
func JSON(report *schema.Report) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("render: nil report")
	}
	b, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render: json marshal: %w", err)
	}
	return b, nil
}

// Markdown produces a GitHub-flavoured Markdown summary of the report.
// Every finding and application in the report appears in the output.
func Markdown(report *schema.Report) string {
	if report == nil {
		return ""
	}
	res := report.Result
	var sb strings.Builder

	sb.WriteString("## Featurecheck Report\n\n")
	fmt.Fprintf(&sb, "**File:** %s  \n", report.Input.File)
	fmt.Fprintf(&sb, "**Archetype:** %s  \n", res.Archetype)
	fmt.Fprintf(&sb, "**Score:** %d/100  \n", res.Summary.Score)
	fmt.Fprintf(&sb, "**Missing:** %d high | %d medium | %d low\n\n",
		res.Summary.HighMissing, res.Summary.MediumMissing, res.Summary.LowMissing)

	if len(res.Findings) > 0 {
		sb.WriteString("## Findings\n\n")
		sb.WriteString("| Feature | Importance | Status |\n")
		sb.WriteString("|---|---|---|\n")
		for _, f := range res.Findings {
			fmt.Fprintf(&sb, "| %s | %s | %s |\n",
				mdEscape(f.Feature.Name), f.Feature.Importance, f.Status)
		}
		sb.WriteString("\n")
	}

	if len(res.Applied) > 0 {
		sb.WriteString("## Insertions\n\n")
		for _, a := range res.Applied {
			switch a.Status {
			case schema.ApplyApplied:
				fmt.Fprintf(&sb, "- `%s` applied at line %d (%s variant)\n",
					a.Name, a.Line, a.Variant)
			default:
				fmt.Fprintf(&sb, "- `%s` skipped: %s\n", a.Name, mdEscape(a.Reason))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// mdEscape replaces characters that would break Markdown table cells.
func mdEscape(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", "")
	return s
}

// Terminal writes the human-readable analysis summary to w. Colors follow
// the package-global color.NoColor setting, so output degrades cleanly when
// not attached to a terminal.
func Terminal(w io.Writer, file string, res *schema.AnalysisResult) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	fmt.Fprintf(w, "%s\n", cyan(file))
	fmt.Fprintf(w, "  archetype: %s  score: %d/100\n", cyan(string(res.Archetype)), res.Summary.Score)

	if len(res.Missing) == 0 && len(res.Findings) > 0 {
		fmt.Fprintf(w, "  %s\n", green("no missing default features detected"))
	}

	for _, f := range res.Findings {
		switch f.Status {
		case schema.DetectMissing:
			paint := yellow
			if f.Feature.Importance == schema.ImportanceHigh {
				paint = red
			}
			fmt.Fprintf(w, "  - %s (%s)\n", paint(f.Feature.Description), f.Feature.Importance)
		case schema.DetectUndetermined:
			fmt.Fprintf(w, "  ? %s: %s\n", yellow(f.Feature.Name), f.Reason)
		}
	}

	for _, a := range res.Applied {
		switch a.Status {
		case schema.ApplyApplied:
			fmt.Fprintf(w, "  + %s (line %d, %s)\n", green(a.Name), a.Line, a.Variant)
		default:
			fmt.Fprintf(w, "  ~ %s skipped: %s\n", yellow(a.Name), a.Reason)
		}
	}
}
