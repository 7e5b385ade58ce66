// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/resume-optimizer/internal/optimizer"
	"github.com/jonathan/resume-optimizer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 10
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintKeywords outputs the extracted keyword set and its cache provenance.
func (p *Printer) PrintKeywords(set types.KeywordSet) {
	if len(set.Keywords) == 0 {
		return
	}

	var sb strings.Builder
	source := "fresh extraction"
	if set.FromCache {
		source = "cache hit"
	}
	sb.WriteString(fmt.Sprintf("Source: %s\n\n", source))

	count := min(len(set.Keywords), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", set.Keywords[i]))
	}
	if len(set.Keywords) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(set.Keywords)-maxItemsToShow))
	}

	p.printBox("ATS KEYWORDS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRun outputs the per-section execution record of an optimization run.
func (p *Printer) PrintRun(result *optimizer.Result) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:     %s\n", result.RunID))
	sb.WriteString(fmt.Sprintf("Elapsed: %s\n\n", result.Elapsed.Round(10 * time.Millisecond)))

	for _, section := range result.Sections {
		status := "ok"
		switch {
		case section.Degraded:
			status = "kept original"
		case section.UsedFallback:
			status = "ok (fallback)"
		}
		sb.WriteString(fmt.Sprintf("  %-16s %-8s %-13s %s\n", section.Section, section.Tier, status, section.Elapsed.Round(10 * time.Millisecond)))
		if section.Err != nil {
			msg := section.Err.Error()
			if len(msg) > 40 {
				msg = msg[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("      %s\n", msg))
		}
	}

	p.printBox("OPTIMIZATION RUN", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintValidation outputs a validation report; silent when the report is
// clean.
func (p *Printer) PrintValidation(report types.ValidationReport) {
	if report.Valid && len(report.Warnings) == 0 {
		return
	}

	var sb strings.Builder
	if !report.Valid {
		sb.WriteString("Errors:\n")
		for _, e := range report.Errors {
			sb.WriteString(fmt.Sprintf("  ✗ %s\n", e))
		}
	}
	if len(report.Warnings) > 0 {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("Warnings:\n")
		for _, w := range report.Warnings {
			sb.WriteString(fmt.Sprintf("  ! %s\n", w))
		}
	}

	p.printBox("FACT CHECK", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatchScore outputs a match score summary.
func (p *Printer) PrintMatchScore(score types.MatchScore) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score: %d/100\n", types.ClampScore(score.Score)))
	if len(score.MatchingSkills) > 0 {
		sb.WriteString(fmt.Sprintf("Matching: %s\n", strings.Join(score.MatchingSkills, ", ")))
	}
	if len(score.MissingSkills) > 0 {
		sb.WriteString(fmt.Sprintf("Missing:  %s\n", strings.Join(score.MissingSkills, ", ")))
	}
	if score.Recommendation != "" {
		sb.WriteString(fmt.Sprintf("\n%s\n", score.Recommendation))
	}

	p.printBox("JOB MATCH", strings.TrimSuffix(sb.String(), "\n"))
}
