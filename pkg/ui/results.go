// Package ui renders audit output for the terminal: a banner, per-category
// summaries, and the overall score block.
package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/seolens/seolens/pkg/defaults"
	"github.com/seolens/seolens/pkg/finding"
	"github.com/seolens/seolens/pkg/scoring"
)

// PrintBanner writes the tool banner unless silent.
func PrintBanner(w io.Writer, silent bool) {
	if silent {
		return
	}
	fmt.Fprintln(w, TitleStyle.Render("seolens"),
		SubtitleStyle.Render("v"+defaults.Version+" on-page SEO audit"))
	fmt.Fprintln(w)
}

// PrintSummary renders the final console summary for an audit.
func PrintSummary(w io.Writer, url string, results *finding.AuditResults, summary scoring.Summary) {
	divider := DividerStyle.Render(strings.Repeat("-", 60))

	fmt.Fprintln(w, divider)
	fmt.Fprintln(w, SectionStyle.Render("Audit result"), URLStyle.Render(url))
	fmt.Fprintln(w, divider)

	cats := make([]string, 0, len(summary.CategoryScores))
	if results != nil {
		cats = results.Categories()
	} else {
		for cat := range summary.CategoryScores {
			cats = append(cats, cat)
		}
		sort.Strings(cats)
	}

	for _, cat := range cats {
		cs := summary.CategoryScores[cat]
		fmt.Fprintf(w, "  %s %s  %s\n",
			CategoryStyle.Render(strings.ReplaceAll(cat, "_", " ")),
			ScoreStyle(cs.Score).Render(fmt.Sprintf("%6.1f", cs.Score)),
			StatLabelStyle.Render(fmt.Sprintf("%d good / %d warn / %d err / %d info",
				cs.Passed, cs.Warnings, cs.Errors, cs.Info)))

		if results == nil {
			continue
		}
		if cr, ok := results.Get(cat); ok && cr.Failed() {
			res, _ := cr.Get(finding.ErrorKey)
			fmt.Fprintf(w, "    %s %s\n",
				StatusStyle("error").Render(Icon("✗", "[x]")),
				res.Message)
		}
	}

	fmt.Fprintln(w, divider)
	fmt.Fprintf(w, "  %s %s   %s\n",
		StatLabelStyle.Render("overall"),
		ScoreStyle(summary.Score).Render(fmt.Sprintf("%.1f / 100", summary.Score)),
		StatLabelStyle.Render(fmt.Sprintf("%d checks, %d passed, %d warnings, %d errors, %d info",
			summary.TotalChecks, summary.Passed, summary.Warnings, summary.Errors, summary.Info)))
	fmt.Fprintln(w, divider)
}

// PrintReportPath announces where the report landed.
func PrintReportPath(w io.Writer, path string) {
	fmt.Fprintf(w, "%s report written to %s\n", Icon("📄", "[r]"), path)
}
