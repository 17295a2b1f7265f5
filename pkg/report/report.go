// Package report turns audit results into files: HTML for people, JSON
// for machines (lossless), CSV for spreadsheets (lossy), and a compact
// PDF. Every report carries a short id and a generation timestamp.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/seolens/seolens/pkg/finding"
	"github.com/seolens/seolens/pkg/scoring"
)

// Format selects the output serialization.
type Format string

const (
	FormatHTML Format = "html"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
)

// ParseFormat validates a user-supplied format string.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatHTML, FormatJSON, FormatCSV, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("unknown report format %q", s)
}

// Ext returns the file extension for the format.
func (f Format) Ext() string { return string(f) }

// Report binds one audit's results to a report identity.
type Report struct {
	URL       string
	ID        string
	Timestamp string
	Results   *finding.AuditResults
	Keywords  []string
}

// New mints a report for results. The id is the first 8 characters of a
// random UUID; the timestamp is the generation time.
func New(url string, results *finding.AuditResults, keywords []string) *Report {
	r := &Report{
		URL:      url,
		ID:       uuid.NewString()[:8],
		Results:  results,
		Keywords: keywords,
	}
	if r.Keywords == nil {
		r.Keywords = []string{}
	}
	r.Timestamp = time.Now().Format("2006-01-02 15:04:05")
	return r
}

// Summary computes the score summary for the report's results.
func (r *Report) Summary() scoring.Summary {
	return scoring.Summarize(r.Results)
}

// Generate writes the report in the given format. An empty path places
// the file under outDir as seo_report_<id>.<ext>. The written path is
// returned.
func (r *Report) Generate(format Format, path, outDir string) (string, error) {
	if path == "" {
		if outDir == "" {
			outDir = "reports"
		}
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return "", fmt.Errorf("create report dir: %w", err)
		}
		path = filepath.Join(outDir, fmt.Sprintf("seo_report_%s.%s", r.ID, format.Ext()))
	} else if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create report dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	if err := r.Write(f, format); err != nil {
		return "", fmt.Errorf("write %s report: %w", format, err)
	}
	return path, nil
}

// Write serializes the report to w in the given format.
func (r *Report) Write(w io.Writer, format Format) error {
	switch format {
	case FormatHTML:
		return r.WriteHTML(w)
	case FormatJSON:
		return r.WriteJSON(w)
	case FormatCSV:
		return r.WriteCSV(w)
	case FormatPDF:
		return r.WritePDF(w)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}
