package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/seolens/seolens/pkg/defaults"
	"github.com/seolens/seolens/pkg/finding"
	"github.com/seolens/seolens/pkg/strutil"
)

// statusRGB colors the status marker in the PDF.
func statusRGB(s finding.Status) (int, int, int) {
	switch s {
	case finding.StatusGood:
		return 0, 184, 148
	case finding.StatusWarning:
		return 253, 203, 110
	case finding.StatusError:
		return 214, 48, 49
	default:
		return 9, 132, 227
	}
}

// WritePDF renders a compact printable report: summary block first, then
// one line per check.
func (r *Report) WritePDF(w io.Writer) error {
	summary := r.Summary()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("SEO Audit Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "SEO Audit Report", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 6, strutil.Truncate(r.URL, 90), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("report %s - %s", r.ID, r.Timestamp), "", 1, "L", false, 0, "")
	if len(r.Keywords) > 0 {
		pdf.CellFormat(0, 6, "keywords: "+strutil.Truncate(strings.Join(r.Keywords, ", "), 90),
			"", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 26)
	pdf.CellFormat(0, 12, fmt.Sprintf("%.1f / 100", summary.Score), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("%d checks: %d passed, %d warnings, %d errors, %d info",
		summary.TotalChecks, summary.Passed, summary.Warnings, summary.Errors, summary.Info),
		"", 1, "L", false, 0, "")
	pdf.Ln(4)

	if r.Results != nil {
		for _, cat := range r.Results.Categories() {
			cr, ok := r.Results.Get(cat)
			if !ok {
				continue
			}
			cs := summary.CategoryScores[cat]
			pdf.SetFont("Helvetica", "B", 12)
			pdf.CellFormat(0, 9, fmt.Sprintf("%s (%.1f)", strings.ReplaceAll(cat, "_", " "), cs.Score),
				"", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 9)
			for _, name := range cr.Names() {
				res, _ := cr.Get(name)
				red, green, blue := statusRGB(res.Status)
				pdf.SetTextColor(red, green, blue)
				pdf.CellFormat(22, 5, strings.ToUpper(res.Status.String()), "", 0, "L", false, 0, "")
				pdf.SetTextColor(0, 0, 0)
				pdf.CellFormat(48, 5, strutil.Truncate(strings.ReplaceAll(name, "_", " "), 30),
					"", 0, "L", false, 0, "")
				pdf.CellFormat(0, 5, strutil.Truncate(res.Message, 78), "", 1, "L", false, 0, "")
			}
			pdf.Ln(2)
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 6, "generated by seolens v"+defaults.Version, "", 1, "L", false, 0, "")

	return pdf.Output(w)
}
