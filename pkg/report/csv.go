package report

import (
	"encoding/csv"
	"io"
)

// csvHeader is the fixed column layout of the flat export.
var csvHeader = []string{"category", "check", "status", "message", "value"}

// WriteCSV emits one row per check. Values are stringified, so the CSV
// is intentionally lossy compared to the JSON report.
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	if r.Results != nil {
		for _, cat := range r.Results.Categories() {
			cr, ok := r.Results.Get(cat)
			if !ok {
				continue
			}
			for _, name := range cr.Names() {
				res, _ := cr.Get(name)
				row := []string{
					cat,
					name,
					res.Status.String(),
					res.Message,
					res.Value.DisplayString(),
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
