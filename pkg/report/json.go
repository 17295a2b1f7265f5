package report

import (
	"io"

	"github.com/seolens/seolens/pkg/finding"
	"github.com/seolens/seolens/pkg/jsonutil"
	"github.com/seolens/seolens/pkg/scoring"
)

// envelope is the lossless JSON shape. Field order matches the document
// layout readers expect; audit_results preserves check insertion order.
type envelope struct {
	URL          string                `json:"url"`
	ReportID     string                `json:"report_id"`
	Timestamp    string                `json:"timestamp"`
	AuditResults *finding.AuditResults `json:"audit_results"`
	Keywords     []string              `json:"keywords"`
	Summary      scoring.Summary       `json:"summary"`
}

// WriteJSON emits the full report, indented, with nothing dropped.
func (r *Report) WriteJSON(w io.Writer) error {
	return jsonutil.MarshalWriteIndent(w, envelope{
		URL:          r.URL,
		ReportID:     r.ID,
		Timestamp:    r.Timestamp,
		AuditResults: r.Results,
		Keywords:     r.Keywords,
		Summary:      r.Summary(),
	}, "  ")
}

// DecodeJSON parses a previously written JSON report back into a Report.
func DecodeJSON(data []byte) (*Report, scoring.Summary, error) {
	var env envelope
	if err := jsonutil.Unmarshal(data, &env); err != nil {
		return nil, scoring.Summary{}, err
	}
	return &Report{
		URL:       env.URL,
		ID:        env.ReportID,
		Timestamp: env.Timestamp,
		Results:   env.AuditResults,
		Keywords:  env.Keywords,
	}, env.Summary, nil
}
