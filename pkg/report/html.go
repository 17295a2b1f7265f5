package report

import (
	"fmt"
	"html/template"
	"io"
	"sort"
	"strings"

	"github.com/Masterminds/sprig/v3"
	"github.com/spf13/cast"

	"github.com/seolens/seolens/pkg/defaults"
	"github.com/seolens/seolens/pkg/finding"
	"github.com/seolens/seolens/pkg/scoring"
)

type detailView struct {
	Key string
	Val string
}

type checkView struct {
	Name    string
	Status  string
	Message string
	Details []detailView
}

type categoryView struct {
	Name       string
	Score      float64
	ScoreClass string
	Checks     []checkView
}

type htmlView struct {
	URL        string
	ReportID   string
	Timestamp  string
	Version    string
	Summary    scoring.Summary
	ScoreClass string
	Keywords   []string
	Categories []categoryView
}

// scoreClass maps a score to the css class of its band.
func scoreClass(score float64) string {
	switch {
	case score >= defaults.ScoreGood:
		return "good"
	case score >= defaults.ScoreWarning:
		return "warning"
	default:
		return "error"
	}
}

// flattenDetails renders the scalar parts of a value as key/value lines.
// Nested mappings and sequences are left to the JSON report.
func flattenDetails(v finding.Value) []detailView {
	switch v.Kind() {
	case finding.KindScalar:
		return []detailView{{Key: "value", Val: cast.ToString(v.ScalarValue())}}
	case finding.KindMapping:
		m := v.MappingValue()
		keys := make([]string, 0, len(m))
		for k := range m {
			if finding.IsScalarLike(m[k]) {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		out := make([]detailView, 0, len(keys))
		for _, k := range keys {
			out = append(out, detailView{Key: k, Val: cast.ToString(m[k])})
		}
		return out
	default:
		return nil
	}
}

func (r *Report) htmlView() htmlView {
	summary := r.Summary()
	view := htmlView{
		URL:        r.URL,
		ReportID:   r.ID,
		Timestamp:  r.Timestamp,
		Version:    defaults.Version,
		Summary:    summary,
		ScoreClass: scoreClass(summary.Score),
		Keywords:   r.Keywords,
	}
	if r.Results == nil {
		return view
	}
	for _, cat := range r.Results.Categories() {
		cr, ok := r.Results.Get(cat)
		if !ok {
			continue
		}
		cv := categoryView{
			Name:       strings.ReplaceAll(cat, "_", " "),
			Score:      summary.CategoryScores[cat].Score,
			ScoreClass: scoreClass(summary.CategoryScores[cat].Score),
		}
		for _, name := range cr.Names() {
			res, _ := cr.Get(name)
			cv.Checks = append(cv.Checks, checkView{
				Name:    strings.ReplaceAll(name, "_", " "),
				Status:  res.Status.String(),
				Message: res.Message,
				Details: flattenDetails(res.Value),
			})
		}
		view.Categories = append(view.Categories, cv)
	}
	return view
}

// WriteHTML renders the human-facing report page.
func (r *Report) WriteHTML(w io.Writer) error {
	tmpl, err := template.New("report").Funcs(sprig.HtmlFuncMap()).Parse(htmlTemplate)
	if err != nil {
		return fmt.Errorf("parse report template: %w", err)
	}
	return tmpl.Execute(w, r.htmlView())
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>SEO Audit Report - {{ .URL }}</title>
<style>
  body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 0; background: #f5f6fa; color: #2d3436; }
  .container { max-width: 960px; margin: 0 auto; padding: 24px; }
  header { background: #1a1a2e; color: #fff; padding: 24px; border-radius: 8px; margin-bottom: 24px; }
  header h1 { margin: 0 0 8px; font-size: 22px; }
  header .meta { color: #b2bec3; font-size: 13px; }
  .score-card { text-align: center; padding: 24px; border-radius: 8px; background: #fff; margin-bottom: 24px; box-shadow: 0 1px 3px rgba(0,0,0,.08); }
  .score { font-size: 52px; font-weight: 700; }
  .score.good { color: #00b894; }
  .score.warning { color: #fdcb6e; }
  .score.error { color: #d63031; }
  .breakdown { display: flex; gap: 16px; justify-content: center; margin-top: 12px; font-size: 14px; }
  .breakdown span { padding: 4px 10px; border-radius: 12px; background: #f1f2f6; }
  .chips { display: flex; flex-wrap: wrap; gap: 8px; margin-bottom: 24px; }
  .chip { padding: 6px 12px; border-radius: 16px; background: #fff; font-size: 13px; box-shadow: 0 1px 2px rgba(0,0,0,.08); }
  .chip.good { border-left: 4px solid #00b894; }
  .chip.warning { border-left: 4px solid #fdcb6e; }
  .chip.error { border-left: 4px solid #d63031; }
  section.category { background: #fff; border-radius: 8px; padding: 16px 20px; margin-bottom: 16px; box-shadow: 0 1px 3px rgba(0,0,0,.08); }
  section.category h2 { margin: 0 0 12px; font-size: 17px; text-transform: capitalize; }
  .check { border-top: 1px solid #eee; padding: 10px 0; }
  .check-head { display: flex; align-items: center; gap: 10px; }
  .badge { font-size: 11px; font-weight: 700; text-transform: uppercase; padding: 2px 8px; border-radius: 10px; color: #fff; }
  .badge.good { background: #00b894; }
  .badge.warning { background: #fdcb6e; color: #2d3436; }
  .badge.error { background: #d63031; }
  .badge.info { background: #0984e3; }
  .check-name { font-weight: 600; text-transform: capitalize; }
  .message { margin: 6px 0 0; font-size: 14px; color: #636e72; }
  ul.details { margin: 8px 0 0; padding-left: 20px; font-size: 13px; color: #636e72; }
  footer { text-align: center; color: #b2bec3; font-size: 12px; margin: 24px 0; }
</style>
</head>
<body>
<div class="container">
  <header>
    <h1>SEO Audit Report</h1>
    <div class="meta">{{ .URL }} &middot; report {{ .ReportID }} &middot; {{ .Timestamp }}</div>
    {{- if .Keywords }}
    <div class="meta">keywords: {{ join ", " .Keywords }}</div>
    {{- end }}
  </header>

  <div class="score-card">
    <div class="score {{ .ScoreClass }}">{{ printf "%.1f" .Summary.Score }}</div>
    <div>overall score</div>
    <div class="breakdown">
      <span>{{ .Summary.TotalChecks }} checks</span>
      <span>{{ .Summary.Passed }} passed</span>
      <span>{{ .Summary.Warnings }} warnings</span>
      <span>{{ .Summary.Errors }} errors</span>
      <span>{{ .Summary.Info }} info</span>
    </div>
  </div>

  <div class="chips">
    {{- range .Categories }}
    <span class="chip {{ .ScoreClass }}">{{ .Name }}: {{ printf "%.1f" .Score }}</span>
    {{- end }}
  </div>

  {{- range .Categories }}
  <section class="category">
    <h2>{{ .Name }}</h2>
    {{- range .Checks }}
    <div class="check">
      <div class="check-head">
        <span class="badge {{ .Status }}">{{ .Status }}</span>
        <span class="check-name">{{ .Name }}</span>
      </div>
      <p class="message">{{ .Message }}</p>
      {{- if .Details }}
      <ul class="details">
        {{- range .Details }}
        <li><strong>{{ .Key }}</strong>: {{ .Val }}</li>
        {{- end }}
      </ul>
      {{- end }}
    </div>
    {{- end }}
  </section>
  {{- end }}

  <footer>generated by seolens v{{ .Version }}</footer>
</div>
</body>
</html>
`
