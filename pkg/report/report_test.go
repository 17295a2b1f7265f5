package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/seolens/seolens/pkg/finding"
)

func sampleResults() *finding.AuditResults {
	cr := finding.NewCategoryResults()
	cr.Add("status_code", finding.Good(finding.Scalar(200), "Page returned 200"))
	cr.Add("image_alt_text", finding.Warn(finding.Mapping(map[string]any{
		"total_images":        4,
		"images_with_alt":     1,
		"alt_text_percentage": 25.0,
	}), "Only 25.0% of images have alt text"))

	a := finding.NewAuditResults()
	a.Set("technical", cr)
	return a
}

func TestNewReportDefaults(t *testing.T) {
	r := New("https://example.com", sampleResults(), nil)
	if len(r.ID) != 8 {
		t.Errorf("ID length = %d, want 8", len(r.ID))
	}
	if r.Keywords == nil || len(r.Keywords) != 0 {
		t.Errorf("nil keywords should become empty slice, got %v", r.Keywords)
	}
	if r.Timestamp == "" {
		t.Error("timestamp must be set")
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"html", "JSON", " csv ", "pdf"} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q) = %v", s, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("xml should be rejected")
	}
}

func TestWriteCSVRows(t *testing.T) {
	r := New("https://example.com", sampleResults(), nil)
	var buf bytes.Buffer
	if err := r.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse CSV: %v", err)
	}
	// Header plus one row per check.
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	wantHeader := []string{"category", "check", "status", "message", "value"}
	for i, col := range wantHeader {
		if rows[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], col)
		}
	}
	if rows[1][0] != "technical" || rows[1][1] != "status_code" || rows[1][2] != "good" {
		t.Errorf("first data row = %v", rows[1])
	}
	if rows[1][4] != "200" {
		t.Errorf("scalar value column = %q, want 200", rows[1][4])
	}
	if !strings.Contains(rows[2][4], "total_images") {
		t.Errorf("mapping value column = %q, want compact JSON", rows[2][4])
	}
}

func TestJSONRoundTrip(t *testing.T) {
	r := New("https://example.com", sampleResults(), []string{"widgets"})
	var buf bytes.Buffer
	if err := r.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	back, summary, err := DecodeJSON(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if back.URL != r.URL || back.ID != r.ID || back.Timestamp != r.Timestamp {
		t.Errorf("identity fields lost: %+v", back)
	}
	if len(back.Keywords) != 1 || back.Keywords[0] != "widgets" {
		t.Errorf("keywords = %v", back.Keywords)
	}
	if summary.TotalChecks != 2 {
		t.Errorf("summary.TotalChecks = %d, want 2", summary.TotalChecks)
	}

	cats := back.Results.Categories()
	if len(cats) != 1 || cats[0] != "technical" {
		t.Fatalf("categories = %v", cats)
	}
	cr, _ := back.Results.Get("technical")
	names := cr.Names()
	if len(names) != 2 || names[0] != "status_code" || names[1] != "image_alt_text" {
		t.Errorf("check order lost: %v", names)
	}
	res, _ := cr.Get("image_alt_text")
	m := res.Value.MappingValue()
	if m == nil {
		t.Fatal("mapping value lost")
	}
	if _, ok := m["alt_text_percentage"]; !ok {
		t.Errorf("mapping detail lost: %v", m)
	}
}

func TestWriteHTML(t *testing.T) {
	r := New("https://example.com", sampleResults(), []string{"widgets"})
	var buf bytes.Buffer
	if err := r.WriteHTML(&buf); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}
	out := buf.String()
	// Check and category names render with spaces, not underscores.
	for _, want := range []string{"https://example.com", "status code", "image alt text", "widgets", r.ID} {
		if !strings.Contains(out, want) {
			t.Errorf("HTML report missing %q", want)
		}
	}
	if strings.Contains(out, "status_code") {
		t.Error("raw underscore names leaked into the HTML")
	}
	if !strings.Contains(out, "Only 25.0% of images have alt text") {
		t.Error("check message missing from the HTML")
	}
}

func TestGenerateDefaultPath(t *testing.T) {
	dir := t.TempDir()
	r := New("https://example.com", sampleResults(), nil)

	path, err := r.Generate(FormatJSON, "", dir)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want := filepath.Join(dir, "seo_report_"+r.ID+".json")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if _, _, err := DecodeJSON(data); err != nil {
		t.Errorf("written report does not parse: %v", err)
	}
}

func TestGenerateExplicitPath(t *testing.T) {
	dir := t.TempDir()
	r := New("https://example.com", sampleResults(), nil)

	target := filepath.Join(dir, "nested", "out.csv")
	path, err := r.Generate(FormatCSV, target, "")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if path != target {
		t.Errorf("path = %q, want %q", path, target)
	}
	if _, err := os.Stat(target); err != nil {
		t.Errorf("report file missing: %v", err)
	}
}
