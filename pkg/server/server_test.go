package server

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/seolens/seolens/pkg/fetcher"
	"github.com/seolens/seolens/pkg/jsonutil"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	s := New(Options{
		OutDir:      t.TempDir(),
		Concurrency: 2,
		Client:      fetcher.New(&fetcher.Config{FollowRedirects: true}),
		Log:         quietLogger(),
	})
	api := httptest.NewServer(s.Handler())
	t.Cleanup(api.Close)
	return s, api
}

func postJSON(t *testing.T, url string, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewReader([]byte(body)))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealthz(t *testing.T) {
	_, api := testServer(t)
	resp, err := http.Get(api.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body map[string]string
	if err := jsonutil.UnmarshalRead(resp.Body, &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" || body["version"] == "" {
		t.Errorf("body = %v", body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	_, api := testServer(t)
	resp, err := http.Get(api.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestAuditValidation(t *testing.T) {
	_, api := testServer(t)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty body", `{}`, "url is required"},
		{"bad json", `{not json`, "invalid request body"},
		{"unknown category", `{"url":"https://example.com","audit_types":["bogus"]}`, "unknown audit category"},
		{"unknown format", `{"url":"https://example.com","format":"docx"}`, "unknown report format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, api.URL+"/api/audit", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}
			var body errorResponse
			if err := jsonutil.UnmarshalRead(resp.Body, &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Success || !strings.Contains(body.Error, tt.want) {
				t.Errorf("body = %+v, want error containing %q", body, tt.want)
			}
		})
	}
}

func TestAuditAndReportRetrieval(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head><title>API Audit Target Page For Testing</title>` +
			`<meta name="description" content="A description long enough to pass the lower length check for descriptions."></head>` +
			`<body><h1>Hello</h1><p>Some body copy for the auditors to read.</p></body></html>`))
	}))
	defer page.Close()

	_, api := testServer(t)

	resp := postJSON(t, api.URL+"/api/audit",
		`{"url":"`+page.URL+`","audit_types":["technical","content"],"format":"json"}`)
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, body %s", resp.StatusCode, raw)
	}
	var out auditResponse
	if err := jsonutil.UnmarshalRead(resp.Body, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.Success {
		t.Error("success = false")
	}
	if len(out.ReportID) != 8 {
		t.Errorf("report id = %q", out.ReportID)
	}
	if out.Summary.TotalChecks == 0 {
		t.Error("summary has no checks")
	}

	get, err := http.Get(api.URL + "/api/reports/" + out.ReportID)
	if err != nil {
		t.Fatal(err)
	}
	defer get.Body.Close()
	if get.StatusCode != http.StatusOK {
		t.Fatalf("report fetch status = %d", get.StatusCode)
	}
	raw, _ := io.ReadAll(get.Body)
	if !strings.Contains(string(raw), out.ReportID) {
		t.Error("served report does not carry its id")
	}
}

func TestReportNotFound(t *testing.T) {
	_, api := testServer(t)

	resp, err := http.Get(api.URL + "/api/reports/deadbeef")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestReportInvalidID(t *testing.T) {
	_, api := testServer(t)

	resp, err := http.Get(api.URL + "/api/reports/NotValid1")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
