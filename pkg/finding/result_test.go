package finding

import (
	"strings"
	"testing"
)

func TestCategoryResultsOrder(t *testing.T) {
	r := NewCategoryResults()
	names := []string{"zeta", "alpha", "mid"}
	for _, n := range names {
		r.Add(n, Good(Absent(), n))
	}
	got := r.Names()
	for i, n := range names {
		if got[i] != n {
			t.Fatalf("Names()[%d] = %q, want %q (insertion order)", i, got[i], n)
		}
	}

	// Re-adding keeps position but replaces the result.
	r.Add("alpha", Warn(Absent(), "updated"))
	if r.Len() != 3 {
		t.Errorf("Len = %d, want 3 after replace", r.Len())
	}
	if got := r.Names(); got[1] != "alpha" {
		t.Errorf("replace moved alpha to %v", got)
	}
	res, _ := r.Get("alpha")
	if res.Status != StatusWarning {
		t.Errorf("replace did not update result: %v", res.Status)
	}
}

func TestSetFailure(t *testing.T) {
	r := NewCategoryResults()
	r.Add("one", Good(Absent(), "fine"))
	r.Add("two", Good(Absent(), "fine"))
	r.SetFailure("Failed to fetch page: timeout")

	if r.Len() != 1 {
		t.Fatalf("Len = %d, want single error entry", r.Len())
	}
	res, ok := r.Get(ErrorKey)
	if !ok {
		t.Fatal("missing reserved error entry")
	}
	if res.Status != StatusError {
		t.Errorf("status = %q, want error", res.Status)
	}
	if res.Message == "" {
		t.Error("message must be set")
	}
	if !r.Failed() {
		t.Error("Failed() should report true")
	}
}

func TestCategoryResultsJSONOrder(t *testing.T) {
	r := NewCategoryResults()
	r.Add("zzz", Good(Scalar(1), "first"))
	r.Add("aaa", Warn(Absent(), "second"))

	data, err := r.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if zi, ai := strings.Index(string(data), "zzz"), strings.Index(string(data), "aaa"); zi > ai {
		t.Errorf("insertion order not preserved in JSON: %s", data)
	}

	var back CategoryResults
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := back.Names()
	if len(got) != 2 || got[0] != "zzz" || got[1] != "aaa" {
		t.Errorf("round-trip order = %v", got)
	}
	res, _ := back.Get("aaa")
	if res.Status != StatusWarning || res.Message != "second" {
		t.Errorf("round-trip result = %+v", res)
	}
}

func TestAuditResultsJSONRoundTrip(t *testing.T) {
	cr := NewCategoryResults()
	cr.Add("status_code", Good(Scalar(200), "ok"))
	failed := NewCategoryResults()
	failed.SetFailure("Failed to fetch page: refused")

	a := NewAuditResults()
	a.Set("technical", cr)
	a.Set("content", failed)

	data, err := a.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back AuditResults
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	cats := back.Categories()
	if len(cats) != 2 || cats[0] != "technical" || cats[1] != "content" {
		t.Fatalf("round-trip categories = %v", cats)
	}
	gotFailed, _ := back.Get("content")
	if !gotFailed.Failed() {
		t.Error("failed category lost through round trip")
	}
}
