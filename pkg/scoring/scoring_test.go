package scoring

import (
	"testing"

	"github.com/seolens/seolens/pkg/finding"
)

func category(statuses ...finding.Status) *finding.CategoryResults {
	cr := finding.NewCategoryResults()
	for i, s := range statuses {
		cr.Add(string(rune('a'+i)), finding.CheckResult{Status: s, Message: "m"})
	}
	return cr
}

func TestSummarizeCounters(t *testing.T) {
	a := finding.NewAuditResults()
	a.Set("one", category(finding.StatusGood, finding.StatusWarning, finding.StatusError))
	a.Set("two", category(finding.StatusGood, finding.StatusInfo))

	s := Summarize(a)
	if s.TotalChecks != 5 {
		t.Errorf("TotalChecks = %d, want 5", s.TotalChecks)
	}
	if got := s.Passed + s.Warnings + s.Errors + s.Info; got != s.TotalChecks {
		t.Errorf("counters sum to %d, want %d", got, s.TotalChecks)
	}
	if s.Passed != 2 || s.Warnings != 1 || s.Errors != 1 || s.Info != 1 {
		t.Errorf("counters = %+v", s)
	}
}

func TestScoreExcludesInfo(t *testing.T) {
	a := finding.NewAuditResults()
	a.Set("c", category(finding.StatusGood, finding.StatusGood, finding.StatusInfo, finding.StatusError))

	s := Summarize(a)
	// 2 passed of 3 scorable (info excluded).
	want := 66.67
	if s.CategoryScores["c"].Score != want {
		t.Errorf("score = %v, want %v", s.CategoryScores["c"].Score, want)
	}
}

func TestScoreInfoOnlyCategoryIsZero(t *testing.T) {
	a := finding.NewAuditResults()
	a.Set("c", category(finding.StatusInfo, finding.StatusInfo))

	s := Summarize(a)
	if got := s.CategoryScores["c"].Score; got != 0 {
		t.Errorf("info-only category score = %v, want 0", got)
	}
	if s.Score != 0 {
		t.Errorf("overall score = %v, want 0 with no scorable checks", s.Score)
	}
}

func TestOverallScoreIsWeightedNotAveraged(t *testing.T) {
	a := finding.NewAuditResults()
	// one: 1/1 = 100. two: 1/3 = 33.33. Mean would be 66.67;
	// the global fold gives 2 passed of 4 scorable = 50.
	a.Set("one", category(finding.StatusGood))
	a.Set("two", category(finding.StatusGood, finding.StatusError, finding.StatusError))

	s := Summarize(a)
	if s.Score != 50 {
		t.Errorf("overall score = %v, want 50 (weighted by check count)", s.Score)
	}
}

func TestScoreRounding(t *testing.T) {
	if got := Score(1, 3, 0); got != 33.33 {
		t.Errorf("Score(1,3,0) = %v, want 33.33", got)
	}
	if got := Score(2, 3, 0); got != 66.67 {
		t.Errorf("Score(2,3,0) = %v, want 66.67", got)
	}
	if got := Score(0, 0, 0); got != 0 {
		t.Errorf("Score with zero total = %v, want 0", got)
	}
	if got := Score(3, 3, 0); got != 100 {
		t.Errorf("full pass = %v, want 100", got)
	}
}

func TestSummarizeNil(t *testing.T) {
	s := Summarize(nil)
	if s.TotalChecks != 0 || s.Score != 0 {
		t.Errorf("nil results should summarize to zero, got %+v", s)
	}
}
