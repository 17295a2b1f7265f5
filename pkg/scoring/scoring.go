// Package scoring turns audit results into numeric scores. All functions
// are pure; the package holds no state.
package scoring

import (
	"math"

	"github.com/seolens/seolens/pkg/finding"
)

// CategoryScore holds the counters and score for one audit category.
type CategoryScore struct {
	Total    int     `json:"total"`
	Passed   int     `json:"passed"`
	Warnings int     `json:"warnings"`
	Errors   int     `json:"errors"`
	Info     int     `json:"info"`
	Score    float64 `json:"score"`
}

// Summary aggregates every category of an audit. Score is computed from
// the global counters, so categories with more checks weigh more. It is
// NOT the mean of the category scores.
type Summary struct {
	TotalChecks    int                      `json:"total_checks"`
	Passed         int                      `json:"passed"`
	Warnings       int                      `json:"warnings"`
	Errors         int                      `json:"errors"`
	Info           int                      `json:"info"`
	Score          float64                  `json:"score"`
	CategoryScores map[string]CategoryScore `json:"category_scores"`
}

// Summarize folds every check result into global and per-category
// counters. Informational checks count toward totals but are excluded
// from score denominators.
func Summarize(results *finding.AuditResults) Summary {
	s := Summary{CategoryScores: make(map[string]CategoryScore)}
	if results == nil {
		return s
	}
	for _, cat := range results.Categories() {
		cr, ok := results.Get(cat)
		if !ok {
			continue
		}
		var cs CategoryScore
		for _, name := range cr.Names() {
			res, _ := cr.Get(name)
			cs.Total++
			switch res.Status {
			case finding.StatusGood:
				cs.Passed++
			case finding.StatusWarning:
				cs.Warnings++
			case finding.StatusError:
				cs.Errors++
			case finding.StatusInfo:
				cs.Info++
			}
		}
		cs.Score = Score(cs.Passed, cs.Total, cs.Info)
		s.CategoryScores[cat] = cs

		s.TotalChecks += cs.Total
		s.Passed += cs.Passed
		s.Warnings += cs.Warnings
		s.Errors += cs.Errors
		s.Info += cs.Info
	}
	s.Score = Score(s.Passed, s.TotalChecks, s.Info)
	return s
}

// Score returns passed/(total-info)*100 rounded to two decimals.
// A zero or negative denominator yields 0.
func Score(passed, total, info int) float64 {
	scorable := total - info
	if scorable <= 0 {
		return 0
	}
	return Round2(float64(passed) / float64(scorable) * 100)
}

// Round2 rounds half away from zero to two decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
