package audit

import (
	"context"
	"fmt"

	"github.com/seolens/seolens/pkg/defaults"
	"github.com/seolens/seolens/pkg/finding"
	"github.com/seolens/seolens/pkg/workerpool"
)

// Options configures one audit run.
type Options struct {
	// Categories to run. Empty means every registered category.
	Categories []string

	// Keywords are the user's focus keywords, passed to content checks.
	Keywords []string

	// Concurrency bounds how many categories run in parallel.
	// Zero uses the default.
	Concurrency int
}

// Run executes the selected categories against url. Categories run
// concurrently, each with its own page fetch; results are assembled in
// canonical category order regardless of completion order. A category
// whose fetch fails still contributes its error entry, so Run only
// returns an error for invalid input.
func Run(ctx context.Context, url string, opts Options, env *Env) (*finding.AuditResults, error) {
	if url == "" {
		return nil, fmt.Errorf("audit: url required")
	}

	selected := opts.Categories
	if len(selected) == 0 {
		selected = CategoryNames()
	} else {
		// Validate first, then rebuild in canonical order.
		for _, name := range selected {
			if !IsCategory(name) {
				return nil, fmt.Errorf("audit: unknown category %q", name)
			}
		}
		want := make(map[string]bool, len(selected))
		for _, name := range selected {
			want[name] = true
		}
		ordered := make([]string, 0, len(want))
		for _, name := range CategoryNames() {
			if want[name] {
				ordered = append(ordered, name)
			}
		}
		selected = ordered
	}

	if env == nil {
		env = &Env{}
	}
	runEnv := *env
	runEnv.URL = url
	runEnv.Keywords = opts.Keywords

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = defaults.ConcurrencyDefault
	}
	if concurrency > defaults.ConcurrencyMax {
		concurrency = defaults.ConcurrencyMax
	}

	slots := make([]*finding.CategoryResults, len(selected))
	workerpool.ParallelFor(ctx, len(selected), concurrency, func(i int) {
		run, _ := lookup(selected[i])
		slots[i] = run(ctx, &runEnv)
	})

	results := finding.NewAuditResults()
	for i, name := range selected {
		if slots[i] == nil {
			// Context canceled before this category was dispatched.
			cr := finding.NewCategoryResults()
			cr.SetFailure("Audit canceled before category ran")
			slots[i] = cr
		}
		results.Set(name, slots[i])
	}
	return results, nil
}
