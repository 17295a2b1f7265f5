// Package audit implements the on-page audit categories. Each category
// fetches the page itself, runs its checks in a fixed order, and records
// one CheckResult per check. Checks are isolated: a panic inside one
// check becomes an error result for that check alone.
package audit

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/seolens/seolens/pkg/fetcher"
	"github.com/seolens/seolens/pkg/finding"
	"github.com/seolens/seolens/pkg/htmldoc"
)

// Canonical category names, in execution and display order.
const (
	CategoryTechnical         = "technical"
	CategoryContent           = "content"
	CategoryStructuredData    = "structured_data"
	CategoryLinks             = "links"
	CategoryUX                = "ux"
	CategoryAdvanced          = "advanced"
	CategoryEnhancedTechnical = "enhanced_technical"
	CategoryMultimedia        = "multimedia"
	CategoryEureka            = "eureka"
)

// Env carries the per-run inputs shared by every category.
type Env struct {
	URL      string
	Keywords []string
	Client   *fetcher.Client
}

// Page is one fetched and parsed copy of the audited document.
type Page struct {
	Env  *Env
	URL  *url.URL
	Resp *fetcher.Response
	Doc  *htmldoc.Document
	HTML string
}

// CategoryFunc runs one audit category end to end.
type CategoryFunc func(ctx context.Context, env *Env) *finding.CategoryResults

type registration struct {
	name string
	run  CategoryFunc
}

// registry fixes the canonical order categories execute and render in.
var registry = []registration{
	{CategoryTechnical, Technical},
	{CategoryContent, Content},
	{CategoryStructuredData, StructuredData},
	{CategoryLinks, Links},
	{CategoryUX, UX},
	{CategoryAdvanced, Advanced},
	{CategoryEnhancedTechnical, EnhancedTechnical},
	{CategoryMultimedia, Multimedia},
	{CategoryEureka, Eureka},
}

// CategoryNames returns every registered category in canonical order.
func CategoryNames() []string {
	out := make([]string, len(registry))
	for i, r := range registry {
		out[i] = r.name
	}
	return out
}

// IsCategory reports whether name is a registered category.
func IsCategory(name string) bool {
	for _, r := range registry {
		if r.name == name {
			return true
		}
	}
	return false
}

// lookup returns the category function for name.
func lookup(name string) (CategoryFunc, bool) {
	for _, r := range registry {
		if r.name == name {
			return r.run, true
		}
	}
	return nil, false
}

type checkFn func(ctx context.Context, p *Page) finding.CheckResult

type namedCheck struct {
	name string
	run  checkFn
}

// fetchPage performs the category's independent page fetch and parse.
func fetchPage(ctx context.Context, env *Env) (*Page, error) {
	client := env.Client
	if client == nil {
		client = fetcher.Default()
	}
	resp, err := client.Get(ctx, env.URL)
	if err != nil {
		return nil, err
	}
	doc, err := htmldoc.Parse(resp.Body, resp.FinalURL)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	u, err := url.Parse(resp.FinalURL)
	if err != nil {
		u, _ = url.Parse(env.URL)
	}
	return &Page{
		Env:  env,
		URL:  u,
		Resp: resp,
		Doc:  doc,
		HTML: string(resp.Body),
	}, nil
}

// runCategory fetches the page once and runs each check isolated.
// A fetch failure yields the single reserved error entry.
func runCategory(ctx context.Context, env *Env, checks []namedCheck) *finding.CategoryResults {
	results := finding.NewCategoryResults()
	page, err := fetchPage(ctx, env)
	if err != nil {
		results.SetFailure(fmt.Sprintf("Failed to fetch page: %v", err))
		return results
	}
	for _, c := range checks {
		results.Add(c.name, safeRun(ctx, page, c.run))
	}
	return results
}

// safeRun converts a panicking check into an error result so the rest of
// the category survives.
func safeRun(ctx context.Context, p *Page, fn checkFn) (res finding.CheckResult) {
	defer func() {
		if r := recover(); r != nil {
			res = finding.Bad(finding.Absent(), fmt.Sprintf("Check failed: %v", r))
		}
	}()
	return fn(ctx, p)
}

// client returns the page's fetch client, falling back to the default.
func (p *Page) client() *fetcher.Client {
	if p.Env != nil && p.Env.Client != nil {
		return p.Env.Client
	}
	return fetcher.Default()
}

// keywords returns the user-supplied focus keywords, lowercased.
func (p *Page) keywords() []string {
	if p.Env == nil {
		return nil
	}
	out := make([]string, 0, len(p.Env.Keywords))
	for _, k := range p.Env.Keywords {
		if k = strings.TrimSpace(strings.ToLower(k)); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// sameHost reports whether link points at the audited site, counting
// subdomains of the base host as internal.
func (p *Page) sameHost(link *url.URL) bool {
	if link.Host == "" {
		return true
	}
	base := p.URL.Hostname()
	host := link.Hostname()
	return host == base || strings.HasSuffix(host, "."+base) ||
		strings.TrimPrefix(host, "www.") == strings.TrimPrefix(base, "www.")
}
