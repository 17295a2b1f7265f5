package audit

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/seolens/seolens/pkg/defaults"
	"github.com/seolens/seolens/pkg/finding"
	"github.com/seolens/seolens/pkg/htmldoc"
	"github.com/seolens/seolens/pkg/scoring"
)

// Links audits the page's link graph: internal/external split, anchor
// quality, and link attributes.
func Links(ctx context.Context, env *Env) *finding.CategoryResults {
	return runCategory(ctx, env, []namedCheck{
		{"link_counts", checkLinkCounts},
		{"internal_links", checkInternalLinks},
		{"external_links", checkExternalLinks},
		{"anchor_text", checkAnchorText},
		{"broken_links", checkBrokenLinks},
		{"link_attributes", checkLinkAttributes},
	})
}

// splitLinks partitions anchors into internal and external sets,
// skipping fragments and non-web schemes.
func splitLinks(p *Page) (internal, external []*htmldoc.Element) {
	for _, a := range p.Doc.Links() {
		href := strings.TrimSpace(a.Attr("href"))
		if href == "" || strings.HasPrefix(href, "#") ||
			strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") ||
			strings.HasPrefix(href, "javascript:") {
			continue
		}
		link, err := url.Parse(p.Doc.ResolveURL(href))
		if err != nil {
			continue
		}
		if link.Scheme != "" && link.Scheme != "http" && link.Scheme != "https" {
			continue
		}
		if p.sameHost(link) {
			internal = append(internal, a)
		} else {
			external = append(external, a)
		}
	}
	return internal, external
}

func checkLinkCounts(ctx context.Context, p *Page) finding.CheckResult {
	internal, external := splitLinks(p)
	v := finding.Mapping(map[string]any{
		"total":    len(internal) + len(external),
		"internal": len(internal),
		"external": len(external),
	})
	return finding.Info(v, fmt.Sprintf("Page has %d internal and %d external link(s)",
		len(internal), len(external)))
}

func checkInternalLinks(ctx context.Context, p *Page) finding.CheckResult {
	internal, _ := splitLinks(p)
	if len(internal) == 0 {
		return finding.Warn(finding.Absent(), "No internal links found")
	}

	seen := make(map[string]int)
	emptyAnchors := 0
	longAnchors := 0
	for _, a := range internal {
		seen[p.Doc.ResolveURL(a.Attr("href"))]++
		text := a.Text()
		if text == "" {
			emptyAnchors++
		} else if len([]rune(text)) > defaults.MaxAnchorTextLength {
			longAnchors++
		}
	}
	duplicates := 0
	for _, n := range seen {
		if n > 1 {
			duplicates += n - 1
		}
	}

	var issues []any
	if len(internal) < defaults.MinInternalLinks {
		issues = append(issues, fmt.Sprintf("Few internal links (%d)", len(internal)))
	}
	if len(internal) > defaults.MaxInternalLinks {
		issues = append(issues, fmt.Sprintf("Too many internal links (%d)", len(internal)))
	}
	if emptyAnchors > 0 {
		issues = append(issues, fmt.Sprintf("%d internal link(s) have empty anchor text", emptyAnchors))
	}
	if longAnchors > 0 {
		issues = append(issues, fmt.Sprintf("%d internal link(s) have over-long anchor text", longAnchors))
	}

	v := finding.Mapping(map[string]any{
		"count":         len(internal),
		"duplicates":    duplicates,
		"empty_anchors": emptyAnchors,
		"issues":        issues,
	})
	if len(issues) > 0 {
		return finding.Warn(v, fmt.Sprintf("Internal linking has %d issue(s)", len(issues)))
	}
	return finding.Good(v, fmt.Sprintf("Internal linking looks healthy (%d links)", len(internal)))
}

func checkExternalLinks(ctx context.Context, p *Page) finding.CheckResult {
	_, external := splitLinks(p)
	if len(external) == 0 {
		return finding.Info(finding.Absent(), "No external links found")
	}

	nofollow, blank := 0, 0
	for _, a := range external {
		if strings.Contains(strings.ToLower(a.Attr("rel")), "nofollow") {
			nofollow++
		}
		if a.Attr("target") == "_blank" {
			blank++
		}
	}
	nofollowPct := scoring.Round2(float64(nofollow) / float64(len(external)) * 100)
	blankPct := scoring.Round2(float64(blank) / float64(len(external)) * 100)

	var issues []any
	if nofollowPct < 50 {
		issues = append(issues, "Most external links pass link equity (consider rel=nofollow where appropriate)")
	}
	if blankPct < 80 {
		issues = append(issues, "Most external links open in the same tab")
	}

	v := finding.Mapping(map[string]any{
		"count":            len(external),
		"nofollow_percent": nofollowPct,
		"blank_percent":    blankPct,
		"issues":           issues,
	})
	if len(issues) > 0 {
		return finding.Warn(v, fmt.Sprintf("External linking has %d issue(s)", len(issues)))
	}
	return finding.Good(v, fmt.Sprintf("External links are well attributed (%d links)", len(external)))
}

// genericAnchorTerms add no context for crawlers or screen readers.
var genericAnchorTerms = []string{
	"click here", "read more", "learn more", "more info", "details", "link", "here",
}

func checkAnchorText(ctx context.Context, p *Page) finding.CheckResult {
	links := p.Doc.Links()
	if len(links) == 0 {
		return finding.Info(finding.Absent(), "No links to evaluate")
	}
	var generic []any
	for _, a := range links {
		text := strings.ToLower(strings.TrimSpace(a.Text()))
		for _, term := range genericAnchorTerms {
			if text == term {
				generic = append(generic, text)
				break
			}
		}
	}
	v := finding.Mapping(map[string]any{
		"total":           len(links),
		"generic_anchors": generic,
	})
	if len(generic) > 0 {
		return finding.Warn(v, fmt.Sprintf("%d link(s) use generic anchor text", len(generic)))
	}
	return finding.Good(v, "Anchor text is descriptive")
}

func checkBrokenLinks(ctx context.Context, p *Page) finding.CheckResult {
	internal, external := splitLinks(p)
	v := finding.Mapping(map[string]any{
		"candidates": len(internal) + len(external),
	})
	return finding.Info(v, "Broken link probing is not performed during a single-page audit")
}

func checkLinkAttributes(ctx context.Context, p *Page) finding.CheckResult {
	var sponsored, ugc, titled, download int
	for _, a := range p.Doc.Links() {
		rel := strings.ToLower(a.Attr("rel"))
		if strings.Contains(rel, "sponsored") {
			sponsored++
		}
		if strings.Contains(rel, "ugc") {
			ugc++
		}
		if a.Attr("title") != "" {
			titled++
		}
		if a.HasAttr("download") {
			download++
		}
	}
	v := finding.Mapping(map[string]any{
		"sponsored": sponsored,
		"ugc":       ugc,
		"titled":    titled,
		"download":  download,
	})
	return finding.Info(v, "Link attribute usage recorded")
}
