package audit

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/seolens/seolens/pkg/defaults"
	"github.com/seolens/seolens/pkg/finding"
)

// EnhancedTechnical audits delivery quality: security and cache headers,
// asset minification, and mobile friendliness.
func EnhancedTechnical(ctx context.Context, env *Env) *finding.CategoryResults {
	return runCategory(ctx, env, []namedCheck{
		{"enhanced_http_headers", checkEnhancedHTTPHeaders},
		{"lazy_loading", checkLazyLoading},
		{"minified_resources", checkMinifiedResources},
		{"browser_caching", checkBrowserCaching},
		{"mobile_friendliness", checkMobileFriendliness},
		{"resource_compression", checkResourceCompression},
	})
}

var securityHeaders = []string{
	"Strict-Transport-Security",
	"Content-Security-Policy",
	"X-Content-Type-Options",
	"X-Frame-Options",
	"X-XSS-Protection",
}

var cacheHeaders = []string{
	"Cache-Control", "Expires", "ETag", "Last-Modified",
}

func checkEnhancedHTTPHeaders(ctx context.Context, p *Page) finding.CheckResult {
	secPresent := 0
	for _, h := range securityHeaders {
		if p.Resp.Header(h) != "" {
			secPresent++
		}
	}
	cachePresent := 0
	for _, h := range cacheHeaders {
		if p.Resp.Header(h) != "" {
			cachePresent++
		}
	}

	var issues []any
	if float64(secPresent)/float64(len(securityHeaders)) < 0.6 {
		issues = append(issues, fmt.Sprintf("Only %d of %d security headers set", secPresent, len(securityHeaders)))
	}
	if float64(cachePresent)/float64(len(cacheHeaders)) < 0.5 {
		issues = append(issues, fmt.Sprintf("Only %d of %d cache headers set", cachePresent, len(cacheHeaders)))
	}

	v := finding.Mapping(map[string]any{
		"security_headers": secPresent,
		"cache_headers":    cachePresent,
		"issues":           issues,
	})
	if len(issues) > 0 {
		return finding.Warn(v, fmt.Sprintf("Header hygiene has %d issue(s)", len(issues)))
	}
	return finding.Good(v, "Security and cache headers are well configured")
}

func checkLazyLoading(ctx context.Context, p *Page) finding.CheckResult {
	images := p.Doc.Images()
	if len(images) == 0 {
		return finding.Info(finding.Absent(), "No images to lazy-load")
	}
	lazy := 0
	for _, img := range images {
		if img.Attr("loading") == "lazy" || img.Attr("data-src") != "" {
			lazy++
		}
	}
	v := finding.Mapping(map[string]any{
		"total_images": len(images),
		"lazy_images":  lazy,
	})
	if lazy == 0 && len(images) > 3 {
		return finding.Warn(v, "No lazy loading on an image-heavy page")
	}
	return finding.Good(v, fmt.Sprintf("%d of %d images load lazily", lazy, len(images)))
}

// assetURLs collects stylesheet and script URLs, up to the sampling limit.
func assetURLs(p *Page) []string {
	var urls []string
	for _, l := range p.Doc.FindAll("link") {
		if strings.EqualFold(l.Attr("rel"), "stylesheet") && l.Attr("href") != "" {
			urls = append(urls, p.Doc.ResolveURL(l.Attr("href")))
		}
	}
	for _, s := range p.Doc.FindAll("script") {
		if s.Attr("src") != "" {
			urls = append(urls, p.Doc.ResolveURL(s.Attr("src")))
		}
	}
	if len(urls) > defaults.SubresourceSample {
		urls = urls[:defaults.SubresourceSample]
	}
	return urls
}

// looksMinified judges a fetched asset by name or newline density.
func looksMinified(url string, body []byte) bool {
	if strings.Contains(url, ".min.") {
		return true
	}
	return len(body) > 0 && strings.Count(string(body), "\n") < 5
}

func checkMinifiedResources(ctx context.Context, p *Page) finding.CheckResult {
	urls := assetURLs(p)
	if len(urls) == 0 {
		return finding.Info(finding.Absent(), "No external scripts or stylesheets found")
	}

	sampled, minified := 0, 0
	for _, u := range urls {
		resp, err := p.client().Get(ctx, u)
		if err != nil || resp.StatusCode != 200 {
			continue
		}
		sampled++
		if looksMinified(u, resp.Body) {
			minified++
		}
	}
	if sampled == 0 {
		return finding.Info(finding.Absent(), "Could not sample any assets")
	}
	ratio := float64(minified) / float64(sampled)
	v := finding.Mapping(map[string]any{
		"sampled":  sampled,
		"minified": minified,
	})
	if ratio >= defaults.MinifiedRatioGood {
		return finding.Good(v, fmt.Sprintf("%d of %d sampled assets are minified", minified, sampled))
	}
	return finding.Warn(v, fmt.Sprintf("Only %d of %d sampled assets look minified", minified, sampled))
}

var maxAgeRe = regexp.MustCompile(`max-age\s*=\s*(\d+)`)

func checkBrowserCaching(ctx context.Context, p *Page) finding.CheckResult {
	cc := p.Resp.Header("Cache-Control")
	if cc == "" {
		return finding.Warn(finding.Absent(), "No Cache-Control header")
	}
	m := maxAgeRe.FindStringSubmatch(cc)
	if m == nil {
		return finding.Warn(finding.Scalar(cc), "Cache-Control present but no max-age directive")
	}
	secs, err := strconv.Atoi(m[1])
	if err != nil {
		return finding.Warn(finding.Scalar(cc), "Cache-Control max-age is not a number")
	}
	age := time.Duration(secs) * time.Second
	v := finding.Mapping(map[string]any{
		"cache_control": cc,
		"max_age_secs":  secs,
	})
	switch {
	case age >= defaults.CacheMaxAgeGood:
		return finding.Good(v, "Browser caching is configured for 30 days or more")
	case age >= defaults.CacheMaxAgeOK:
		return finding.Good(v, "Browser caching is configured for a week or more")
	default:
		return finding.Warn(v, "Browser cache lifetime is short")
	}
}

func checkMobileFriendliness(ctx context.Context, p *Page) finding.CheckResult {
	score := 0
	if _, ok := p.Doc.MetaByName("viewport"); ok {
		score += 40
	}
	if strings.Contains(p.HTML, "@media") {
		score += 30
	}
	for _, img := range p.Doc.Images() {
		if img.Attr("srcset") != "" {
			score += 20
			break
		}
	}
	smallTargets := false
	for _, el := range p.Doc.FindAllAny("a", "button") {
		for _, m := range dimensionRe.FindAllStringSubmatch(el.Attr("style"), -1) {
			if px, err := strconv.ParseFloat(m[2], 64); err == nil && px < 48 {
				smallTargets = true
			}
		}
	}
	if !smallTargets {
		score += 10
	}

	v := finding.Mapping(map[string]any{"mobile_score": score})
	switch {
	case score >= 70:
		return finding.Good(v, fmt.Sprintf("Mobile friendliness score %d/100", score))
	case score >= 40:
		return finding.Warn(v, fmt.Sprintf("Mobile friendliness score %d/100", score))
	default:
		return finding.Bad(v, fmt.Sprintf("Mobile friendliness score %d/100", score))
	}
}

func checkResourceCompression(ctx context.Context, p *Page) finding.CheckResult {
	encoding := p.Resp.Header("Content-Encoding")
	v := finding.Mapping(map[string]any{"content_encoding": encoding})
	switch {
	case strings.Contains(encoding, "br"), strings.Contains(encoding, "gzip"),
		strings.Contains(encoding, "deflate"):
		return finding.Good(v, fmt.Sprintf("Responses are compressed (%s)", encoding))
	default:
		return finding.Warn(v, "No response compression detected")
	}
}
