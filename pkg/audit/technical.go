package audit

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/temoto/robotstxt"

	"github.com/seolens/seolens/pkg/defaults"
	"github.com/seolens/seolens/pkg/finding"
)

// Technical audits crawlability and transport fundamentals.
func Technical(ctx context.Context, env *Env) *finding.CategoryResults {
	return runCategory(ctx, env, []namedCheck{
		{"status_code", checkStatusCode},
		{"ssl_certificate", checkSSLCertificate},
		{"robots_txt", checkRobotsTxt},
		{"sitemap", checkSitemap},
		{"canonical_tag", checkCanonicalTag},
		{"meta_robots", checkMetaRobots},
		{"url_structure", checkURLStructure},
		{"page_speed", checkPageSpeed},
		{"http_headers", checkHTTPHeaders},
	})
}

func checkStatusCode(ctx context.Context, p *Page) finding.CheckResult {
	code := p.Resp.StatusCode
	v := finding.Scalar(code)
	switch {
	case code == 200:
		return finding.Good(v, "Page returns 200 OK")
	case code == 301 || code == 302 || code == 307 || code == 308:
		return finding.Warn(v, fmt.Sprintf("Page responds with a %d redirect", code))
	default:
		return finding.Bad(v, fmt.Sprintf("Page returns status code %d", code))
	}
}

func checkSSLCertificate(ctx context.Context, p *Page) finding.CheckResult {
	if p.URL.Scheme != "https" {
		return finding.Bad(finding.Absent(), "Page is not served over HTTPS")
	}
	state := p.Resp.TLS
	if state == nil || len(state.PeerCertificates) == 0 {
		return finding.Good(finding.Absent(), "Page is served over HTTPS")
	}
	cert := state.PeerCertificates[0]
	v := finding.Mapping(map[string]any{
		"issuer":  cert.Issuer.CommonName,
		"subject": cert.Subject.CommonName,
		"expires": cert.NotAfter.Format("2006-01-02"),
	})
	remaining := time.Until(cert.NotAfter)
	switch {
	case remaining <= 0:
		return finding.Bad(v, "SSL certificate has expired")
	case remaining < 30*24*time.Hour:
		return finding.Warn(v, fmt.Sprintf("SSL certificate expires in %d days", int(remaining.Hours()/24)))
	default:
		return finding.Good(v, "SSL certificate is valid")
	}
}

func checkRobotsTxt(ctx context.Context, p *Page) finding.CheckResult {
	robotsURL := p.URL.Scheme + "://" + p.URL.Host + "/robots.txt"
	resp, err := p.client().Get(ctx, robotsURL)
	if err != nil || resp.StatusCode != 200 {
		return finding.Warn(finding.Absent(), "No robots.txt found")
	}
	robots, err := robotstxt.FromBytes(resp.Body)
	if err != nil {
		return finding.Warn(finding.Scalar(robotsURL), "robots.txt exists but could not be parsed")
	}
	path := p.URL.Path
	if path == "" {
		path = "/"
	}
	if !robots.TestAgent(path, "*") {
		return finding.Warn(finding.Scalar(robotsURL),
			"robots.txt blocks this page for crawlers")
	}
	return finding.Good(finding.Scalar(robotsURL), "robots.txt found and allows crawling")
}

func checkSitemap(ctx context.Context, p *Page) finding.CheckResult {
	sitemapURL := p.URL.Scheme + "://" + p.URL.Host + "/sitemap.xml"
	resp, err := p.client().Get(ctx, sitemapURL)
	if err != nil || resp.StatusCode != 200 {
		return finding.Warn(finding.Absent(), "No sitemap.xml found")
	}
	ct := resp.Header("Content-Type")
	if !strings.Contains(ct, "xml") {
		return finding.Warn(finding.Scalar(sitemapURL),
			"sitemap.xml exists but is not served as XML")
	}
	return finding.Good(finding.Scalar(sitemapURL), "sitemap.xml found")
}

func checkCanonicalTag(ctx context.Context, p *Page) finding.CheckResult {
	var canonical string
	for _, l := range p.Doc.FindAll("link") {
		if strings.EqualFold(l.Attr("rel"), "canonical") {
			canonical = l.Attr("href")
			break
		}
	}
	if canonical == "" {
		return finding.Warn(finding.Absent(), "No canonical tag found")
	}
	resolved := p.Doc.ResolveURL(canonical)
	if strings.TrimSuffix(resolved, "/") == strings.TrimSuffix(p.URL.String(), "/") {
		return finding.Good(finding.Scalar(resolved), "Canonical tag is self-referencing")
	}
	return finding.Warn(finding.Scalar(resolved),
		"Canonical tag points to a different URL")
}

func checkMetaRobots(ctx context.Context, p *Page) finding.CheckResult {
	content, ok := p.Doc.MetaByName("robots")
	if !ok || strings.TrimSpace(content) == "" {
		return finding.Good(finding.Scalar("index, follow"),
			"No meta robots tag, defaults to index, follow")
	}
	lower := strings.ToLower(content)
	v := finding.Scalar(content)
	if strings.Contains(lower, "noindex") {
		return finding.Bad(v, "Meta robots blocks indexing (noindex)")
	}
	if strings.Contains(lower, "nofollow") {
		return finding.Warn(v, "Meta robots blocks link following (nofollow)")
	}
	return finding.Good(v, "Meta robots allows indexing")
}

var urlSpecialRe = regexp.MustCompile(`[^a-zA-Z0-9\-._~:/?#\[\]@!$&'()*+,;=%]`)

func checkURLStructure(ctx context.Context, p *Page) finding.CheckResult {
	full := p.URL.String()
	var issues []any
	if len(full) > defaults.MaxURLLength {
		issues = append(issues, fmt.Sprintf("URL is longer than %d characters", defaults.MaxURLLength))
	}
	if strings.ToLower(p.URL.Path) != p.URL.Path {
		issues = append(issues, "URL path contains uppercase characters")
	}
	if strings.Contains(p.URL.Path, "_") {
		issues = append(issues, "URL path contains underscores, prefer hyphens")
	}
	if urlSpecialRe.MatchString(full) {
		issues = append(issues, "URL contains special characters")
	}
	v := finding.Mapping(map[string]any{
		"length": len(full),
		"issues": issues,
	})
	if len(issues) == 0 {
		return finding.Good(v, "URL structure is clean")
	}
	return finding.Warn(v, fmt.Sprintf("URL structure has %d issue(s)", len(issues)))
}

func checkPageSpeed(ctx context.Context, p *Page) finding.CheckResult {
	v := finding.Mapping(map[string]any{
		"lcp_budget_ms": defaults.LCPThreshold.Milliseconds(),
		"fid_budget_ms": defaults.FIDThreshold.Milliseconds(),
		"cls_budget":    defaults.CLSThreshold,
	})
	return finding.Info(v, "Page speed analysis requires an external API key")
}

func checkHTTPHeaders(ctx context.Context, p *Page) finding.CheckResult {
	var issues []any
	xRobots := p.Resp.Header("X-Robots-Tag")
	if strings.Contains(strings.ToLower(xRobots), "noindex") {
		return finding.Bad(finding.Mapping(map[string]any{"x_robots_tag": xRobots}),
			"X-Robots-Tag header blocks indexing")
	}
	contentType := p.Resp.Header("Content-Type")
	if !strings.Contains(contentType, "text/html") {
		issues = append(issues, "Content-Type is not text/html")
	}
	cacheControl := p.Resp.Header("Cache-Control")
	if cacheControl == "" {
		issues = append(issues, "No Cache-Control header")
	}
	v := finding.Mapping(map[string]any{
		"content_type":  contentType,
		"cache_control": cacheControl,
		"x_robots_tag":  xRobots,
		"issues":        issues,
	})
	if len(issues) == 0 {
		return finding.Good(v, "HTTP headers look healthy")
	}
	return finding.Warn(v, fmt.Sprintf("HTTP headers have %d issue(s)", len(issues)))
}
