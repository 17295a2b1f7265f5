package audit

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/seolens/seolens/pkg/defaults"
	"github.com/seolens/seolens/pkg/finding"
	"github.com/seolens/seolens/pkg/scoring"
	"github.com/seolens/seolens/pkg/textstat"
)

// Eureka computes the composite page score, the gap analysis, and the
// automatic recommendations.
func Eureka(ctx context.Context, env *Env) *finding.CategoryResults {
	return runCategory(ctx, env, []namedCheck{
		{"eureka_score", checkEurekaScore},
		{"gap_analysis", checkGapAnalysis},
		{"auto_recommendations", checkAutoRecommendations},
		{"semantic_differential", checkSemanticDifferential},
	})
}

// pageSignals gathers the shared observations the composite checks grade.
type pageSignals struct {
	https          bool
	status200      bool
	canonical      bool
	viewport       bool
	title          string
	titleOK        bool
	metaDesc       bool
	h1Count        int
	wordCount      int
	headingCount   int
	imageCount     int
	altPct         float64
	listCount      int
	linkCount      int
	schemaBlocks   int
	openGraph      bool
	topicsInHeads  float64
	navPresent     bool
	longParagraphs bool
	articleLike    bool
	productLike    bool
}

func gatherSignals(p *Page) pageSignals {
	var s pageSignals
	s.https = p.URL.Scheme == "https"
	s.status200 = p.Resp.StatusCode == 200

	for _, l := range p.Doc.FindAll("link") {
		if strings.EqualFold(l.Attr("rel"), "canonical") && l.Attr("href") != "" {
			s.canonical = true
			break
		}
	}
	_, s.viewport = p.Doc.MetaByName("viewport")

	if title, ok := p.Doc.Title(); ok {
		s.title = title
		n := len([]rune(title))
		s.titleOK = n >= defaults.MinTitleLength && n <= defaults.MaxTitleLength
	}
	if d, ok := p.Doc.MetaByName("description"); ok && strings.TrimSpace(d) != "" {
		s.metaDesc = true
	}

	headings := p.Doc.Headings()
	s.headingCount = len(headings)
	for _, h := range headings {
		if h.Level == 1 {
			s.h1Count++
		}
	}

	body := p.Doc.BodyText()
	s.wordCount = len(textstat.Words(body))

	images := p.Doc.Images()
	s.imageCount = len(images)
	if len(images) > 0 {
		withAlt := 0
		for _, img := range images {
			if strings.TrimSpace(img.Attr("alt")) != "" {
				withAlt++
			}
		}
		s.altPct = float64(withAlt) / float64(len(images)) * 100
	}

	s.listCount = len(p.Doc.FindAllAny("ul", "ol"))
	s.linkCount = len(p.Doc.Links())
	s.schemaBlocks = len(p.Doc.JSONLD())
	s.openGraph = len(p.Doc.MetasByPrefix("og:")) > 0
	s.navPresent = p.Doc.Find("nav") != nil

	paragraphs := p.Doc.FindAll("p")
	long := 0
	for _, para := range paragraphs {
		if len([]rune(para.Text())) > 500 {
			long++
		}
	}
	s.longParagraphs = len(paragraphs) > 0 && float64(long)/float64(len(paragraphs)) > 0.3

	freqs := textstat.WordFrequencies(body)
	top5 := textstat.TopWords(freqs, 5)
	if len(top5) > 0 {
		var headingText strings.Builder
		for _, h := range headings {
			headingText.WriteString(strings.ToLower(h.Text))
			headingText.WriteByte(' ')
		}
		joined := headingText.String()
		hits := 0
		for _, t := range top5 {
			if strings.Contains(joined, t) {
				hits++
			}
		}
		s.topicsInHeads = float64(hits) / 5 * 100
	}

	ogType, _ := p.Doc.MetaByProperty("og:type")
	s.articleLike = strings.Contains(ogType, "article") || p.Doc.Find("article") != nil
	s.productLike = strings.Contains(ogType, "product")
	for _, t := range collectSchemaTypes(p.Doc.JSONLD()) {
		if t == "Product" {
			s.productLike = true
		}
	}
	return s
}

// componentScores grades the four weighted dimensions, each 0-100.
func componentScores(s pageSignals) (technical, content, semantic, ux float64) {
	if s.https {
		technical += 25
	}
	if s.status200 {
		technical += 25
	}
	if s.canonical {
		technical += 25
	}
	if s.viewport {
		technical += 25
	}

	if s.title != "" {
		content += 20
		if s.titleOK {
			content += 10
		}
	}
	if s.metaDesc {
		content += 20
	}
	if s.h1Count == 1 {
		content += 20
	}
	switch {
	case s.wordCount >= defaults.MinContentLength:
		content += 30
	case s.wordCount >= defaults.MinContentLength/2:
		content += 15
	}

	if s.schemaBlocks > 0 {
		semantic += 40
	}
	if s.openGraph {
		semantic += 30
	}
	if s.topicsInHeads >= 60 {
		semantic += 30
	}

	if s.navPresent {
		ux += 25
	}
	if s.imageCount == 0 || s.altPct > defaults.MinAltTextPercent {
		ux += 25
	}
	if s.viewport {
		ux += 25
	}
	if !s.longParagraphs {
		ux += 25
	}
	return technical, content, semantic, ux
}

func checkEurekaScore(ctx context.Context, p *Page) finding.CheckResult {
	s := gatherSignals(p)
	technical, content, semantic, ux := componentScores(s)
	overall := scoring.Round2(technical*0.25 + content*0.35 + semantic*0.25 + ux*0.15)

	band := "Poor"
	switch {
	case overall >= 80:
		band = "Excellent"
	case overall >= 60:
		band = "Good"
	case overall >= 40:
		band = "Moderate"
	}

	v := finding.Mapping(map[string]any{
		"overall":   overall,
		"band":      band,
		"technical": technical,
		"content":   content,
		"semantic":  semantic,
		"ux":        ux,
	})
	msg := fmt.Sprintf("Composite score %.1f/100 (%s)", overall, band)
	switch {
	case overall >= 60:
		return finding.Good(v, msg)
	case overall >= 40:
		return finding.Warn(v, msg)
	default:
		return finding.Bad(v, msg)
	}
}

type gap struct {
	category       string
	issue          string
	impact         string
	recommendation string
}

func collectGaps(s pageSignals) []gap {
	var gaps []gap
	add := func(category, issue, impact, rec string) {
		gaps = append(gaps, gap{category, issue, impact, rec})
	}
	if s.title == "" {
		add("content", "Missing title tag", "high", "Add a descriptive title of 30-60 characters")
	}
	if !s.metaDesc {
		add("content", "Missing meta description", "high", "Add a meta description of 70-155 characters")
	}
	if s.h1Count == 0 {
		add("content", "Missing H1 heading", "high", "Add exactly one H1 describing the page")
	}
	if !s.viewport {
		add("ux", "Missing viewport meta tag", "high", "Add a responsive viewport declaration")
	}
	if !s.https {
		add("technical", "Page not served over HTTPS", "high", "Serve the page over TLS")
	}
	if !s.canonical {
		add("technical", "Missing canonical tag", "medium", "Add a self-referencing canonical link")
	}
	if s.wordCount < defaults.MinContentLength {
		add("content", "Thin content", "medium",
			fmt.Sprintf("Expand the copy to at least %d words", defaults.MinContentLength))
	}
	if s.schemaBlocks == 0 {
		add("structured_data", "No structured data", "medium", "Add JSON-LD markup for the page type")
	}
	if s.imageCount > 0 && s.altPct <= defaults.MinAltTextPercent {
		add("content", "Images missing alt text", "medium", "Describe every meaningful image with alt text")
	}
	if !s.openGraph {
		add("structured_data", "No Open Graph tags", "low", "Add og:title, og:type, og:image, og:url")
	}
	return gaps
}

var impactRank = map[string]int{"high": 0, "medium": 1, "low": 2}

func checkGapAnalysis(ctx context.Context, p *Page) finding.CheckResult {
	gaps := collectGaps(gatherSignals(p))
	sort.SliceStable(gaps, func(i, j int) bool {
		return impactRank[gaps[i].impact] < impactRank[gaps[j].impact]
	})

	var list []any
	for _, g := range gaps {
		list = append(list, map[string]any{
			"category":       g.category,
			"issue":          g.issue,
			"impact":         g.impact,
			"recommendation": g.recommendation,
		})
	}
	v := finding.Mapping(map[string]any{"gaps": list})
	if len(gaps) == 0 {
		return finding.Good(v, "No significant gaps found")
	}
	return finding.Warn(v, fmt.Sprintf("Found %d gap(s), ordered by impact", len(gaps)))
}

func checkAutoRecommendations(ctx context.Context, p *Page) finding.CheckResult {
	s := gatherSignals(p)

	var recs []any
	if !s.canonical {
		recs = append(recs, map[string]any{
			"check":   "canonical_tag",
			"snippet": fmt.Sprintf(`<link rel="canonical" href="%s">`, p.URL.String()),
		})
	}
	if !s.viewport {
		recs = append(recs, map[string]any{
			"check":   "mobile_viewport",
			"snippet": `<meta name="viewport" content="width=device-width, initial-scale=1">`,
		})
	}
	if s.h1Count == 0 {
		headline := s.title
		if headline == "" {
			headline = "Page headline"
		}
		recs = append(recs, map[string]any{
			"check":   "heading_structure",
			"snippet": fmt.Sprintf("<h1>%s</h1>", headline),
		})
	}
	if s.schemaBlocks == 0 {
		schemaType := "WebPage"
		if s.productLike {
			schemaType = "Product"
		} else if s.articleLike {
			schemaType = "Article"
		}
		recs = append(recs, map[string]any{
			"check": "structured_data_present",
			"snippet": fmt.Sprintf(
				`<script type="application/ld+json">{"@context":"https://schema.org","@type":%q,"name":%q}</script>`,
				schemaType, s.title),
		})
	}

	v := finding.Mapping(map[string]any{"recommendations": recs})
	if len(recs) == 0 {
		return finding.Good(v, "No fix-it snippets needed")
	}
	return finding.Info(v, fmt.Sprintf("Generated %d ready-to-paste fix(es)", len(recs)))
}

func checkSemanticDifferential(ctx context.Context, p *Page) finding.CheckResult {
	s := gatherSignals(p)

	benchmarks := []struct {
		name      string
		actual    int
		benchmark int
	}{
		{"word_count", s.wordCount, defaults.BenchmarkWordCount},
		{"heading_count", s.headingCount, defaults.BenchmarkHeadingCount},
		{"image_count", s.imageCount, defaults.BenchmarkImageCount},
		{"list_count", s.listCount, defaults.BenchmarkListCount},
		{"link_count", s.linkCount, defaults.BenchmarkLinkCount},
		{"schema_count", s.schemaBlocks, defaults.BenchmarkSchemaCount},
	}

	var strengths, weaknesses []any
	comparison := make(map[string]any, len(benchmarks))
	for _, b := range benchmarks {
		pct := scoring.Round2(float64(b.actual) / float64(b.benchmark) * 100)
		comparison[b.name] = pct
		switch {
		case pct >= 120:
			strengths = append(strengths, b.name)
		case pct <= 80:
			weaknesses = append(weaknesses, b.name)
		}
	}

	v := finding.Mapping(map[string]any{
		"benchmark_percent": comparison,
		"strengths":         strengths,
		"weaknesses":        weaknesses,
	})
	if len(strengths) >= len(weaknesses) {
		return finding.Good(v, fmt.Sprintf("Page meets or beats benchmarks in %d dimension(s)", len(strengths)))
	}
	return finding.Warn(v, fmt.Sprintf("Page trails benchmarks in %d dimension(s)", len(weaknesses)))
}
