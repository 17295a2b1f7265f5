package audit

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/seolens/seolens/pkg/defaults"
	"github.com/seolens/seolens/pkg/finding"
	"github.com/seolens/seolens/pkg/scoring"
	"github.com/seolens/seolens/pkg/textstat"
)

// Content audits the page copy: title, description, headings, body text,
// keywords, and alt coverage.
func Content(ctx context.Context, env *Env) *finding.CategoryResults {
	return runCategory(ctx, env, []namedCheck{
		{"title_tag", checkTitleTag},
		{"meta_description", checkMetaDescription},
		{"heading_structure", checkHeadingStructure},
		{"content_length", checkContentLength},
		{"keyword_usage", checkKeywordUsage},
		{"content_quality", checkContentQuality},
		{"image_alt_text", checkImageAltText},
		{"outbound_links", checkOutboundLinks},
	})
}

func checkTitleTag(ctx context.Context, p *Page) finding.CheckResult {
	title, ok := p.Doc.Title()
	if !ok || title == "" {
		return finding.Bad(finding.Absent(), "No title tag found")
	}

	length := len([]rune(title))
	var potential []any
	for _, w := range textstat.Words(title) {
		if len(w) > 3 {
			potential = append(potential, w)
		}
	}

	details := map[string]any{
		"title":              title,
		"length":             length,
		"potential_keywords": potential,
	}

	lowerTitle := strings.ToLower(title)
	var missing []string
	if kws := p.keywords(); len(kws) > 0 {
		var found []any
		for _, k := range kws {
			if strings.Contains(lowerTitle, k) {
				found = append(found, k)
			} else {
				missing = append(missing, k)
			}
		}
		details["keywords_found"] = found
	}
	v := finding.Mapping(details)

	switch {
	case length < defaults.MinTitleLength:
		return finding.Warn(v, fmt.Sprintf("Title is too short (%d characters, aim for %d-%d)",
			length, defaults.MinTitleLength, defaults.MaxTitleLength))
	case length > defaults.MaxTitleLength:
		return finding.Warn(v, fmt.Sprintf("Title is too long (%d characters, aim for %d-%d)",
			length, defaults.MinTitleLength, defaults.MaxTitleLength))
	case len(missing) > 0:
		return finding.Warn(v, fmt.Sprintf("Title lacks focus keyword(s): %s",
			strings.Join(missing, ", ")))
	default:
		return finding.Good(v, "Title tag length is optimal")
	}
}

func checkMetaDescription(ctx context.Context, p *Page) finding.CheckResult {
	desc, ok := p.Doc.MetaByName("description")
	if !ok || strings.TrimSpace(desc) == "" {
		return finding.Bad(finding.Absent(), "No meta description found")
	}
	length := len([]rune(desc))
	v := finding.Mapping(map[string]any{
		"description": desc,
		"length":      length,
	})
	switch {
	case length < defaults.MinMetaDescriptionLength:
		return finding.Warn(v, fmt.Sprintf("Meta description is too short (%d characters, aim for %d-%d)",
			length, defaults.MinMetaDescriptionLength, defaults.MaxMetaDescriptionLength))
	case length > defaults.MaxMetaDescriptionLength:
		return finding.Warn(v, fmt.Sprintf("Meta description is too long (%d characters, aim for %d-%d)",
			length, defaults.MinMetaDescriptionLength, defaults.MaxMetaDescriptionLength))
	default:
		return finding.Good(v, "Meta description length is optimal")
	}
}

func checkHeadingStructure(ctx context.Context, p *Page) finding.CheckResult {
	headings := p.Doc.Headings()

	counts := make([]int, 7)
	var texts []any
	for _, h := range headings {
		counts[h.Level]++
		if h.Level <= 2 && len(texts) < 10 {
			texts = append(texts, h.Text)
		}
	}

	var issues []any
	// Hierarchy skips are judged in true document order: an h3 directly
	// after an h1 is a skip even if h2s appear later in the page.
	prev := 0
	for _, h := range headings {
		if prev > 0 && h.Level > prev+1 {
			issues = append(issues, fmt.Sprintf("h%d follows h%d, skipping a level", h.Level, prev))
		}
		prev = h.Level
	}
	if counts[1] > 1 {
		issues = append(issues, fmt.Sprintf("Multiple H1 tags (%d)", counts[1]))
	}
	if counts[2] == 0 {
		issues = append(issues, "No H2 tags found")
	}

	v := finding.Mapping(map[string]any{
		"h1_count": counts[1], "h2_count": counts[2], "h3_count": counts[3],
		"h4_count": counts[4], "h5_count": counts[5], "h6_count": counts[6],
		"heading_texts": texts,
		"issues":        issues,
	})

	if counts[1] == 0 {
		return finding.Bad(v, "No H1 tag found")
	}
	if len(issues) > 0 {
		return finding.Warn(v, fmt.Sprintf("Heading structure has %d issue(s)", len(issues)))
	}
	return finding.Good(v, "Heading structure is well organized")
}

func checkContentLength(ctx context.Context, p *Page) finding.CheckResult {
	words := textstat.Words(p.Doc.BodyText())
	v := finding.Mapping(map[string]any{"word_count": len(words)})
	if len(words) < defaults.MinContentLength {
		return finding.Warn(v, fmt.Sprintf("Content is thin (%d words, aim for at least %d)",
			len(words), defaults.MinContentLength))
	}
	return finding.Good(v, fmt.Sprintf("Content length is substantial (%d words)", len(words)))
}

func checkKeywordUsage(ctx context.Context, p *Page) finding.CheckResult {
	words := textstat.Words(p.Doc.BodyText())
	if len(words) == 0 {
		return finding.Warn(finding.Absent(), "No text content to extract keywords from")
	}

	top := textstat.TopKeywords(words, 5)
	var topList []any
	stuffed := ""
	for _, kw := range top {
		topList = append(topList, map[string]any{
			"word":    kw.Word,
			"count":   kw.Count,
			"density": kw.Density,
		})
		if stuffed == "" && kw.Density > defaults.MaxKeywordDensity {
			stuffed = kw.Word
		}
	}

	details := map[string]any{"top_keywords": topList}
	if kws := p.keywords(); len(kws) > 0 {
		lower := strings.ToLower(p.Doc.BodyText())
		var found []any
		for _, k := range kws {
			if strings.Contains(lower, k) {
				found = append(found, k)
			}
		}
		details["user_keywords_found"] = found
	}
	v := finding.Mapping(details)

	if stuffed != "" {
		return finding.Warn(v, fmt.Sprintf("Possible keyword stuffing: %q exceeds %.1f%% density",
			stuffed, defaults.MaxKeywordDensity))
	}
	return finding.Good(v, "Keyword distribution looks natural")
}

func checkContentQuality(ctx context.Context, p *Page) finding.CheckResult {
	text := p.Doc.BodyText()
	words := textstat.Words(text)
	sentences := textstat.Sentences(text)

	avgSentence := textstat.AvgSentenceLength(len(words), len(sentences))
	readability := textstat.Readability(avgSentence, textstat.AvgWordLength(words))

	var issues []any
	if avgSentence > defaults.MaxAvgSentenceLength {
		issues = append(issues, "Sentences are long on average")
	}
	if readability < defaults.MinReadabilityScore {
		issues = append(issues, "Content may be hard to read")
	}
	if len(sentences) < defaults.MinSentenceCount {
		issues = append(issues, "Very little prose on the page")
	}

	v := finding.Mapping(map[string]any{
		"sentence_count":      len(sentences),
		"avg_sentence_length": scoring.Round2(avgSentence),
		"readability_score":   scoring.Round2(readability),
		"issues":              issues,
	})
	if len(issues) > 0 {
		return finding.Warn(v, fmt.Sprintf("Content quality has %d issue(s)", len(issues)))
	}
	return finding.Good(v, "Content reads well")
}

func checkImageAltText(ctx context.Context, p *Page) finding.CheckResult {
	images := p.Doc.Images()
	if len(images) == 0 {
		return finding.Info(finding.Absent(), "No images found on the page")
	}
	withAlt := 0
	for _, img := range images {
		if strings.TrimSpace(img.Attr("alt")) != "" {
			withAlt++
		}
	}
	pct := scoring.Round2(float64(withAlt) / float64(len(images)) * 100)
	v := finding.Mapping(map[string]any{
		"total_images":        len(images),
		"images_with_alt":     withAlt,
		"alt_text_percentage": pct,
	})
	if pct > defaults.MinAltTextPercent {
		return finding.Good(v, fmt.Sprintf("%.1f%% of images have alt text", pct))
	}
	return finding.Warn(v, fmt.Sprintf("Only %.1f%% of images have alt text", pct))
}

func checkOutboundLinks(ctx context.Context, p *Page) finding.CheckResult {
	outbound := 0
	for _, a := range p.Doc.Links() {
		link, err := url.Parse(p.Doc.ResolveURL(a.Attr("href")))
		if err != nil {
			continue
		}
		if (link.Scheme == "http" || link.Scheme == "https") && !p.sameHost(link) {
			outbound++
		}
	}
	v := finding.Mapping(map[string]any{"outbound_count": outbound})
	switch {
	case outbound == 0:
		return finding.Info(v, "No outbound links found")
	case outbound > 50:
		return finding.Warn(v, fmt.Sprintf("Large number of outbound links (%d)", outbound))
	default:
		return finding.Good(v, fmt.Sprintf("Outbound link count is reasonable (%d)", outbound))
	}
}
