package audit

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/seolens/seolens/pkg/defaults"
	"github.com/seolens/seolens/pkg/finding"
	"github.com/seolens/seolens/pkg/scoring"
	"github.com/seolens/seolens/pkg/textstat"
)

// Advanced audits rendering, semantic, and freshness signals that go
// beyond basic on-page checks.
func Advanced(ctx context.Context, env *Env) *finding.CategoryResults {
	return runCategory(ctx, env, []namedCheck{
		{"javascript_rendering", checkJavascriptRendering},
		{"serp_features", checkSERPFeatures},
		{"semantic_analysis", checkSemanticAnalysis},
		{"content_freshness", checkContentFreshness},
		{"entity_recognition", checkEntityRecognition},
		{"internationalization", checkInternationalization},
		{"page_segmentation", checkPageSegmentation},
	})
}

// frameworkSignatures detect client-side rendering stacks from markup.
var frameworkSignatures = []struct {
	name string
	re   *regexp.Regexp
}{
	{"Next.js", regexp.MustCompile(`__NEXT_DATA__|_next/static`)},
	{"Nuxt.js", regexp.MustCompile(`__NUXT__|_nuxt/`)},
	{"Gatsby", regexp.MustCompile(`___gatsby|gatsby-`)},
	{"React", regexp.MustCompile(`data-reactroot|react(-dom)?(\.production)?(\.min)?\.js`)},
	{"Angular", regexp.MustCompile(`ng-version|angular(\.min)?\.js`)},
	{"Vue", regexp.MustCompile(`data-v-app|vue(\.runtime)?(\.global)?(\.min)?\.js`)},
	{"jQuery", regexp.MustCompile(`jquery[.-]`)},
}

func checkJavascriptRendering(ctx context.Context, p *Page) finding.CheckResult {
	var detected []any
	for _, sig := range frameworkSignatures {
		if sig.re.MatchString(p.HTML) {
			detected = append(detected, sig.name)
		}
	}
	wordCount := len(textstat.Words(p.Doc.BodyText()))
	v := finding.Mapping(map[string]any{
		"frameworks": detected,
		"word_count": wordCount,
	})
	switch {
	case len(detected) == 0:
		return finding.Good(v, "No heavy client-side rendering detected")
	case wordCount < defaults.MinContentLength:
		return finding.Warn(v, "JavaScript framework detected and little server-rendered text")
	default:
		return finding.Info(v, fmt.Sprintf("JavaScript framework(s) detected: %d", len(detected)))
	}
}

var (
	stepHeadingRe     = regexp.MustCompile(`(?i)^step\s*\d+|^\d+\.\s|how\s+to`)
	questionHeadingRe = regexp.MustCompile(`(?i)^(who|what|when|where|why|how|is|are|can|does|do)\b.*\??$`)
)

func checkSERPFeatures(ctx context.Context, p *Page) finding.CheckResult {
	var opportunities []any

	if len(p.Doc.FindAllAny("ul", "ol", "table", "dl")) > 0 {
		opportunities = append(opportunities, "Lists or tables suit featured snippets")
	}

	steps, questions := 0, 0
	for _, h := range p.Doc.Headings() {
		if stepHeadingRe.MatchString(h.Text) {
			steps++
		}
		if questionHeadingRe.MatchString(h.Text) && strings.HasSuffix(h.Text, "?") {
			questions++
		}
	}
	if steps > 0 {
		opportunities = append(opportunities, "Step-by-step headings suit how-to results")
	}
	if questions > 0 {
		opportunities = append(opportunities, "Question headings suit People Also Ask")
	}
	for _, t := range collectSchemaTypes(p.Doc.JSONLD()) {
		if t == "FAQPage" {
			opportunities = append(opportunities, "FAQPage schema present")
			break
		}
	}
	if len(p.Doc.FindAllAny("video", "iframe")) > 0 {
		opportunities = append(opportunities, "Embedded media suits video results")
	}

	v := finding.Mapping(map[string]any{"opportunities": opportunities})
	if len(opportunities) == 0 {
		return finding.Info(v, "No obvious SERP feature opportunities found")
	}
	return finding.Good(v, fmt.Sprintf("Found %d SERP feature opportunity(ies)", len(opportunities)))
}

func checkSemanticAnalysis(ctx context.Context, p *Page) finding.CheckResult {
	freqs := textstat.WordFrequencies(p.Doc.BodyText())
	if len(freqs) == 0 {
		return finding.Warn(finding.Absent(), "Not enough text for topic analysis")
	}
	topics := textstat.TopWords(freqs, 10)

	headingText := strings.Builder{}
	for _, h := range p.Doc.Headings() {
		headingText.WriteString(strings.ToLower(h.Text))
		headingText.WriteByte(' ')
	}
	joined := headingText.String()

	top5 := topics
	if len(top5) > 5 {
		top5 = top5[:5]
	}
	inHeadings := 0
	for _, t := range top5 {
		if strings.Contains(joined, t) {
			inHeadings++
		}
	}
	consistency := 0.0
	if len(top5) > 0 {
		consistency = scoring.Round2(float64(inHeadings) / 5 * 100)
	}

	var topicList []any
	for _, t := range topics {
		topicList = append(topicList, t)
	}
	v := finding.Mapping(map[string]any{
		"top_topics":        topicList,
		"topic_consistency": consistency,
	})
	if consistency >= 60 {
		return finding.Good(v, "Headings reflect the page's main topics")
	}
	return finding.Warn(v, "Headings do not reflect the page's main topics")
}

var lastUpdatedRe = regexp.MustCompile(`(?i)last\s+(updated|modified|reviewed)`)

func checkContentFreshness(ctx context.Context, p *Page) finding.CheckResult {
	var signals []any
	for _, name := range []string{"article:published_time", "article:modified_time"} {
		if v, ok := p.Doc.MetaByProperty(name); ok && v != "" {
			signals = append(signals, name)
		}
	}
	for _, name := range []string{"date", "last-modified", "dcterms.modified"} {
		if v, ok := p.Doc.MetaByName(name); ok && v != "" {
			signals = append(signals, "meta "+name)
		}
	}
	if lastUpdatedRe.MatchString(p.Doc.BodyText()) {
		signals = append(signals, "visible last-updated note")
	}
	year := time.Now().Year()
	if strings.Contains(p.HTML, fmt.Sprint(year)) || strings.Contains(p.HTML, fmt.Sprint(year-1)) {
		signals = append(signals, "recent year mentioned")
	}

	v := finding.Mapping(map[string]any{"signals": signals})
	if len(signals) == 0 {
		return finding.Warn(v, "No freshness signals found")
	}
	return finding.Good(v, fmt.Sprintf("Found %d freshness signal(s)", len(signals)))
}

// entityTypes are the JSON-LD types that represent real-world entities.
var entityTypes = map[string]bool{
	"Person": true, "Organization": true, "Product": true,
	"Event": true, "Place": true, "LocalBusiness": true,
}

func checkEntityRecognition(ctx context.Context, p *Page) finding.CheckResult {
	var entities []any
	for _, t := range collectSchemaTypes(p.Doc.JSONLD()) {
		if entityTypes[t] {
			entities = append(entities, t)
		}
	}

	microdata := 0
	for _, el := range p.Doc.FindAllAny("div", "span", "section", "article") {
		if el.Attr("itemtype") != "" {
			microdata++
		}
	}
	rdfa := strings.Contains(p.HTML, "vocab=") || strings.Contains(p.HTML, `typeof="`)

	v := finding.Mapping(map[string]any{
		"jsonld_entities": entities,
		"microdata_items": microdata,
		"rdfa":            rdfa,
	})
	if len(entities) == 0 && microdata == 0 && !rdfa {
		return finding.Info(v, "No entity markup found")
	}
	return finding.Good(v, "Entity markup present")
}

func checkInternationalization(ctx context.Context, p *Page) finding.CheckResult {
	var hreflangs []any
	var invalid []any
	hasXDefault := false
	for _, l := range p.Doc.FindAll("link") {
		if !strings.EqualFold(l.Attr("rel"), "alternate") {
			continue
		}
		tag := l.Attr("hreflang")
		if tag == "" {
			continue
		}
		if tag == "x-default" {
			hasXDefault = true
			continue
		}
		if _, err := language.Parse(tag); err != nil {
			invalid = append(invalid, tag)
		} else {
			hreflangs = append(hreflangs, tag)
		}
	}

	lang := p.Doc.HTMLLang()
	locale, _ := p.Doc.MetaByProperty("og:locale")

	v := finding.Mapping(map[string]any{
		"html_lang": lang,
		"og_locale": locale,
		"hreflang":  hreflangs,
		"x_default": hasXDefault,
		"invalid":   invalid,
	})

	if lang == "" {
		return finding.Warn(v, "No lang attribute on <html>")
	}
	if len(invalid) > 0 {
		return finding.Warn(v, fmt.Sprintf("%d hreflang value(s) are not valid language tags", len(invalid)))
	}
	if len(hreflangs) > 0 && !hasXDefault {
		return finding.Warn(v, "hreflang set lacks an x-default entry")
	}
	if locale != "" && lang != "" && !strings.HasPrefix(strings.ToLower(locale), strings.ToLower(strings.Split(lang, "-")[0])) {
		return finding.Warn(v, "og:locale does not match the html lang attribute")
	}
	return finding.Good(v, "Language declarations are consistent")
}

func checkPageSegmentation(ctx context.Context, p *Page) finding.CheckResult {
	landmarks := 0
	for _, tag := range []string{"header", "footer", "nav", "main", "aside"} {
		if p.Doc.Find(tag) != nil {
			landmarks++
		}
	}

	bodyLen := len(p.Doc.BodyText())
	mainLen := 0
	if m := p.Doc.Find("main"); m != nil {
		mainLen = len(m.Text())
	} else if a := p.Doc.Find("article"); a != nil {
		mainLen = len(a.Text())
	}
	ratio := 0.0
	if bodyLen > 0 {
		ratio = scoring.Round2(float64(mainLen) / float64(bodyLen) * 100)
	}

	v := finding.Mapping(map[string]any{
		"landmarks":            landmarks,
		"main_content_percent": ratio,
	})
	if landmarks < 3 {
		return finding.Warn(v, "Few semantic landmarks, page structure is hard to segment")
	}
	if mainLen > 0 && ratio < 50 {
		return finding.Warn(v, "Main content is a small share of the page")
	}
	return finding.Good(v, "Page is well segmented")
}
