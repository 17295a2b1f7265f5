package audit

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/seolens/seolens/pkg/finding"
	"github.com/seolens/seolens/pkg/scoring"
)

// UX audits usability signals: viewport, image hygiene, forms,
// readability, calls to action, and navigation.
func UX(ctx context.Context, env *Env) *finding.CategoryResults {
	return runCategory(ctx, env, []namedCheck{
		{"image_optimization", checkImageOptimization},
		{"mobile_viewport", checkMobileViewport},
		{"font_size", checkFontSize},
		{"tap_targets", checkTapTargets},
		{"form_usability", checkFormUsability},
		{"content_readability", checkContentReadability},
		{"cta_effectiveness", checkCTAEffectiveness},
		{"navigation_usability", checkNavigationUsability},
	})
}

func checkImageOptimization(ctx context.Context, p *Page) finding.CheckResult {
	images := p.Doc.Images()
	if len(images) == 0 {
		return finding.Info(finding.Absent(), "No images to evaluate")
	}

	withDims, lazy, srcset := 0, 0, 0
	for _, img := range images {
		if img.Attr("width") != "" && img.Attr("height") != "" {
			withDims++
		}
		if img.Attr("loading") == "lazy" {
			lazy++
		}
		if img.Attr("srcset") != "" {
			srcset++
		}
	}
	total := float64(len(images))
	dimsPct := scoring.Round2(float64(withDims) / total * 100)
	lazyPct := scoring.Round2(float64(lazy) / total * 100)
	srcsetPct := scoring.Round2(float64(srcset) / total * 100)

	var issues []any
	if dimsPct < 80 {
		issues = append(issues, "Many images lack explicit dimensions (layout shift risk)")
	}
	if lazyPct < 50 {
		issues = append(issues, "Few images use lazy loading")
	}
	if srcsetPct < 50 {
		issues = append(issues, "Few images declare responsive srcset variants")
	}

	v := finding.Mapping(map[string]any{
		"total_images":       len(images),
		"dimensions_percent": dimsPct,
		"lazy_percent":       lazyPct,
		"srcset_percent":     srcsetPct,
		"issues":             issues,
	})
	if len(issues) > 0 {
		return finding.Warn(v, fmt.Sprintf("Image optimization has %d issue(s)", len(issues)))
	}
	return finding.Good(v, "Images are well optimized")
}

func checkMobileViewport(ctx context.Context, p *Page) finding.CheckResult {
	content, ok := p.Doc.MetaByName("viewport")
	if !ok {
		return finding.Bad(finding.Absent(), "No viewport meta tag found")
	}
	lower := strings.ToLower(content)
	v := finding.Scalar(content)
	if !strings.Contains(lower, "width=") {
		return finding.Warn(v, "Viewport tag does not declare a width")
	}
	if !strings.Contains(lower, "width=device-width") {
		return finding.Warn(v, "Viewport width is not device-width")
	}
	return finding.Good(v, "Viewport is configured for mobile")
}

var fontSizeRe = regexp.MustCompile(`font-size\s*:\s*([\d.]+)(px|em|rem|pt|%)`)

func checkFontSize(ctx context.Context, p *Page) finding.CheckResult {
	matches := fontSizeRe.FindAllStringSubmatch(p.HTML, -1)
	if len(matches) == 0 {
		return finding.Info(finding.Absent(), "No explicit font sizes found in markup")
	}
	small := 0
	for _, m := range matches {
		size, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		switch m[2] {
		case "px":
			if size < 16 {
				small++
			}
		case "em", "rem":
			if size < 1 {
				small++
			}
		}
	}
	v := finding.Mapping(map[string]any{
		"declared_sizes": len(matches),
		"small_sizes":    small,
	})
	if small > 0 {
		return finding.Warn(v, fmt.Sprintf("%d font size declaration(s) are below comfortable reading size", small))
	}
	return finding.Good(v, "Declared font sizes are readable")
}

var dimensionRe = regexp.MustCompile(`(width|height)\s*:\s*([\d.]+)px`)

func checkTapTargets(ctx context.Context, p *Page) finding.CheckResult {
	interactive := p.Doc.FindAllAny("a", "button")
	for _, in := range p.Doc.FindAll("input") {
		t := in.Attr("type")
		if t == "submit" || t == "button" {
			interactive = append(interactive, in)
		}
	}
	if len(interactive) == 0 {
		return finding.Info(finding.Absent(), "No interactive elements found")
	}
	small := 0
	for _, el := range interactive {
		style := el.Attr("style")
		for _, m := range dimensionRe.FindAllStringSubmatch(style, -1) {
			if px, err := strconv.ParseFloat(m[2], 64); err == nil && px < 48 {
				small++
				break
			}
		}
	}
	v := finding.Mapping(map[string]any{
		"interactive_elements": len(interactive),
		"small_targets":        small,
	})
	if small > 0 {
		return finding.Warn(v, fmt.Sprintf("%d tap target(s) are styled smaller than 48px", small))
	}
	return finding.Good(v, "Tap targets look adequately sized")
}

func checkFormUsability(ctx context.Context, p *Page) finding.CheckResult {
	forms := p.Doc.FindAll("form")
	if len(forms) == 0 {
		return finding.Info(finding.Absent(), "No forms found on the page")
	}

	labeled := make(map[string]bool)
	for _, l := range p.Doc.FindAll("label") {
		if f := l.Attr("for"); f != "" {
			labeled[f] = true
		}
	}

	unlabeled, missingSubmit := 0, 0
	for _, form := range forms {
		hasSubmit := len(form.FindAll("button")) > 0
		for _, in := range form.FindAll("input") {
			switch in.Attr("type") {
			case "hidden":
				continue
			case "submit":
				hasSubmit = true
				continue
			}
			if !labeled[in.Attr("id")] && in.Attr("aria-label") == "" && in.Attr("placeholder") == "" {
				unlabeled++
			}
		}
		if !hasSubmit {
			missingSubmit++
		}
	}

	v := finding.Mapping(map[string]any{
		"forms":            len(forms),
		"unlabeled_inputs": unlabeled,
		"missing_submit":   missingSubmit,
	})
	if unlabeled > 0 || missingSubmit > 0 {
		return finding.Warn(v, fmt.Sprintf("Forms have %d unlabeled input(s) and %d without a submit control",
			unlabeled, missingSubmit))
	}
	return finding.Good(v, "Forms are labeled and submittable")
}

func checkContentReadability(ctx context.Context, p *Page) finding.CheckResult {
	paragraphs := p.Doc.FindAll("p")
	if len(paragraphs) == 0 {
		return finding.Info(finding.Absent(), "No paragraphs found")
	}
	long := 0
	for _, para := range paragraphs {
		if len([]rune(para.Text())) > 500 {
			long++
		}
	}
	ratio := float64(long) / float64(len(paragraphs))
	v := finding.Mapping(map[string]any{
		"paragraphs":      len(paragraphs),
		"long_paragraphs": long,
	})
	if ratio > 0.3 {
		return finding.Warn(v, "Many paragraphs are very long, consider breaking them up")
	}
	return finding.Good(v, "Paragraph lengths are scannable")
}

// ctaTerms mark action-oriented copy.
var ctaTerms = []string{
	"sign up", "register", "subscribe", "download", "get started",
	"try", "buy", "order", "shop",
}

func checkCTAEffectiveness(ctx context.Context, p *Page) finding.CheckResult {
	candidates := p.Doc.FindAllAny("a", "button")
	var ctas []any
	aboveFold := 0
	for _, el := range candidates {
		text := strings.ToLower(el.Text())
		for _, term := range ctaTerms {
			if strings.Contains(text, term) {
				ctas = append(ctas, term)
				if el.HasAncestor("header", "nav") {
					aboveFold++
				}
				break
			}
		}
	}
	v := finding.Mapping(map[string]any{
		"cta_count":  len(ctas),
		"above_fold": aboveFold,
		"terms":      ctas,
	})
	if len(ctas) == 0 {
		return finding.Warn(v, "No call-to-action copy found")
	}
	if aboveFold == 0 {
		return finding.Warn(v, "Calls to action exist but none appear in the header or navigation")
	}
	return finding.Good(v, fmt.Sprintf("Found %d call(s) to action", len(ctas)))
}

var hamburgerRe = regexp.MustCompile(`hamburger|menu-toggle|navbar-toggle|burger`)

func checkNavigationUsability(ctx context.Context, p *Page) finding.CheckResult {
	navs := p.Doc.FindAll("nav")

	hasHamburger := hamburgerRe.MatchString(strings.ToLower(p.HTML))
	hasBreadcrumbs := false
	for _, el := range p.Doc.FindAllAny("nav", "ol", "ul", "div") {
		attrs := strings.ToLower(el.Attr("class") + " " + el.Attr("aria-label") + " " + el.Attr("id"))
		if strings.Contains(attrs, "breadcrumb") {
			hasBreadcrumbs = true
			break
		}
	}
	if !hasBreadcrumbs {
		for _, t := range collectSchemaTypes(p.Doc.JSONLD()) {
			if t == "BreadcrumbList" {
				hasBreadcrumbs = true
				break
			}
		}
	}

	v := finding.Mapping(map[string]any{
		"nav_elements": len(navs),
		"mobile_menu":  hasHamburger,
		"breadcrumbs":  hasBreadcrumbs,
	})
	if len(navs) == 0 {
		return finding.Warn(v, "No <nav> landmarks found")
	}
	if !hasBreadcrumbs {
		return finding.Warn(v, "Navigation present but no breadcrumbs detected")
	}
	return finding.Good(v, "Navigation structure looks usable")
}
