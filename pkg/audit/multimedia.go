package audit

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/seolens/seolens/pkg/defaults"
	"github.com/seolens/seolens/pkg/finding"
	"github.com/seolens/seolens/pkg/scoring"
)

// Multimedia audits images and embedded video: weight, dimensions,
// responsive variants, filenames, and player setup.
func Multimedia(ctx context.Context, env *Env) *finding.CategoryResults {
	return runCategory(ctx, env, []namedCheck{
		{"image_compression", checkImageCompression},
		{"image_dimensions", checkImageDimensions},
		{"responsive_images", checkResponsiveImages},
		{"image_filenames", checkImageFilenames},
		{"video_optimization", checkVideoOptimization},
	})
}

// sampleImageURLs returns up to the sampling limit of same-host image URLs.
func sampleImageURLs(p *Page) []string {
	var urls []string
	for _, img := range p.Doc.Images() {
		src := img.Attr("src")
		if src == "" || strings.HasPrefix(src, "data:") {
			continue
		}
		resolved := p.Doc.ResolveURL(src)
		u, err := url.Parse(resolved)
		if err != nil || !p.sameHost(u) {
			continue
		}
		urls = append(urls, resolved)
		if len(urls) == defaults.SubresourceSample {
			break
		}
	}
	return urls
}

func checkImageCompression(ctx context.Context, p *Page) finding.CheckResult {
	urls := sampleImageURLs(p)
	if len(urls) == 0 {
		return finding.Info(finding.Absent(), "No local images to sample")
	}

	sampled := 0
	totalKB := 0.0
	var large []any
	for _, u := range urls {
		resp, err := p.client().Get(ctx, u)
		if err != nil || resp.StatusCode != 200 {
			continue
		}
		sampled++
		kb := float64(len(resp.Body)) / 1024
		totalKB += kb
		if kb > defaults.ImageSizeWarnKB {
			large = append(large, path.Base(u))
		}
	}
	if sampled == 0 {
		return finding.Info(finding.Absent(), "Could not sample any images")
	}
	avgKB := scoring.Round2(totalKB / float64(sampled))
	v := finding.Mapping(map[string]any{
		"sampled":      sampled,
		"avg_size_kb":  avgKB,
		"large_images": large,
	})
	switch {
	case avgKB < defaults.ImageSizeGoodKB:
		return finding.Good(v, fmt.Sprintf("Sampled images average %.1f KB", avgKB))
	case avgKB < defaults.ImageSizeWarnKB:
		return finding.Warn(v, fmt.Sprintf("Sampled images average %.1f KB, consider compressing", avgKB))
	default:
		return finding.Warn(v, fmt.Sprintf("Sampled images are heavy, averaging %.1f KB", avgKB))
	}
}

func checkImageDimensions(ctx context.Context, p *Page) finding.CheckResult {
	type candidate struct {
		url   string
		width int
	}
	var candidates []candidate
	for _, img := range p.Doc.Images() {
		w, err := strconv.Atoi(img.Attr("width"))
		if err != nil || w <= 0 {
			continue
		}
		src := img.Attr("src")
		if src == "" || strings.HasPrefix(src, "data:") {
			continue
		}
		candidates = append(candidates, candidate{p.Doc.ResolveURL(src), w})
		if len(candidates) == defaults.SubresourceSample {
			break
		}
	}
	if len(candidates) == 0 {
		return finding.Info(finding.Absent(), "No images with explicit display width to compare")
	}

	checked, oversized := 0, 0
	for _, c := range candidates {
		resp, err := p.client().Get(ctx, c.url)
		if err != nil || resp.StatusCode != 200 {
			continue
		}
		cfg, _, err := image.DecodeConfig(bytes.NewReader(resp.Body))
		if err != nil {
			continue
		}
		checked++
		if cfg.Width > 2*c.width {
			oversized++
		}
	}
	if checked == 0 {
		return finding.Info(finding.Absent(), "Could not decode any sampled images")
	}
	v := finding.Mapping(map[string]any{
		"checked":   checked,
		"oversized": oversized,
	})
	if oversized > 0 {
		return finding.Warn(v, fmt.Sprintf("%d image(s) are served much larger than displayed", oversized))
	}
	return finding.Good(v, "Image intrinsic sizes match their display sizes")
}

func checkResponsiveImages(ctx context.Context, p *Page) finding.CheckResult {
	images := p.Doc.Images()
	if len(images) == 0 {
		return finding.Info(finding.Absent(), "No images to evaluate")
	}
	responsive := 0
	for _, img := range images {
		if img.Attr("srcset") != "" || img.HasAncestor("picture") {
			responsive++
		}
	}
	ratio := float64(responsive) / float64(len(images))
	v := finding.Mapping(map[string]any{
		"total_images": len(images),
		"responsive":   responsive,
	})
	if ratio >= defaults.ResponsiveImageRatioGood {
		return finding.Good(v, fmt.Sprintf("%d of %d images are responsive", responsive, len(images)))
	}
	return finding.Warn(v, fmt.Sprintf("Only %d of %d images declare responsive variants", responsive, len(images)))
}

var genericFilenameRe = regexp.MustCompile(`^(img|image|pic|photo|\d+)$`)

func checkImageFilenames(ctx context.Context, p *Page) finding.CheckResult {
	images := p.Doc.Images()
	var names []string
	for _, img := range images {
		src := img.Attr("src")
		if src == "" || strings.HasPrefix(src, "data:") {
			continue
		}
		base := path.Base(src)
		if i := strings.IndexByte(base, '?'); i >= 0 {
			base = base[:i]
		}
		name := strings.TrimSuffix(base, path.Ext(base))
		if name != "" {
			names = append(names, strings.ToLower(name))
		}
	}
	if len(names) == 0 {
		return finding.Info(finding.Absent(), "No image filenames to evaluate")
	}

	descriptive := 0
	for _, name := range names {
		if len(name) > 3 &&
			(strings.Contains(name, "-") || strings.Contains(name, "_")) &&
			!genericFilenameRe.MatchString(name) {
			descriptive++
		}
	}
	ratio := float64(descriptive) / float64(len(names))
	v := finding.Mapping(map[string]any{
		"total":       len(names),
		"descriptive": descriptive,
	})
	if ratio >= 0.7 {
		return finding.Good(v, fmt.Sprintf("%d of %d image filenames are descriptive", descriptive, len(names)))
	}
	return finding.Warn(v, fmt.Sprintf("Only %d of %d image filenames are descriptive", descriptive, len(names)))
}

func checkVideoOptimization(ctx context.Context, p *Page) finding.CheckResult {
	videos := p.Doc.FindAll("video")
	embeds := 0
	for _, f := range p.Doc.FindAll("iframe") {
		src := strings.ToLower(f.Attr("src"))
		if strings.Contains(src, "youtube") || strings.Contains(src, "vimeo") {
			embeds++
		}
	}
	if len(videos) == 0 && embeds == 0 {
		return finding.Info(finding.Absent(), "No video content found")
	}
	if len(videos) == 0 {
		return finding.Info(finding.Mapping(map[string]any{"embeds": embeds}),
			"Only embedded players found, host-side optimization not applicable")
	}

	total := 0
	for _, video := range videos {
		score := 0
		if video.HasAttr("preload") && video.Attr("preload") != "auto" {
			score += 20
		}
		if video.Attr("poster") != "" {
			score += 20
		}
		if video.HasAttr("controls") {
			score += 10
		}
		if len(video.FindAll("track")) > 0 {
			score += 30
		}
		if video.Attr("loading") == "lazy" || video.Attr("preload") == "none" {
			score += 20
		}
		total += score
	}
	avg := total / len(videos)

	v := finding.Mapping(map[string]any{
		"videos":      len(videos),
		"embeds":      embeds,
		"video_score": avg,
	})
	switch {
	case avg >= 70:
		return finding.Good(v, fmt.Sprintf("Video optimization score %d/100", avg))
	case avg >= 40:
		return finding.Warn(v, fmt.Sprintf("Video optimization score %d/100", avg))
	default:
		return finding.Bad(v, fmt.Sprintf("Video optimization score %d/100", avg))
	}
}
