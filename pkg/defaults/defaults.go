// Package defaults provides canonical default values for the entire codebase.
// This is the SINGLE SOURCE OF TRUTH for audit thresholds and runtime defaults.
//
// Usage:
//
//	cfg.Timeout = defaults.FetchTimeout
//	if length > defaults.MaxTitleLength { ... }
//
// DO NOT hardcode threshold values at check sites. Reference the appropriate
// constant from this package so CLI and server stay in agreement.
package defaults

import (
	"fmt"
	"time"
)

// Version is the current seolens version
const Version = "1.3.0"

// ============================================================================
// HTTP FETCHING
// ============================================================================

const (
	// FetchTimeout is the per-page request timeout
	FetchTimeout = 30 * time.Second

	// MaxRedirects is the maximum number of redirects followed during
	// URL normalization
	MaxRedirects = 10

	// MaxBodySize caps response bodies read into memory (10MB)
	MaxBodySize = 10 * 1024 * 1024

	// SubresourceSample is how many page assets (images, scripts,
	// stylesheets) a check may fetch for sampling
	SubresourceSample = 5

	// FetchRatePerSecond throttles subresource sampling against one host
	FetchRatePerSecond = 10
)

const (
	// UAChrome is the desktop Chrome user agent sent with every audit request
	UAChrome = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	// UAMinimal identifies the tool itself (health checks, report serving)
	UAMinimal = "seolens/" + Version
)

// UserAgent returns the seolens user agent with context
func UserAgent(context string) string {
	if context == "" {
		return UAMinimal
	}
	return fmt.Sprintf("seolens/%s (%s)", Version, context)
}

// ============================================================================
// CONTENT THRESHOLDS
// ============================================================================
//
// Character and word limits applied by the content auditor.
// ============================================================================

const (
	// MaxTitleLength is the upper bound for a title tag (characters)
	MaxTitleLength = 60

	// MinTitleLength is the lower bound for a title tag (characters)
	MinTitleLength = 30

	// MaxMetaDescriptionLength is the upper bound for a meta description
	MaxMetaDescriptionLength = 155

	// MinMetaDescriptionLength is the lower bound for a meta description
	MinMetaDescriptionLength = 70

	// MinContentLength is the minimum word count for substantive content
	MinContentLength = 300

	// MaxURLLength flags over-long URLs
	MaxURLLength = 75
)

const (
	// MaxKeywordDensity marks keyword stuffing (percent)
	MaxKeywordDensity = 5.0

	// MaxAvgSentenceLength flags hard-to-read prose (words per sentence)
	MaxAvgSentenceLength = 25.0

	// MinReadabilityScore is the reading-ease floor below which content warns
	MinReadabilityScore = 60.0

	// MinSentenceCount flags thin prose
	MinSentenceCount = 5

	// MinAltTextPercent is the image alt coverage needed for a pass
	MinAltTextPercent = 90.0
)

// ============================================================================
// LINK THRESHOLDS
// ============================================================================

const (
	// MinInternalLinks below which internal linking warns
	MinInternalLinks = 3

	// MaxInternalLinks above which internal linking warns
	MaxInternalLinks = 100

	// MaxAnchorTextLength flags over-long anchor text (characters)
	MaxAnchorTextLength = 100
)

// ============================================================================
// CORE WEB VITALS REFERENCE VALUES
// ============================================================================
//
// Published "good" thresholds, reported as informational context.
// ============================================================================

const (
	// LCPThreshold is the Largest Contentful Paint budget
	LCPThreshold = 2500 * time.Millisecond

	// FIDThreshold is the First Input Delay budget
	FIDThreshold = 100 * time.Millisecond

	// CLSThreshold is the Cumulative Layout Shift budget
	CLSThreshold = 0.1
)

// ============================================================================
// CACHING AND ASSET BUDGETS
// ============================================================================

const (
	// CacheMaxAgeGood is the max-age at or above which caching passes (30d)
	CacheMaxAgeGood = 30 * 24 * time.Hour

	// CacheMaxAgeOK is the max-age at or above which caching only warns (7d)
	CacheMaxAgeOK = 7 * 24 * time.Hour

	// ImageSizeGoodKB is the average sampled image size for a pass
	ImageSizeGoodKB = 50.0

	// ImageSizeWarnKB is the average sampled image size for a warning
	ImageSizeWarnKB = 100.0

	// MinifiedRatioGood is the fraction of sampled assets that must look
	// minified for a pass
	MinifiedRatioGood = 0.7

	// ResponsiveImageRatioGood is the srcset/picture coverage for a pass
	ResponsiveImageRatioGood = 0.7
)

// ============================================================================
// COMPOSITE SCORE BENCHMARKS
// ============================================================================
//
// Reference figures the differential analysis compares a page against.
// ============================================================================

const (
	BenchmarkWordCount    = 1000
	BenchmarkHeadingCount = 8
	BenchmarkImageCount   = 5
	BenchmarkListCount    = 3
	BenchmarkLinkCount    = 15
	BenchmarkSchemaCount  = 2
)

// ============================================================================
// ORCHESTRATION
// ============================================================================

const (
	// ConcurrencyDefault is how many audit categories run in parallel
	ConcurrencyDefault = 4

	// ConcurrencyMax clamps the category worker pool
	ConcurrencyMax = 9
)

// ============================================================================
// SCORE BANDS
// ============================================================================

const (
	// ScoreGood is the overall score at or above which a page renders green
	ScoreGood = 80.0

	// ScoreWarning is the overall score at or above which a page renders amber
	ScoreWarning = 60.0
)

// ============================================================================
// HTTP CONTENT TYPES
// ============================================================================

const (
	// ContentTypeJSON is application/json
	ContentTypeJSON = "application/json"

	// ContentTypeHTML is text/html
	ContentTypeHTML = "text/html"

	// ContentTypeCSV is text/csv
	ContentTypeCSV = "text/csv"

	// ContentTypePDF is application/pdf
	ContentTypePDF = "application/pdf"
)
