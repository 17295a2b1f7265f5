package audit

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/seolens/seolens/pkg/finding"
)

// StructuredData audits machine-readable markup: JSON-LD, Open Graph,
// and Twitter cards.
func StructuredData(ctx context.Context, env *Env) *finding.CategoryResults {
	return runCategory(ctx, env, []namedCheck{
		{"structured_data_present", checkStructuredDataPresent},
		{"schema_types", checkSchemaTypes},
		{"schema_completeness", checkSchemaCompleteness},
		{"open_graph", checkOpenGraph},
		{"twitter_cards", checkTwitterCards},
	})
}

func checkStructuredDataPresent(ctx context.Context, p *Page) finding.CheckResult {
	blocks := p.Doc.JSONLD()
	v := finding.Mapping(map[string]any{"jsonld_blocks": len(blocks)})
	if len(blocks) == 0 {
		return finding.Warn(v, "No JSON-LD structured data found")
	}
	return finding.Good(v, fmt.Sprintf("Found %d JSON-LD block(s)", len(blocks)))
}

// commonSchemaTypes are the types search engines surface prominently.
var commonSchemaTypes = map[string]bool{
	"WebPage": true, "Article": true, "Product": true, "Organization": true,
	"LocalBusiness": true, "Person": true, "BreadcrumbList": true,
}

// collectSchemaTypes extracts every @type recursively, including nested
// entities.
func collectSchemaTypes(blocks []map[string]any) []string {
	seen := make(map[string]bool)
	var visit func(v any)
	visit = func(v any) {
		switch t := v.(type) {
		case map[string]any:
			if typ, ok := t["@type"]; ok {
				switch tv := typ.(type) {
				case string:
					seen[tv] = true
				case []any:
					for _, item := range tv {
						if s, ok := item.(string); ok {
							seen[s] = true
						}
					}
				}
			}
			for _, val := range t {
				visit(val)
			}
		case []any:
			for _, item := range t {
				visit(item)
			}
		}
	}
	for _, b := range blocks {
		visit(b)
	}
	types := make([]string, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

func checkSchemaTypes(ctx context.Context, p *Page) finding.CheckResult {
	types := collectSchemaTypes(p.Doc.JSONLD())
	if len(types) == 0 {
		return finding.Warn(finding.Absent(), "No schema types declared")
	}
	var all, common []any
	for _, t := range types {
		all = append(all, t)
		if commonSchemaTypes[t] {
			common = append(common, t)
		}
	}
	v := finding.Mapping(map[string]any{
		"types":        all,
		"common_types": common,
	})
	if len(common) == 0 {
		return finding.Warn(v, "Schema types present but none are commonly surfaced by search engines")
	}
	return finding.Good(v, fmt.Sprintf("Found %d schema type(s)", len(types)))
}

// requiredSchemaFields lists the properties search engines expect per type.
var requiredSchemaFields = map[string][]string{
	"Article":       {"headline", "author", "datePublished", "image"},
	"BlogPosting":   {"headline", "author", "datePublished", "image"},
	"Product":       {"name", "image", "description", "offers"},
	"LocalBusiness": {"name", "address", "telephone"},
}

func checkSchemaCompleteness(ctx context.Context, p *Page) finding.CheckResult {
	blocks := p.Doc.JSONLD()
	if len(blocks) == 0 {
		return finding.Info(finding.Absent(), "No structured data to validate")
	}

	var missing []any
	checked := 0
	for _, block := range blocks {
		typ, _ := block["@type"].(string)
		fields, ok := requiredSchemaFields[typ]
		if !ok {
			continue
		}
		checked++
		for _, f := range fields {
			if _, present := block[f]; !present {
				missing = append(missing, fmt.Sprintf("%s is missing %s", typ, f))
			}
		}
	}

	if checked == 0 {
		return finding.Info(finding.Absent(), "No schema of a validated type found")
	}
	v := finding.Mapping(map[string]any{
		"validated_blocks": checked,
		"missing_fields":   missing,
	})
	if len(missing) > 0 {
		return finding.Warn(v, fmt.Sprintf("Schema markup is missing %d required field(s)", len(missing)))
	}
	return finding.Good(v, "Schema markup has all required fields")
}

func checkOpenGraph(ctx context.Context, p *Page) finding.CheckResult {
	og := p.Doc.MetasByPrefix("og:")
	if len(og) == 0 {
		return finding.Warn(finding.Absent(), "No Open Graph tags found")
	}
	required := []string{"og:title", "og:type", "og:image", "og:url"}
	var missing []any
	for _, r := range required {
		if strings.TrimSpace(og[r]) == "" {
			missing = append(missing, r)
		}
	}
	present := make(map[string]any, len(og))
	for k, val := range og {
		present[k] = val
	}
	v := finding.Mapping(map[string]any{
		"tags":    present,
		"missing": missing,
	})
	if len(missing) > 0 {
		return finding.Warn(v, fmt.Sprintf("Open Graph is missing %d required tag(s)", len(missing)))
	}
	return finding.Good(v, "All required Open Graph tags present")
}

func checkTwitterCards(ctx context.Context, p *Page) finding.CheckResult {
	tw := p.Doc.MetasByPrefix("twitter:")
	if len(tw) == 0 {
		return finding.Info(finding.Absent(), "No Twitter card tags found")
	}

	card := tw["twitter:card"]
	required := []string{"twitter:title", "twitter:description"}
	if card == "summary_large_image" {
		required = append(required, "twitter:image")
	}
	var missing []any
	for _, r := range required {
		if strings.TrimSpace(tw[r]) == "" {
			missing = append(missing, r)
		}
	}
	present := make(map[string]any, len(tw))
	for k, val := range tw {
		present[k] = val
	}
	v := finding.Mapping(map[string]any{
		"card":    card,
		"tags":    present,
		"missing": missing,
	})
	if card == "" {
		return finding.Warn(v, "Twitter tags present but no card type declared")
	}
	if len(missing) > 0 {
		return finding.Warn(v, fmt.Sprintf("Twitter card is missing %d tag(s)", len(missing)))
	}
	return finding.Good(v, fmt.Sprintf("Twitter card %q is complete", card))
}
