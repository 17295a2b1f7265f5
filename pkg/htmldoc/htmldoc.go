// Package htmldoc wraps an x/net/html parse tree with the queries the
// auditors need: tag and attribute lookup, visible text extraction,
// meta tags, headings in document order, and JSON-LD blocks.
package htmldoc

import (
	"bytes"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/seolens/seolens/pkg/jsonutil"
	"github.com/seolens/seolens/pkg/strutil"
)

// Document is a parsed HTML page tied to its base URL.
type Document struct {
	root *html.Node
	base *url.URL
}

// Element is a node handle with convenience accessors.
type Element struct {
	Node *html.Node
}

// Parse builds a Document from body. baseURL anchors relative link
// resolution and may be empty.
func Parse(body []byte, baseURL string) (*Document, error) {
	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	d := &Document{root: root}
	if baseURL != "" {
		if u, err := url.Parse(baseURL); err == nil {
			d.base = u
		}
	}
	return d, nil
}

// Walk visits every node depth-first in document order.
func (d *Document) Walk(fn func(n *html.Node)) {
	walk(d.root, fn)
}

func walk(n *html.Node, fn func(n *html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

// Find returns the first element with the given tag, nil if none.
func (d *Document) Find(tag string) *Element {
	all := d.findAll(tag, 1)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

// FindAll returns every element with the given tag in document order.
func (d *Document) FindAll(tag string) []*Element {
	return d.findAll(tag, -1)
}

func (d *Document) findAll(tag string, limit int) []*Element {
	var out []*Element
	d.Walk(func(n *html.Node) {
		if limit >= 0 && len(out) >= limit {
			return
		}
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, &Element{Node: n})
		}
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// FindAllAny returns elements matching any of the tags, in document order.
func (d *Document) FindAllAny(tags ...string) []*Element {
	want := make(map[string]bool, len(tags))
	for _, t := range tags {
		want[t] = true
	}
	var out []*Element
	d.Walk(func(n *html.Node) {
		if n.Type == html.ElementNode && want[n.Data] {
			out = append(out, &Element{Node: n})
		}
	})
	return out
}

// Tag returns the element name.
func (e *Element) Tag() string { return e.Node.Data }

// Attr returns the attribute value, "" when absent.
func (e *Element) Attr(key string) string {
	v, _ := e.AttrExists(key)
	return v
}

// AttrExists returns the attribute value and whether it is present.
func (e *Element) AttrExists(key string) (string, bool) {
	for _, attr := range e.Node.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// HasAttr reports whether the attribute is present, even if empty.
func (e *Element) HasAttr(key string) bool {
	_, ok := e.AttrExists(key)
	return ok
}

// Text returns the element's text content with whitespace collapsed.
func (e *Element) Text() string {
	var sb strings.Builder
	collectText(e.Node, &sb)
	return strutil.CollapseSpace(sb.String())
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteByte(' ')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

// FindAll returns descendant elements with the given tag.
func (e *Element) FindAll(tag string) []*Element {
	var out []*Element
	walk(e.Node, func(n *html.Node) {
		if n != e.Node && n.Type == html.ElementNode && n.Data == tag {
			out = append(out, &Element{Node: n})
		}
	})
	return out
}

// HasAncestor reports whether any ancestor element matches one of tags.
func (e *Element) HasAncestor(tags ...string) bool {
	want := make(map[string]bool, len(tags))
	for _, t := range tags {
		want[t] = true
	}
	for p := e.Node.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && want[p.Data] {
			return true
		}
	}
	return false
}

// Title returns the <title> text, "" when missing.
func (d *Document) Title() (string, bool) {
	t := d.Find("title")
	if t == nil {
		return "", false
	}
	return t.Text(), true
}

// MetaByName returns the content of <meta name=...>, matching
// case-insensitively.
func (d *Document) MetaByName(name string) (string, bool) {
	return d.meta("name", name)
}

// MetaByProperty returns the content of <meta property=...>.
func (d *Document) MetaByProperty(prop string) (string, bool) {
	return d.meta("property", prop)
}

func (d *Document) meta(key, val string) (string, bool) {
	for _, m := range d.FindAll("meta") {
		if strings.EqualFold(m.Attr(key), val) {
			return m.Attr("content"), true
		}
	}
	return "", false
}

// MetasByPrefix collects meta tags whose name or property starts with
// prefix, keyed by the full name/property.
func (d *Document) MetasByPrefix(prefix string) map[string]string {
	out := make(map[string]string)
	for _, m := range d.FindAll("meta") {
		for _, key := range []string{"name", "property"} {
			if v := m.Attr(key); strings.HasPrefix(strings.ToLower(v), prefix) {
				out[strings.ToLower(v)] = m.Attr("content")
			}
		}
	}
	return out
}

// Heading is one h1..h6 element in document order.
type Heading struct {
	Level int
	Text  string
}

// Headings returns every heading as it appears in the document. Order is
// the true document order, which is what hierarchy checks must inspect.
func (d *Document) Headings() []Heading {
	var out []Heading
	d.Walk(func(n *html.Node) {
		if n.Type != html.ElementNode || len(n.Data) != 2 || n.Data[0] != 'h' {
			return
		}
		if n.Data[1] < '1' || n.Data[1] > '6' {
			return
		}
		e := &Element{Node: n}
		out = append(out, Heading{Level: int(n.Data[1] - '0'), Text: e.Text()})
	})
	return out
}

// Links returns every <a> with a non-empty href.
func (d *Document) Links() []*Element {
	var out []*Element
	for _, a := range d.FindAll("a") {
		if a.Attr("href") != "" {
			out = append(out, a)
		}
	}
	return out
}

// Images returns every <img> element.
func (d *Document) Images() []*Element { return d.FindAll("img") }

// BodyText returns the visible text of the page, excluding script, style,
// and noscript subtrees.
func (d *Document) BodyText() string {
	var sb strings.Builder
	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "template":
				return
			}
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	start := d.root
	if body := d.Find("body"); body != nil {
		start = body.Node
	}
	visit(start)
	return strutil.CollapseSpace(sb.String())
}

// HTMLLang returns the lang attribute of the <html> element.
func (d *Document) HTMLLang() string {
	if h := d.Find("html"); h != nil {
		return h.Attr("lang")
	}
	return ""
}

// JSONLD parses every application/ld+json script block. Top-level arrays
// and @graph containers are flattened into individual objects; malformed
// blocks are skipped.
func (d *Document) JSONLD() []map[string]any {
	var out []map[string]any
	for _, s := range d.FindAll("script") {
		if !strings.EqualFold(s.Attr("type"), "application/ld+json") {
			continue
		}
		var raw strings.Builder
		collectText(s.Node, &raw)
		var v any
		if err := jsonutil.Unmarshal([]byte(raw.String()), &v); err != nil {
			continue
		}
		out = append(out, flattenLD(v)...)
	}
	return out
}

func flattenLD(v any) []map[string]any {
	switch t := v.(type) {
	case map[string]any:
		if graph, ok := t["@graph"].([]any); ok {
			var out []map[string]any
			out = append(out, t)
			for _, g := range graph {
				if m, ok := g.(map[string]any); ok {
					out = append(out, m)
				}
			}
			return out
		}
		return []map[string]any{t}
	case []any:
		var out []map[string]any
		for _, item := range t {
			if m, ok := item.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	default:
		return nil
	}
}

// ResolveURL resolves ref against the document base. Unresolvable refs
// come back unchanged.
func (d *Document) ResolveURL(ref string) string {
	if d.base == nil {
		return ref
	}
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return ref
	}
	return d.base.ResolveReference(u).String()
}

// BaseHost returns the hostname of the document base URL.
func (d *Document) BaseHost() string {
	if d.base == nil {
		return ""
	}
	return d.base.Hostname()
}
