package htmldoc

import (
	"strings"
	"testing"
)

const samplePage = `<!DOCTYPE html>
<html lang="en">
<head>
<title>  Sample   Page </title>
<meta name="description" content="A sample description">
<meta property="og:title" content="Sample OG">
<script type="application/ld+json">{"@context":"https://schema.org","@type":"Article","headline":"Hi"}</script>
</head>
<body>
<h1>Main Title</h1>
<h3>Skipped Level</h3>
<h2>Back Up</h2>
<p>Visible text.</p>
<script>var hidden = "should not appear";</script>
<a href="/about">About us</a>
<a href="https://other.example/x">Elsewhere</a>
<img src="/a.jpg" alt="a">
</body>
</html>`

func parse(t *testing.T) *Document {
	t.Helper()
	d, err := Parse([]byte(samplePage), "https://example.com/page")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return d
}

func TestTitleCollapsesWhitespace(t *testing.T) {
	d := parse(t)
	title, ok := d.Title()
	if !ok {
		t.Fatal("title not found")
	}
	if title != "Sample Page" {
		t.Errorf("Title = %q, want %q", title, "Sample Page")
	}
}

func TestHeadingsDocumentOrder(t *testing.T) {
	d := parse(t)
	hs := d.Headings()
	if len(hs) != 3 {
		t.Fatalf("Headings = %d, want 3", len(hs))
	}
	wantLevels := []int{1, 3, 2}
	for i, want := range wantLevels {
		if hs[i].Level != want {
			t.Errorf("heading %d level = %d, want %d (document order)", i, hs[i].Level, want)
		}
	}
	if hs[1].Text != "Skipped Level" {
		t.Errorf("heading text = %q", hs[1].Text)
	}
}

func TestMetaLookups(t *testing.T) {
	d := parse(t)
	if desc, ok := d.MetaByName("Description"); !ok || desc != "A sample description" {
		t.Errorf("MetaByName = %q, %v", desc, ok)
	}
	if og, ok := d.MetaByProperty("og:title"); !ok || og != "Sample OG" {
		t.Errorf("MetaByProperty = %q, %v", og, ok)
	}
	prefixed := d.MetasByPrefix("og:")
	if prefixed["og:title"] != "Sample OG" {
		t.Errorf("MetasByPrefix = %v", prefixed)
	}
}

func TestBodyTextExcludesScripts(t *testing.T) {
	d := parse(t)
	text := d.BodyText()
	if !strings.Contains(text, "Visible text.") {
		t.Errorf("BodyText missing visible text: %q", text)
	}
	if strings.Contains(text, "should not appear") {
		t.Errorf("BodyText leaked script content: %q", text)
	}
}

func TestJSONLD(t *testing.T) {
	d := parse(t)
	blocks := d.JSONLD()
	if len(blocks) != 1 {
		t.Fatalf("JSONLD blocks = %d, want 1", len(blocks))
	}
	if blocks[0]["@type"] != "Article" {
		t.Errorf("@type = %v", blocks[0]["@type"])
	}
}

func TestResolveURL(t *testing.T) {
	d := parse(t)
	if got := d.ResolveURL("/about"); got != "https://example.com/about" {
		t.Errorf("ResolveURL = %q", got)
	}
	if got := d.ResolveURL("https://other.example/x"); got != "https://other.example/x" {
		t.Errorf("absolute URL should pass through, got %q", got)
	}
}

func TestHasAncestor(t *testing.T) {
	d, err := Parse([]byte(`<html><body><nav><a href="/x">link</a></nav></body></html>`), "")
	if err != nil {
		t.Fatal(err)
	}
	a := d.Find("a")
	if a == nil {
		t.Fatal("anchor not found")
	}
	if !a.HasAncestor("nav") {
		t.Error("anchor should have nav ancestor")
	}
	if a.HasAncestor("footer") {
		t.Error("anchor should not have footer ancestor")
	}
}
