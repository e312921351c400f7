package localizer

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const testPage = `<!DOCTYPE html>
<html lang="en">
<head>
    <title>Welcome</title>
    <meta name="description" content="Compare developer tools.">
    <meta property="og:title" content="Welcome">
    <meta property="og:url" content="https://evaluating.tools/en/">
</head>
<body>
    <h1>Evaluating.Tools picks for you</h1>
    <p>Hello <a href="/en/about">About</a></p>
    <div class="cta">Hello World</div>
    <div class="layout"><span>World</span></div>
    <p>© 2026 Evaluating.Tools</p>
</body>
</html>`

func testTransformConfig() TransformConfig {
	cfg := DefaultTransformConfig("evaluating.tools")
	cfg.BrandToken = "Evaluating.Tools"
	cfg.Locales = []LocaleDescriptor{
		{Code: "es", CreateNew: true},
		{Code: "fr", CreateNew: true},
		{Code: "ar", CreateNew: false},
	}
	return cfg
}

func parseTestDoc(t *testing.T, page string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parsing test page: %v", err)
	}
	return doc
}

func TestTransformer_LangAttribute(t *testing.T) {
	tr := NewTransformer(testTransformConfig(), NewTranslator(newMockProvider()))
	doc := parseTestDoc(t, testPage)

	if err := tr.Transform(context.Background(), doc, LocaleDescriptor{Code: "fr", CreateNew: true}, "."); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	lang, _ := doc.Find("html").Attr("lang")
	if lang != "fr" {
		t.Errorf("html lang = %q, want %q", lang, "fr")
	}
}

func TestTransformer_CanonicalLink(t *testing.T) {
	tr := NewTransformer(testTransformConfig(), NewTranslator(newMockProvider()))
	doc := parseTestDoc(t, testPage)

	if err := tr.Transform(context.Background(), doc, LocaleDescriptor{Code: "fr", CreateNew: true}, "."); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	canonical := doc.Find(`link[rel="canonical"]`)
	if canonical.Length() != 1 {
		t.Fatalf("found %d canonical links, want 1", canonical.Length())
	}
	if href, _ := canonical.Attr("href"); href != "https://evaluating.tools/fr/" {
		t.Errorf("canonical href = %q, want %q", href, "https://evaluating.tools/fr/")
	}
}

func TestTransformer_ExistingCanonicalUpdated(t *testing.T) {
	page := strings.Replace(testPage, "</title>",
		`</title><link rel="canonical" href="https://evaluating.tools/en/">`, 1)

	tr := NewTransformer(testTransformConfig(), NewTranslator(newMockProvider()))
	doc := parseTestDoc(t, page)

	if err := tr.Transform(context.Background(), doc, LocaleDescriptor{Code: "es", CreateNew: true}, "guides"); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	canonical := doc.Find(`link[rel="canonical"]`)
	if canonical.Length() != 1 {
		t.Fatalf("found %d canonical links, want 1", canonical.Length())
	}
	if href, _ := canonical.Attr("href"); href != "https://evaluating.tools/es/guides/" {
		t.Errorf("canonical href = %q, want %q", href, "https://evaluating.tools/es/guides/")
	}
}

func TestTransformer_AlternateLinks(t *testing.T) {
	cfg := testTransformConfig()
	tr := NewTransformer(cfg, NewTranslator(newMockProvider()))
	doc := parseTestDoc(t, testPage)

	if err := tr.Transform(context.Background(), doc, LocaleDescriptor{Code: "fr", CreateNew: true}, "."); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	// One alternate per registry locale, createNew false included
	for _, l := range cfg.Locales {
		sel := doc.Find(`link[rel="alternate"][hreflang="` + l.Code + `"]`)
		if sel.Length() != 1 {
			t.Errorf("locale %s: found %d alternate links, want 1", l.Code, sel.Length())
			continue
		}
		want := "https://evaluating.tools/" + l.Code + "/"
		if href, _ := sel.Attr("href"); href != want {
			t.Errorf("locale %s: alternate href = %q, want %q", l.Code, href, want)
		}
	}
}

func TestTransformer_AlternateLinksIdempotent(t *testing.T) {
	cfg := testTransformConfig()
	tr := NewTransformer(cfg, NewTranslator(newMockProvider()))
	doc := parseTestDoc(t, testPage)

	locale := LocaleDescriptor{Code: "fr", CreateNew: true}
	for i := 0; i < 2; i++ {
		if err := tr.Transform(context.Background(), doc, locale, "."); err != nil {
			t.Fatalf("Transform run %d failed: %v", i+1, err)
		}
	}

	total := doc.Find(`link[rel="alternate"][hreflang]`).Length()
	if total != len(cfg.Locales) {
		t.Errorf("found %d alternate links after two runs, want %d", total, len(cfg.Locales))
	}
	if canonical := doc.Find(`link[rel="canonical"]`).Length(); canonical != 1 {
		t.Errorf("found %d canonical links after two runs, want 1", canonical)
	}
}

func TestTransformer_MetaTranslation(t *testing.T) {
	tr := NewTransformer(testTransformConfig(), NewTranslator(newMockProvider()))
	doc := parseTestDoc(t, testPage)

	if err := tr.Transform(context.Background(), doc, LocaleDescriptor{Code: "es", CreateNew: true}, "."); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	if title := doc.Find("title").Text(); title != "Bienvenue" {
		t.Errorf("title = %q, want %q", title, "Bienvenue")
	}

	desc, _ := doc.Find(`meta[name="description"]`).Attr("content")
	if desc != "[Compare developer tools.]" {
		t.Errorf("description = %q, want translated", desc)
	}

	ogTitle, _ := doc.Find(`meta[property="og:title"]`).Attr("content")
	if ogTitle != "Bienvenue" {
		t.Errorf("og:title = %q, want %q", ogTitle, "Bienvenue")
	}

	ogURL, _ := doc.Find(`meta[property="og:url"]`).Attr("content")
	if ogURL != "https://evaluating.tools/es/" {
		t.Errorf("og:url = %q, want locale canonical URL", ogURL)
	}
}

func TestTransformer_AnchorPolicy(t *testing.T) {
	tr := NewTransformer(testTransformConfig(), NewTranslator(newMockProvider()))
	doc := parseTestDoc(t, testPage)

	if err := tr.Transform(context.Background(), doc, LocaleDescriptor{Code: "fr", CreateNew: true}, "."); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	anchor := doc.Find("a")
	if href, _ := anchor.Attr("href"); href != "/fr/about" {
		t.Errorf("anchor href = %q, want %q", href, "/fr/about")
	}
	if text := anchor.Text(); text != "[About]" {
		t.Errorf("anchor text = %q, want translated", text)
	}
}

func TestTransformer_AnchorWithoutSourceSegment(t *testing.T) {
	page := `<html><head></head><body><a href="https://example.com/docs">Hello</a></body></html>`
	tr := NewTransformer(testTransformConfig(), NewTranslator(newMockProvider()))
	doc := parseTestDoc(t, page)

	if err := tr.Transform(context.Background(), doc, LocaleDescriptor{Code: "fr", CreateNew: true}, "."); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	if href, _ := doc.Find("a").Attr("href"); href != "https://example.com/docs" {
		t.Errorf("anchor href = %q, want unchanged", href)
	}
}

func TestTransformer_SkipRules(t *testing.T) {
	tr := NewTransformer(testTransformConfig(), NewTranslator(newMockProvider()))
	doc := parseTestDoc(t, testPage)

	if err := tr.Transform(context.Background(), doc, LocaleDescriptor{Code: "es", CreateNew: true}, "."); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	// Brand-token heading untouched
	if h1 := doc.Find("h1").Text(); h1 != "Evaluating.Tools picks for you" {
		t.Errorf("brand heading changed: %q", h1)
	}

	// Copyright line untouched
	found := false
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if strings.HasPrefix(strings.TrimSpace(s.Text()), "©") {
			found = true
			if strings.TrimSpace(s.Text()) != "© 2026 Evaluating.Tools" {
				t.Errorf("copyright line changed: %q", s.Text())
			}
		}
	})
	if !found {
		t.Error("copyright line missing from output")
	}
}

func TestTransformer_PerNodePreservesNestedMarkup(t *testing.T) {
	tr := NewTransformer(testTransformConfig(), NewTranslator(newMockProvider()))
	doc := parseTestDoc(t, testPage)

	if err := tr.Transform(context.Background(), doc, LocaleDescriptor{Code: "es", CreateNew: true}, "."); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	// <p>Hello <a>About</a></p>: the p keeps its anchor child, the
	// direct text node is translated on its own
	para := doc.Find("p").First()
	if para.Find("a").Length() != 1 {
		t.Fatal("nested anchor lost during translation")
	}
	if !strings.Contains(para.Text(), "Hola") {
		t.Errorf("paragraph text node not translated: %q", para.Text())
	}

	// A layout div with no direct text is untouched; its span child is
	// translated on its own pass
	if span := doc.Find("div.layout span").Text(); span != "Mundo" {
		t.Errorf("nested span = %q, want %q", span, "Mundo")
	}
}

func TestTransformer_WholeTextMode(t *testing.T) {
	cfg := testTransformConfig()
	cfg.TextMode = TextWhole
	cfg.Selectors = []string{"h2"}

	page := `<html><head></head><body><h2>Hello World</h2></body></html>`
	tr := NewTransformer(cfg, NewTranslator(newMockProvider()))
	doc := parseTestDoc(t, page)

	if err := tr.Transform(context.Background(), doc, LocaleDescriptor{Code: "es", CreateNew: true}, "."); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	if text := doc.Find("h2").Text(); text != "Hola Mundo" {
		t.Errorf("h2 text = %q, want %q", text, "Hola Mundo")
	}
}

func TestTransformer_FailingProviderStillProducesStructure(t *testing.T) {
	provider := newMockProvider()
	provider.failAll = true
	cfg := testTransformConfig()
	tr := NewTransformer(cfg, NewTranslator(provider))
	doc := parseTestDoc(t, testPage)

	if err := tr.Transform(context.Background(), doc, LocaleDescriptor{Code: "fr", CreateNew: true}, "."); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	// Structure complete
	if lang, _ := doc.Find("html").Attr("lang"); lang != "fr" {
		t.Errorf("html lang = %q, want %q", lang, "fr")
	}
	if doc.Find(`link[rel="canonical"]`).Length() != 1 {
		t.Error("canonical link missing")
	}
	if total := doc.Find(`link[rel="alternate"][hreflang]`).Length(); total != len(cfg.Locales) {
		t.Errorf("found %d alternate links, want %d", total, len(cfg.Locales))
	}
	if href, _ := doc.Find("a").Attr("href"); href != "/fr/about" {
		t.Errorf("anchor href = %q, want rewritten", href)
	}

	// Text left equal to the source
	if title := doc.Find("title").Text(); title != "Welcome" {
		t.Errorf("title = %q, want untouched %q", title, "Welcome")
	}
	if text := doc.Find("div.cta").Text(); text != "Hello World" {
		t.Errorf("div text = %q, want untouched", text)
	}
}
