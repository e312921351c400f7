package localizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"
)

// Transformer localizes one parsed document at a time for a target
// locale: lang attribute, canonical and alternate links, meta tags,
// internal link hrefs, and visible text.
//
// The document is mutated in place; callers hand each locale a freshly
// parsed copy so locales cannot interfere with one another.
type Transformer struct {
	cfg        TransformConfig
	translator *Translator
	logger     zerolog.Logger
}

// TransformerOption is a functional option for configuring the Transformer.
type TransformerOption func(*Transformer)

// WithTransformerLogger sets the logger used by the Transformer.
func WithTransformerLogger(logger zerolog.Logger) TransformerOption {
	return func(tr *Transformer) {
		tr.logger = logger
	}
}

// NewTransformer creates a Transformer. Zero-valued config fields fall
// back to the package defaults.
func NewTransformer(cfg TransformConfig, translator *Translator, opts ...TransformerOption) *Transformer {
	if cfg.SourceLang == "" {
		cfg.SourceLang = "en"
	}
	if len(cfg.Locales) == 0 {
		cfg.Locales = DefaultLocales()
	}
	if len(cfg.Selectors) == 0 {
		cfg.Selectors = DefaultSelectors
	}
	if cfg.MetaNames == nil {
		cfg.MetaNames = DefaultMetaNames
	}
	if cfg.MetaProperties == nil {
		cfg.MetaProperties = DefaultMetaProperties
	}
	if cfg.BrandToken == "" && translator != nil {
		cfg.BrandToken = translator.BrandToken()
	}

	tr := &Transformer{
		cfg:        cfg,
		translator: translator,
		logger:     zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(tr)
	}

	return tr
}

// Config returns the transformer's effective configuration.
func (tr *Transformer) Config() TransformConfig {
	return tr.cfg
}

// Transform localizes doc for the given locale. relPath is the
// document's path relative to the input root ("." for the root index
// document, the file-bearing path for non-index documents); it drives
// canonical and alternate URL construction.
func (tr *Transformer) Transform(ctx context.Context, doc *goquery.Document, locale LocaleDescriptor, relPath string) error {
	if doc == nil {
		return &TransformError{Path: relPath, Locale: locale.Code, Message: "nil document"}
	}

	tr.setLang(doc, locale.Code)
	tr.setCanonical(doc, locale.Code, relPath)
	tr.ensureAlternates(doc, relPath)
	tr.translateMeta(ctx, doc, locale.Code, relPath)
	tr.translateElements(ctx, doc, locale.Code)

	return nil
}

// setLang sets the html lang attribute to the locale code.
func (tr *Transformer) setLang(doc *goquery.Document, locale string) {
	htmlTag := doc.Find("html")
	if htmlTag.Length() > 0 {
		htmlTag.SetAttr("lang", locale)
	}
}

// setCanonical ensures exactly one canonical link pointing at the
// locale's URL for this document.
func (tr *Transformer) setCanonical(doc *goquery.Document, locale, relPath string) {
	href := CanonicalURL(tr.cfg.Domain, locale, relPath)

	canonical := doc.Find(`link[rel="canonical"]`)
	switch {
	case canonical.Length() == 0:
		tr.appendToHead(doc, fmt.Sprintf(`<link rel="canonical" href="%s"/>`, href))
	default:
		if canonical.Length() > 1 {
			canonical.Slice(1, canonical.Length()).Remove()
		}
		canonical.First().SetAttr("href", href)
	}
}

// ensureAlternates emits one alternate link per registry locale,
// including locales that never get a generated document. Existing
// entries are kept, so re-running the transform adds nothing.
func (tr *Transformer) ensureAlternates(doc *goquery.Document, relPath string) {
	existing := make(map[string]bool)
	doc.Find(`link[rel="alternate"][hreflang]`).Each(func(_ int, s *goquery.Selection) {
		if lang, ok := s.Attr("hreflang"); ok {
			existing[strings.ToLower(lang)] = true
		}
	})

	for _, l := range tr.cfg.Locales {
		if existing[strings.ToLower(l.Code)] {
			continue
		}
		href := CanonicalURL(tr.cfg.Domain, l.Code, relPath)
		tr.appendToHead(doc, fmt.Sprintf(`<link rel="alternate" hreflang="%s" href="%s"/>`, l.Code, href))
		existing[strings.ToLower(l.Code)] = true
	}
}

// translateMeta localizes the title element and the configured meta
// tags. og:url is rewritten to the locale canonical URL, not translated.
func (tr *Transformer) translateMeta(ctx context.Context, doc *goquery.Document, locale, relPath string) {
	title := doc.Find("title").First()
	if text := strings.TrimSpace(title.Text()); text != "" {
		title.SetText(tr.translator.Translate(ctx, text, locale))
	}

	for _, name := range tr.cfg.MetaNames {
		tr.translateMetaContent(ctx, doc.Find(fmt.Sprintf(`meta[name="%s"]`, name)), locale)
	}
	for _, prop := range tr.cfg.MetaProperties {
		tr.translateMetaContent(ctx, doc.Find(fmt.Sprintf(`meta[property="%s"]`, prop)), locale)
	}

	ogURL := doc.Find(`meta[property="og:url"]`)
	if ogURL.Length() > 0 {
		ogURL.SetAttr("content", CanonicalURL(tr.cfg.Domain, locale, relPath))
	}
}

func (tr *Transformer) translateMetaContent(ctx context.Context, sel *goquery.Selection, locale string) {
	sel.Each(func(_ int, s *goquery.Selection) {
		content, ok := s.Attr("content")
		if !ok || strings.TrimSpace(content) == "" {
			return
		}
		s.SetAttr("content", tr.translator.Translate(ctx, strings.TrimSpace(content), locale))
	})
}

// translateElements applies the element and anchor text policies to the
// configured selector set, in document order.
func (tr *Transformer) translateElements(ctx context.Context, doc *goquery.Document, locale string) {
	selector := strings.Join(tr.cfg.Selectors, ", ")
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) == "a" {
			tr.translateAnchor(ctx, s, locale)
			return
		}
		tr.translateElement(ctx, s, locale)
	})
}

// translateAnchor rewrites a source-language href segment to the target
// locale, then translates the anchor's visible text.
func (tr *Transformer) translateAnchor(ctx context.Context, s *goquery.Selection, locale string) {
	sourceSeg := "/" + tr.cfg.SourceLang + "/"
	if href, ok := s.Attr("href"); ok && strings.Contains(href, sourceSeg) {
		s.SetAttr("href", strings.Replace(href, sourceSeg, "/"+locale+"/", 1))
	}

	tr.translateElement(ctx, s, locale)
}

// translateElement applies the element text policy: skip empty text,
// copyright lines, and brand-token text; otherwise translate according
// to the configured text mode.
func (tr *Transformer) translateElement(ctx context.Context, s *goquery.Selection, locale string) {
	text := strings.TrimSpace(s.Text())
	if text == "" || strings.HasPrefix(text, copyrightSymbol) {
		return
	}
	if tr.cfg.BrandToken != "" && containsFold(text, tr.cfg.BrandToken) {
		return
	}

	if tr.cfg.TextMode == TextWhole {
		s.SetText(tr.translator.Translate(ctx, text, locale))
		return
	}

	tr.translateTextNodes(ctx, s, locale)
}

// translateTextNodes replaces each direct text-node child individually,
// leaving nested elements in place. Nested elements get their own turn
// through the selector set.
func (tr *Transformer) translateTextNodes(ctx context.Context, s *goquery.Selection, locale string) {
	for _, node := range s.Nodes {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.TextNode {
				continue
			}
			trimmed := strings.TrimSpace(c.Data)
			if trimmed == "" {
				continue
			}
			c.Data = preserveWhitespace(c.Data, tr.translator.Translate(ctx, trimmed, locale))
		}
	}
}

// appendToHead appends markup to the document head, falling back to the
// root selection for fragments without one.
func (tr *Transformer) appendToHead(doc *goquery.Document, markup string) {
	head := doc.Find("head")
	if head.Length() == 0 {
		tr.logger.Debug().Msg("document has no head element")
		return
	}
	head.AppendHtml(markup)
}
