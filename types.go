// Package localizer generates per-locale translated copies of an HTML site tree.
package localizer

// TextMode selects how translated text is written back into an element.
type TextMode int

const (
	// TextPerNode replaces each direct text-node child of an element
	// individually, preserving nested markup and surrounding whitespace.
	TextPerNode TextMode = iota

	// TextWhole replaces the element's entire text content with one
	// translated string, flattening any nested markup.
	TextWhole
)

// copyrightSymbol marks text that must never be translated.
const copyrightSymbol = "©"

// DefaultSelectors are the element tags whose visible text is translated.
var DefaultSelectors = []string{
	"h1", "h2", "h3", "h4", "h5", "h6",
	"span", "a", "button", "p", "label", "option", "div",
}

// DefaultMetaNames are the meta[name] tags whose content is translated.
var DefaultMetaNames = []string{"description", "title"}

// DefaultMetaProperties are the meta[property] tags whose content is
// translated. og:url is handled separately (rewritten, never translated).
var DefaultMetaProperties = []string{"og:title", "og:description"}

// TransformConfig controls the per-document transformation policy.
type TransformConfig struct {
	// Domain is the site host used to build canonical and alternate URLs.
	Domain string

	// BrandToken is a literal token that must survive translation
	// verbatim (matched case-insensitively).
	BrandToken string

	// SourceLang is the language code of the canonical tree (default "en").
	// Internal hrefs containing "/{SourceLang}/" are rewritten per locale.
	SourceLang string

	// Locales is the ordered locale registry. Every entry receives an
	// alternate link; only entries with CreateNew emit a document.
	Locales []LocaleDescriptor

	// Selectors are the element tags to translate (default DefaultSelectors).
	Selectors []string

	// MetaNames and MetaProperties are the meta tags to translate.
	MetaNames      []string
	MetaProperties []string

	// TextMode selects whole-element vs per-text-node replacement.
	TextMode TextMode
}

// DefaultTransformConfig returns a config for the given domain with the
// built-in locale registry and default selector and meta sets.
func DefaultTransformConfig(domain string) TransformConfig {
	return TransformConfig{
		Domain:         domain,
		SourceLang:     "en",
		Locales:        DefaultLocales(),
		Selectors:      DefaultSelectors,
		MetaNames:      DefaultMetaNames,
		MetaProperties: DefaultMetaProperties,
		TextMode:       TextPerNode,
	}
}

// WalkStats summarizes one run over a source tree.
type WalkStats struct {
	FilesSeen        int // .html files enumerated under the input root
	DocumentsWritten int // (file, locale) outputs successfully written
	LocalesSkipped   int // (file, locale) pairs skipped after an error
}
