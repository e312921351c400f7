package localizer

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

// LocaleDescriptor describes one target locale in the registry.
type LocaleDescriptor struct {
	// Code is the language tag used in lang attributes, URLs, and
	// output directory names (e.g., "fr", "pt-br").
	Code string `yaml:"code"`

	// CreateNew gates whether a translated document is generated for
	// this locale. Locales with CreateNew false still receive alternate
	// link entries in every document.
	CreateNew bool `yaml:"createNew"`
}

// DefaultLocales returns the built-in locale registry. Order matters:
// alternate links are emitted in registry order.
func DefaultLocales() []LocaleDescriptor {
	return []LocaleDescriptor{
		{Code: "es", CreateNew: true},
		{Code: "fr", CreateNew: true},
		{Code: "de", CreateNew: true},
		{Code: "it", CreateNew: true},
		{Code: "pt", CreateNew: true},
		{Code: "nl", CreateNew: true},
		{Code: "pl", CreateNew: true},
		{Code: "ru", CreateNew: true},
		{Code: "ja", CreateNew: true},
		{Code: "ko", CreateNew: true},
		{Code: "zh", CreateNew: true},
		{Code: "ar", CreateNew: false},
		{Code: "hi", CreateNew: false},
		{Code: "tr", CreateNew: false},
	}
}

// LanguageNames maps locale codes to human-readable names for AI prompts.
var LanguageNames = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"nl": "Dutch",
	"pl": "Polish",
	"ru": "Russian",
	"ja": "Japanese",
	"ko": "Korean",
	"zh": "Chinese (Simplified)",
	"ar": "Arabic",
	"hi": "Hindi",
	"tr": "Turkish",
	"sv": "Swedish",
	"da": "Danish",
	"fi": "Finnish",
	"cs": "Czech",
	"uk": "Ukrainian",
	"vi": "Vietnamese",
	"id": "Indonesian",
	"th": "Thai",
	"el": "Greek",
	"he": "Hebrew",
}

// LanguageName returns the display name for a locale code, falling back
// to the code itself for unknown locales. Region subtags are ignored for
// lookup ("pt-br" resolves via "pt" when no exact entry exists).
func LanguageName(code string) string {
	if name, ok := LanguageNames[strings.ToLower(code)]; ok {
		return name
	}

	base := strings.ToLower(code)
	if i := strings.IndexAny(base, "-_"); i > 0 {
		base = base[:i]
	}
	if name, ok := LanguageNames[base]; ok {
		return name
	}

	return code
}

// localesFile is the YAML shape of an external locale registry.
type localesFile struct {
	Locales []LocaleDescriptor `yaml:"locales"`
}

// LoadLocales reads a locale registry from a YAML file:
//
//	locales:
//	  - code: fr
//	    createNew: true
//	  - code: ar
//	    createNew: false
func LoadLocales(path string) ([]LocaleDescriptor, error) {
	data, err := os.ReadFile(path) // #nosec G304 - registry path is operator-provided
	if err != nil {
		return nil, fmt.Errorf("reading locales file: %w", err)
	}

	var f localesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing locales file: %w", err)
	}

	if err := ValidateLocales(f.Locales); err != nil {
		return nil, err
	}

	return f.Locales, nil
}

// ValidateLocales rejects empty registries, empty codes, and duplicates.
func ValidateLocales(locales []LocaleDescriptor) error {
	if len(locales) == 0 {
		return fmt.Errorf("locale registry is empty")
	}

	seen := make(map[string]bool, len(locales))
	for _, l := range locales {
		code := strings.TrimSpace(l.Code)
		if code == "" {
			return fmt.Errorf("locale registry contains an empty code")
		}
		key := strings.ToLower(code)
		if seen[key] {
			return fmt.Errorf("duplicate locale code %q", l.Code)
		}
		seen[key] = true
	}

	return nil
}
