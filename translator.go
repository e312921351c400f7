package localizer

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// Provider is the interface for translation backends.
type Provider interface {
	Translate(ctx context.Context, req TranslateRequest) (string, error)
}

// TranslateRequest contains the parameters for translating one fragment.
type TranslateRequest struct {
	Text       string // Trimmed source fragment
	TargetLang string // Target locale code
	SourceLang string // Source language code
	BrandToken string // Term the provider must keep verbatim, if any
}

// TranslationCache is the interface for translation caching.
type TranslationCache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// Translator resolves text fragments to translations through a cache
// and a provider. Provider failures are logged and surface as the
// original untranslated text, never as an error to the caller.
type Translator struct {
	provider   Provider
	cache      TranslationCache
	brandToken string
	sourceLang string
	logger     zerolog.Logger
}

// TranslatorOption is a functional option for configuring the Translator.
type TranslatorOption func(*Translator)

// WithCache sets the translation cache.
func WithCache(cache TranslationCache) TranslatorOption {
	return func(t *Translator) {
		t.cache = cache
	}
}

// WithBrandToken sets the brand token that must survive translation
// verbatim. Matching is case-insensitive.
func WithBrandToken(token string) TranslatorOption {
	return func(t *Translator) {
		t.brandToken = token
	}
}

// WithSourceLang sets the source language (default "en").
func WithSourceLang(lang string) TranslatorOption {
	return func(t *Translator) {
		t.sourceLang = lang
	}
}

// WithLogger sets the logger used for provider failures.
func WithLogger(logger zerolog.Logger) TranslatorOption {
	return func(t *Translator) {
		t.logger = logger
	}
}

// NewTranslator creates a new Translator backed by the given provider.
func NewTranslator(provider Provider, opts ...TranslatorOption) *Translator {
	t := &Translator{
		provider:   provider,
		sourceLang: "en",
		logger:     zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Translate returns the translation of text for the given locale.
//
// The text is trimmed before cache lookup and before any provider call.
// On a cache hit the provider is not consulted. If the text contains the
// brand token, the surrounding segments are translated individually and
// the token occurrences are kept verbatim at their original positions.
// A provider failure yields the original text and is never cached, so
// the next occurrence of the same text retries.
func (t *Translator) Translate(ctx context.Context, text, locale string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return trimmed
	}

	key := CacheKey(HashText(trimmed), locale)
	if t.cache != nil {
		if cached, ok := t.cache.Get(key); ok {
			return cached
		}
	}

	result, complete := t.resolve(ctx, trimmed, locale)

	// Failed attempts are not cached so they retry on the next occurrence.
	if complete && t.cache != nil {
		if err := t.cache.Set(key, result); err != nil {
			t.logger.Warn().Err(err).Str("locale", locale).Msg("caching translation failed")
		}
	}

	return result
}

// resolve translates trimmed text, splitting around brand token
// occurrences. The second return reports whether every provider call
// needed for the result succeeded.
func (t *Translator) resolve(ctx context.Context, trimmed, locale string) (string, bool) {
	if t.brandToken == "" || !containsFold(trimmed, t.brandToken) {
		out, err := t.callProvider(ctx, trimmed, locale)
		if err != nil {
			t.logProviderFailure(err, trimmed, locale)
			return trimmed, false
		}
		return out, true
	}

	segments, tokens := splitFold(trimmed, t.brandToken)

	var b strings.Builder
	complete := true
	for i, seg := range segments {
		// The trailing segment is carried over untranslated; only text
		// leading up to a token occurrence goes to the provider.
		if i == len(segments)-1 {
			b.WriteString(seg)
			break
		}

		b.WriteString(t.resolveSegment(ctx, seg, locale, &complete))
		b.WriteString(tokens[i])
	}

	return b.String(), complete
}

// resolveSegment translates one inter-token segment, preserving its
// leading and trailing whitespace.
func (t *Translator) resolveSegment(ctx context.Context, seg, locale string, complete *bool) string {
	inner := strings.TrimSpace(seg)
	if inner == "" {
		return seg
	}

	out, err := t.callProvider(ctx, inner, locale)
	if err != nil {
		t.logProviderFailure(err, inner, locale)
		*complete = false
		return seg
	}

	return preserveWhitespace(seg, out)
}

func (t *Translator) callProvider(ctx context.Context, text, locale string) (string, error) {
	if t.provider == nil {
		return "", &ProviderError{Message: "no provider configured"}
	}

	return t.provider.Translate(ctx, TranslateRequest{
		Text:       text,
		TargetLang: locale,
		SourceLang: t.sourceLang,
		BrandToken: t.brandToken,
	})
}

func (t *Translator) logProviderFailure(err error, text, locale string) {
	t.logger.Error().Err(err).Str("locale", locale).Str("text", truncateForLog(text)).
		Msg("translation failed, keeping original text")
}

// truncateForLog shortens text for log output, backing up to a rune
// boundary so the result stays valid UTF-8.
func truncateForLog(text string) string {
	if len(text) <= 60 {
		return text
	}
	cut := 57
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}

// BrandToken returns the configured brand token.
func (t *Translator) BrandToken() string {
	return t.brandToken
}

// SourceLang returns the source language code.
func (t *Translator) SourceLang() string {
	return t.sourceLang
}

// containsFold reports whether s contains substr, ignoring ASCII and
// Unicode simple case differences.
func containsFold(s, substr string) bool {
	if substr == "" {
		return false
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// splitFold splits s around case-insensitive occurrences of token. It
// returns the segments between occurrences and the occurrences as they
// appear in s, so a rejoin reproduces the original byte positions.
// len(segments) == len(tokens)+1 always holds.
//
// Matches are located in a rune-by-rune lowered copy of s, with every
// lowered byte mapped back to its originating offset. Lowering can
// change a rune's byte length, so lowered offsets cannot index s
// directly.
func splitFold(s, token string) (segments, tokens []string) {
	lower, offsets := foldOffsets(s)
	lowerToken := strings.ToLower(token)

	start := 0
	for {
		i := strings.Index(lower[start:], lowerToken)
		if i < 0 {
			break
		}
		i += start
		end := i + len(lowerToken)
		segments = append(segments, s[offsets[start]:offsets[i]])
		tokens = append(tokens, s[offsets[i]:offsets[end]])
		start = end
	}
	segments = append(segments, s[offsets[start]:])

	return segments, tokens
}

// foldOffsets lowers s one rune at a time and records, for each byte
// offset in the lowered string (plus the end), the byte offset in s it
// came from.
func foldOffsets(s string) (string, []int) {
	var b strings.Builder
	b.Grow(len(s))
	offsets := make([]int, 0, len(s)+1)

	for i, r := range s {
		low := unicode.ToLower(r)
		for n := utf8.RuneLen(low); n > 0; n-- {
			offsets = append(offsets, i)
		}
		b.WriteRune(low)
	}
	offsets = append(offsets, len(s))

	return b.String(), offsets
}

// preserveWhitespace keeps the original leading/trailing whitespace
// around a replacement string.
func preserveWhitespace(original, replacement string) string {
	leadingLen := len(original) - len(strings.TrimLeft(original, " \t\n\r"))
	leading := original[:leadingLen]

	trailingLen := len(original) - len(strings.TrimRight(original, " \t\n\r"))
	trailing := ""
	if trailingLen > 0 {
		trailing = original[len(original)-trailingLen:]
	}

	return leading + replacement + trailing
}
