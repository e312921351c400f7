package localizer

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashText computes the SHA-256 hash of the trimmed text.
func HashText(text string) string {
	trimmed := strings.TrimSpace(text)
	hash := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(hash[:])
}

// CacheKey generates a cache key from a text hash and locale code.
// Translations are content-addressed: the same source text always maps
// to the same key for a given locale.
func CacheKey(hash, locale string) string {
	return hash + ":" + locale
}
