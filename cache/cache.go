// Package cache provides translation caching implementations.
//
// Caches are first-write-wins: once a key holds a translation it is
// never overwritten within a run, so repeated occurrences of the same
// source text stay consistent even if the provider is nondeterministic.
package cache

// TranslationCache is the interface for translation caching.
type TranslationCache interface {
	// Get retrieves a cached translation. Returns empty string and false if not found or expired.
	Get(key string) (string, bool)

	// Set stores a translation in the cache. Existing entries are kept.
	Set(key string, value string) error
}
