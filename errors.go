package localizer

import "fmt"

// ProviderError indicates a translation provider failure (API error,
// rate limit, malformed response, etc.).
type ProviderError struct {
	Message   string
	Cause     error
	Retryable bool // Whether the operation can be retried
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("provider error: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// CacheError indicates a cache operation failure.
type CacheError struct {
	Message string
	Cause   error
}

func (e *CacheError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cache error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("cache error: %s", e.Message)
}

func (e *CacheError) Unwrap() error {
	return e.Cause
}

// TransformError indicates a failure while processing one (document,
// locale) pair. The walker logs it and continues with the next pair.
type TransformError struct {
	Path    string // Source document path, relative to the input root
	Locale  string // Target locale code
	Message string
	Cause   error
}

func (e *TransformError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("transform error (%s -> %s): %s: %v", e.Path, e.Locale, e.Message, e.Cause)
	}
	return fmt.Sprintf("transform error (%s -> %s): %s", e.Path, e.Locale, e.Message)
}

func (e *TransformError) Unwrap() error {
	return e.Cause
}

// InputRootError indicates the configured input directory is missing or
// unreadable. This is the only error that aborts a run.
type InputRootError struct {
	Path  string
	Cause error
}

func (e *InputRootError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("input root %q: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("input root %q is not a directory", e.Path)
}

func (e *InputRootError) Unwrap() error {
	return e.Cause
}
