// Package provider defines the translation provider interface and implementations.
package provider

import "github.com/developers-fun/localizer"

// Provider is the interface for translation backends.
// This is an alias to the main package interface for convenience.
type Provider = localizer.Provider

// TranslateRequest is an alias to the main package type.
type TranslateRequest = localizer.TranslateRequest
