package provider

import (
	"context"
	"fmt"

	"github.com/developers-fun/localizer"
)

// MockProvider is a mock translation provider for testing.
type MockProvider struct {
	Translations map[string]string // Map of source text to translation
	Fail         bool              // When set, every call fails
	CallCount    int               // Number of times Translate was called
	LastRequest  *TranslateRequest // Last request received
}

// NewMockProvider creates a new mock provider with default translations.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Translations: map[string]string{
			"Hello":                "Hola",
			"World":                "Mundo",
			"Hello World":          "Hola Mundo",
			"Welcome":              "Bienvenue",
			"Welcome to our site.": "Bienvenido a nuestro sitio.",
			"About":                "À propos",
		},
	}
}

// Translate returns mock translations.
func (m *MockProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	m.CallCount++
	m.LastRequest = &req

	if m.Fail {
		return "", &localizer.ProviderError{Message: "mock provider failure"}
	}

	if translation, ok := m.Translations[req.Text]; ok {
		return translation, nil
	}

	// Return bracketed text for unknown translations
	return fmt.Sprintf("[%s]", req.Text), nil
}

// Reset resets the call count and last request.
func (m *MockProvider) Reset() {
	m.CallCount = 0
	m.LastRequest = nil
}

// Verify MockProvider implements Provider
var _ Provider = (*MockProvider)(nil)
