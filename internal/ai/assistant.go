// Package ai holds the contracts shared by OCR engine providers.
package ai

import (
	"context"
	"fmt"
	"strings"
)

// Provider names accepted in configuration.
const (
	ProviderGemini = "gemini"
	ProviderHTTP   = "http"
	ProviderNone   = "none"
)

// Recognizer transcribes a rasterized page image into text.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// ParseProvider normalizes a configured provider name. An empty name means no OCR.
func ParseProvider(name string) (string, error) {
	switch p := strings.ToLower(strings.TrimSpace(name)); p {
	case "":
		return ProviderNone, nil
	case ProviderGemini, ProviderHTTP, ProviderNone:
		return p, nil
	default:
		return "", fmt.Errorf("unknown ocr provider %q", name)
	}
}
