// Package language annotates parsed résumés with the language of their text.
package language

import (
	"errors"
	"strings"

	"github.com/abadojack/whatlanggo"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

const (
	// Default is reported whenever detection fails.
	Default = "en"
	// sampleRunes bounds the text handed to the detector.
	sampleRunes = 4000
)

// ErrEmptyText is returned when there is nothing to detect.
var ErrEmptyText = errors.New("no text to detect language from")

// Detector returns the ISO 639-1 code of the language text is written in.
type Detector interface {
	Detect(text string) (string, error)
}

// Whatlang detects languages with github.com/abadojack/whatlanggo.
// Every guess is accepted; an empty sample is the only failure.
type Whatlang struct{}

func (Whatlang) Detect(text string) (string, error) {
	text = sample(text)
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}

	code := whatlanggo.DetectLang(text).Iso6391()
	if code == "" {
		return "", errors.New("detected language has no ISO 639-1 code")
	}
	return code, nil
}

// Name returns the English display name of an ISO 639-1 code.
func Name(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		tag = language.English
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return display.English.Tags().Name(language.English)
}

func sample(text string) string {
	if len(text) <= sampleRunes {
		return text
	}
	runes := []rune(text)
	if len(runes) <= sampleRunes {
		return text
	}
	return string(runes[:sampleRunes])
}
