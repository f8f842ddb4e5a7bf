package gemini

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/resume-parser/internal/ai"
	"github.com/spigell/resume-parser/internal/logger"
	"github.com/spigell/resume-parser/internal/utils"
)

// noText is the answer the model gives for blank pages.
const noText = "NO_TEXT"

const defaultMaxLogLength = 200

//go:embed prompt.md
var systemPrompt string

type imageGenerator interface {
	GenerateFromImage(ctx context.Context, system, prompt string, image []byte, mimeType string) (string, error)
	Model() string
}

// Recognizer transcribes page images with a Gemini vision model.
type Recognizer struct {
	generator imageGenerator
	logger    *zap.Logger
	maxLogLen int
}

var _ ai.Recognizer = (*Recognizer)(nil)

func NewRecognizer(generator imageGenerator, log *zap.Logger, maxLogLength int) *Recognizer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Recognizer{
		generator: generator,
		logger:    logger.WithEngine(log, ai.ProviderGemini, generator.Model()),
		maxLogLen: maxLogLength,
	}
}

// Recognize returns the text found on a single page image.
func (r *Recognizer) Recognize(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", errors.New("page image is empty")
	}

	mimeType := http.DetectContentType(image)
	r.logger.Debug("gemini ocr request",
		zap.Int("image_bytes", len(image)),
		zap.String("mime_type", mimeType),
	)

	raw, err := r.generator.GenerateFromImage(ctx, systemPrompt, "Transcribe this page.", image, mimeType)
	if err != nil {
		return "", err
	}

	r.logger.Debug("gemini ocr response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, r.maxLogLen)),
	)

	return cleanTranscript(raw), nil
}

// cleanTranscript strips Markdown fences and the blank page marker.
func cleanTranscript(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		if idx := strings.IndexByte(raw, '\n'); idx != -1 {
			raw = raw[idx+1:]
		} else {
			raw = strings.TrimLeft(raw, "`")
		}
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.TrimSpace(raw)
	if raw == noText {
		return ""
	}
	return raw
}
