package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spigell/resume-parser/internal/ai"
	"github.com/spigell/resume-parser/internal/ai/gemini"
	"github.com/spigell/resume-parser/internal/logger"
	"github.com/spigell/resume-parser/internal/ocrservice"
	"github.com/spigell/resume-parser/internal/secrets"

	"go.uber.org/zap"
)

// newRecognizer builds the configured OCR engine. It returns nil when OCR is
// disabled.
func newRecognizer(ctx context.Context, cfg *OCRConfig, log *zap.Logger) (ai.Recognizer, error) {
	if cfg == nil {
		return nil, nil
	}

	provider, err := ai.ParseProvider(cfg.Provider)
	if err != nil {
		return nil, err
	}

	switch provider {
	case ai.ProviderGemini:
		return newGeminiRecognizer(ctx, cfg.Gemini, log)
	case ai.ProviderHTTP:
		return newHTTPRecognizer(cfg.HTTP, log)
	default:
		log.Debug("ocr disabled")
		return nil, nil
	}
}

func newGeminiRecognizer(ctx context.Context, cfg *GeminiConfig, log *zap.Logger) (ai.Recognizer, error) {
	if cfg == nil {
		cfg = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.APIKey,
		File:  cfg.APIKeyFile,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ocr.gemini.api-key-file, GEMINI_API_KEY_FILE or GEMINI_API_KEY)", err)
	}

	genLogger := logger.WithEngine(log, ai.ProviderGemini, cfg.Model).With(
		zap.Int("ai_retry_attempts", cfg.MaxRetries),
	)

	generator, err := gemini.NewGenerator(ctx, gemini.Config{
		APIKey:     apiKey,
		Model:      cfg.Model,
		MaxRetries: cfg.MaxRetries,
	}, genLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewRecognizer(generator, log, cfg.MaxLogLength), nil
}

func newHTTPRecognizer(cfg *HTTPConfig, log *zap.Logger) (ai.Recognizer, error) {
	if cfg == nil || strings.TrimSpace(cfg.URL) == "" {
		return nil, fmt.Errorf("ocr.http.url is required for the http provider")
	}

	// A token is optional; only an unusable token file is fatal.
	token, err := secrets.Load(secrets.Source{
		Name:  "ocr service token",
		Value: cfg.Token,
		File:  cfg.TokenFile,
		Env:   "OCR_TOKEN",
	})
	if err != nil && strings.TrimSpace(cfg.TokenFile) != "" {
		return nil, fmt.Errorf("%w (set ocr.http.token-file or OCR_TOKEN_FILE)", err)
	}

	client, err := ocrservice.New(ocrservice.Config{
		URL:     cfg.URL,
		Token:   token,
		Timeout: cfg.Timeout,
	}, log)
	if err != nil {
		return nil, err
	}
	return client, nil
}
