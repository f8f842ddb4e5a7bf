// Package ocrservice is an OCR engine backed by a remote HTTP service that
// accepts page images as multipart uploads.
package ocrservice

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/resume-parser/internal/ai"
	"github.com/spigell/resume-parser/internal/logger"
)

const (
	userAgent      = "spigell/resume-parser"
	defaultTimeout = 60 * time.Second
)

// Config configures a Client.
type Config struct {
	URL     string        `mapstructure:"url"`
	Token   string        `mapstructure:"-"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Client posts page images to the OCR service.
type Client struct {
	url        string
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
}

var _ ai.Recognizer = (*Client)(nil)

func New(cfg Config, log *zap.Logger) (*Client, error) {
	url := strings.TrimSpace(cfg.URL)
	if url == "" {
		return nil, errors.New("ocr service url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		url:   url,
		token: strings.TrimSpace(cfg.Token),
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		logger:    logger.WithEngine(log, ai.ProviderHTTP, ""),
		UserAgent: userAgent,
	}, nil
}

// Recognize uploads one page image and returns the recognized text.
func (c *Client) Recognize(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", errors.New("page image is empty")
	}

	var res recognizeResponse
	if err := c.postImage(ctx, image, &res); err != nil {
		return "", err
	}

	return strings.TrimSpace(res.Text), nil
}
