package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/resume-parser/internal/ocrservice"
	"github.com/spigell/resume-parser/internal/output"
	"github.com/spigell/resume-parser/internal/resume"
)

func TestDecodeConfigDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	config, err := decodeConfig(v)
	require.NoError(t, err)

	assert.Equal(t, 20.0, config.Layout.DensityThreshold)
	assert.Equal(t, 3, config.Layout.DensityPages)
	assert.Equal(t, 0.3, config.Layout.TwoColumnFraction)
	assert.Equal(t, 5, config.Layout.MinTextLines)
	assert.Equal(t, 200.0, config.Layout.OCRDPI)
	assert.Equal(t, "json", config.Output)
	assert.Equal(t, 4, config.Concurrency)
	require.NotNil(t, config.OCR)
	assert.Equal(t, "none", config.OCR.Provider)
	assert.Equal(t, 60*time.Second, config.OCR.HTTP.Timeout)
	assert.Equal(t, 2, config.OCR.Gemini.MaxRetries)
}

func TestReadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume-parser.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
layout:
  two-column-fraction: 0.4
ocr:
  provider: http
  http:
    url: http://ocr.local/recognize
    timeout: 5s
output: yaml
fields: [skills, confidence]
`), 0o600))

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	require.NoError(t, readConfig(v, true))

	config, err := decodeConfig(v)
	require.NoError(t, err)

	assert.Equal(t, 0.4, config.Layout.TwoColumnFraction)
	assert.Equal(t, 20.0, config.Layout.DensityThreshold)
	assert.Equal(t, "http", config.OCR.Provider)
	assert.Equal(t, "http://ocr.local/recognize", config.OCR.HTTP.URL)
	assert.Equal(t, 5*time.Second, config.OCR.HTTP.Timeout)
	assert.Equal(t, "yaml", config.Output)
	assert.Equal(t, []string{"skills", "confidence"}, config.Fields)
}

func TestReadConfigMissing(t *testing.T) {
	v := viper.New()
	v.AddConfigPath(t.TempDir())
	v.SetConfigName(app)
	v.SetConfigType("yaml")
	assert.NoError(t, readConfig(v, false))

	explicit := viper.New()
	explicit.SetConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, readConfig(explicit, true))
}

func TestNewRecognizer(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	ctx := context.Background()
	logger := zap.NewNop()

	r, err := newRecognizer(ctx, nil, logger)
	require.NoError(t, err)
	assert.Nil(t, r)

	r, err = newRecognizer(ctx, &OCRConfig{Provider: "none"}, logger)
	require.NoError(t, err)
	assert.Nil(t, r)

	_, err = newRecognizer(ctx, &OCRConfig{Provider: "tesseract"}, logger)
	assert.ErrorContains(t, err, "unknown ocr provider")

	_, err = newRecognizer(ctx, &OCRConfig{Provider: "gemini"}, logger)
	assert.ErrorContains(t, err, "GEMINI_API_KEY_FILE")

	_, err = newRecognizer(ctx, &OCRConfig{Provider: "http", HTTP: &HTTPConfig{}}, logger)
	assert.ErrorContains(t, err, "ocr.http.url")

	r, err = newRecognizer(ctx, &OCRConfig{Provider: "http", HTTP: &HTTPConfig{URL: "http://ocr.local"}}, logger)
	require.NoError(t, err)
	assert.IsType(t, &ocrservice.Client{}, r)
}

func TestNewHTTPRecognizerReadsTokenFile(t *testing.T) {
	empty := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(empty, []byte("  \n"), 0o600))

	_, err := newHTTPRecognizer(&HTTPConfig{URL: "http://ocr.local", TokenFile: empty}, zap.NewNop())
	assert.ErrorContains(t, err, "OCR_TOKEN_FILE")
}

func TestParseFiles(t *testing.T) {
	dir := t.TempDir()

	text := filepath.Join(dir, "cv.txt")
	require.NoError(t, os.WriteFile(text, []byte("Skills\nGo, SQL\nExperience\n- Built a billing platform for retail clients\n"), 0o600))

	big := filepath.Join(dir, "big.txt")
	f, err := os.Create(big)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(maxFileSize+1))
	require.NoError(t, f.Close())

	core, logs := observer.New(zapcore.WarnLevel)
	logger := zap.New(core)
	parser := resume.New(resume.Config{}, resume.Deps{Logger: logger})

	results, err := parseFiles(context.Background(), parser,
		[]string{text, big, filepath.Join(dir, "missing.pdf"), dir}, 2, logger)
	require.NoError(t, err)

	require.Equal(t, 1, results.Len())
	assert.Equal(t, text, results.Items[0].File)
	assert.Equal(t, resume.PathPlainText, results.Items[0].Resume.ExtractionPath)
	assert.Equal(t, []string{"Go", "SQL"}, results.Items[0].Resume.Skills)

	skipped := logs.FilterMessage("skipping file")
	assert.Equal(t, 3, skipped.Len())
	assert.Equal(t, 3, skipped.FilterFieldKey("error").Len())
}

func TestParseFilesKeepsArgumentOrder(t *testing.T) {
	dir := t.TempDir()

	var files []string
	for _, name := range []string{"z.txt", "m.txt", "a.txt"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("Skills\nGo\n"), 0o600))
		files = append(files, path)
	}

	parser := resume.New(resume.Config{}, resume.Deps{Logger: zap.NewNop()})
	results, err := parseFiles(context.Background(), parser, files, 3, zap.NewNop())
	require.NoError(t, err)

	require.Equal(t, 3, results.Len())
	for i, file := range files {
		assert.Equal(t, file, results.Items[i].File)
	}
}

func TestHandleAction(t *testing.T) {
	results := &output.Results{}
	results.Add("a.txt", resume.Failed())

	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)
	config := &Config{Fields: []string{"extraction_path"}}

	var buf bytes.Buffer
	require.NoError(t, handleAction(&buf, PromptPrint, logger, config, output.FormatJSON, results))

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	assert.Equal(t, []map[string]any{{"file": "a.txt", "extraction_path": "error"}}, rows)

	require.NoError(t, handleAction(&buf, PromptReportByPath, logger, config, output.FormatJSON, results))
	assert.True(t, strings.Contains(logs.All()[0].Message, `"error"`))

	require.NoError(t, handleAction(&buf, PromptResultsFile, logger, config, output.FormatJSON, results))
	dumped := logs.FilterMessage("dumping result to file").All()
	require.Len(t, dumped, 1)
	filename := dumped[0].ContextMap()["filename"].(string)
	t.Cleanup(func() { os.Remove(filename) })
	assert.FileExists(t, filename)

	assert.ErrorIs(t, handleAction(&buf, PromptExit, logger, config, output.FormatJSON, results), errExit)
	assert.Error(t, handleAction(&buf, "dance", logger, config, output.FormatJSON, results))
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	t.Cleanup(func() { versionCmd.SetOut(nil) })

	versionCmd.Run(versionCmd, nil)
	assert.True(t, strings.HasPrefix(buf.String(), "resume-parser version: "), buf.String())
}

func TestConfigDumpHidesSecrets(t *testing.T) {
	config := &Config{OCR: &OCRConfig{
		Gemini: &GeminiConfig{APIKey: "gemini-secret", Model: "m"},
		HTTP:   &HTTPConfig{Token: "http-secret", URL: "http://ocr.local"},
	}}

	pretty, err := json.Marshal(config)
	require.NoError(t, err)
	assert.NotContains(t, string(pretty), "gemini-secret")
	assert.NotContains(t, string(pretty), "http-secret")
	assert.Contains(t, string(pretty), "http://ocr.local")
}
