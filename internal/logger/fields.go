package logger

import (
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// Structured log field keys shared across packages.
const (
	FieldEngine  = "ocr_engine"
	FieldModel   = "ocr_model"
	FieldFile    = "file"
	FieldSize    = "size"
	FieldParseID = "parse_id"
)

// Strings turns key/value pairs into zap string fields. Pairs with an empty
// key or value are skipped; a trailing key without a value is ignored.
func Strings(kv ...string) []zap.Field {
	fields := make([]zap.Field, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key := strings.TrimSpace(kv[i])
		value := strings.TrimSpace(kv[i+1])
		if key == "" || value == "" {
			continue
		}
		fields = append(fields, zap.String(key, value))
	}
	return fields
}

// With attaches fields to logger. A nil logger becomes a no-op logger.
func With(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// EngineFields describes the OCR engine in use.
func EngineFields(engine, model string) []zap.Field {
	return Strings(FieldEngine, engine, FieldModel, model)
}

// WithEngine attaches EngineFields to logger.
func WithEngine(logger *zap.Logger, engine, model string) *zap.Logger {
	return With(logger, EngineFields(engine, model)...)
}

// FileFields describes an input file. Only the base name is logged.
func FileFields(name string, size int) []zap.Field {
	fields := Strings(FieldFile, filepath.Base(name))
	if size < 0 {
		size = 0
	}
	return append(fields, zap.String(FieldSize, humanize.Bytes(uint64(size))))
}
