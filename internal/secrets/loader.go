// Package secrets resolves credentials for the OCR engines.
package secrets

import (
	"fmt"
	"os"
	"strings"
)

// maxFileSize bounds secret files; anything larger is a misconfigured path.
const maxFileSize = 64 << 10

// Source describes where a secret may come from. File wins over Env, and Env
// wins over Value.
type Source struct {
	// Name gives errors context.
	Name  string
	Value string
	File  string
	// Env names an environment variable holding the secret itself.
	Env string
}

// Load returns the trimmed secret from the first configured location.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	if file := strings.TrimSpace(src.File); file != "" {
		value, err := readFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		if value == "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}
		return value, nil
	}

	if env := strings.TrimSpace(src.Env); env != "" {
		if value := strings.TrimSpace(os.Getenv(env)); value != "" {
			return value, nil
		}
	}

	if value := strings.TrimSpace(src.Value); value != "" {
		return value, nil
	}

	return "", fmt.Errorf("%s is not configured", name)
}

func readFile(name string) (string, error) {
	info, err := os.Stat(name)
	if err != nil {
		return "", err
	}
	if info.Size() > maxFileSize {
		return "", fmt.Errorf("file is larger than %d bytes", maxFileSize)
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
