package chatbot

import (
	_ "embed"
	"os"
	"strings"
)

//go:embed docs/assistant.md
var defaultDocs string

// LoadDocs returns the documentation the model is primed with: the file at
// path when set, otherwise the embedded copy. It is read once at startup.
func LoadDocs(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return defaultDocs, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
