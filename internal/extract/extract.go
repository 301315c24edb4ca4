package extract

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"docwhisperer/internal/pkg/pdfextract"
)

// ErrExtraction reports an unreadable or unsupported document.
var ErrExtraction = errors.New("extraction failed")

// SupportedExtensions lists the extensions handled natively. Anything
// else falls back to plain-text decoding with a logged warning.
var SupportedExtensions = []string{".pdf", ".txt", ".md", ".markdown"}

// Extractor reads document files and returns their raw text.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

// Extract returns the text content of the file at path, dispatching on
// its extension.
func (e *Extractor) Extract(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, err := pdfextract.ExtractPages(path)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrExtraction, path, err)
		}
		return text, nil
	case ".txt", ".md", ".markdown":
		return e.extractTextFile(path)
	default:
		log.Printf("warning: unsupported file format %s, treating as text", filepath.Ext(path))
		return e.extractTextFile(path)
	}
}

// extractTextFile reads path as UTF-8 and falls back to Latin-1 when
// the bytes are not valid UTF-8. Latin-1 accepts every byte value, so
// the fallback cannot fail; this is best-effort decoding, not a
// correctness guarantee, but downstream chunking relies on always
// getting a consistent string back.
func (e *Extractor) extractTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrExtraction, path, err)
	}
	if utf8.Valid(data) {
		return string(data), nil
	}
	return decodeLatin1(data), nil
}

func decodeLatin1(data []byte) string {
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}
