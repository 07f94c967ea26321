package document

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"quiz-forge/internal/domain"

	"github.com/tmc/langchaingo/documentloaders"
	"github.com/tmc/langchaingo/schema"
)

// Extractor reads plain text out of uploaded files with langchaingo document loaders.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// SupportedExtensions lists the file types Extract accepts.
var SupportedExtensions = []string{".txt", ".md", ".pdf"}

// Extract implements domain.TextExtractor
func (e *Extractor) Extract(ctx context.Context, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", domain.NewInvalidInputError("uploaded file is empty").WithContext("filename", filename)
	}

	var loader documentloaders.Loader
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".txt", ".md":
		loader = documentloaders.NewText(bytes.NewReader(data))
	case ".pdf":
		loader = documentloaders.NewPDF(bytes.NewReader(data), int64(len(data)))
	default:
		return "", domain.NewInvalidInputError("unsupported file type").
			WithContext("filename", filename).
			WithContext("supported", SupportedExtensions)
	}

	docs, err := loader.Load(ctx)
	if err != nil {
		return "", domain.NewError(domain.CodeInvalidInput, fmt.Sprintf("failed to read %s", filename), err)
	}
	text := join(docs)
	if text == "" {
		return "", domain.NewInvalidInputError("no text could be extracted").WithContext("filename", filename)
	}
	return text, nil
}

func join(docs []schema.Document) string {
	parts := make([]string, 0, len(docs))
	for _, d := range docs {
		if c := strings.TrimSpace(d.PageContent); c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, "\n\n")
}

var _ domain.TextExtractor = (*Extractor)(nil)
