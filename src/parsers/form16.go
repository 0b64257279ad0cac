// Package parsers turns uploaded Form 16 documents into raw text.
// Phase 1 of the ingestion pipeline: PDF file -> text. Field extraction
// from that text is the extraction service's job.
package parsers

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/username/taxhawk/backend/src/logger"
)

var (
	ErrEmptyDocument      = errors.New("uploaded document is empty")
	ErrUnreadableDocument = errors.New("document could not be read as a PDF")
	// ErrNoExtractableText covers scanned/image-based PDFs.
	ErrNoExtractableText = errors.New("PDF contains no extractable text")
)

// ExtractText extracts raw text from a PDF, concatenating all pages
// separated by newlines.
func ExtractText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyDocument
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			logger.L.Warn("Failed to extract text from PDF page", "page", i, "error", err)
			continue
		}
		if text != "" {
			pages = append(pages, text)
		}
	}

	fullText := strings.Join(pages, "\n")
	if strings.TrimSpace(fullText) == "" {
		return "", fmt.Errorf("%w: it may be scanned/image-based", ErrNoExtractableText)
	}
	return fullText, nil
}
