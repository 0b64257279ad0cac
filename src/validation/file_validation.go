package validation

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/username/taxhawk/backend/src/logger"
)

// AllowedClientContentTypes is a map for quick lookup of allowed
// client-declared MIME types for Form 16 uploads.
var AllowedClientContentTypes = map[string]bool{
	"application/pdf":          true,
	"application/x-pdf":        true,
	"application/octet-stream": true, // fallback; magic bytes decide
}

// ValidateClientContentType checks the Content-Type header provided by the client.
func ValidateClientContentType(contentType string) error {
	normalized := strings.ToLower(strings.Split(contentType, ";")[0])
	if allowed, exists := AllowedClientContentTypes[normalized]; !exists || !allowed {
		logger.L.Warn("Disallowed client-declared Content-Type", "contentType", contentType)
		return fmt.Errorf("client-declared file type '%s' is not allowed for Form 16 upload", contentType)
	}
	return nil
}

var pdfMagic = []byte("%PDF-")

// ValidatePDFByMagicBytes checks the actual file content signature and
// resets the read pointer so the parser can read the full file.
func ValidatePDFByMagicBytes(file io.ReadSeeker) error {
	if file == nil {
		return fmt.Errorf("file is nil")
	}

	buffer := make([]byte, len(pdfMagic))
	n, err := io.ReadFull(file, buffer)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return fmt.Errorf("failed to read file for content type checking: %w", err)
	}

	if _, seekErr := file.Seek(0, io.SeekStart); seekErr != nil {
		return fmt.Errorf("failed to reset file read pointer: %w", seekErr)
	}

	if n < len(pdfMagic) || !bytes.Equal(buffer[:n], pdfMagic) {
		logger.L.Warn("Uploaded file does not start with PDF signature")
		return fmt.Errorf("file content is not a PDF document")
	}
	return nil
}
