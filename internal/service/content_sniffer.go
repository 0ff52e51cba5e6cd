package service

import (
	"fmt"

	"doc-ingest/internal/domain"
	apperrors "doc-ingest/pkg/errors"

	"github.com/gabriel-vasile/mimetype"
)

const (
	mimePDF = "application/pdf"
	mimeZip = "application/zip"
)

// MimeSniffer checks an artifact's leading bytes against its extension.
type MimeSniffer struct {
	logger domain.Logger
}

// NewMimeSniffer creates a new content sniffer
func NewMimeSniffer(logger domain.Logger) *MimeSniffer {
	return &MimeSniffer{
		logger: logger,
	}
}

// Check returns an InvalidFormat error when the file at path does not look
// like format. A DOCX must be a zip container holding word/document.xml.
func (m *MimeSniffer) Check(path string, format domain.Format) error {
	detected, err := mimetype.DetectFile(path)
	if err != nil {
		return apperrors.NewStorageError("Failed to inspect upload", err)
	}

	ok := false
	switch format {
	case domain.FormatPDF:
		ok = detected.Is(mimePDF)
	case domain.FormatDOCX:
		ok = hasAncestor(detected, mimeZip) && openDOCX(path) == nil
	}

	if !ok {
		m.logger.Warn("Upload content does not match extension", "path", path, "format", format, "detected", detected.String())
		return apperrors.NewInvalidFormatError(
			fmt.Sprintf("File content is not a valid %s document", format),
			detected.String(),
		).WithCause(domain.ErrContentMismatch)
	}
	return nil
}

func hasAncestor(m *mimetype.MIME, mime string) bool {
	for ; m != nil; m = m.Parent() {
		if m.Is(mime) {
			return true
		}
	}
	return false
}
