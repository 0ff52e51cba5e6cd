package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"doc-ingest/internal/domain"
	apperrors "doc-ingest/pkg/errors"

	"github.com/gen2brain/go-fitz"
)

// pdfDocument is the subset of *fitz.Document the extractor needs.
type pdfDocument interface {
	NumPage() int
	Text(pageNumber int) (string, error)
	Close() error
}

type pdfOpener func(path string) (pdfDocument, error)

func openFitz(path string) (pdfDocument, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// PDFExtractor pulls text from a stored PDF page by page.
type PDFExtractor struct {
	open   pdfOpener
	logger domain.Logger
}

// NewPDFExtractor creates a PDF extractor backed by MuPDF (go-fitz).
func NewPDFExtractor(logger domain.Logger) *PDFExtractor {
	return &PDFExtractor{
		open:   openFitz,
		logger: logger,
	}
}

// Extract reads artifactPath, joins the text of every non-blank page with a
// blank line, writes the result to previewPath and returns it with the page
// count. A page that fails to extract counts as blank. If no page has text the
// preview holds domain.NoTextPDF.
func (p *PDFExtractor) Extract(ctx context.Context, artifactPath, previewPath string) (*domain.ExtractionResult, error) {
	if _, err := os.Stat(artifactPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("PDF not found: %s", artifactPath))
		}
		return nil, apperrors.NewStorageError("Failed to stat PDF", err)
	}

	doc, err := p.open(artifactPath)
	if err != nil {
		return nil, apperrors.NewExtractionError("Failed to open PDF", err)
	}
	defer doc.Close()

	numPages := doc.NumPage()
	pieces := make([]string, 0, numPages)

	for pageNum := 0; pageNum < numPages; pageNum++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text, err := pageText(doc, pageNum)
		if err != nil {
			p.logger.Warn("Failed to extract text from page", "page_num", pageNum+1, "total", numPages, "error", err)
			continue
		}
		if text = strings.TrimSpace(sanitizeText(text)); text != "" {
			pieces = append(pieces, text)
		}
	}

	result := &domain.ExtractionResult{
		Text:  strings.TrimSpace(strings.Join(pieces, "\n\n")),
		Units: numPages,
	}
	if result.Text == "" {
		result.Text = domain.NoTextPDF
		result.Empty = true
	}

	if err := writePreview(previewPath, result.Text); err != nil {
		return nil, err
	}

	p.logger.Debug("PDF extracted", "path", artifactPath, "pages", numPages, "pages_with_text", len(pieces))
	return result, nil
}

// pageText extracts one page, converting a parser panic into an error so a
// single malformed page cannot take the document down.
func pageText(doc pdfDocument, pageNum int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page %d: %v", pageNum+1, r)
		}
	}()
	return doc.Text(pageNum)
}

// writePreview writes text to path, creating parent directories and
// replacing any existing file.
func writePreview(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return apperrors.NewStorageError("Failed to create preview directory", err)
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return apperrors.NewStorageError("Failed to write text preview", err)
	}
	return nil
}
