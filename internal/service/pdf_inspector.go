package service

import (
	"fmt"
	"os"

	"doc-ingest/internal/domain"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFCPUInspector reads document information with pdfcpu.
type PDFCPUInspector struct {
	conf *model.Configuration
}

// NewPDFCPUInspector creates an inspector with a relaxed validation mode so
// slightly malformed files still report their info.
func NewPDFCPUInspector() *PDFCPUInspector {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PDFCPUInspector{conf: conf}
}

// Inspect returns title, author, page count and encryption state of the PDF
// at path.
func (i *PDFCPUInspector) Inspect(path string) (*domain.PDFInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ctx, err := api.ReadContext(f, i.conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}
	// Validation fills in the document info fields; the page count is
	// still usable when it fails.
	if err := api.ValidateContext(ctx); err != nil {
		if err := ctx.EnsurePageCount(); err != nil {
			return nil, fmt.Errorf("failed to count PDF pages: %w", err)
		}
	}

	return &domain.PDFInfo{
		Title:     ctx.Title,
		Author:    ctx.Author,
		PageCount: ctx.PageCount,
		Encrypted: ctx.Encrypt != nil,
	}, nil
}
