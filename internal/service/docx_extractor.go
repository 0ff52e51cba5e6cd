package service

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"doc-ingest/internal/domain"
	apperrors "doc-ingest/pkg/errors"
)

const docxBodyPart = "word/document.xml"

// DOCXExtractor pulls paragraph text from a stored Word document.
type DOCXExtractor struct {
	logger domain.Logger
}

// NewDOCXExtractor creates a new DOCX extractor
func NewDOCXExtractor(logger domain.Logger) *DOCXExtractor {
	return &DOCXExtractor{
		logger: logger,
	}
}

// Extract reads artifactPath, writes the paragraph text to previewPath and
// returns it with the paragraph count.
func (d *DOCXExtractor) Extract(ctx context.Context, artifactPath, previewPath string) (*domain.ExtractionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := d.extract(artifactPath)
	if err != nil {
		return nil, err
	}

	if err := writePreview(previewPath, result.Text); err != nil {
		return nil, err
	}
	return result, nil
}

// ExtractText returns the text of the document at path without writing a
// preview. Paragraphs are trimmed, blank ones dropped, and the rest joined
// with a newline.
func (d *DOCXExtractor) ExtractText(path string) (string, error) {
	result, err := d.extract(path)
	if err != nil {
		return "", err
	}
	return result.Text, nil
}

func (d *DOCXExtractor) extract(path string) (*domain.ExtractionResult, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("DOCX not found: %s", path))
		}
		return nil, apperrors.NewExtractionError("Failed to read DOCX", err)
	}
	defer zr.Close()

	body, err := openZipPart(&zr.Reader, docxBodyPart)
	if err != nil {
		return nil, apperrors.NewExtractionError("Failed to read DOCX", err)
	}
	defer body.Close()

	paragraphs, err := readParagraphs(body)
	if err != nil {
		// Keep what was read before the document went bad; a body that fails
		// before its first paragraph is unreadable.
		if len(paragraphs) == 0 {
			return nil, apperrors.NewExtractionError("Failed to read DOCX", err)
		}
		d.logger.Warn("DOCX body truncated; keeping paragraphs read so far", "path", path, "paragraphs", len(paragraphs), "error", err)
	}

	kept := make([]string, 0, len(paragraphs))
	for _, para := range paragraphs {
		if para = strings.TrimSpace(para); para != "" {
			kept = append(kept, para)
		}
	}

	result := &domain.ExtractionResult{
		Text:  strings.Join(kept, "\n"),
		Units: len(paragraphs),
	}
	if result.Text == "" {
		result.Text = domain.NoTextDOCX
		result.Empty = true
	}

	d.logger.Debug("DOCX extracted", "path", path, "paragraphs", len(paragraphs), "paragraphs_with_text", len(kept))
	return result, nil
}

func openZipPart(zr *zip.Reader, name string) (io.ReadCloser, error) {
	for _, f := range zr.File {
		if f.Name == name {
			return f.Open()
		}
	}
	// Some producers write part names with different casing.
	for _, f := range zr.File {
		if strings.EqualFold(f.Name, name) {
			return f.Open()
		}
	}
	return nil, fmt.Errorf("missing part %s", name)
}

const (
	wordNS       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	wordStrictNS = "http://purl.oclc.org/ooxml/wordprocessingml/main"
	markupCompNS = "http://schemas.openxmlformats.org/markup-compatibility/2006"
)

func isWord(name xml.Name) bool {
	return name.Space == wordNS || name.Space == wordStrictNS
}

// readParagraphs walks a WordprocessingML body and returns the raw text of
// each w:p in document order. Only w:t runs contribute text; w:tab becomes a
// tab and w:br / w:cr a newline inside runs. A paragraph nested in another
// (text boxes) is emitted on its own. mc:Fallback content repeats its
// mc:Choice sibling and is skipped.
func readParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		paragraphs []string
		open       []*strings.Builder
		inRun      int
		inText     bool
	)

	current := func() *strings.Builder {
		if len(open) == 0 {
			return nil
		}
		return open[len(open)-1]
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return paragraphs, nil
		}
		if err != nil {
			return paragraphs, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space == markupCompNS && t.Name.Local == "Fallback" {
				if err := dec.Skip(); err != nil {
					return paragraphs, err
				}
				continue
			}
			if !isWord(t.Name) {
				continue
			}
			switch t.Name.Local {
			case "p":
				open = append(open, &strings.Builder{})
			case "r":
				inRun++
			case "t":
				inText = true
			case "tab":
				// w:tab outside a run is a tab stop definition.
				if sb := current(); sb != nil && inRun > 0 {
					sb.WriteString("\t")
				}
			case "br", "cr":
				if sb := current(); sb != nil && inRun > 0 {
					sb.WriteString("\n")
				}
			}
		case xml.EndElement:
			if !isWord(t.Name) {
				continue
			}
			switch t.Name.Local {
			case "p":
				if sb := current(); sb != nil {
					paragraphs = append(paragraphs, sb.String())
					open = open[:len(open)-1]
				}
			case "r":
				if inRun > 0 {
					inRun--
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				if sb := current(); sb != nil {
					sb.Write(t)
				}
			}
		}
	}
}

// openDOCX reports whether path is a readable DOCX without extracting it.
func openDOCX(path string) error {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return err
	}
	defer zr.Close()

	body, err := openZipPart(&zr.Reader, docxBodyPart)
	if err != nil {
		return err
	}
	return body.Close()
}

var _ domain.Extractor = (*DOCXExtractor)(nil)
var _ domain.Extractor = (*PDFExtractor)(nil)

