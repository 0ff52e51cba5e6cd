package domain

import (
	"path/filepath"
	"strings"
)

// Format is a supported upload format, named by its lower-case extension.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// SupportedFormats lists every format the upload endpoint accepts.
var SupportedFormats = []Format{FormatPDF, FormatDOCX}

// Fallback preview text when a document yields no text.
const (
	NoTextPDF  = "⚠️ No extractable text found in PDF."
	NoTextDOCX = "⚠️ No extractable text found in DOCX."
)

// ParseFormat returns the format named by filename's extension.
// The second value is false for missing or unsupported extensions.
func ParseFormat(filename string) (Format, bool) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	for _, f := range SupportedFormats {
		if Format(ext) == f {
			return f, true
		}
	}
	return "", false
}

// Extension returns the format's file extension with the leading dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// StoredFile describes an uploaded artifact and where its preview belongs.
type StoredFile struct {
	ID           string `json:"file_id"`
	Format       Format `json:"format"`
	OriginalName string `json:"original_name"`
	ArtifactPath string `json:"artifact_path"`
	PreviewPath  string `json:"preview_path"`
	Size         int64  `json:"size"`
}

// ExtractionResult is the text pulled from a document and the number of
// extraction units (pages or paragraphs) it contained.
type ExtractionResult struct {
	Text  string
	Units int
	// Empty is set when Text is the fallback placeholder.
	Empty bool
}

// UploadResult is the payload returned by the upload endpoints.
type UploadResult struct {
	Status       string `json:"status"`
	FileID       string `json:"file_id"`
	Filename     string `json:"filename"`
	PagesIndexed int    `json:"pages_indexed"`
	Message      string `json:"message"`
}

// PreviewText is the payload returned by the text retrieval endpoint.
type PreviewText struct {
	FileID string `json:"file_id"`
	Text   string `json:"text"`
}

// DocumentMetadata contains information about a stored document
type DocumentMetadata struct {
	FileID        string `json:"file_id"`
	Format        Format `json:"format"`
	Filename      string `json:"filename"`
	FileSize      int64  `json:"file_size"`
	FileSizeHuman string `json:"file_size_human"`
	PreviewSize   int64  `json:"preview_size"`
	Title         string `json:"title,omitempty"`
	Author        string `json:"author,omitempty"`
	PageCount     int    `json:"page_count,omitempty"`
	Encrypted     bool   `json:"encrypted,omitempty"`
}
