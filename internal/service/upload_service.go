package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"doc-ingest/internal/domain"
	apperrors "doc-ingest/pkg/errors"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// DocumentUploadService runs the save → sniff → extract pipeline and serves
// stored previews back.
type DocumentUploadService struct {
	storage    domain.FileStorage
	extractors map[domain.Format]domain.Extractor
	sniffer    domain.ContentSniffer
	inspector  domain.PDFInspector
	logger     domain.Logger
	newID      func() string
}

// NewUploadService creates a new upload service. sniffer may be nil to
// accept uploads on their extension alone.
func NewUploadService(
	storage domain.FileStorage,
	extractors map[domain.Format]domain.Extractor,
	sniffer domain.ContentSniffer,
	inspector domain.PDFInspector,
	logger domain.Logger,
) *DocumentUploadService {
	return &DocumentUploadService{
		storage:    storage,
		extractors: extractors,
		sniffer:    sniffer,
		inspector:  inspector,
		logger:     logger,
		newID:      uuid.NewString,
	}
}

// Upload stores file under a fresh identifier, extracts its text and writes
// the preview. Only formats listed in allowed are accepted; the check runs
// before anything touches disk.
func (s *DocumentUploadService) Upload(
	ctx context.Context,
	file io.Reader,
	filename string,
	allowed []domain.Format,
) (*domain.UploadResult, error) {
	format, ok := domain.ParseFormat(filename)
	if !ok || !containsFormat(allowed, format) {
		return nil, apperrors.NewInvalidFormatError(allowedMessage(allowed)).WithCause(domain.ErrUnsupportedFormat)
	}

	extractor, ok := s.extractors[format]
	if !ok {
		return nil, apperrors.NewInternalError("No extractor registered", fmt.Errorf("format %s", format))
	}

	id := s.newID()
	stored, err := s.storage.Save(ctx, file, id, filename)
	if err != nil {
		s.logger.Error("Failed to store upload", err, "file_id", id, "filename", filename)
		return nil, err
	}

	if s.sniffer != nil {
		if err := s.sniffer.Check(stored.ArtifactPath, format); err != nil {
			if rmErr := s.storage.Remove(id, format); rmErr != nil {
				s.logger.Error("Failed to remove rejected upload", rmErr, "file_id", id)
			}
			return nil, err
		}
	}

	result, err := extractor.Extract(ctx, stored.ArtifactPath, stored.PreviewPath)
	if err != nil {
		s.logger.Error("Text extraction failed", err, "file_id", id, "format", format)
		return nil, apperrors.NewExtractionError("Text extraction failed", extractionCause(err))
	}

	s.logger.Info("Document indexed",
		"file_id", id,
		"format", format,
		"size", humanize.Bytes(uint64(stored.Size)),
		"units", result.Units,
		"empty", result.Empty,
	)

	return &domain.UploadResult{
		Status:       domain.StatusOK,
		FileID:       id,
		Filename:     stored.OriginalName,
		PagesIndexed: result.Units,
		Message:      fmt.Sprintf("Saved to %s (preview: %s)", stored.ArtifactPath, stored.PreviewPath),
	}, nil
}

// GetText returns the stored preview for fileID verbatim.
func (s *DocumentUploadService) GetText(ctx context.Context, fileID string) (*domain.PreviewText, error) {
	if !validFileID(fileID) {
		return nil, apperrors.NewNotFoundError("Text preview not found for this file")
	}

	text, err := s.storage.ReadPreview(fileID)
	if err != nil {
		if errors.Is(err, domain.ErrPreviewNotFound) {
			return nil, apperrors.NewNotFoundError("Text preview not found for this file")
		}
		return nil, err
	}

	return &domain.PreviewText{FileID: fileID, Text: text}, nil
}

// GetMetadata describes the stored artifact for fileID. PDF info is best
// effort; a PDF pdfcpu cannot read still reports its size.
func (s *DocumentUploadService) GetMetadata(ctx context.Context, fileID string) (*domain.DocumentMetadata, error) {
	if !validFileID(fileID) {
		return nil, apperrors.NewNotFoundError("Document not found")
	}

	for _, format := range domain.SupportedFormats {
		size, err := s.storage.Stat(fileID, format)
		if errors.Is(err, domain.ErrArtifactNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		meta := &domain.DocumentMetadata{
			FileID:        fileID,
			Format:        format,
			Filename:      fileID + format.Extension(),
			FileSize:      size,
			FileSizeHuman: humanize.Bytes(uint64(size)),
		}
		if info, err := os.Stat(s.storage.PreviewPath(fileID)); err == nil {
			meta.PreviewSize = info.Size()
		}

		if format == domain.FormatPDF && s.inspector != nil {
			info, err := s.inspector.Inspect(s.storage.ArtifactPath(fileID, format))
			if err != nil {
				s.logger.Warn("Failed to inspect PDF", "file_id", fileID, "error", err)
			} else {
				meta.Title = info.Title
				meta.Author = info.Author
				meta.PageCount = info.PageCount
				meta.Encrypted = info.Encrypted
			}
		}
		return meta, nil
	}

	return nil, apperrors.NewNotFoundError("Document not found")
}

// validFileID accepts only canonical UUIDs, so an identifier can never
// name a path outside the upload directory.
func validFileID(id string) bool {
	parsed, err := uuid.Parse(id)
	return err == nil && parsed.String() == id
}

func containsFormat(formats []domain.Format, f domain.Format) bool {
	for _, candidate := range formats {
		if candidate == f {
			return true
		}
	}
	return false
}

func allowedMessage(allowed []domain.Format) string {
	names := make([]string, 0, len(allowed))
	for _, f := range allowed {
		names = append(names, strings.ToUpper(string(f)))
	}
	return fmt.Sprintf("Only %s files are allowed", strings.Join(names, " and "))
}

// extractionCause strips an AppError wrapper so the client message carries
// the underlying parser error once.
func extractionCause(err error) error {
	if appErr, ok := apperrors.As(err); ok && appErr.Cause != nil {
		return appErr.Cause
	}
	return err
}
